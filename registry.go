package esql

import (
	"net/url"

	elasticV8 "github.com/elastic/go-elasticsearch/v8"
	elasticV9 "github.com/elastic/go-elasticsearch/v9"
	"github.com/pkg/errors"
)

// Entry represents a registered Elasticsearch cluster with a pre-created
// query client.
type Entry struct {
	Name    string   // Cluster name
	Version int      // Elasticsearch version (8 or 9)
	BaseURL string   // Base URL for the cluster
	ES      ESClient // Pre-created transport
	Client  *Client  // Pre-created query client
}

// Registry manages multiple Elasticsearch clusters.
// All clients are created once during initialization.
type Registry struct {
	defaultName string
	byName      map[string]Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry(defaultName string) *Registry {
	if defaultName == "" {
		defaultName = "default"
	}
	return &Registry{
		defaultName: defaultName,
		byName:      make(map[string]Entry),
	}
}

// NewRegistryFromConfig creates registry from configuration.
// All ES clients are created during initialization (one-time setup).
func NewRegistryFromConfig(cfg *Config, opts ...ClientOption) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	reg := NewRegistry(cfg.DefaultCluster)

	for name, clusterCfg := range cfg.Clusters {
		baseURL := clusterCfg.Addresses[0]
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, ErrInvalidBaseURL(name, baseURL)
		}

		var es ESClient

		switch clusterCfg.Version {
		case 9:
			cl, err := elasticV9.NewClient(elasticV9.Config{
				Addresses: clusterCfg.Addresses,
				Username:  clusterCfg.Username,
				Password:  clusterCfg.Password,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create ES v9 client for %q", name)
			}
			es = NewESClientV9(cl, u)

		case 8:
			cl, err := elasticV8.NewClient(elasticV8.Config{
				Addresses: clusterCfg.Addresses,
				Username:  clusterCfg.Username,
				Password:  clusterCfg.Password,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create ES v8 client for %q", name)
			}
			es = NewESClientV8(cl, u)

		default:
			// This should never happen after Validate()
			return nil, ErrInvalidESVersion(name, clusterCfg.Version)
		}

		client, err := NewClient(es, baseURL, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create query client for %q", name)
		}

		reg.byName[name] = Entry{
			Name:    name,
			Version: clusterCfg.Version,
			BaseURL: baseURL,
			ES:      es,
			Client:  client,
		}
	}

	return reg, nil
}

// GetClient returns the pre-created query client by cluster name.
// Returns error if cluster not found.
func (r *Registry) GetClient(clusterName string) (*Client, error) {
	if clusterName == "" {
		clusterName = r.defaultName
	}

	entry, ok := r.byName[clusterName]
	if !ok {
		return nil, ErrClusterNotFound(clusterName)
	}

	return entry.Client, nil
}

// GetEntry returns full entry (client + metadata) by cluster name.
func (r *Registry) GetEntry(clusterName string) (Entry, error) {
	if clusterName == "" {
		clusterName = r.defaultName
	}

	entry, ok := r.byName[clusterName]
	if !ok {
		return Entry{}, ErrClusterNotFound(clusterName)
	}

	return entry, nil
}

// Default returns the default cluster client.
func (r *Registry) Default() (*Client, error) {
	return r.GetClient(r.defaultName)
}

// ListClusters returns list of all registered cluster names.
func (r *Registry) ListClusters() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}
