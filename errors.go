package esql

import "fmt"

// Configuration errors
var (
	ErrEmptyClusters          = fmt.Errorf("clusters map is empty")
	ErrNoDefaultCluster       = fmt.Errorf("default cluster name not specified")
	ErrDefaultClusterNotFound = fmt.Errorf("default cluster not found in clusters map")
	ErrEmptyClusterName       = fmt.Errorf("cluster name is empty")
)

// ErrEmptyClusterAddresses returns error for cluster with no addresses.
func ErrEmptyClusterAddresses(clusterName string) error {
	return fmt.Errorf("cluster %q has no addresses", clusterName)
}

// ErrInvalidESVersion returns error for unsupported ES version.
func ErrInvalidESVersion(clusterName string, version int) error {
	return fmt.Errorf("cluster %q has invalid ES version %d (must be 8 or 9)", clusterName, version)
}

// ErrClusterNotFound returns error when cluster is not found in registry.
func ErrClusterNotFound(clusterName string) error {
	return fmt.Errorf("cluster %q not found in registry", clusterName)
}

// ErrInvalidBaseURL returns error for invalid cluster base URL.
func ErrInvalidBaseURL(clusterName, address string) error {
	return fmt.Errorf("cluster %q has invalid base URL %q (must be absolute URL)", clusterName, address)
}

// ErrStageBeforeSource returns error for a pipeline stage appended before
// a FROM or ROW source stage.
func ErrStageBeforeSource(keyword string) error {
	return fmt.Errorf("esql: %s before FROM or ROW", keyword)
}

// ErrUnknownField returns error for a field reference that names neither a
// schema field nor a column derived by an earlier stage.
func ErrUnknownField(path, index string) error {
	return fmt.Errorf("esql: unknown field %q in schema %q", path, index)
}

// StatusError reports an unexpected HTTP status from the cluster.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("elasticsearch returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s returned status code %d", e.Op, e.StatusCode)
}

// QueryError is a query-level failure reported by the ES|QL endpoint:
// malformed query text, unknown field, type mismatch. The client propagates
// it without interpretation.
type QueryError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: [%d] %s: %s", e.StatusCode, e.Type, e.Reason)
}

// MissingColumnError reports a schema field with no matching result column
// during strict materialization.
type MissingColumnError struct {
	Path string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("result set has no column for schema field %q", e.Path)
}
