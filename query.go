package esql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// queryPath is the ES|QL REST endpoint.
const queryPath = "/_query"

// Client executes rendered ES|QL pipelines against one cluster.
type Client struct {
	es      ESClient
	baseURL *url.URL
	cache   *Cache
	log     Logger
}

// ClientOption configures optional client collaborators.
type ClientOption func(*Client)

// WithCache attaches a Redis-backed result cache to the client.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithLogger attaches a debug logger to the client.
func WithLogger(log Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates a query client on top of an ESClient transport.
func NewClient(es ESClient, baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		es:      es,
		baseURL: u,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = safeLogger(c.log)

	return c, nil
}

// QueryRequest is one ES|QL execution: the rendered query text and the
// ordered values for its ? parameter markers.
type QueryRequest struct {
	Query  string // Rendered pipeline text
	Params []any  // Positional values for ? markers, passed out-of-band
}

// Query executes an ES|QL query and returns its columnar result set.
// Query-level failures from the server surface as *QueryError.
func (c *Client) Query(ctx context.Context, req *QueryRequest) (*ResultSet, error) {
	if req == nil || req.Query == "" {
		return nil, errors.New("query text is required")
	}

	if c.cache != nil {
		if rs, ok := c.cache.Get(ctx, req); ok {
			c.log.DebugWithCtx(ctx, "esql query served from cache", "query", req.Query)
			return rs, nil
		}
	}

	body := map[string]any{
		"query": req.Query,
	}
	if len(req.Params) > 0 {
		body["params"] = req.Params
	}

	bodyReader, err := jsonBody(body)
	if err != nil {
		return nil, err
	}

	u := newURL(c.baseURL, queryPath, nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create query request")
	}
	contentTypeJSON(httpReq)

	c.log.DebugWithCtx(ctx, "executing esql query", "query", req.Query, "params", len(req.Params))

	res, err := c.es.Do(ctx, httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "http request failed")
	}
	defer res.Body.Close() //nolint:errcheck

	rs, err := decodeQueryResponse(res.Body, res.StatusCode)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.PutAsync(req, rs)
	}

	return rs, nil
}

// decodeQueryResponse decodes a successful response into a ResultSet, and
// an error response into a QueryError carrying the server's type and
// reason.
func decodeQueryResponse(body io.Reader, status int) (*ResultSet, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if status != http.StatusOK {
		var e struct {
			Error struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		}
		if err := json.Unmarshal(raw, &e); err != nil || e.Error.Type == "" {
			return nil, &StatusError{Op: "query", StatusCode: status}
		}
		return nil, &QueryError{
			StatusCode: status,
			Type:       e.Error.Type,
			Reason:     e.Error.Reason,
		}
	}

	var rs ResultSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, errors.Wrap(err, "failed to decode query response")
	}

	return &rs, nil
}
