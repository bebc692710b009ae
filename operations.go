package esql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Index management and document operations needed to stand a queryable
// index up. The full REST surface is out of scope; these cover what the
// integration tests and examples need to seed data before querying it.

// CreateIndex creates a new index with mappings and settings.
func (c *Client) CreateIndex(ctx context.Context, index string, body any) error {
	if index == "" {
		return errors.New("index name is required")
	}

	bodyReader, err := jsonBody(body)
	if err != nil {
		return err
	}

	u := newURL(c.baseURL, fmt.Sprintf("/%s", index), nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to create index request")
	}
	contentTypeJSON(httpReq)

	status, err := doJSON(ctx, c.es, httpReq, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return &StatusError{Op: "create_index", StatusCode: status}
	}

	return nil
}

// DeleteIndex deletes an index.
func (c *Client) DeleteIndex(ctx context.Context, index string) error {
	if index == "" {
		return errors.New("index name is required")
	}

	u := newURL(c.baseURL, fmt.Sprintf("/%s", index), nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create delete index request")
	}

	status, err := doJSON(ctx, c.es, httpReq, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return &StatusError{Op: "delete_index", StatusCode: status}
	}

	return nil
}

// IndexExists checks if index exists.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	if index == "" {
		return false, errors.New("index name is required")
	}

	u := newURL(c.baseURL, fmt.Sprintf("/%s", index), nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to create index exists request")
	}

	status, err := doJSON(ctx, c.es, httpReq, nil)
	if err != nil {
		return false, err
	}

	return status == http.StatusOK, nil
}

// IndexDocument creates or replaces a document with a specific ID.
func (c *Client) IndexDocument(ctx context.Context, index, documentID string, doc any) error {
	if index == "" {
		return errors.New("index name is required")
	}
	if documentID == "" {
		return errors.New("document ID is required")
	}

	bodyReader, err := jsonBody(doc)
	if err != nil {
		return err
	}

	u := newURL(c.baseURL, fmt.Sprintf("/%s/_doc/%s", index, documentID), nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to create index document request")
	}
	contentTypeJSON(httpReq)

	status, err := doJSON(ctx, c.es, httpReq, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return &StatusError{Op: "index_document", StatusCode: status}
	}

	return nil
}

// Refresh makes recent index changes visible to search and ES|QL.
func (c *Client) Refresh(ctx context.Context, index string) error {
	if index == "" {
		return errors.New("index name is required")
	}

	u := newURL(c.baseURL, fmt.Sprintf("/%s/_refresh", index), nil)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create refresh request")
	}

	status, err := doJSON(ctx, c.es, httpReq, nil)
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return &StatusError{Op: "refresh", StatusCode: status}
	}

	return nil
}
