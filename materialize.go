package esql

import (
	"encoding/json"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Column is one result column: its name and the type the server declared
// for it.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ResultSet is the columnar response of one query execution: ordered
// columns paired with rows of raw values aligned to them. It is consumed
// once by Materialize and then discarded.
type ResultSet struct {
	Took    int                 `json:"took"`
	Columns []Column            `json:"columns"`
	Values  [][]json.RawMessage `json:"values"`
}

// Record pairs one materialized document with the values of result columns
// that do not correspond to any schema field (computed EVAL/STATS
// aliases). Extras is nil unless materialization ran with WithExtras.
type Record[T any] struct {
	Doc    T
	Extras map[string]any
}

type materializeConfig struct {
	ignoreMissing bool
	withExtras    bool
}

// MaterializeOption adjusts materialization behavior.
type MaterializeOption func(*materializeConfig)

// IgnoreMissing switches the missing-column policy from strict to lenient:
// schema fields absent from the result are left at their zero value
// instead of failing each row.
func IgnoreMissing() MaterializeOption {
	return func(c *materializeConfig) { c.ignoreMissing = true }
}

// WithExtras collects non-schema result columns into Record.Extras instead of
// dropping them.
func WithExtras() MaterializeOption {
	return func(c *materializeConfig) { c.withExtras = true }
}

// Materialize converts a columnar result set into typed documents, one per
// row. Columns whose names match schema leaf paths (including dotted paths
// into nested objects) populate the document; the rest are extras.
//
// The returned sequence is lazy and single-pass: rows are decoded as the
// caller consumes them, and under the strict missing-column policy the
// error surfaces on each consumed row rather than up front.
func Materialize[T any](rs *ResultSet, schema *Schema, opts ...MaterializeOption) iter.Seq2[Record[T], error] {
	var cfg materializeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(yield func(Record[T], error) bool) {
		if rs == nil {
			yield(Record[T]{}, errors.New("esql: nil result set"))
			return
		}

		docCols, extraCols := partitionColumns(rs.Columns, schema)
		missing := firstMissingPath(rs.Columns, schema)

		for _, values := range rs.Values {
			if missing != "" && !cfg.ignoreMissing {
				if !yield(Record[T]{}, &MissingColumnError{Path: missing}) {
					return
				}
				continue
			}

			row, err := decodeRecord[T](rs.Columns, values, docCols, extraCols, cfg.withExtras)
			if !yield(row, err) {
				return
			}
		}
	}
}

// Collect drains a materialized sequence eagerly, stopping at the first
// row error.
func Collect[T any](seq iter.Seq2[Record[T], error]) ([]Record[T], error) {
	var out []Record[T]
	for row, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// partitionColumns splits column indexes into those matching schema leaf
// paths and the rest. Without a schema every column is a document column.
func partitionColumns(cols []Column, schema *Schema) (docCols, extraCols []int) {
	for i, col := range cols {
		if schema == nil || schema.Has(col.Name) {
			docCols = append(docCols, i)
		} else {
			extraCols = append(extraCols, i)
		}
	}
	return docCols, extraCols
}

// firstMissingPath returns the first schema leaf path, in declaration
// order, that has no result column.
func firstMissingPath(cols []Column, schema *Schema) string {
	if schema == nil {
		return ""
	}
	present := make(map[string]bool, len(cols))
	for _, col := range cols {
		present[col.Name] = true
	}
	for _, path := range schema.paths {
		if !present[path] {
			return path
		}
	}
	return ""
}

func decodeRecord[T any](cols []Column, values []json.RawMessage, docCols, extraCols []int, withExtras bool) (Record[T], error) {
	var row Record[T]
	if len(values) != len(cols) {
		return row, errors.Errorf("esql: row has %d values for %d columns", len(values), len(cols))
	}

	doc := make(map[string]any, len(docCols))
	for _, i := range docCols {
		insertPath(doc, cols[i].Name, values[i])
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return row, errors.Wrap(err, "failed to assemble document")
	}
	if err := json.Unmarshal(raw, &row.Doc); err != nil {
		return row, errors.Wrap(err, "failed to decode document")
	}

	if withExtras {
		row.Extras = make(map[string]any, len(extraCols))
		for _, i := range extraCols {
			var v any
			if err := json.Unmarshal(values[i], &v); err != nil {
				return row, errors.Wrapf(err, "failed to decode column %q", cols[i].Name)
			}
			row.Extras[cols[i].Name] = v
		}
	}

	return row, nil
}

// insertPath places a raw value into a nested object graph following the
// dotted column path, creating intermediate objects level by level.
func insertPath(doc map[string]any, path string, value json.RawMessage) {
	parts := strings.Split(path, ".")
	m := doc
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = value
}
