package esql

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type stageKind int

const (
	stageFrom stageKind = iota
	stageRow
	stageWhere
	stageEval
	stageStats
	stageSort
	stageLimit
	stageKeep
	stageDrop
	stageRename
	stageMvExpand
	stageDissect
	stageGrok
	stageEnrich
	stageSample
)

type stage struct {
	kind stageKind
	text string
	// by marks a STATS stage that already carries a BY clause.
	by bool
}

// Pipeline is an ordered, immutable sequence of ES|QL stages rooted at a
// source stage. Every builder method returns a new Pipeline with one stage
// appended; the receiver is never modified, so divergent pipelines can be
// built from a shared prefix without coordination.
//
// Usage errors (a stage before a source, a field reference unknown to the
// bound schema) are recorded at the offending call and reported by Render
// and Execute; once a pipeline carries an error, later calls are no-ops.
type Pipeline struct {
	schema *Schema
	stages []stage
	// derived tracks column names introduced by EVAL, STATS and RENAME so
	// later stages may reference them even when a schema is bound.
	derived map[string]bool
	// open disables unknown-field checks after a stage that introduces
	// columns the builder cannot enumerate (DISSECT, GROK, ENRICH).
	open bool
	err  error
}

// From starts a pipeline reading from an index, data stream or alias.
func From(source string) *Pipeline {
	p := &Pipeline{}
	if source == "" {
		p.err = errors.New("esql: FROM source is empty")
		return p
	}
	p.stages = []stage{{kind: stageFrom, text: "FROM " + source}}
	return p
}

// FromSchema starts a pipeline reading from the schema's index and binds
// the schema, so field references in later stages are validated at build
// time and results can be materialized into typed documents.
func FromSchema(s *Schema) *Pipeline {
	if s == nil {
		return &Pipeline{err: errors.New("esql: FromSchema called with nil schema")}
	}
	p := From(s.index)
	p.schema = s
	return p
}

// Row starts a source-less pipeline producing a single row from aliased
// literal expressions, e.g. Row(As("a", 1), As("b", "two")).
func Row(assignments ...Expr) *Pipeline {
	p := &Pipeline{}
	if len(assignments) == 0 {
		p.err = errors.New("esql: ROW requires at least one assignment")
		return p
	}
	parts := make([]string, len(assignments))
	for i, a := range assignments {
		parts[i] = a.String()
	}
	p.stages = []stage{{kind: stageRow, text: "ROW " + strings.Join(parts, ", ")}}
	for _, a := range assignments {
		if al, ok := a.(aliasExpr); ok {
			p.derived = setDerived(p.derived, al.name)
		}
	}
	return p
}

// Schema returns the schema bound by FromSchema, or nil.
func (p *Pipeline) Schema() *Schema { return p.schema }

// Err returns the first usage error recorded while building, if any.
func (p *Pipeline) Err() error { return p.err }

// Render concatenates all stages into the final query text, joined by the
// pipe stage separator. Rendering is pure: the same pipeline always
// renders to identical text.
func (p *Pipeline) Render() (string, error) {
	if p == nil {
		return "", errors.New("esql: nil pipeline")
	}
	if p.err != nil {
		return "", p.err
	}
	if len(p.stages) == 0 {
		return "", errors.New("esql: pipeline has no source stage")
	}

	parts := make([]string, len(p.stages))
	for i, s := range p.stages {
		parts[i] = s.text
	}
	return strings.Join(parts, "\n| "), nil
}

// Execute renders the pipeline and runs it on the client. Positional
// values for ? markers are passed out-of-band, never interpolated.
func (p *Pipeline) Execute(ctx context.Context, c *Client, params ...any) (*ResultSet, error) {
	query, err := p.Render()
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, &QueryRequest{Query: query, Params: params})
}

// Where appends a filter stage keeping rows for which the condition is
// true.
func (p *Pipeline) Where(condition Expr) *Pipeline {
	return p.appendExprStage(stageWhere, "WHERE", []Expr{condition}, nil)
}

// Eval appends a stage computing new columns from aliased expressions.
func (p *Pipeline) Eval(assignments ...Expr) *Pipeline {
	if len(assignments) == 0 {
		return p.fail(errors.New("esql: EVAL requires at least one expression"))
	}
	return p.appendExprStage(stageEval, "EVAL", assignments, aliasNames(assignments))
}

// Stats appends an aggregation stage. Grouping columns are attached with
// By on the returned pipeline.
func (p *Pipeline) Stats(aggregations ...Expr) *Pipeline {
	if len(aggregations) == 0 {
		return p.fail(errors.New("esql: STATS requires at least one aggregation"))
	}
	return p.appendExprStage(stageStats, "STATS", aggregations, aliasNames(aggregations))
}

// By attaches grouping expressions to the immediately preceding STATS
// stage.
func (p *Pipeline) By(groupings ...any) *Pipeline {
	if p == nil || p.err != nil {
		return p
	}
	last := len(p.stages) - 1
	if last < 0 || p.stages[last].kind != stageStats {
		return p.fail(errors.New("esql: BY must follow STATS"))
	}
	if p.stages[last].by {
		return p.fail(errors.New("esql: STATS already has a BY clause"))
	}
	if len(groupings) == 0 {
		return p.fail(errors.New("esql: BY requires at least one grouping"))
	}

	exprs := fieldsOrExprs(groupings)
	if err := p.check(exprs); err != nil {
		return p.fail(err)
	}

	np := p.clone()
	np.stages[last].text += " BY " + joinExprs(exprs)
	np.stages[last].by = true
	for _, name := range aliasNames(exprs) {
		np.derived = setDerived(np.derived, name)
	}
	return np
}

// Sort appends a sort stage. Keys may be field path strings, expressions,
// or Asc/Desc ordered keys.
func (p *Pipeline) Sort(keys ...any) *Pipeline {
	if len(keys) == 0 {
		return p.fail(errors.New("esql: SORT requires at least one key"))
	}
	return p.appendExprStage(stageSort, "SORT", fieldsOrExprs(keys), nil)
}

// Limit appends a stage capping the number of returned rows.
func (p *Pipeline) Limit(n int) *Pipeline {
	if n < 0 {
		return p.fail(errors.Errorf("esql: LIMIT must not be negative, got %d", n))
	}
	return p.appendText(stageLimit, "LIMIT "+strconv.Itoa(n))
}

// Keep appends a projection stage keeping only the named columns, in the
// given order. Fields may be path strings or field references.
func (p *Pipeline) Keep(fields ...any) *Pipeline {
	if len(fields) == 0 {
		return p.fail(errors.New("esql: KEEP requires at least one field"))
	}
	return p.appendExprStage(stageKeep, "KEEP", fieldsOrExprs(fields), nil)
}

// Drop appends a projection stage removing the named columns.
func (p *Pipeline) Drop(fields ...any) *Pipeline {
	if len(fields) == 0 {
		return p.fail(errors.New("esql: DROP requires at least one field"))
	}
	return p.appendExprStage(stageDrop, "DROP", fieldsOrExprs(fields), nil)
}

// Rename appends a stage renaming a column, rendered as "RENAME old AS
// new".
func (p *Pipeline) Rename(oldName, newName string) *Pipeline {
	if p == nil || p.err != nil {
		return p
	}
	if oldName == "" || newName == "" {
		return p.fail(errors.New("esql: RENAME requires non-empty field names"))
	}
	if err := p.check([]Expr{Field(oldName)}); err != nil {
		return p.fail(err)
	}
	np := p.append(stage{kind: stageRename, text: "RENAME " + oldName + " AS " + newName})
	np.derived = setDerived(np.derived, newName)
	return np
}

// MvExpand appends a stage expanding a multivalued column into one row per
// value.
func (p *Pipeline) MvExpand(field any) *Pipeline {
	return p.appendExprStage(stageMvExpand, "MV_EXPAND", fieldsOrExprs([]any{field}), nil)
}

// Dissect appends a stage extracting columns from a string column using a
// dissect pattern. Columns named by the pattern are not known to the
// builder, so unknown-field checks are disabled downstream.
func (p *Pipeline) Dissect(input any, pattern string) *Pipeline {
	return p.appendPatternStage(stageDissect, "DISSECT", input, pattern)
}

// Grok appends a stage extracting columns from a string column using a
// grok pattern. Columns named by the pattern are not known to the builder,
// so unknown-field checks are disabled downstream.
func (p *Pipeline) Grok(input any, pattern string) *Pipeline {
	return p.appendPatternStage(stageGrok, "GROK", input, pattern)
}

// Enrich appends a stage adding columns from an enrich policy. Enriched
// column names are not known to the builder, so unknown-field checks are
// disabled downstream.
func (p *Pipeline) Enrich(policy string) *Pipeline {
	if p == nil || p.err != nil {
		return p
	}
	if policy == "" {
		return p.fail(errors.New("esql: ENRICH requires a policy name"))
	}
	np := p.append(stage{kind: stageEnrich, text: "ENRICH " + policy})
	np.open = true
	return np
}

// Sample appends a stage keeping each row with the given probability.
func (p *Pipeline) Sample(probability float64) *Pipeline {
	if probability <= 0 || probability >= 1 {
		return p.fail(errors.Errorf("esql: SAMPLE probability must be in (0, 1), got %v", probability))
	}
	return p.appendText(stageSample, "SAMPLE "+Literal(probability).String())
}

// clone copies the pipeline head; the stage slice is copied so appends
// never alias a shared prefix.
func (p *Pipeline) clone() *Pipeline {
	np := &Pipeline{
		schema:  p.schema,
		stages:  make([]stage, len(p.stages)),
		derived: p.derived,
		open:    p.open,
		err:     p.err,
	}
	copy(np.stages, p.stages)
	return np
}

func (p *Pipeline) append(s stage) *Pipeline {
	np := p.clone()
	np.stages = append(np.stages, s)
	return np
}

// fail records a usage error. The first error wins; later calls on a
// failed pipeline are no-ops.
func (p *Pipeline) fail(err error) *Pipeline {
	if p == nil {
		return &Pipeline{err: err}
	}
	if p.err != nil {
		return p
	}
	np := p.clone()
	np.err = err
	return np
}

func (p *Pipeline) appendText(kind stageKind, text string) *Pipeline {
	if p == nil || p.err != nil {
		return p
	}
	if len(p.stages) == 0 {
		keyword, _, _ := strings.Cut(text, " ")
		return p.fail(ErrStageBeforeSource(keyword))
	}
	return p.append(stage{kind: kind, text: text})
}

func (p *Pipeline) appendExprStage(kind stageKind, keyword string, exprs []Expr, derived []string) *Pipeline {
	if p == nil || p.err != nil {
		return p
	}
	if len(p.stages) == 0 {
		return p.fail(ErrStageBeforeSource(keyword))
	}
	if err := p.check(exprs); err != nil {
		return p.fail(err)
	}

	np := p.append(stage{kind: kind, text: keyword + " " + joinExprs(exprs)})
	for _, name := range derived {
		np.derived = setDerived(np.derived, name)
	}
	return np
}

func (p *Pipeline) appendPatternStage(kind stageKind, keyword string, input any, pattern string) *Pipeline {
	if p == nil || p.err != nil {
		return p
	}
	if pattern == "" {
		return p.fail(errors.Errorf("esql: %s requires a pattern", keyword))
	}
	inputs := fieldsOrExprs([]any{input})
	np := p.appendExprStage(kind, keyword, inputs, nil)
	if np.err != nil {
		return np
	}
	np.stages[len(np.stages)-1].text += " " + Literal(pattern).String()
	np.open = true
	return np
}

// check validates the field references of stage expressions: paths must be
// non-empty, and when a schema is bound they must name a schema field or a
// column derived by an earlier stage.
func (p *Pipeline) check(exprs []Expr) error {
	for _, e := range exprs {
		if e == nil {
			return errors.New("esql: nil expression")
		}
		for _, path := range fieldPaths(e) {
			if path == "" {
				return errors.New("esql: empty field path")
			}
			if p.schema == nil || p.open {
				continue
			}
			if !p.schema.Has(path) && !p.derived[path] {
				return ErrUnknownField(path, p.schema.index)
			}
		}
	}
	return nil
}

// fieldPaths collects the field references of an expression tree.
func fieldPaths(e Expr) []string {
	switch v := e.(type) {
	case fieldExpr:
		return []string{v.path}
	case callExpr:
		var out []string
		for _, a := range v.args {
			out = append(out, fieldPaths(a)...)
		}
		return out
	case aliasExpr:
		return fieldPaths(v.expr)
	case binaryExpr:
		return append(fieldPaths(v.lhs), fieldPaths(v.rhs)...)
	case unaryExpr:
		return fieldPaths(v.operand)
	case suffixExpr:
		return fieldPaths(v.expr)
	case OrderExpr:
		return fieldPaths(v.expr)
	default:
		return nil
	}
}

// fieldsOrExprs converts stage arguments: strings become field references,
// expressions pass through, anything else becomes a literal.
func fieldsOrExprs(args []any) []Expr {
	out := make([]Expr, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			out[i] = Field(v)
		default:
			out[i] = toExpr(v)
		}
	}
	return out
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func aliasNames(exprs []Expr) []string {
	var out []string
	for _, e := range exprs {
		if al, ok := e.(aliasExpr); ok {
			out = append(out, al.name)
		}
	}
	return out
}

func setDerived(m map[string]bool, name string) map[string]bool {
	nm := make(map[string]bool, len(m)+1)
	for k, v := range m {
		nm[k] = v
	}
	nm[name] = true
	return nm
}
