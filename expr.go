package esql

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Expr is a renderable fragment of ES|QL text: a field reference, a literal,
// a function call, an operator application or raw text. Expressions are
// immutable values; rendering is pure and deterministic.
type Expr interface {
	// String renders the fragment as canonical ES|QL text.
	String() string

	precedence() int
}

// Operator precedence levels, loosest first. Used to decide where
// parentheses are required when rendering nested operator expressions.
const (
	precOr = iota + 1
	precAnd
	precNot
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precAtom
)

// atom is embedded by leaf expressions that never need parenthesization.
type atom struct{}

func (atom) precedence() int { return precAtom }

type fieldExpr struct {
	atom
	path string
}

func (f fieldExpr) String() string { return f.path }

// Field returns a reference to a field by its dotted path, e.g.
// "address.city". Field references render verbatim; path existence is
// checked only when the expression is used in a schema-bound pipeline.
func Field(path string) Expr {
	return fieldExpr{path: path}
}

type literalExpr struct {
	atom
	value any
}

func (l literalExpr) String() string {
	b, err := json.Marshal(l.value)
	if err != nil {
		// Non-encodable values cannot come from the public constructors;
		// render best-effort instead of failing mid-query.
		return fmt.Sprintf("%v", l.value)
	}
	return string(b)
}

// Literal returns a literal value expression. Strings, slices and maps are
// rendered with JSON encoding (so embedded quotes and backslashes are
// escaped), numbers and booleans in their native lexical form, nil as null.
func Literal(value any) Expr {
	return literalExpr{value: value}
}

type rawExpr struct {
	atom
	text string
}

func (r rawExpr) String() string { return r.text }

// Raw returns an expression rendering the given text unchanged. It is the
// escape hatch for syntax the builder does not model; the text is not
// validated.
func Raw(text string) Expr {
	return rawExpr{text: text}
}

type paramExpr struct {
	atom
}

func (paramExpr) String() string { return "?" }

// Param returns a positional parameter marker, rendered as a bare "?".
// The corresponding value is supplied out-of-band at execution time and is
// never interpolated into the query text.
func Param() Expr {
	return paramExpr{}
}

type callExpr struct {
	atom
	name string
	args []Expr
}

func (c callExpr) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('(')
	for i, a := range c.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Call returns a function call expression NAME(arg1, arg2, ...). Arguments
// that are not already an Expr are wrapped as literals.
func Call(name string, args ...any) Expr {
	return callExpr{name: name, args: toExprs(args)}
}

type aliasExpr struct {
	atom
	name string
	expr Expr
}

func (a aliasExpr) String() string {
	return a.name + " = " + a.expr.String()
}

// As binds an alias name to an expression, rendered as "name = expr".
// EVAL and STATS stages take aliased expressions to name their output
// columns.
func As(name string, expr any) Expr {
	return aliasExpr{name: name, expr: toExpr(expr)}
}

type binaryExpr struct {
	op string
	// prec is the operator's precedence; assoc marks operators whose
	// grouping never changes the result (AND, OR), so a right-nested
	// operand at equal precedence may render bare.
	prec  int
	assoc bool
	lhs   Expr
	rhs   Expr
}

func (b binaryExpr) precedence() int { return b.prec }

func (b binaryExpr) String() string {
	right := b.prec
	if !b.assoc {
		// The server parses equal-precedence chains left-associatively,
		// so a right-nested operand at equal precedence keeps its
		// grouping only when parenthesized: a - (b - c) must not render
		// as a - b - c.
		right = b.prec + 1
	}
	return operand(b.lhs, b.prec) + " " + b.op + " " + operand(b.rhs, right)
}

type unaryExpr struct {
	op      string
	prec    int
	spaced  bool
	operand Expr
}

func (u unaryExpr) precedence() int { return u.prec }

func (u unaryExpr) String() string {
	sep := ""
	if u.spaced {
		sep = " "
	}
	return u.op + sep + operand(u.operand, u.prec)
}

type suffixExpr struct {
	atom
	expr   Expr
	suffix string
}

func (s suffixExpr) String() string {
	return s.expr.String() + " " + s.suffix
}

// operand renders e, parenthesized when its precedence binds looser than
// the surrounding operator.
func operand(e Expr, parent int) string {
	if e.precedence() < parent {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func toExpr(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return literalExpr{value: v}
}

func toExprs(vs []any) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = toExpr(v)
	}
	return out
}

func binary(op string, prec int, lhs, rhs any) Expr {
	return binaryExpr{op: op, prec: prec, lhs: toExpr(lhs), rhs: toExpr(rhs)}
}

// assocBinary is binary for operators where grouping cannot change the
// result. Only AND and OR qualify; arithmetic stays strict so integer
// division and float rounding keep the tree's grouping.
func assocBinary(op string, prec int, lhs, rhs any) Expr {
	return binaryExpr{op: op, prec: prec, assoc: true, lhs: toExpr(lhs), rhs: toExpr(rhs)}
}

// Eq renders "lhs == rhs".
func Eq(lhs, rhs any) Expr { return binary("==", precComparison, lhs, rhs) }

// Neq renders "lhs != rhs".
func Neq(lhs, rhs any) Expr { return binary("!=", precComparison, lhs, rhs) }

// Lt renders "lhs < rhs".
func Lt(lhs, rhs any) Expr { return binary("<", precComparison, lhs, rhs) }

// Lte renders "lhs <= rhs".
func Lte(lhs, rhs any) Expr { return binary("<=", precComparison, lhs, rhs) }

// Gt renders "lhs > rhs".
func Gt(lhs, rhs any) Expr { return binary(">", precComparison, lhs, rhs) }

// Gte renders "lhs >= rhs".
func Gte(lhs, rhs any) Expr { return binary(">=", precComparison, lhs, rhs) }

// Add renders "lhs + rhs".
func Add(lhs, rhs any) Expr { return binary("+", precAdditive, lhs, rhs) }

// Sub renders "lhs - rhs".
func Sub(lhs, rhs any) Expr { return binary("-", precAdditive, lhs, rhs) }

// Mul renders "lhs * rhs".
func Mul(lhs, rhs any) Expr { return binary("*", precMultiplicative, lhs, rhs) }

// Div renders "lhs / rhs".
func Div(lhs, rhs any) Expr { return binary("/", precMultiplicative, lhs, rhs) }

// Mod renders "lhs % rhs".
func Mod(lhs, rhs any) Expr { return binary("%", precMultiplicative, lhs, rhs) }

// And renders "lhs AND rhs", parenthesizing OR operands.
func And(lhs, rhs any) Expr { return assocBinary("AND", precAnd, lhs, rhs) }

// Or renders "lhs OR rhs".
func Or(lhs, rhs any) Expr { return assocBinary("OR", precOr, lhs, rhs) }

// Like renders a wildcard string match "lhs LIKE rhs".
func Like(lhs any, pattern string) Expr {
	return binary("LIKE", precComparison, lhs, pattern)
}

// RLike renders a regular-expression match "lhs RLIKE rhs".
func RLike(lhs any, pattern string) Expr {
	return binary("RLIKE", precComparison, lhs, pattern)
}

// In renders "lhs IN (v1, v2, ...)".
func In(lhs any, values ...any) Expr {
	items := toExprs(values)
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return binary("IN", precComparison, lhs, Raw("("+strings.Join(parts, ", ")+")"))
}

// Not renders "NOT expr". NOT binds looser than comparisons, so comparison
// operands render without parentheses.
func Not(expr any) Expr {
	return unaryExpr{op: "NOT", prec: precNot, spaced: true, operand: toExpr(expr)}
}

// Neg renders the arithmetic negation "-expr".
func Neg(expr any) Expr {
	return unaryExpr{op: "-", prec: precUnary, operand: toExpr(expr)}
}

// IsNull renders "expr IS NULL".
func IsNull(expr any) Expr {
	return suffixExpr{expr: toExpr(expr), suffix: "IS NULL"}
}

// IsNotNull renders "expr IS NOT NULL".
func IsNotNull(expr any) Expr {
	return suffixExpr{expr: toExpr(expr), suffix: "IS NOT NULL"}
}

// OrderExpr is a sort key with direction and null-placement modifiers,
// accepted by the SORT stage.
type OrderExpr struct {
	atom
	expr  Expr
	dir   string
	nulls string
}

func (o OrderExpr) String() string {
	s := o.expr.String()
	if o.dir != "" {
		s += " " + o.dir
	}
	if o.nulls != "" {
		s += " " + o.nulls
	}
	return s
}

// NullsFirst places null values before all others in the sort order.
func (o OrderExpr) NullsFirst() OrderExpr {
	o.nulls = "NULLS FIRST"
	return o
}

// NullsLast places null values after all others in the sort order.
func (o OrderExpr) NullsLast() OrderExpr {
	o.nulls = "NULLS LAST"
	return o
}

// Asc marks a sort key as ascending, rendered as "expr ASC".
func Asc(expr any) OrderExpr {
	return OrderExpr{expr: toExpr(expr), dir: "ASC"}
}

// Desc marks a sort key as descending, rendered as "expr DESC".
func Desc(expr any) OrderExpr {
	return OrderExpr{expr: toExpr(expr), dir: "DESC"}
}
