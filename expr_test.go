package esql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralRendering(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "string", value: "Maria", expected: `"Maria"`},
		{name: "string with quote and backslash", value: `a "b" \c`, expected: `"a \"b\" \\c"`},
		{name: "int", value: 42, expected: "42"},
		{name: "float", value: 2.5, expected: "2.5"},
		{name: "negative", value: -7, expected: "-7"},
		{name: "bool true", value: true, expected: "true"},
		{name: "bool false", value: false, expected: "false"},
		{name: "null", value: nil, expected: "null"},
		{name: "slice", value: []int{1, 2, 3}, expected: "[1,2,3]"},
		{name: "map renders sorted keys", value: map[string]any{"b": 1, "a": 2}, expected: `{"a":2,"b":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Literal(tt.value).String())
		})
	}
}

func TestLiteralStringRoundTrip(t *testing.T) {
	original := `quote " backslash \ tab	end`

	rendered := Literal(original).String()

	// Decoding the rendered literal by the query language's own string
	// grammar (JSON string syntax) must reproduce the original value.
	var decoded string
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	assert.Equal(t, original, decoded)
}

func TestFieldRendersVerbatim(t *testing.T) {
	assert.Equal(t, "address.city", Field("address.city").String())
	assert.Equal(t, "emp_no", Field("emp_no").String())
}

func TestCallRendering(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{
			name:     "no args",
			expr:     Call("NOW"),
			expected: "NOW()",
		},
		{
			name:     "field and literal args",
			expr:     Call("CONCAT", Field("first_name"), " "),
			expected: `CONCAT(first_name, " ")`,
		},
		{
			name:     "nested calls",
			expr:     Call("ROUND", Call("AVG", Field("salary")), 2),
			expected: "ROUND(AVG(salary), 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestAliasRendering(t *testing.T) {
	expr := As("full_name", Concat(Field("first_name"), " ", Field("last_name")))
	assert.Equal(t, `full_name = CONCAT(first_name, " ", last_name)`, expr.String())
}

func TestRawRendersUnchanged(t *testing.T) {
	assert.Equal(t, "salary % 7 == 0", Raw("salary % 7 == 0").String())
}

func TestParamRendersMarker(t *testing.T) {
	assert.Equal(t, "?", Param().String())
	assert.Equal(t, "first_name == ?", Eq(Field("first_name"), Param()).String())
}

func TestOperatorRendering(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{name: "eq", expr: Eq(Field("a"), 1), expected: "a == 1"},
		{name: "neq", expr: Neq(Field("a"), 1), expected: "a != 1"},
		{name: "lt", expr: Lt(Field("a"), 1), expected: "a < 1"},
		{name: "lte", expr: Lte(Field("a"), 1), expected: "a <= 1"},
		{name: "gt", expr: Gt(Field("a"), 1), expected: "a > 1"},
		{name: "gte", expr: Gte(Field("a"), 1), expected: "a >= 1"},
		{name: "add", expr: Add(Field("a"), Field("b")), expected: "a + b"},
		{name: "mod", expr: Mod(Field("a"), 7), expected: "a % 7"},
		{name: "and", expr: And(Eq(Field("a"), 1), Eq(Field("b"), 2)), expected: "a == 1 AND b == 2"},
		{name: "or", expr: Or(Eq(Field("a"), 1), Eq(Field("b"), 2)), expected: "a == 1 OR b == 2"},
		{name: "not", expr: Not(Eq(Field("a"), 1)), expected: "NOT a == 1"},
		{name: "neg field", expr: Neg(Field("a")), expected: "-a"},
		{name: "like", expr: Like(Field("name"), "M*"), expected: `name LIKE "M*"`},
		{name: "rlike", expr: RLike(Field("name"), "M.+"), expected: `name RLIKE "M.+"`},
		{name: "in", expr: In(Field("code"), 1, 2, 3), expected: "code IN (1, 2, 3)"},
		{name: "is null", expr: IsNull(Field("a")), expected: "a IS NULL"},
		{name: "is not null", expr: IsNotNull(Field("a")), expected: "a IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestOperatorPrecedenceParenthesization(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{
			name:     "or inside and is parenthesized",
			expr:     And(Or(Eq(Field("a"), 1), Eq(Field("b"), 2)), Eq(Field("c"), 3)),
			expected: "(a == 1 OR b == 2) AND c == 3",
		},
		{
			name:     "and inside or needs no parens",
			expr:     Or(And(Eq(Field("a"), 1), Eq(Field("b"), 2)), Eq(Field("c"), 3)),
			expected: "a == 1 AND b == 2 OR c == 3",
		},
		{
			name:     "additive inside multiplicative is parenthesized",
			expr:     Mul(Add(Field("a"), 1), 2),
			expected: "(a + 1) * 2",
		},
		{
			name:     "multiplicative inside additive needs no parens",
			expr:     Add(Mul(Field("a"), 2), 1),
			expected: "a * 2 + 1",
		},
		{
			name:     "comparison of arithmetic needs no parens",
			expr:     Gt(Add(Field("a"), Field("b")), 10),
			expected: "a + b > 10",
		},
		{
			name:     "negated comparison operand",
			expr:     Neg(Add(Field("a"), 1)),
			expected: "-(a + 1)",
		},
		{
			name:     "right-nested subtraction keeps grouping",
			expr:     Sub(Field("a"), Sub(Field("b"), Field("c"))),
			expected: "a - (b - c)",
		},
		{
			name:     "left-nested subtraction needs no parens",
			expr:     Sub(Sub(Field("a"), Field("b")), Field("c")),
			expected: "a - b - c",
		},
		{
			name:     "right-nested division keeps grouping",
			expr:     Div(Field("a"), Div(Field("b"), Field("c"))),
			expected: "a / (b / c)",
		},
		{
			name:     "addition on the right of subtraction keeps grouping",
			expr:     Sub(Field("a"), Add(Field("b"), Field("c"))),
			expected: "a - (b + c)",
		},
		{
			name:     "comparison on the right of comparison keeps grouping",
			expr:     Eq(Field("a"), Eq(Field("b"), Field("c"))),
			expected: "a == (b == c)",
		},
		{
			name:     "right-nested and stays flat",
			expr:     And(Eq(Field("a"), 1), And(Eq(Field("b"), 2), Eq(Field("c"), 3))),
			expected: "a == 1 AND b == 2 AND c == 3",
		},
		{
			name:     "not over or",
			expr:     Not(Or(Eq(Field("a"), 1), Eq(Field("b"), 2))),
			expected: "NOT (a == 1 OR b == 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestSortDirectionRendering(t *testing.T) {
	assert.Equal(t, "last_name ASC", Asc(Field("last_name")).String())
	assert.Equal(t, "salary DESC", Desc(Field("salary")).String())
	assert.Equal(t, "salary DESC NULLS FIRST", Desc(Field("salary")).NullsFirst().String())
	assert.Equal(t, "hire_date ASC NULLS LAST", Asc(Field("hire_date")).NullsLast().String())
}

func TestRenderingIsDeterministic(t *testing.T) {
	build := func() Expr {
		return And(
			Eq(Field("first_name"), "Maria"),
			Gt(Round(Div(Field("salary"), 12), 2), 1000),
		)
	}

	first := build().String()
	for range 10 {
		assert.Equal(t, first, build().String())
	}
}
