package esql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionRendering(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		// Math
		{name: "abs", expr: Abs(Field("delta")), expected: "ABS(delta)"},
		{name: "atan2", expr: Atan2(Field("y"), Field("x")), expected: "ATAN2(y, x)"},
		{name: "ceil", expr: Ceil(1.2), expected: "CEIL(1.2)"},
		{name: "e", expr: E(), expected: "E()"},
		{name: "log natural", expr: Log(Field("v")), expected: "LOG(v)"},
		{name: "log with base", expr: Log(2, Field("v")), expected: "LOG(2, v)"},
		{name: "pi", expr: Pi(), expected: "PI()"},
		{name: "pow", expr: Pow(Field("base"), 3), expected: "POW(base, 3)"},
		{name: "tau", expr: Tau(), expected: "TAU()"},

		// String
		{name: "concat", expr: Concat(Field("a"), " ", Field("b")), expected: `CONCAT(a, " ", b)`},
		{name: "ends with", expr: EndsWith(Field("name"), "ez"), expected: `ENDS_WITH(name, "ez")`},
		{name: "left", expr: Left(Field("name"), 3), expected: "LEFT(name, 3)"},
		{name: "length", expr: Length(Field("name")), expected: "LENGTH(name)"},
		{name: "replace", expr: Replace(Field("s"), "a+", "b"), expected: `REPLACE(s, "a+", "b")`},
		{name: "split", expr: Split(Field("csv"), ","), expected: `SPLIT(csv, ",")`},
		{name: "to upper", expr: ToUpper(Field("name")), expected: "TO_UPPER(name)"},

		// Date
		{name: "date diff", expr: DateDiff("year", Field("hired"), Now()), expected: `DATE_DIFF("year", hired, NOW())`},
		{name: "date trunc", expr: DateTrunc(Raw("1 month"), Field("ts")), expected: "DATE_TRUNC(1 month, ts)"},
		{name: "now", expr: Now(), expected: "NOW()"},

		// Conditional
		{
			name:     "case",
			expr:     Case(Gt(Field("salary"), 100000), "high", "low"),
			expected: `CASE(salary > 100000, "high", "low")`,
		},
		{name: "coalesce", expr: Coalesce(Field("nick"), Field("name"), "unknown"), expected: `COALESCE(nick, name, "unknown")`},
		{name: "greatest", expr: Greatest(Field("a"), Field("b"), Field("c")), expected: "GREATEST(a, b, c)"},

		// IP
		{name: "cidr match", expr: CidrMatch(Field("ip"), "10.0.0.0/8", "192.168.0.0/16"), expected: `CIDR_MATCH(ip, "10.0.0.0/8", "192.168.0.0/16")`},

		// Conversion
		{name: "to integer", expr: ToInteger(Field("raw")), expected: "TO_INTEGER(raw)"},
		{name: "to string", expr: ToString(Field("v")), expected: "TO_STRING(v)"},

		// Multivalue
		{name: "mv append", expr: MvAppend(Field("a"), Field("b")), expected: "MV_APPEND(a, b)"},
		{name: "mv concat", expr: MvConcat(Field("tags"), ", "), expected: `MV_CONCAT(tags, ", ")`},
		{name: "mv zip without delim", expr: MvZip(Field("a"), Field("b")), expected: "MV_ZIP(a, b)"},
		{name: "mv zip with delim", expr: MvZip(Field("a"), Field("b"), "-"), expected: `MV_ZIP(a, b, "-")`},

		// Spatial
		{name: "st distance", expr: StDistance(Field("loc"), ToGeoPoint("POINT(1 2)")), expected: `ST_DISTANCE(loc, TO_GEOPOINT("POINT(1 2)"))`},
		{name: "st x", expr: StX(Field("loc")), expected: "ST_X(loc)"},

		// Aggregations
		{name: "avg", expr: Avg(Field("salary")), expected: "AVG(salary)"},
		{name: "count star", expr: Count(), expected: "COUNT(*)"},
		{name: "count field", expr: Count(Field("emp_no")), expected: "COUNT(emp_no)"},
		{name: "percentile", expr: Percentile(Field("salary"), 95), expected: "PERCENTILE(salary, 95)"},
		{name: "top", expr: Top(Field("salary"), 3, "desc"), expected: `TOP(salary, 3, "desc")`},
		{name: "weighted avg", expr: WeightedAvg(Field("salary"), Field("weight")), expected: "WEIGHTED_AVG(salary, weight)"},

		// Search
		{name: "kql", expr: Kql("first_name: Maria"), expected: `KQL("first_name: Maria")`},
		{name: "term", expr: Term(Field("tag"), "go"), expected: `TERM(tag, "go")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestOptionalArgumentOmission(t *testing.T) {
	tests := []struct {
		name    string
		without Expr
		with    Expr
		expWo   string
		expWith string
	}{
		{
			name:    "round",
			without: Round(Field("v")),
			with:    Round(Field("v"), 2),
			expWo:   "ROUND(v)",
			expWith: "ROUND(v, 2)",
		},
		{
			name:    "substring",
			without: Substring(Field("s"), 1),
			with:    Substring(Field("s"), 1, 3),
			expWo:   "SUBSTRING(s, 1)",
			expWith: "SUBSTRING(s, 1, 3)",
		},
		{
			name:    "count distinct",
			without: CountDistinct(Field("v")),
			with:    CountDistinct(Field("v"), 3000),
			expWo:   "COUNT_DISTINCT(v)",
			expWith: "COUNT_DISTINCT(v, 3000)",
		},
		{
			name:    "match options",
			without: Match(Field("name"), "maria"),
			with:    Match(Field("name"), "maria", map[string]any{"fuzziness": "AUTO"}),
			expWo:   `MATCH(name, "maria")`,
			expWith: `MATCH(name, "maria", {"fuzziness":"AUTO"})`,
		},
		{
			name:    "qstr options",
			without: Qstr("name: maria"),
			with:    Qstr("name: maria", map[string]any{"default_field": "name"}),
			expWo:   `QSTR("name: maria")`,
			expWith: `QSTR("name: maria", {"default_field":"name"})`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expWo, tt.without.String())
			assert.Equal(t, tt.expWith, tt.with.String())
		})
	}
}

func TestOptionalArgumentsAllRender(t *testing.T) {
	// Nothing a caller supplies is silently dropped: surplus trailing
	// values render in order and the server reports the arity error.
	assert.Equal(t, "ROUND(v, 2, 99)", Round(Field("v"), 2, 99).String())
	assert.Equal(t, `MV_ZIP(a, b, "-", "extra")`, MvZip(Field("a"), Field("b"), "-", "extra").String())
	assert.Equal(t, "COUNT(a, b)", Count(Field("a"), Field("b")).String())
}

func TestOptionalExplicitNullIsNotOmission(t *testing.T) {
	// Omitting the optional argument and passing an explicit null are
	// different queries.
	assert.Equal(t, "MV_SORT(tags)", MvSort(Field("tags")).String())
	assert.Equal(t, "MV_SORT(tags, null)", MvSort(Field("tags"), nil).String())
}
