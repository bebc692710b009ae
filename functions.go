package esql

// Function constructors for the ES|QL built-in function catalog. Each
// constructor is pure: it builds a call expression and performs no
// validation beyond arity; argument typing is checked by the server.
//
// Optional trailing arguments are Go variadics. An omitted optional is not
// rendered at all; passing an explicit nil renders a null argument. The two
// produce different queries. Every supplied value renders, in order; the
// server rejects calls with too many arguments the same way it rejects
// calls with too few.

func optional(args []any, opt []any) []any {
	return append(args, opt...)
}

// -- Mathematical functions --

// Abs returns the absolute value.
func Abs(number any) Expr { return Call("ABS", number) }

// Acos returns the arccosine, in radians.
func Acos(number any) Expr { return Call("ACOS", number) }

// Asin returns the arcsine, in radians.
func Asin(number any) Expr { return Call("ASIN", number) }

// Atan returns the arctangent, in radians.
func Atan(number any) Expr { return Call("ATAN", number) }

// Atan2 returns the angle of the point (x, y) from the positive x axis.
func Atan2(y, x any) Expr { return Call("ATAN2", y, x) }

// Cbrt returns the cube root.
func Cbrt(number any) Expr { return Call("CBRT", number) }

// Ceil rounds up to the nearest integer.
func Ceil(number any) Expr { return Call("CEIL", number) }

// Cos returns the cosine of an angle in radians.
func Cos(angle any) Expr { return Call("COS", angle) }

// Cosh returns the hyperbolic cosine.
func Cosh(number any) Expr { return Call("COSH", number) }

// E returns Euler's number.
func E() Expr { return Call("E") }

// Exp returns e raised to the given power.
func Exp(number any) Expr { return Call("EXP", number) }

// Floor rounds down to the nearest integer.
func Floor(number any) Expr { return Call("FLOOR", number) }

// Hypot returns the hypotenuse of two numbers.
func Hypot(number1, number2 any) Expr { return Call("HYPOT", number1, number2) }

// Log returns the logarithm of a value. With one argument it is the
// natural logarithm; with two, the first argument is the base.
func Log(args ...any) Expr { return Call("LOG", args...) }

// Log10 returns the base-10 logarithm.
func Log10(number any) Expr { return Call("LOG10", number) }

// Pi returns the ratio of a circle's circumference to its diameter.
func Pi() Expr { return Call("PI") }

// Pow returns base raised to exponent.
func Pow(base, exponent any) Expr { return Call("POW", base, exponent) }

// Round rounds to the given number of decimal places (default 0).
func Round(number any, decimals ...any) Expr {
	return Call("ROUND", optional([]any{number}, decimals)...)
}

// Signum returns the sign of a number as -1, 0 or 1.
func Signum(number any) Expr { return Call("SIGNUM", number) }

// Sin returns the sine of an angle in radians.
func Sin(angle any) Expr { return Call("SIN", angle) }

// Sinh returns the hyperbolic sine.
func Sinh(number any) Expr { return Call("SINH", number) }

// Sqrt returns the square root.
func Sqrt(number any) Expr { return Call("SQRT", number) }

// Tan returns the tangent of an angle in radians.
func Tan(angle any) Expr { return Call("TAN", angle) }

// Tanh returns the hyperbolic tangent.
func Tanh(number any) Expr { return Call("TANH", number) }

// Tau returns the ratio of a circle's circumference to its radius.
func Tau() Expr { return Call("TAU") }

// -- String functions --

// BitLength returns the bit length of a string.
func BitLength(str any) Expr { return Call("BIT_LENGTH", str) }

// ByteLength returns the byte length of a string.
func ByteLength(str any) Expr { return Call("BYTE_LENGTH", str) }

// Concat concatenates two or more strings.
func Concat(first any, rest ...any) Expr {
	return Call("CONCAT", append([]any{first}, rest...)...)
}

// EndsWith reports whether a string ends with a suffix.
func EndsWith(str, suffix any) Expr { return Call("ENDS_WITH", str, suffix) }

// FromBase64 decodes a base64 string.
func FromBase64(str any) Expr { return Call("FROM_BASE64", str) }

// Hash computes the hash of the input using the named algorithm.
func Hash(algorithm, input any) Expr { return Call("HASH", algorithm, input) }

// Left returns the leftmost length characters of a string.
func Left(str, length any) Expr { return Call("LEFT", str, length) }

// Length returns the character length of a string.
func Length(str any) Expr { return Call("LENGTH", str) }

// Locate returns the position of a substring, optionally starting the
// search at a given offset.
func Locate(str, substr any, start ...any) Expr {
	return Call("LOCATE", optional([]any{str, substr}, start)...)
}

// LTrim removes leading whitespace.
func LTrim(str any) Expr { return Call("LTRIM", str) }

// Md5 computes the MD5 hash of the input.
func Md5(input any) Expr { return Call("MD5", input) }

// Repeat concatenates a string with itself the given number of times.
func Repeat(str, number any) Expr { return Call("REPEAT", str, number) }

// Replace substitutes any match of a regular expression with a replacement.
func Replace(str, regex, newStr any) Expr { return Call("REPLACE", str, regex, newStr) }

// Reverse reverses a string.
func Reverse(str any) Expr { return Call("REVERSE", str) }

// Right returns the rightmost length characters of a string.
func Right(str, length any) Expr { return Call("RIGHT", str, length) }

// RTrim removes trailing whitespace.
func RTrim(str any) Expr { return Call("RTRIM", str) }

// Sha1 computes the SHA-1 hash of the input.
func Sha1(input any) Expr { return Call("SHA1", input) }

// Sha256 computes the SHA-256 hash of the input.
func Sha256(input any) Expr { return Call("SHA256", input) }

// Space returns a string of the given number of spaces.
func Space(number any) Expr { return Call("SPACE", number) }

// Split splits a single-valued string on a delimiter.
func Split(str, delim any) Expr { return Call("SPLIT", str, delim) }

// StartsWith reports whether a string starts with a prefix.
func StartsWith(str, prefix any) Expr { return Call("STARTS_WITH", str, prefix) }

// Substring extracts part of a string from start, optionally limited to
// length characters.
func Substring(str, start any, length ...any) Expr {
	return Call("SUBSTRING", optional([]any{str, start}, length)...)
}

// ToBase64 encodes a string to base64.
func ToBase64(str any) Expr { return Call("TO_BASE64", str) }

// ToLower lowercases a string.
func ToLower(str any) Expr { return Call("TO_LOWER", str) }

// ToUpper uppercases a string.
func ToUpper(str any) Expr { return Call("TO_UPPER", str) }

// Trim removes leading and trailing whitespace.
func Trim(str any) Expr { return Call("TRIM", str) }

// -- Date and time functions --

// DateDiff returns the difference between two timestamps in the given unit.
func DateDiff(unit, start, end any) Expr { return Call("DATE_DIFF", unit, start, end) }

// DateExtract extracts part of a date, such as "year" or "hour_of_day".
func DateExtract(part, date any) Expr { return Call("DATE_EXTRACT", part, date) }

// DateFormat formats a date. With one argument the default format is used;
// with two, the first argument is the format string.
func DateFormat(args ...any) Expr { return Call("DATE_FORMAT", args...) }

// DateParse parses a string into a date using the given format.
func DateParse(format, date any) Expr { return Call("DATE_PARSE", format, date) }

// DateTrunc rounds a date down to the closest interval.
func DateTrunc(interval, date any) Expr { return Call("DATE_TRUNC", interval, date) }

// Now returns the current date and time.
func Now() Expr { return Call("NOW") }

// -- Conditional functions --

// Case evaluates condition/value pairs in order and returns the value of
// the first matching condition, with an optional trailing default.
func Case(args ...any) Expr { return Call("CASE", args...) }

// Coalesce returns the first non-null argument.
func Coalesce(first any, rest ...any) Expr {
	return Call("COALESCE", append([]any{first}, rest...)...)
}

// Greatest returns the maximum of its arguments.
func Greatest(first any, rest ...any) Expr {
	return Call("GREATEST", append([]any{first}, rest...)...)
}

// Least returns the minimum of its arguments.
func Least(first any, rest ...any) Expr {
	return Call("LEAST", append([]any{first}, rest...)...)
}

// -- IP functions --

// CidrMatch reports whether an IP belongs to any of the given CIDR blocks.
func CidrMatch(ip any, blocks ...any) Expr {
	return Call("CIDR_MATCH", append([]any{ip}, blocks...)...)
}

// IpPrefix truncates an IP to a prefix length.
func IpPrefix(ip, prefixLengthV4, prefixLengthV6 any) Expr {
	return Call("IP_PREFIX", ip, prefixLengthV4, prefixLengthV6)
}

// -- Type conversion functions --

// ToBoolean converts to a boolean.
func ToBoolean(value any) Expr { return Call("TO_BOOLEAN", value) }

// ToCartesianPoint converts to a cartesian point.
func ToCartesianPoint(value any) Expr { return Call("TO_CARTESIANPOINT", value) }

// ToCartesianShape converts to a cartesian shape.
func ToCartesianShape(value any) Expr { return Call("TO_CARTESIANSHAPE", value) }

// ToDatetime converts to a millisecond-resolution date.
func ToDatetime(value any) Expr { return Call("TO_DATETIME", value) }

// ToDateNanos converts to a nanosecond-resolution date.
func ToDateNanos(value any) Expr { return Call("TO_DATE_NANOS", value) }

// ToDatePeriod converts to a date period.
func ToDatePeriod(value any) Expr { return Call("TO_DATEPERIOD", value) }

// ToDegrees converts radians to degrees.
func ToDegrees(number any) Expr { return Call("TO_DEGREES", number) }

// ToDouble converts to a double.
func ToDouble(value any) Expr { return Call("TO_DOUBLE", value) }

// ToGeoPoint converts to a geographic point.
func ToGeoPoint(value any) Expr { return Call("TO_GEOPOINT", value) }

// ToGeoShape converts to a geographic shape.
func ToGeoShape(value any) Expr { return Call("TO_GEOSHAPE", value) }

// ToInteger converts to an integer.
func ToInteger(value any) Expr { return Call("TO_INTEGER", value) }

// ToIP converts to an IP address.
func ToIP(value any) Expr { return Call("TO_IP", value) }

// ToLong converts to a long.
func ToLong(value any) Expr { return Call("TO_LONG", value) }

// ToRadians converts degrees to radians.
func ToRadians(number any) Expr { return Call("TO_RADIANS", number) }

// ToString converts to a string.
func ToString(value any) Expr { return Call("TO_STRING", value) }

// ToTimeDuration converts to a time duration.
func ToTimeDuration(value any) Expr { return Call("TO_TIMEDURATION", value) }

// ToUnsignedLong converts to an unsigned long.
func ToUnsignedLong(value any) Expr { return Call("TO_UNSIGNED_LONG", value) }

// ToVersion converts to a version value.
func ToVersion(value any) Expr { return Call("TO_VERSION", value) }

// -- Multivalue functions --

// MvAppend concatenates the values of two multivalued fields.
func MvAppend(field1, field2 any) Expr { return Call("MV_APPEND", field1, field2) }

// MvAvg averages a multivalued field into a single value.
func MvAvg(field any) Expr { return Call("MV_AVG", field) }

// MvConcat joins the values of a multivalued string field with a delimiter.
func MvConcat(field, delim any) Expr { return Call("MV_CONCAT", field, delim) }

// MvCount counts the values of a multivalued field.
func MvCount(field any) Expr { return Call("MV_COUNT", field) }

// MvDedupe removes duplicate values from a multivalued field.
func MvDedupe(field any) Expr { return Call("MV_DEDUPE", field) }

// MvFirst returns the first value of a multivalued field.
func MvFirst(field any) Expr { return Call("MV_FIRST", field) }

// MvLast returns the last value of a multivalued field.
func MvLast(field any) Expr { return Call("MV_LAST", field) }

// MvMax returns the maximum value of a multivalued field.
func MvMax(field any) Expr { return Call("MV_MAX", field) }

// MvMedian returns the median value of a multivalued field.
func MvMedian(field any) Expr { return Call("MV_MEDIAN", field) }

// MvMedianAbsoluteDeviation returns the median absolute deviation of a
// multivalued field.
func MvMedianAbsoluteDeviation(field any) Expr {
	return Call("MV_MEDIAN_ABSOLUTE_DEVIATION", field)
}

// MvMin returns the minimum value of a multivalued field.
func MvMin(field any) Expr { return Call("MV_MIN", field) }

// MvPercentile returns the value at the given percentile of a multivalued
// field.
func MvPercentile(field, percentile any) Expr {
	return Call("MV_PERCENTILE", field, percentile)
}

// MvPSeriesWeightedSum sums multivalued entries weighted by a p-series.
func MvPSeriesWeightedSum(field, p any) Expr {
	return Call("MV_PSERIES_WEIGHTED_SUM", field, p)
}

// MvSlice returns a subset of a multivalued field, optionally bounded by an
// end position.
func MvSlice(field, start any, end ...any) Expr {
	return Call("MV_SLICE", optional([]any{field, start}, end)...)
}

// MvSort sorts a multivalued field, optionally with an "ASC" or "DESC"
// order argument.
func MvSort(field any, order ...any) Expr {
	return Call("MV_SORT", optional([]any{field}, order)...)
}

// MvSum sums a multivalued field into a single value.
func MvSum(field any) Expr { return Call("MV_SUM", field) }

// MvZip combines two multivalued fields pairwise, optionally joined with a
// delimiter.
func MvZip(field1, field2 any, delim ...any) Expr {
	return Call("MV_ZIP", optional([]any{field1, field2}, delim)...)
}

// -- Spatial functions --

// StCentroidAgg computes the spatial centroid over a point field.
func StCentroidAgg(field any) Expr { return Call("ST_CENTROID_AGG", field) }

// StContains reports whether the first geometry contains the second.
func StContains(geomA, geomB any) Expr { return Call("ST_CONTAINS", geomA, geomB) }

// StDisjoint reports whether two geometries do not intersect.
func StDisjoint(geomA, geomB any) Expr { return Call("ST_DISJOINT", geomA, geomB) }

// StDistance returns the distance between two points.
func StDistance(geomA, geomB any) Expr { return Call("ST_DISTANCE", geomA, geomB) }

// StEnvelope returns the minimum bounding box of a geometry.
func StEnvelope(geometry any) Expr { return Call("ST_ENVELOPE", geometry) }

// StIntersects reports whether two geometries intersect.
func StIntersects(geomA, geomB any) Expr { return Call("ST_INTERSECTS", geomA, geomB) }

// StWithin reports whether the first geometry is within the second.
func StWithin(geomA, geomB any) Expr { return Call("ST_WITHIN", geomA, geomB) }

// StX extracts the x coordinate of a point.
func StX(point any) Expr { return Call("ST_X", point) }

// StXMax extracts the maximum x coordinate of a geometry.
func StXMax(geometry any) Expr { return Call("ST_XMAX", geometry) }

// StXMin extracts the minimum x coordinate of a geometry.
func StXMin(geometry any) Expr { return Call("ST_XMIN", geometry) }

// StY extracts the y coordinate of a point.
func StY(point any) Expr { return Call("ST_Y", point) }

// StYMax extracts the maximum y coordinate of a geometry.
func StYMax(geometry any) Expr { return Call("ST_YMAX", geometry) }

// StYMin extracts the minimum y coordinate of a geometry.
func StYMin(geometry any) Expr { return Call("ST_YMIN", geometry) }

// -- Aggregation functions --

// Avg returns the average of a numeric field.
func Avg(field any) Expr { return Call("AVG", field) }

// Bucket groups values into buckets of the given size or count; range
// bounds may be supplied as two optional trailing arguments.
func Bucket(field, buckets any, bounds ...any) Expr {
	return Call("BUCKET", append([]any{field, buckets}, bounds...)...)
}

// Count counts input values. Without an argument it renders COUNT(*).
func Count(field ...any) Expr {
	if len(field) == 0 {
		return Call("COUNT", Raw("*"))
	}
	return Call("COUNT", field...)
}

// CountDistinct counts distinct values, optionally with a precision
// threshold.
func CountDistinct(field any, precision ...any) Expr {
	return Call("COUNT_DISTINCT", optional([]any{field}, precision)...)
}

// Max returns the maximum value of a field.
func Max(field any) Expr { return Call("MAX", field) }

// Median returns the value that is greater than half of all values.
func Median(field any) Expr { return Call("MEDIAN", field) }

// MedianAbsoluteDeviation returns the median absolute deviation of a field.
func MedianAbsoluteDeviation(field any) Expr {
	return Call("MEDIAN_ABSOLUTE_DEVIATION", field)
}

// Min returns the minimum value of a field.
func Min(field any) Expr { return Call("MIN", field) }

// Percentile returns the value at which a given percentage of observed
// values occur.
func Percentile(field, percentile any) Expr {
	return Call("PERCENTILE", field, percentile)
}

// StdDev returns the standard deviation of a numeric field.
func StdDev(field any) Expr { return Call("STD_DEV", field) }

// Sum returns the sum of a numeric field.
func Sum(field any) Expr { return Call("SUM", field) }

// Top collects the top values of a field, ordered "asc" or "desc".
func Top(field, limit, order any) Expr { return Call("TOP", field, limit, order) }

// Values collects all values of a field into a multivalued result.
func Values(field any) Expr { return Call("VALUES", field) }

// WeightedAvg returns the weighted average of a numeric field.
func WeightedAvg(field, weight any) Expr { return Call("WEIGHTED_AVG", field, weight) }

// -- Search functions --

// Kql performs a KQL query over the row.
func Kql(query any) Expr { return Call("KQL", query) }

// Knn finds the k nearest vectors to the query vector, optionally tuned by
// an options map.
func Knn(field, query any, options ...any) Expr {
	return Call("KNN", optional([]any{field, query}, options)...)
}

// Match performs a match query on a field, optionally tuned by an options
// map, e.g. map[string]any{"fuzziness": "AUTO"}.
func Match(field, query any, options ...any) Expr {
	return Call("MATCH", optional([]any{field, query}, options)...)
}

// MatchPhrase performs a phrase match on a field, optionally tuned by an
// options map.
func MatchPhrase(field, query any, options ...any) Expr {
	return Call("MATCH_PHRASE", optional([]any{field, query}, options)...)
}

// Qstr performs a Lucene query-string query, optionally tuned by an
// options map.
func Qstr(query any, options ...any) Expr {
	return Call("QSTR", optional([]any{query}, options)...)
}

// Term matches a field against an exact term, without analysis.
func Term(field, query any) Expr { return Call("TERM", field, query) }
