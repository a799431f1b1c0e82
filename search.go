package rowsift

import (
	"strconv"
	"strings"
)

// SearchObjects runs a case-insensitive multi-term search. The input is
// split on whitespace and a record matches when every term is a substring
// of the concatenation of its string-coerced field values. Nil fields
// contribute nothing; array elements are searched too. It never fails, and
// empty input returns every key.
func (e *Engine) SearchObjects(searchText string) []interface{} {
	terms := strings.Fields(strings.ToLower(searchText))
	if len(terms) == 0 {
		return e.allKeys()
	}

	keys := []interface{}{}
	for _, obj := range e.objects {
		if matchesTerms(obj, terms) {
			keys = append(keys, obj[e.primaryKeyField])
		}
	}
	return keys
}

func matchesTerms(obj Record, terms []string) bool {
	haystack := recordText(obj)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// recordText joins all field values with spaces. Terms are
// whitespace-delimited, so no term can span a field boundary and the
// result does not depend on map iteration order.
func recordText(obj Record) string {
	parts := make([]string, 0, len(obj))
	for _, v := range obj {
		parts = append(parts, strings.ToLower(stringifyValue(v)))
	}
	return strings.Join(parts, " ")
}

// stringifyValue renders a field value for substring search. Only scalars
// and flat arrays are searchable; nested maps read as empty.
func stringifyValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []interface{}:
		parts := make([]string, len(t))
		for i, elem := range t {
			parts[i] = stringifyValue(elem)
		}
		return strings.Join(parts, ",")
	}
	return ""
}
