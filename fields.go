package rowsift

// FieldType classifies a record field for editor-side completion.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
)

// FieldSpec describes one field for the editor layer: its inferred type
// and, for string-valued fields with few distinct values, the values seen
// so far as completion candidates.
type FieldSpec struct {
	Type   FieldType
	Values []string
}

// FieldSet maps field names to their specs. It exists for autocomplete and
// inline validation in the editor that sits in front of the engine; the
// engine itself never consults it, so a stale or wrong FieldSet can never
// change filtering results.
type FieldSet map[string]FieldSpec

// InferFields derives a FieldSet from actual record contents. A field's
// type comes from its first non-nil value; fields that are nil in every
// record default to string. Distinct string values are collected in
// first-seen order until the configured cap, after which the value list is
// dropped for that field.
func InferFields(objects []Record) FieldSet {
	maxValues := globalConfig.MaxCompletionValues
	fields := FieldSet{}
	typed := map[string]bool{}
	seen := map[string]map[string]bool{}
	order := map[string][]string{}
	overflowed := map[string]bool{}

	for _, obj := range objects {
		for name, value := range obj {
			if _, known := fields[name]; !known {
				fields[name] = FieldSpec{Type: FieldTypeString}
				seen[name] = map[string]bool{}
			}
			if value == nil {
				continue
			}
			if !typed[name] {
				fields[name] = FieldSpec{Type: inferType(value)}
				typed[name] = true
			}
			collectValues(name, value, seen, order, overflowed, maxValues)
		}
	}

	for name, spec := range fields {
		if spec.Type == FieldTypeString || spec.Type == FieldTypeArray {
			if !overflowed[name] && len(order[name]) > 0 {
				spec.Values = order[name]
				fields[name] = spec
			}
		}
	}
	return fields
}

func inferType(value interface{}) FieldType {
	switch value.(type) {
	case bool:
		return FieldTypeBoolean
	case float64, float32, int, int64:
		return FieldTypeNumber
	case []interface{}:
		return FieldTypeArray
	default:
		return FieldTypeString
	}
}

func collectValues(name string, value interface{}, seen map[string]map[string]bool, order map[string][]string, overflowed map[string]bool, maxValues int) {
	add := func(s string) {
		if overflowed[name] || seen[name][s] {
			return
		}
		if len(seen[name]) >= maxValues {
			overflowed[name] = true
			return
		}
		seen[name][s] = true
		order[name] = append(order[name], s)
	}

	switch t := value.(type) {
	case string:
		add(t)
	case []interface{}:
		for _, elem := range t {
			if s, ok := elem.(string); ok {
				add(s)
			}
		}
	}
}
