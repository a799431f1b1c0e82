package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CompiledExpression evaluates a parsed query against one record.
type CompiledExpression func(record map[string]interface{}) (bool, error)

// CompileExpression walks the AST once and returns a closure tree, so a
// query compiled per filter call is not re-parsed for every record.
func CompileExpression(node Node) CompiledExpression {
	switch n := node.(type) {
	case *LiteralNode:
		return func(record map[string]interface{}) (bool, error) {
			return n.Value, nil
		}
	case *OrNode:
		alternatives := make([]CompiledExpression, len(n.Alternatives))
		for i, alt := range n.Alternatives {
			alternatives[i] = CompileExpression(alt)
		}
		return func(record map[string]interface{}) (bool, error) {
			for _, alt := range alternatives {
				match, err := alt(record)
				if err != nil {
					return false, err
				}
				if match {
					return true, nil
				}
			}
			return false, nil
		}
	case *AndNode:
		conjuncts := make([]CompiledExpression, len(n.Conjuncts))
		for i, c := range n.Conjuncts {
			conjuncts[i] = CompileExpression(c)
		}
		return func(record map[string]interface{}) (bool, error) {
			for _, c := range conjuncts {
				match, err := c(record)
				if err != nil {
					return false, err
				}
				if !match {
					return false, nil
				}
			}
			return true, nil
		}
	case *ConditionNode:
		return func(record map[string]interface{}) (bool, error) {
			return applyCondition(record, n), nil
		}
	default:
		return func(record map[string]interface{}) (bool, error) {
			return false, fmt.Errorf("unsupported node type: %T", n)
		}
	}
}

// applyCondition implements the operator semantics against a single record.
// A field missing from the record reads as nil; an unknown operator is not
// an error, it just never matches.
func applyCondition(record map[string]interface{}, cond *ConditionNode) bool {
	objValue := record[cond.Field]

	switch cond.Operator {
	case "=":
		return equals(objValue, cond.Value)
	case "!=":
		return !equals(objValue, cond.Value)
	case ">", "<":
		return compareNumeric(cond.Operator, objValue, cond.Value)
	case "IN":
		return evaluateIn(objValue, cond.Values)
	}
	return false
}

// equals handles the three value shapes in order: a NULL right-hand side
// matches any nullish field, an array-valued field matches on membership,
// and scalars compare loosely.
func equals(objValue, value interface{}) bool {
	if value == nil {
		return isNullish(objValue)
	}
	if arr, ok := objValue.([]interface{}); ok {
		return containsValue(arr, value)
	}
	return looseEqual(objValue, value)
}

// compareNumeric is > and <. Ordering is undefined for nullish and
// array-valued fields, so both compare false.
func compareNumeric(operator string, objValue, value interface{}) bool {
	if isNullish(objValue) {
		return false
	}
	if _, ok := objValue.([]interface{}); ok {
		return false
	}
	left, lok := toNumber(objValue)
	right, rok := parseFloatPrefix(value)
	if !lok || !rok {
		return false
	}
	if operator == ">" {
		return left > right
	}
	return left < right
}

func evaluateIn(objValue interface{}, values []interface{}) bool {
	if arr, ok := objValue.([]interface{}); ok {
		for _, elem := range arr {
			if containsValue(values, elem) {
				return true
			}
		}
		return false
	}
	if isNullish(objValue) {
		for _, v := range values {
			if v == nil {
				return true
			}
		}
		return false
	}
	return containsValue(values, objValue)
}

// isNullish reports whether a field value counts as absent: nil or the
// empty string. An empty string behaves as absent for equality but is still
// a valid value for substring search.
func isNullish(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func containsValue(list []interface{}, v interface{}) bool {
	for _, item := range list {
		if looseEqual(item, v) {
			return true
		}
	}
	return false
}

// looseEqual compares scalars the way a dynamically typed caller expects:
// strings compare as strings, everything else falls back to numeric
// coercion, so 30 == "30" and true == 1. nil only equals nil.
func looseEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	return aok && bok && an == bn
}

// toNumber is full numeric coercion: the whole string must parse.
func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var leadingFloatRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseFloatPrefix coerces a right-hand comparison value to a number,
// taking the leading numeric prefix of a string ("30px" reads as 30).
func parseFloatPrefix(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		match := leadingFloatRe.FindString(strings.TrimSpace(t))
		if match == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
