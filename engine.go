package rowsift

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rowsift/rowsift/query"
)

// Record is one filterable item: a flat mapping from field name to a
// string, number, boolean, nil, or a slice of such scalars. Records are
// supplied by the caller; the engine only reads them.
type Record = map[string]interface{}

// Engine holds an ordered record collection and answers queries against it.
// Filtering is a synchronous in-memory scan. The engine holds the
// collection by reference and takes no locks: callers must not call
// SetObjects while a FilterObjects scan is running.
type Engine struct {
	objects         []Record
	primaryKeyField string
}

// NewEngine creates an engine over an initial collection. An empty
// primaryKeyField falls back to the configured default ("id").
func NewEngine(objects []Record, primaryKeyField string) *Engine {
	if primaryKeyField == "" {
		primaryKeyField = globalConfig.PrimaryKeyField
	}
	return &Engine{objects: objects, primaryKeyField: primaryKeyField}
}

// SetObjects replaces the held collection reference. The slice is not
// copied and nothing else is retained, so subsequent queries see exactly
// the new collection.
func (e *Engine) SetObjects(objects []Record) {
	e.objects = objects
}

// A query is structured when it contains anything operator-shaped. This is
// a textual heuristic, not a grammar check: a search term like "a<b" is
// classified as structured and will fail to parse.
var structuredQueryRe = regexp.MustCompile(`[=!<>()]|(?i:\b(?:AND|OR|IN)\b)`)

// FilterObjects is the single query entry point. An empty query returns
// every record's primary-key value in collection order. Structured queries
// are compiled once and evaluated against every record; any failure aborts
// the whole call. Everything else is free-text search.
//
// Records missing the primary-key field still contribute their (nil) key;
// they are not dropped from the result.
func (e *Engine) FilterObjects(queryText string) ([]interface{}, error) {
	trimmed := strings.TrimSpace(queryText)
	if trimmed == "" {
		return e.allKeys(), nil
	}

	if !structuredQueryRe.MatchString(trimmed) {
		return e.SearchObjects(trimmed), nil
	}

	filter, err := query.Compile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("Query error: %v", err)
	}

	keys := []interface{}{}
	for _, obj := range e.objects {
		match, err := filter(obj)
		if err != nil {
			return nil, fmt.Errorf("Query error: %v", err)
		}
		if match {
			keys = append(keys, obj[e.primaryKeyField])
		}
	}
	return keys, nil
}

// EvaluateExpression evaluates a structured expression against a single
// record. An empty or all-whitespace expression is true.
func (e *Engine) EvaluateExpression(record Record, expr string) (bool, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return true, nil
	}
	filter, err := query.Compile(trimmed)
	if err != nil {
		return false, err
	}
	return filter(record)
}

func (e *Engine) allKeys() []interface{} {
	keys := make([]interface{}, 0, len(e.objects))
	for _, obj := range e.objects {
		keys = append(keys, obj[e.primaryKeyField])
	}
	return keys
}
