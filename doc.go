/*
Package rowsift filters an in-memory collection of records against a small
query language. It is the engine behind a data grid: the grid hands it a
collection and a query string, and gets back the primary-key values of the
matching rows in their original order.

# Records

A record is a flat map from field name to a string, number, boolean, nil,
or a slice of such scalars. Records usually come straight out of
encoding/json:

	var objects []rowsift.Record
	json.Unmarshal(data, &objects)

	engine := rowsift.NewEngine(objects, "id")

# Queries

FilterObjects accepts either a structured expression or free text and
decides which it got by shape: anything containing an operator character or
the words AND, OR or IN is treated as an expression, everything else as a
case-insensitive multi-term search across all field values.

	keys, err := engine.FilterObjects(`status = "active" AND age > 29`)
	keys, err = engine.FilterObjects(`john`)

Expressions support =, !=, > and < comparisons, IN membership tests over
bracketed lists, boolean literals, AND/OR combination and parenthesized
grouping. AND binds tighter than OR. NULL compares true against fields that
are nil, absent, or the empty string.

# Field metadata

InferFields derives per-field type and value information from a collection
for use by query editors (completion, inline validation). The engine itself
never consults it.
*/
package rowsift
