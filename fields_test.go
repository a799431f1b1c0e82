package rowsift

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferFields(t *testing.T) {
	fields := InferFields(decodeRecords(t, `[
		{"id": 1, "name": "John", "age": 30, "admin": true, "tags": ["dev", "lead"]},
		{"id": 2, "name": "Jane", "age": null, "admin": false, "tags": ["dev"]}
	]`))

	require.Contains(t, fields, "name")
	assert.Equal(t, FieldTypeString, fields["name"].Type)
	assert.Equal(t, []string{"John", "Jane"}, fields["name"].Values)

	assert.Equal(t, FieldTypeNumber, fields["age"].Type)
	assert.Equal(t, FieldTypeNumber, fields["id"].Type)
	assert.Equal(t, FieldTypeBoolean, fields["admin"].Type)

	assert.Equal(t, FieldTypeArray, fields["tags"].Type)
	assert.Equal(t, []string{"dev", "lead"}, fields["tags"].Values)
}

func TestInferFieldsAllNull(t *testing.T) {
	fields := InferFields(decodeRecords(t, `[{"ghost": null}, {"ghost": null}]`))

	require.Contains(t, fields, "ghost")
	assert.Equal(t, FieldTypeString, fields["ghost"].Type)
	assert.Empty(t, fields["ghost"].Values)
}

func TestInferFieldsTypeFromFirstValue(t *testing.T) {
	// A field that is null until later records still gets typed.
	fields := InferFields(decodeRecords(t, `[{"score": null}, {"score": 7}]`))

	assert.Equal(t, FieldTypeNumber, fields["score"].Type)
}

func TestInferFieldsValueCap(t *testing.T) {
	objects := []Record{}
	for i := 0; i < 60; i++ {
		objects = append(objects, Record{"city": fmt.Sprintf("city-%d", i)})
	}

	fields := InferFields(objects)

	// More distinct values than the cap: the list is dropped entirely
	// rather than truncated to an arbitrary subset.
	assert.Equal(t, FieldTypeString, fields["city"].Type)
	assert.Nil(t, fields["city"].Values)
}

func TestInferFieldsNumbersCollectNoValues(t *testing.T) {
	fields := InferFields(decodeRecords(t, `[{"age": 30}, {"age": 25}]`))

	assert.Nil(t, fields["age"].Values)
}
