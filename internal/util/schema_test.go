package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	Topic    string   `json:"topic" description:"What to cover"`
	Count    int      `json:"count"`
	Ratio    float64  `json:"ratio,omitempty"`
	Draft    bool     `json:"draft"`
	Tags     []string `json:"tags,omitempty"`
	Optional *string  `json:"optional"`
	Ignored  string   `json:"-"`
	hidden   string
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleArgs{})
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	topic, ok := props["topic"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", topic["type"])
	assert.Equal(t, "What to cover", topic["description"])

	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
	assert.Equal(t, "number", props["ratio"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["draft"].(map[string]any)["type"])
	assert.Equal(t, "array", props["tags"].(map[string]any)["type"])
	assert.Equal(t, "string", props["optional"].(map[string]any)["type"])

	assert.NotContains(t, props, "-")
	assert.NotContains(t, props, "Ignored")
	assert.NotContains(t, props, "hidden")

	// Pointer fields and omitempty fields are optional.
	assert.ElementsMatch(t, []string{"topic", "count", "draft"}, schema["required"])
}

func TestCreateSchemaNonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
	assert.NotContains(t, schema, "required")
}

func TestValidateParametersRequired(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
		},
		"required": []string{"topic"},
	}

	err := ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "topic", vErr.Field)

	assert.NoError(t, ValidateParameters(map[string]any{"topic": "go"}, schema))
}

func TestValidateParametersRequiredAsAnySlice(t *testing.T) {
	// JSON-decoded schemas carry required as []any.
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
		},
		"required": []any{"topic"},
	}

	assert.Error(t, ValidateParameters(map[string]any{}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"topic": "go"}, schema))
}

func TestValidateParametersTypeChecks(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "integer"},
			"name":  map[string]any{"type": "string"},
		},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"count": 3, "name": "x"}, schema))
	// JSON numbers decode as float64; whole values pass as integers.
	assert.NoError(t, ValidateParameters(map[string]any{"count": float64(3)}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"count": 3.5}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"name": 42}, schema))
}

func TestValidateParametersExtraFieldsAllowed(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"surplus": true}, schema))
}

func TestValidateParametersNilValueAllowed(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"name": nil}, schema))
}
