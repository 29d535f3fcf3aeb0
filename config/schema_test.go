package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Contains(t, schema["required"], "version")

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, props, "paths")

	paths := props["paths"].(map[string]interface{})
	items, ok := paths["items"].(map[string]interface{})
	require.True(t, ok, "watch entries should be inlined")

	itemProps := items["properties"].(map[string]interface{})
	for _, key := range []string{"path", "pattern", "command", "working_dir", "name", "ignore", "env", "kill_timeout", "debounce"} {
		assert.Contains(t, itemProps, key)
	}
	assert.ElementsMatch(t, []interface{}{"path", "pattern", "command"}, items["required"])

	killTimeout := itemProps["kill_timeout"].(map[string]interface{})
	assert.Equal(t, "string", killTimeout["type"])
}

func TestSchemaValidatorIsShared(t *testing.T) {
	first, err := schemaValidator()
	require.NoError(t, err)
	second, err := schemaValidator()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
