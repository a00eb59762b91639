package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/cv-builder/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemas.Files {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Read(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, schemas.BaseURL+schemaFile, schemaObj["$id"], "$id should match the file name")
			assert.Equal(t, "object", schemaObj["type"])
		})
	}
}

func TestEmbeddedFilesListed(t *testing.T) {
	entries, err := schemas.FS.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, schemas.Files, names)
}
