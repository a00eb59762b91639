// Package schemas embeds the JSON Schemas for CV documents and saved snapshots.
package schemas

import "embed"

// File names of the embedded schemas.
const (
	CVData        = "cv_data.schema.json"
	Customization = "customization.schema.json"
	Snapshot      = "snapshot.schema.json"
)

// BaseURL prefixes every schema $id.
const BaseURL = "https://cvbuilder.local/schemas/"

// Files lists every embedded schema, dependencies first.
var Files = []string{CVData, Customization, Snapshot}

//go:embed *.schema.json
var FS embed.FS

// Read returns the content of an embedded schema.
func Read(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
