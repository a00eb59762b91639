// Package schemas validates CV documents and saved snapshots against the
// embedded JSON Schemas.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	embedded "github.com/jonathan/cv-builder/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError reports a document that is not parseable JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document is not valid JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

// compileEmbedded compiles every embedded schema once, with cross-file $refs
// resolved through a shared loader pool.
func compileEmbedded() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		out := make(map[string]*gojsonschema.Schema, len(embedded.Files))
		for _, name := range embedded.Files {
			sl := gojsonschema.NewSchemaLoader()
			for _, dep := range embedded.Files {
				if dep == name {
					continue
				}
				content, err := embedded.Read(dep)
				if err != nil {
					compileErr = &SchemaLoadError{Path: dep, Message: "embedded schema missing", Cause: err}
					return
				}
				if err := sl.AddSchema(embedded.BaseURL+dep, gojsonschema.NewBytesLoader(content)); err != nil {
					compileErr = &SchemaLoadError{Path: dep, Message: "failed to register schema", Cause: err}
					return
				}
			}
			content, err := embedded.Read(name)
			if err != nil {
				compileErr = &SchemaLoadError{Path: name, Message: "embedded schema missing", Cause: err}
				return
			}
			schema, err := sl.Compile(gojsonschema.NewBytesLoader(content))
			if err != nil {
				compileErr = &SchemaLoadError{Path: name, Message: "failed to compile schema", Cause: err}
				return
			}
			out[name] = schema
		}
		compiled = out
	})
	return compiled, compileErr
}

// Validate checks a JSON document against one of the embedded schemas.
func Validate(schemaName string, document []byte) error {
	all, err := compileEmbedded()
	if err != nil {
		return err
	}
	schema, ok := all[schemaName]
	if !ok {
		return &SchemaLoadError{Path: schemaName, Message: "unknown schema"}
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	return resultError(schemaName, result)
}

// ValidateSnapshot checks a saved snapshot document.
func ValidateSnapshot(document []byte) error {
	return Validate(embedded.Snapshot, document)
}

// ValidateCVData checks a bare CV document.
func ValidateCVData(document []byte) error {
	return Validate(embedded.CVData, document)
}

// ValidateCustomization checks a customization options document.
func ValidateCustomization(document []byte) error {
	return Validate(embedded.Customization, document)
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}
	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaAbsPath)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + jsonAbsPath)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaAbsPath,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return resultError(filepath.Base(schemaAbsPath), result)
}

func resultError(schema string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	validationErr := &ValidationError{
		Schema: schema,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
