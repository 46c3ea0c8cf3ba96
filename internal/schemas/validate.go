// Package schemas provides JSON Schema validation for analysis results and session files.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rootschemas "github.com/jonathan/truthweaver/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Embedded returns the content of a schema bundled with the binary.
func Embedded(name string) (string, error) {
	data, err := rootschemas.FS.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "no embedded schema", Cause: err}
	}
	return string(data), nil
}

// ValidateResult marshals v and validates it against the analysis result schema.
func ValidateResult(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return ValidateEmbedded(rootschemas.AnalysisResult, data)
}

// ValidateEmbedded validates JSON content against a bundled schema.
func ValidateEmbedded(name string, jsonContent []byte) error {
	schema, err := Embedded(name)
	if err != nil {
		return err
	}
	return validate(name, gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(jsonContent))
}

// ValidateFile validates a JSON file against a bundled schema.
func ValidateFile(name, jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateEmbedded(name, data)
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

	return validate(schemaAbsPath,
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(schemaAbsPath)),
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(jsonAbsPath)))
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Covers both schema syntax problems and unparseable documents.
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
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
