package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrSchemaViolation marks data that parsed but does not satisfy its schema
var ErrSchemaViolation = errors.New("schema validation failed")

// SchemaValidator validates JSON data against JSON schemas
type SchemaValidator interface {
	// RegisterSchema makes an in-memory schema (usually go:embed'ed) available under name
	RegisterSchema(name string, schema []byte) error
	ValidateFile(dataPath, schemaName string) error
	ValidateBytes(data []byte, schemaName string) error
}

type validator struct {
	mu      sync.Mutex
	sources map[string][]byte
	schemas map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		sources: make(map[string][]byte),
		schemas: make(map[string]*jsonschema.Schema),
	}
}

// RegisterSchema stores schema bytes under name; compilation happens on first use
func (v *validator) RegisterSchema(name string, schema []byte) error {
	if !json.Valid(schema) {
		return fmt.Errorf("schema %s is not valid JSON", name)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sources[name] = append([]byte(nil), schema...)
	delete(v.schemas, name)
	return nil
}

// ValidateFile validates a JSON file against a schema
func (v *validator) ValidateFile(dataPath, schemaName string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	return v.ValidateBytes(data, schemaName)
}

// ValidateBytes validates JSON data bytes against a schema
func (v *validator) ValidateBytes(data []byte, schemaName string) error {
	schema, err := v.loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	jsonData, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(jsonData); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// loadSchema compiles a schema, caching the result. Registered in-memory
// schemas win; otherwise schemaName is read from disk.
func (v *validator) loadSchema(schemaName string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[schemaName]; ok {
		return schema, nil
	}

	raw, ok := v.sources[schemaName]
	if !ok {
		fileData, err := os.ReadFile(schemaName)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		raw = fileData
	}

	schemaJSON, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	// One compiler per schema so a re-registered schema compiles cleanly.
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, schemaJSON); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[schemaName] = schema
	return schema, nil
}

// formatValidationError formats validation errors to be user-friendly
func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		var lines []string
		collectErrors(validationErr, &lines)
		return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
	}
	return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
}

// collectErrors recursively collects all validation errors
func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if msg := formatError(err); msg != "" {
		*lines = append(*lines, msg)
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

// formatError formats a single validation error
func formatError(err *jsonschema.ValidationError) string {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		if keywordPath := err.ErrorKind.KeywordPath(); len(keywordPath) > 0 {
			keywords = strings.Join(keywordPath, ".")
		}
	}

	if keywords != "" {
		return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
