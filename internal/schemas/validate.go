// Package schemas validates template configuration and resume documents
// against JSON Schemas.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	rootschemas "github.com/jonathan/resume-studio/schemas"
	"github.com/xeipuuv/gojsonschema"
)

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// embedded compiles a schema shipped in the schemas directory once.
func embedded(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	data, err := rootschemas.FS.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// ValidateDocument validates raw JSON against one of the embedded schemas.
func ValidateDocument(schemaName string, doc []byte) error {
	schema, err := embedded(schemaName)
	if err != nil {
		return err
	}
	return check(schemaName, schema, doc)
}

// ValidateTemplateConfig validates a persisted template configuration document.
func ValidateTemplateConfig(doc []byte) error {
	return ValidateDocument(rootschemas.TemplateConfig, doc)
}

// ValidateResumeData validates a resume data document.
func ValidateResumeData(doc []byte) error {
	return ValidateDocument(rootschemas.ResumeData, doc)
}

// ValidateFile validates the JSON file at docPath against the schema file at
// schemaPath. Relative $refs resolve against the schema's directory.
func ValidateFile(schemaPath, docPath string) error {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return &SchemaLoadError{Schema: schemaPath, Cause: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return &SchemaLoadError{Schema: schemaPath, Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs)))
	if err != nil {
		return &SchemaLoadError{Schema: schemaPath, Cause: err}
	}

	doc, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", docPath, err)
	}
	return check(filepath.Base(schemaPath), schema, doc)
}

func check(name string, schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
