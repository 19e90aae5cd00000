// Package specs provides the embedded dataset wire-format JSON Schema.
//
// The schema covers the structural and pattern layer of the wire
// format: required fields, field types, date/datetime/version/image
// patterns and the closed relationship-type set. It deliberately does
// not cover calendar validity, id uniqueness or referential integrity;
// those are the validation phases' job. The engine uses it for fast
// pre-screening of candidate documents.
package specs

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed dataset.schema.json
var schemaFS embed.FS

// SchemaFile is the embedded schema file name.
const SchemaFile = "dataset.schema.json"

var (
	compileOnce sync.Once
	compiled    *santhosh.Schema
	compileErr  error
)

// ReadSchema returns the raw embedded schema document.
func ReadSchema() ([]byte, error) {
	data, err := schemaFS.ReadFile(SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema: %w", err)
	}
	return data, nil
}

// Compiled returns the compiled dataset schema, building it on first
// use. The compiled schema is safe for concurrent Validate calls.
func Compiled() (*santhosh.Schema, error) {
	compileOnce.Do(func() {
		data, err := ReadSchema()
		if err != nil {
			compileErr = err
			return
		}

		compiler := santhosh.NewCompiler()
		compiler.Draft = santhosh.Draft7
		if err := compiler.AddResource(SchemaFile, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(SchemaFile)
	})
	return compiled, compileErr
}

// CollectErrors flattens a schema validation error into its leaf
// messages, one per defect.
func CollectErrors(ve *santhosh.ValidationError) []string {
	var msgs []string
	for _, cause := range ve.Causes {
		msgs = append(msgs, CollectErrors(cause)...)
	}
	if len(ve.Causes) == 0 {
		msgs = append(msgs, ve.Error())
	}
	return msgs
}
