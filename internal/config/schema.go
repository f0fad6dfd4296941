package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema []byte

const configSchemaURL = "config.schema.json"

// SchemaError reports a config file value rejected by the config schema.
type SchemaError struct {
	Key     string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid config: %s", e.Message)
	}
	return fmt.Sprintf("invalid config key %s: %s", e.Key, e.Message)
}

// Schema returns the JSON Schema that config files must satisfy.
func Schema() []byte {
	return configSchema
}

// validateConfigTable checks a decoded TOML table against the config schema.
func validateConfigTable(table map[string]interface{}) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(configSchemaURL, bytes.NewReader(configSchema)); err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	schema, err := compiler.Compile(configSchemaURL)
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	// Round-trip through JSON so TOML values take the shapes the validator expects.
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError reduces a validation error to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{
		Key:     strings.TrimPrefix(strings.TrimPrefix(ve.InstanceLocation, "#"), "/"),
		Message: ve.Message,
	}
}
