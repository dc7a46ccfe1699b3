package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://transcript-summary-ai/config.schema.json"

//go:embed schema.json
var schemaJSON []byte

// checkSchema validates the raw decoded document before it is mapped onto Config,
// so type and enum mistakes are reported with their document location.
func checkSchema(doc interface{}) error {
	if doc == nil {
		return &ConfigurationError{Field: "(document)", Reason: "empty config"}
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ConfigurationError{Field: schemaLocation(verr), Reason: "schema violation", Err: err}
		}
		return &ConfigurationError{Field: "(document)", Reason: "schema violation", Err: err}
	}
	return nil
}

// schemaLocation returns the document path of the deepest failing instance.
func schemaLocation(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	if len(verr.InstanceLocation) == 0 {
		return "(document)"
	}
	return strings.Join(verr.InstanceLocation, ".")
}
