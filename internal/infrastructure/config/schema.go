package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed profile_schema.json
var profileSchemaJSON []byte

var (
	profileSchemaOnce sync.Once
	profileSchema     *jsonschema.Schema
	profileSchemaErr  error
)

// compiledProfileSchema compiles the embedded profile document schema
// once per process.
func compiledProfileSchema() (*jsonschema.Schema, error) {
	profileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("profile_schema.json", bytes.NewReader(profileSchemaJSON)); err != nil {
			profileSchemaErr = fmt.Errorf("adding profile schema resource: %w", err)
			return
		}
		profileSchema, profileSchemaErr = compiler.Compile("profile_schema.json")
	})
	return profileSchema, profileSchemaErr
}

// validateDocument checks a decoded profile document against the
// schema before it is materialized into domain objects.
func validateDocument(doc any) error {
	schema, err := compiledProfileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if ok := asValidationError(err, &validationErr); ok {
			return formatSchemaError(validationErr)
		}
		return fmt.Errorf("profile document validation failed: %w", err)
	}
	return nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

// formatSchemaError flattens the validation error tree into one
// readable message with instance locations.
func formatSchemaError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("profile document validation failed")
	}
	return fmt.Errorf("profile document validation failed:\n  - %s", strings.Join(messages, "\n  - "))
}
