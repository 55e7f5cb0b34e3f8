package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/factories/pkg/util"
)

// Validator validates request input against a rule set. The JSON Schema, if
// any, is compiled once on first use.
type Validator struct {
	rules       *Rules
	schema      *jsonschema.Schema
	schemaError error
	once        sync.Once
}

// NewValidator creates a new Validator for rules. A nil rule set accepts everything.
func NewValidator(rules *Rules) *Validator {
	return &Validator{rules: rules}
}

// Validate validates request data against all configured rules.
//
// The body is normalized through JSON first so Go values such as []string or
// int are checked the same way decoded request bodies are.
func (v *Validator) Validate(ctx context.Context, body map[string]any, routeParams, queryParams, headers map[string]string) *Result {
	if v.rules.IsEmpty() {
		return Pass()
	}

	result := Pass()

	if len(v.rules.RouteParams) > 0 {
		result.Merge(ValidateMap(LocationRoute, routeParams, v.rules.RouteParams))
	}

	if len(v.rules.QueryParams) > 0 {
		result.Merge(ValidateMap(LocationQuery, queryParams, v.rules.QueryParams))
	}

	if len(v.rules.Headers) > 0 {
		result.Merge(ValidateMap(LocationHeader, headers, v.rules.Headers))
	}

	normalized, err := normalize(body)
	if err != nil {
		result.AddError(NewSchemaError("", LocationBody, fmt.Sprintf("body is not JSON encodable: %v", err)))
		return result
	}
	result.Merge(v.ValidateBody(normalized))

	return result
}

// ValidateBody validates just the request body. body must already hold
// JSON-decoded values.
func (v *Validator) ValidateBody(body map[string]any) *Result {
	if v.rules == nil {
		return Pass()
	}
	if body == nil {
		body = map[string]any{}
	}

	result := Pass()

	// a schema replaces field-level rules
	if v.rules.Schema != nil || v.rules.SchemaRef != "" {
		result.Merge(v.validateJSONSchema(body))
		return result
	}

	if len(v.rules.Required) > 0 {
		result.Merge(ValidateRequired(LocationBody, body, v.rules.Required))
	}

	if len(v.rules.Fields) > 0 {
		result.Merge(ValidateFields(LocationBody, body, v.rules.Fields))
	}

	return result
}

func normalize(body map[string]any) (map[string]any, error) {
	if body == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// validateJSONSchema validates body against the JSON Schema
func (v *Validator) validateJSONSchema(body map[string]any) *Result {
	result := Pass()

	v.once.Do(func() {
		v.schema, v.schemaError = v.compileSchema()
	})

	if v.schemaError != nil {
		result.AddError(NewSchemaError("", LocationBody, fmt.Sprintf("schema compilation error: %v", v.schemaError)))
		return result
	}

	if err := v.schema.Validate(body); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			parseSchemaErrors(validationErr, result)
		} else {
			result.AddError(NewSchemaError("", LocationBody, err.Error()))
		}
	}

	return result
}

// compileSchema compiles the inline or referenced JSON Schema (Draft 2020-12)
func (v *Validator) compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	var schemaBytes []byte
	if v.rules.SchemaRef != "" {
		path, ok := util.SafeFilePathAllowAbsolute(v.rules.SchemaRef)
		if !ok {
			return nil, fmt.Errorf("invalid schema path: %s", v.rules.SchemaRef)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("schema file %s is not valid JSON", v.rules.SchemaRef)
		}
		schemaBytes = data
	} else {
		data, err := json.Marshal(v.rules.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema: %w", err)
		}
		schemaBytes = data
	}

	if err := compiler.AddResource("schema.json", strings.NewReader(string(schemaBytes))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	return compiler.Compile("schema.json")
}

// parseSchemaErrors flattens the leaf causes of a schema validation error
func parseSchemaErrors(err *jsonschema.ValidationError, result *Result) {
	if len(err.Causes) == 0 {
		field := extractFieldFromPath(err.InstanceLocation)
		message := err.Message
		if strings.HasPrefix(message, "missing properties: ") {
			// report each missing property under its own key
			for _, name := range strings.Split(strings.TrimPrefix(message, "missing properties: "), ", ") {
				name = strings.Trim(name, "'")
				result.AddError(NewRequiredError(joinField(field, name), LocationBody))
			}
			return
		}
		result.AddError(NewSchemaError(field, LocationBody, message))
		return
	}

	for _, cause := range err.Causes {
		parseSchemaErrors(cause, result)
	}
}

// extractFieldFromPath converts a JSON Pointer to dot notation
func extractFieldFromPath(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}
