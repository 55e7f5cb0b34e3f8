package validation

import (
	"fmt"
	"strings"
)

// ErrorCode constants for machine-readable error identification
const (
	ErrCodeRequired    = "required"
	ErrCodeType        = "type"
	ErrCodeMinLength   = "min_length"
	ErrCodeMaxLength   = "max_length"
	ErrCodePattern     = "pattern"
	ErrCodeFormat      = "format"
	ErrCodeMin         = "min"
	ErrCodeMax         = "max"
	ErrCodeMinItems    = "min_items"
	ErrCodeMaxItems    = "max_items"
	ErrCodeUniqueItems = "unique_items"
	ErrCodeEnum        = "enum"
	ErrCodeSchema      = "schema"
	ErrCodeOpenAPI     = "openapi_validation"
)

// ErrorLocation constants
const (
	LocationBody   = "body"
	LocationRoute  = "route"
	LocationQuery  = "query"
	LocationHeader = "header"
	LocationCookie = "cookie"
)

// FieldError represents a validation failure for a single field.
type FieldError struct {
	// Field is the dotted name of the field that failed validation
	Field string `json:"field"`

	// Location indicates where the field is: body, route, query, header
	Location string `json:"location"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Received is the value that was received
	Received any `json:"received,omitempty"`
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
	}
	return e.Message
}

// Key returns the name the error is reported under: the field, or the
// location for errors that are not tied to a field.
func (e *FieldError) Key() string {
	if e.Field != "" {
		return e.Field
	}
	return e.Location
}

// Result contains the outcome of validation.
type Result struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors contains validation errors (when Valid is false)
	Errors []*FieldError `json:"errors,omitempty"`
}

// Pass returns a valid, empty Result.
func Pass() *Result {
	return &Result{Valid: true}
}

// AddError adds a validation error to the result
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// HasErrors returns true if there are any validation errors
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Merge combines another result into this one
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// Keys returns the distinct error keys in the order they were first reported.
func (r *Result) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, e := range r.Errors {
		k := e.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// ByField groups error messages by key.
func (r *Result) ByField() map[string][]string {
	out := make(map[string][]string)
	for _, e := range r.Errors {
		out[e.Key()] = append(out[e.Key()], e.Message)
	}
	return out
}

// Summary returns the first message, followed by a count of the rest:
// "The title field is required. (and 2 more errors)".
func (r *Result) Summary() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msg := r.Errors[0].Message
	switch rest := len(r.Errors) - 1; {
	case rest == 1:
		msg += " (and 1 more error)"
	case rest > 1:
		msg += fmt.Sprintf(" (and %d more errors)", rest)
	}
	return msg
}

// attribute turns a field name into the words used in messages.
// "first_name" becomes "first name", "tags.0" stays as is.
func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// NewRequiredError creates an error for a missing required field
func NewRequiredError(field, location string) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeRequired,
		Message:  fmt.Sprintf("The %s field is required.", attribute(field)),
	}
}

// NewTypeError creates an error for a type mismatch
func NewTypeError(field, location, expected string, received any) *FieldError {
	var what string
	switch expected {
	case TypeString:
		what = "a string"
	case TypeInteger:
		what = "an integer"
	case TypeNumber:
		what = "a number"
	case TypeBoolean:
		what = "true or false"
	case TypeArray:
		what = "an array"
	case TypeObject:
		what = "an object"
	default:
		what = "of type " + expected
	}
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeType,
		Message:  fmt.Sprintf("The %s field must be %s.", attribute(field), what),
		Received: received,
	}
}

// NewMinLengthError creates an error for string too short
func NewMinLengthError(field, location string, minLength int, actual int) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeMinLength,
		Message:  fmt.Sprintf("The %s field must be at least %d characters.", attribute(field), minLength),
		Received: actual,
	}
}

// NewMaxLengthError creates an error for string too long
func NewMaxLengthError(field, location string, maxLength int, actual int) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeMaxLength,
		Message:  fmt.Sprintf("The %s field must not be greater than %d characters.", attribute(field), maxLength),
		Received: actual,
	}
}

// NewPatternError creates an error for regex pattern mismatch
func NewPatternError(field, location string, received any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodePattern,
		Message:  fmt.Sprintf("The %s field format is invalid.", attribute(field)),
		Received: received,
	}
}

// NewFormatError creates an error for format validation failure
func NewFormatError(field, location, format string, received any) *FieldError {
	names := map[string]string{
		"email":    "email address",
		"uuid":     "UUID",
		"date":     "date",
		"datetime": "date and time",
		"uri":      "URL",
		"url":      "URL",
		"ipv4":     "IPv4 address",
		"ipv6":     "IPv6 address",
		"ip":       "IP address",
		"hostname": "hostname",
	}
	name := names[strings.ToLower(format)]
	if name == "" {
		name = format
	}

	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeFormat,
		Message:  fmt.Sprintf("The %s field must be a valid %s.", attribute(field), name),
		Received: received,
	}
}

// NewMinError creates an error for number below minimum
func NewMinError(field, location string, min float64, received any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeMin,
		Message:  fmt.Sprintf("The %s field must be at least %v.", attribute(field), min),
		Received: received,
	}
}

// NewMaxError creates an error for number above maximum
func NewMaxError(field, location string, max float64, received any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeMax,
		Message:  fmt.Sprintf("The %s field must not be greater than %v.", attribute(field), max),
		Received: received,
	}
}

// NewMinItemsError creates an error for array with too few items
func NewMinItemsError(field, location string, minItems int, actual int) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeMinItems,
		Message:  fmt.Sprintf("The %s field must have at least %d items.", attribute(field), minItems),
		Received: actual,
	}
}

// NewMaxItemsError creates an error for array with too many items
func NewMaxItemsError(field, location string, maxItems int, actual int) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeMaxItems,
		Message:  fmt.Sprintf("The %s field must not have more than %d items.", attribute(field), maxItems),
		Received: actual,
	}
}

// NewUniqueItemsError creates an error for duplicate items in array
func NewUniqueItemsError(field, location string, duplicate any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeUniqueItems,
		Message:  fmt.Sprintf("The %s field has a duplicate value.", attribute(field)),
		Received: duplicate,
	}
}

// NewEnumError creates an error for value not in enum
func NewEnumError(field, location string, received any) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeEnum,
		Message:  fmt.Sprintf("The selected %s is invalid.", attribute(field)),
		Received: received,
	}
}

// NewSchemaError creates an error for JSON Schema validation failure
func NewSchemaError(field, location, message string) *FieldError {
	return &FieldError{
		Field:    field,
		Location: location,
		Code:     ErrCodeSchema,
		Message:  message,
	}
}
