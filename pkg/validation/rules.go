package validation

// JSON type names accepted by FieldValidator.Type.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// FieldValidator defines validation rules for a single field.
type FieldValidator struct {
	// Type specifies the expected JSON type: string, number, integer, boolean, array, object
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Required rejects missing, null, blank string and empty collection values.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Nullable allows null values even when type is specified
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// String validations
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"` // email, uuid, date, datetime, uri, ipv4, ipv6, hostname

	// Number validations (number and integer types)
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Array validations
	MinItems    *int            `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int            `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems bool            `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`
	Items       *FieldValidator `json:"items,omitempty" yaml:"items,omitempty"`

	// Enum restricts the value to one of these
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Nested object validation
	Properties map[string]*FieldValidator `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Message replaces the default message of pattern and format failures.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// String returns a validator for string fields.
func String() *FieldValidator { return &FieldValidator{Type: TypeString} }

// Integer returns a validator for whole numbers.
func Integer() *FieldValidator { return &FieldValidator{Type: TypeInteger} }

// Number returns a validator for numeric fields.
func Number() *FieldValidator { return &FieldValidator{Type: TypeNumber} }

// Boolean returns a validator for boolean fields.
func Boolean() *FieldValidator { return &FieldValidator{Type: TypeBoolean} }

// Array returns a validator for arrays whose items match items (nil for any).
func Array(items *FieldValidator) *FieldValidator {
	return &FieldValidator{Type: TypeArray, Items: items}
}

// Object returns a validator for objects with the given properties.
func Object(props map[string]*FieldValidator) *FieldValidator {
	return &FieldValidator{Type: TypeObject, Properties: props}
}

// Any returns a validator with no type constraint.
func Any() *FieldValidator { return &FieldValidator{} }

// AsRequired marks the field as required.
func (f *FieldValidator) AsRequired() *FieldValidator {
	f.Required = true
	return f
}

// AsNullable allows null values.
func (f *FieldValidator) AsNullable() *FieldValidator {
	f.Nullable = true
	return f
}

// WithMinLength sets the minimum string length.
func (f *FieldValidator) WithMinLength(n int) *FieldValidator {
	f.MinLength = &n
	return f
}

// WithMaxLength sets the maximum string length.
func (f *FieldValidator) WithMaxLength(n int) *FieldValidator {
	f.MaxLength = &n
	return f
}

// WithPattern sets a regular expression the string must match.
func (f *FieldValidator) WithPattern(pattern string) *FieldValidator {
	f.Pattern = pattern
	return f
}

// WithFormat sets a named string format.
func (f *FieldValidator) WithFormat(format string) *FieldValidator {
	f.Format = format
	return f
}

// WithMin sets the inclusive numeric minimum.
func (f *FieldValidator) WithMin(v float64) *FieldValidator {
	f.Min = &v
	return f
}

// WithMax sets the inclusive numeric maximum.
func (f *FieldValidator) WithMax(v float64) *FieldValidator {
	f.Max = &v
	return f
}

// WithMinItems sets the minimum array length.
func (f *FieldValidator) WithMinItems(n int) *FieldValidator {
	f.MinItems = &n
	return f
}

// WithMaxItems sets the maximum array length.
func (f *FieldValidator) WithMaxItems(n int) *FieldValidator {
	f.MaxItems = &n
	return f
}

// WithUniqueItems rejects duplicate array items.
func (f *FieldValidator) WithUniqueItems() *FieldValidator {
	f.UniqueItems = true
	return f
}

// WithEnum restricts the value to the given set.
func (f *FieldValidator) WithEnum(values ...any) *FieldValidator {
	f.Enum = values
	return f
}

// WithMessage overrides the pattern/format failure message.
func (f *FieldValidator) WithMessage(msg string) *FieldValidator {
	f.Message = msg
	return f
}

// Rules defines validation rules for a form request.
type Rules struct {
	// Required lists body fields that must be present and non-empty.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Fields defines per-field validation rules for the body.
	Fields map[string]*FieldValidator `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Schema is an inline JSON Schema for the body. When set (or SchemaRef),
	// Required and Fields are ignored.
	Schema any `json:"schema,omitempty" yaml:"schema,omitempty"`

	// SchemaRef is a file path to an external JSON Schema.
	SchemaRef string `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`

	// RouteParams validates route parameters.
	RouteParams map[string]*FieldValidator `json:"routeParams,omitempty" yaml:"routeParams,omitempty"`

	// QueryParams validates query string values.
	QueryParams map[string]*FieldValidator `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`

	// Headers validates request headers. Keys are canonical header names.
	Headers map[string]*FieldValidator `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// IsEmpty returns true if no validation rules are configured.
func (v *Rules) IsEmpty() bool {
	if v == nil {
		return true
	}
	return len(v.Required) == 0 &&
		len(v.Fields) == 0 &&
		v.Schema == nil &&
		v.SchemaRef == "" &&
		len(v.RouteParams) == 0 &&
		len(v.QueryParams) == 0 &&
		len(v.Headers) == 0
}
