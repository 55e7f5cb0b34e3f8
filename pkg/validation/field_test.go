package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateField_Type(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		validator *FieldValidator
		wantValid bool
		wantCode  string
	}{
		{name: "string matches", value: "hello", validator: String(), wantValid: true},
		{name: "string mismatch", value: 123, validator: String(), wantCode: ErrCodeType},
		{name: "number matches float", value: 123.45, validator: Number(), wantValid: true},
		{name: "number matches int", value: 7, validator: Number(), wantValid: true},
		{name: "integer matches whole number", value: float64(42), validator: Integer(), wantValid: true},
		{name: "integer rejects decimal", value: 42.5, validator: Integer(), wantCode: ErrCodeType},
		{name: "boolean matches", value: true, validator: Boolean(), wantValid: true},
		{name: "array matches", value: []any{"a", "b"}, validator: Array(nil), wantValid: true},
		{name: "typed slice is an array", value: []string{"a"}, validator: Array(nil), wantValid: true},
		{name: "object matches", value: map[string]any{"k": "v"}, validator: Object(nil), wantValid: true},
		{name: "nullable accepts nil", value: nil, validator: String().AsNullable(), wantValid: true},
		{name: "nil without nullable", value: nil, validator: String(), wantCode: ErrCodeType},
		{name: "any accepts anything", value: 3, validator: Any(), wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateField("field", LocationBody, tt.value, tt.validator)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				require.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.wantCode, result.Errors[0].Code)
			}
		})
	}
}

func TestValidateField_Required(t *testing.T) {
	for _, value := range []any{nil, "", "   ", []any{}, map[string]any{}} {
		result := ValidateField("title", LocationBody, value, String().AsRequired())
		require.False(t, result.Valid, "value %#v", value)
		assert.Equal(t, ErrCodeRequired, result.Errors[0].Code)
		assert.Equal(t, "The title field is required.", result.Errors[0].Message)
	}
}

func TestValidateField_StringConstraints(t *testing.T) {
	v := String().WithMinLength(3).WithMaxLength(5)

	assert.True(t, ValidateField("name", LocationBody, "abcd", v).Valid)

	short := ValidateField("name", LocationBody, "ab", v)
	require.False(t, short.Valid)
	assert.Equal(t, ErrCodeMinLength, short.Errors[0].Code)
	assert.Equal(t, "The name field must be at least 3 characters.", short.Errors[0].Message)

	long := ValidateField("name", LocationBody, "abcdef", v)
	require.False(t, long.Valid)
	assert.Equal(t, ErrCodeMaxLength, long.Errors[0].Code)

	// runes, not bytes
	assert.True(t, ValidateField("name", LocationBody, "héllo", v).Valid)
}

func TestValidateField_Pattern(t *testing.T) {
	v := String().WithPattern(`^[a-z]+$`)
	assert.True(t, ValidateField("slug", LocationBody, "abc", v).Valid)

	result := ValidateField("slug", LocationBody, "ABC", v)
	require.False(t, result.Valid)
	assert.Equal(t, "The slug field format is invalid.", result.Errors[0].Message)

	custom := ValidateField("slug", LocationBody, "ABC", String().WithPattern(`^[a-z]+$`).WithMessage("lowercase only"))
	assert.Equal(t, "lowercase only", custom.Errors[0].Message)
}

func TestValidateField_Format(t *testing.T) {
	result := ValidateField("email", LocationBody, "not-an-email", String().WithFormat("email"))
	require.False(t, result.Valid)
	assert.Equal(t, ErrCodeFormat, result.Errors[0].Code)
	assert.Equal(t, "The email field must be a valid email address.", result.Errors[0].Message)

	assert.True(t, ValidateField("email", LocationBody, "jane@example.com", String().WithFormat("email")).Valid)
}

func TestValidateField_NumberConstraints(t *testing.T) {
	v := Integer().WithMin(1).WithMax(10)

	assert.True(t, ValidateField("age", LocationBody, 5, v).Valid)

	low := ValidateField("age", LocationBody, 0, v)
	require.False(t, low.Valid)
	assert.Equal(t, ErrCodeMin, low.Errors[0].Code)
	assert.Equal(t, "The age field must be at least 1.", low.Errors[0].Message)

	high := ValidateField("age", LocationBody, 11, v)
	require.False(t, high.Valid)
	assert.Equal(t, ErrCodeMax, high.Errors[0].Code)
}

func TestValidateField_ArrayConstraints(t *testing.T) {
	v := Array(String()).WithMinItems(1).WithMaxItems(2).WithUniqueItems()

	assert.True(t, ValidateField("tags", LocationBody, []any{"a", "b"}, v).Valid)

	few := ValidateField("tags", LocationBody, []any{}, v)
	require.False(t, few.Valid)
	assert.Equal(t, ErrCodeMinItems, few.Errors[0].Code)

	many := ValidateField("tags", LocationBody, []any{"a", "b", "c"}, v)
	require.False(t, many.Valid)
	assert.Equal(t, ErrCodeMaxItems, many.Errors[0].Code)

	dup := ValidateField("tags", LocationBody, []any{"a", "a"}, v)
	require.False(t, dup.Valid)
	assert.Equal(t, ErrCodeUniqueItems, dup.Errors[0].Code)

	items := ValidateField("tags", LocationBody, []any{"a", 2}, v)
	require.False(t, items.Valid)
	assert.Equal(t, "tags.1", items.Errors[0].Field)
}

func TestValidateField_NestedObject(t *testing.T) {
	v := Object(map[string]*FieldValidator{
		"city": String().AsRequired(),
		"zip":  String().WithPattern(`^\d{5}$`),
	})

	result := ValidateField("address", LocationBody, map[string]any{"zip": "abc"}, v)
	require.False(t, result.Valid)
	assert.Equal(t, []string{"address.city", "address.zip"}, result.Keys())
}

func TestValidateField_Enum(t *testing.T) {
	v := String().WithEnum("draft", "published")
	assert.True(t, ValidateField("status", LocationBody, "draft", v).Valid)

	result := ValidateField("status", LocationBody, "archived", v)
	require.False(t, result.Valid)
	assert.Equal(t, "The selected status is invalid.", result.Errors[0].Message)

	assert.True(t, ValidateField("level", LocationBody, 2, Integer().WithEnum(1.0, 2.0)).Valid)
}

func TestValidateMap_Coercion(t *testing.T) {
	validators := map[string]*FieldValidator{
		"id":     Integer().AsRequired().WithMin(1),
		"active": Boolean(),
	}

	assert.True(t, ValidateMap(LocationRoute, map[string]string{"id": "12", "active": "true"}, validators).Valid)

	result := ValidateMap(LocationRoute, map[string]string{"id": "abc"}, validators)
	require.False(t, result.Valid)
	assert.Equal(t, LocationRoute, result.Errors[0].Location)
	assert.Equal(t, ErrCodeType, result.Errors[0].Code)

	missing := ValidateMap(LocationRoute, map[string]string{}, validators)
	require.False(t, missing.Valid)
	assert.Equal(t, ErrCodeRequired, missing.Errors[0].Code)
}

func TestResult_SummaryAndGrouping(t *testing.T) {
	result := Pass()
	assert.Equal(t, "", result.Summary())

	result.AddError(NewRequiredError("title", LocationBody))
	assert.Equal(t, "The title field is required.", result.Summary())

	result.AddError(NewMinLengthError("title", LocationBody, 3, 1))
	result.AddError(NewRequiredError("first_name", LocationBody))

	assert.Equal(t, "The title field is required. (and 2 more errors)", result.Summary())
	assert.Equal(t, []string{"title", "first_name"}, result.Keys())
	assert.Equal(t, map[string][]string{
		"title":      {"The title field is required.", "The title field must be at least 3 characters."},
		"first_name": {"The first name field is required."},
	}, result.ByField())
}

func TestFieldError_Key(t *testing.T) {
	assert.Equal(t, "title", NewRequiredError("title", LocationBody).Key())
	assert.Equal(t, LocationBody, NewSchemaError("", LocationBody, "bad").Key())
	assert.Equal(t, "body.title: The title field is required.", NewRequiredError("title", LocationBody).Error())
}

func TestFormats(t *testing.T) {
	tests := []struct {
		format string
		value  string
		want   bool
	}{
		{"email", "a@b.co", true},
		{"email", "nope", false},
		{"uuid", "123e4567-e89b-12d3-a456-426614174000", true},
		{"uuid", "123", false},
		{"date", "2024-02-29", true},
		{"date", "2024-13-01", false},
		{"datetime", "2024-01-01T10:00:00Z", true},
		{"uri", "https://example.com/a", true},
		{"uri", "example", false},
		{"unknown-format", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateFormat(tt.format, tt.value))
		})
	}
}

func TestRegisterFormat(t *testing.T) {
	RegisterFormat("even-length", func(s string) bool { return len(s)%2 == 0 })
	assert.True(t, IsKnownFormat("even-length"))
	assert.True(t, ValidateFormat("even-length", "ab"))
	assert.False(t, ValidateFormat("even-length", "abc"))
}
