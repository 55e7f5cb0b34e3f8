package validation

import (
	"encoding/json"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidateField validates a value against a FieldValidator.
func ValidateField(field, location string, value any, validator *FieldValidator) *Result {
	result := Pass()

	if validator == nil {
		return result
	}

	if value == nil {
		if validator.Required {
			result.AddError(NewRequiredError(field, location))
		} else if !validator.Nullable && validator.Type != "" {
			result.AddError(NewTypeError(field, location, validator.Type, nil))
		}
		return result
	}

	if validator.Required && isBlank(value) {
		result.AddError(NewRequiredError(field, location))
		return result
	}

	if validator.Type != "" {
		typeResult := validateType(field, location, value, validator.Type)
		result.Merge(typeResult)
		if !typeResult.Valid {
			return result // stop on type mismatch
		}
	}

	switch v := value.(type) {
	case string:
		validateString(field, location, v, validator, result)
	case bool:
	case map[string]any:
		validateObject(field, location, v, validator, result)
	default:
		if n, ok := toFloat64(value); ok {
			validateNumber(field, location, n, validator, result)
		} else if items, ok := asSlice(value); ok {
			validateArray(field, location, items, validator, result)
		}
	}

	if len(validator.Enum) > 0 {
		validateEnum(field, location, value, validator.Enum, result)
	}

	return result
}

// isBlank reports whether a present value still fails a required check:
// blank strings and empty collections.
func isBlank(value any) bool {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case map[string]any:
		return len(v) == 0
	}
	if items, ok := asSlice(value); ok {
		return len(items) == 0
	}
	return false
}

// validateType checks if a value matches the expected JSON type
func validateType(field, location string, value any, expectedType string) *Result {
	result := Pass()

	actualType := getJSONType(value)
	expected := strings.ToLower(expectedType)

	if expected == TypeInteger {
		num, ok := toFloat64(value)
		if !ok || num != float64(int64(num)) {
			result.AddError(NewTypeError(field, location, TypeInteger, value))
		}
		return result
	}

	if actualType != expected {
		result.AddError(NewTypeError(field, location, expected, value))
	}

	return result
}

// getJSONType returns the JSON type name for a value
func getJSONType(value any) string {
	if value == nil {
		return "null"
	}

	switch value.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return TypeString
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeNumber
	case reflect.Bool:
		return TypeBoolean
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Map, reflect.Struct:
		return TypeObject
	default:
		return "unknown"
	}
}

// validateString validates string-specific constraints
func validateString(field, location string, value string, validator *FieldValidator, result *Result) {
	length := utf8.RuneCountInString(value)

	if validator.MinLength != nil && length < *validator.MinLength {
		result.AddError(NewMinLengthError(field, location, *validator.MinLength, length))
	}

	if validator.MaxLength != nil && length > *validator.MaxLength {
		result.AddError(NewMaxLengthError(field, location, *validator.MaxLength, length))
	}

	if validator.Pattern != "" {
		matched, err := regexp.MatchString(validator.Pattern, value)
		if err != nil || !matched {
			err := NewPatternError(field, location, value)
			if validator.Message != "" {
				err.Message = validator.Message
			}
			result.AddError(err)
		}
	}

	if validator.Format != "" {
		if !ValidateFormat(validator.Format, value) {
			err := NewFormatError(field, location, validator.Format, value)
			if validator.Message != "" {
				err.Message = validator.Message
			}
			result.AddError(err)
		}
	}
}

// validateNumber validates number-specific constraints
func validateNumber(field, location string, value float64, validator *FieldValidator, result *Result) {
	if validator.Min != nil && value < *validator.Min {
		result.AddError(NewMinError(field, location, *validator.Min, value))
	}

	if validator.Max != nil && value > *validator.Max {
		result.AddError(NewMaxError(field, location, *validator.Max, value))
	}
}

// validateArray validates array-specific constraints
func validateArray(field, location string, value []any, validator *FieldValidator, result *Result) {
	if validator.MinItems != nil && len(value) < *validator.MinItems {
		result.AddError(NewMinItemsError(field, location, *validator.MinItems, len(value)))
	}

	if validator.MaxItems != nil && len(value) > *validator.MaxItems {
		result.AddError(NewMaxItemsError(field, location, *validator.MaxItems, len(value)))
	}

	if validator.UniqueItems && len(value) > 1 {
		seen := make(map[string]bool)
		for _, item := range value {
			key, _ := json.Marshal(item)
			if seen[string(key)] {
				result.AddError(NewUniqueItemsError(field, location, item))
				break
			}
			seen[string(key)] = true
		}
	}

	if validator.Items != nil {
		for i, item := range value {
			itemResult := ValidateField(joinField(field, strconv.Itoa(i)), location, item, validator.Items)
			result.Merge(itemResult)
		}
	}
}

// validateObject validates nested properties in name order
func validateObject(field, location string, value map[string]any, validator *FieldValidator, result *Result) {
	if validator.Properties == nil {
		return
	}

	for _, propName := range sortedKeys(validator.Properties) {
		propValidator := validator.Properties[propName]
		propField := joinField(field, propName)

		propValue, exists := value[propName]
		if !exists {
			if propValidator.Required {
				result.AddError(NewRequiredError(propField, location))
			}
			continue
		}

		result.Merge(ValidateField(propField, location, propValue, propValidator))
	}
}

func joinField(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// validateEnum checks if value is one of the allowed enum values
func validateEnum(field, location string, value any, enum []any, result *Result) {
	for _, allowed := range enum {
		if valuesEqual(value, allowed) {
			return
		}
	}
	result.AddError(NewEnumError(field, location, value))
}

// valuesEqual compares two values, treating all numeric types alike
func valuesEqual(a, b any) bool {
	if a == b {
		return true
	}

	aNum, aIsNum := toFloat64(a)
	bNum, bIsNum := toFloat64(b)
	if aIsNum && bIsNum {
		return aNum == bNum
	}

	aJSON, _ := json.Marshal(a)
	bJSON, _ := json.Marshal(b)
	return string(aJSON) == string(bJSON)
}

// toFloat64 converts any Go numeric value to float64
func toFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

// asSlice returns the elements of any slice or array value.
func asSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// ValidateRequired checks that all required fields are present and non-blank.
func ValidateRequired(location string, data map[string]any, required []string) *Result {
	result := Pass()

	for _, field := range required {
		value, exists := data[field]
		if !exists || value == nil || isBlank(value) {
			result.AddError(NewRequiredError(field, location))
		}
	}

	return result
}

// ValidateFields validates all fields in data against field validators, in
// field name order.
func ValidateFields(location string, data map[string]any, fields map[string]*FieldValidator) *Result {
	result := Pass()

	for _, fieldName := range sortedKeys(fields) {
		validator := fields[fieldName]
		value, exists := data[fieldName]
		if !exists {
			if validator.Required {
				result.AddError(NewRequiredError(fieldName, location))
			}
			continue
		}

		result.Merge(ValidateField(fieldName, location, value, validator))
	}

	return result
}

// ValidateMap validates string values (route params, query params, headers).
// Numeric and boolean rules are checked against the parsed string.
func ValidateMap(location string, data map[string]string, validators map[string]*FieldValidator) *Result {
	result := Pass()

	for _, fieldName := range sortedKeys(validators) {
		validator := validators[fieldName]
		raw, exists := data[fieldName]
		if !exists {
			if validator.Required {
				result.AddError(NewRequiredError(fieldName, location))
			}
			continue
		}

		result.Merge(ValidateField(fieldName, location, coerce(raw, validator.Type), validator))
	}

	return result
}

// coerce parses a string for numeric and boolean rules. Unparseable values
// are returned unchanged so the type check reports them.
func coerce(raw, typ string) any {
	switch typ {
	case TypeInteger, TypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case TypeBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

func sortedKeys(m map[string]*FieldValidator) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
