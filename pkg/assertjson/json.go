package assertjson

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/stretchr/testify/assert"
)

// Callback asserts on a scope.
type Callback func(j *JSON)

type tHelper interface {
	Helper()
}

// JSON is an assertion scope over a JSON value.
type JSON struct {
	t          assert.TestingT
	data       any
	path       string
	interacted map[string]bool
	etc        bool
}

// New creates a root scope over data. Go values are normalized through
// encoding/json so they compare like a decoded response body.
func New(t assert.TestingT, data any) *JSON {
	normalized, err := Normalize(data)
	if err != nil {
		assert.Fail(t, fmt.Sprintf("Value is not JSON encodable: %v", err))
	}
	return newScope(t, normalized, "")
}

// FromBytes creates a root scope over a JSON document.
func FromBytes(t assert.TestingT, body []byte) *JSON {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		assert.Fail(t, fmt.Sprintf("Invalid JSON was returned: %v", err))
	}
	return newScope(t, data, "")
}

func newScope(t assert.TestingT, data any, path string) *JSON {
	return &JSON{t: t, data: data, path: path, interacted: make(map[string]bool)}
}

// Normalize round-trips v through encoding/json.
func Normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Has asserts that key exists. Callbacks run in a scope over its value.
func (j *JSON) Has(key string, scope ...Callback) *JSON {
	j.helper()

	value, ok := j.lookup(key)
	if !assert.True(j.t, ok, "Property [%s] does not exist.", j.dotPath(key)) {
		return j
	}
	j.interactsWith(key)

	if len(scope) > 0 {
		j.scope(key, value, scope...)
	}
	return j
}

// HasAll asserts that every key exists.
func (j *JSON) HasAll(keys ...string) *JSON {
	j.helper()
	for _, key := range keys {
		j.Has(key)
	}
	return j
}

// Missing asserts that key does not exist.
func (j *JSON) Missing(key string) *JSON {
	j.helper()
	_, ok := j.lookup(key)
	assert.False(j.t, ok, "Property [%s] was found while it was expected to be missing.", j.dotPath(key))
	return j
}

// MissingAll asserts that none of the keys exist.
func (j *JSON) MissingAll(keys ...string) *JSON {
	j.helper()
	for _, key := range keys {
		j.Missing(key)
	}
	return j
}

// Where asserts that key holds expected. expected may also be a
// func(any) bool predicate over the decoded value.
func (j *JSON) Where(key string, expected any) *JSON {
	j.helper()

	actual, ok := j.lookup(key)
	if !assert.True(j.t, ok, "Property [%s] does not exist.", j.dotPath(key)) {
		return j
	}
	j.interactsWith(key)

	if pred, isPred := expected.(func(any) bool); isPred {
		assert.True(j.t, pred(actual), "Property [%s] was marked as invalid using a closure.", j.dotPath(key))
		return j
	}

	want, err := Normalize(expected)
	if err != nil {
		assert.Fail(j.t, fmt.Sprintf("Expected value for [%s] is not JSON encodable: %v", j.dotPath(key), err))
		return j
	}
	assert.Equal(j.t, want, actual, "Property [%s] does not match the expected value.", j.dotPath(key))
	return j
}

// WhereAll asserts every key/value pair.
func (j *JSON) WhereAll(bindings map[string]any) *JSON {
	j.helper()
	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		j.Where(key, bindings[key])
	}
	return j
}

// Count asserts that the array or object at key has n entries. An empty key
// counts the current scope.
func (j *JSON) Count(key string, n int) *JSON {
	j.helper()

	value := j.data
	if key != "" {
		var ok bool
		value, ok = j.lookup(key)
		if !assert.True(j.t, ok, "Property [%s] does not exist.", j.dotPath(key)) {
			return j
		}
		j.interactsWith(key)
	}

	size, ok := length(value)
	if !assert.True(j.t, ok, "Property [%s] is not countable.", j.dotPath(key)) {
		return j
	}
	assert.Equal(j.t, n, size, "Property [%s] does not have the expected size.", j.dotPath(key))
	return j
}

// Each runs cb in a scope over every entry of the current scope.
func (j *JSON) Each(cb Callback) *JSON {
	j.helper()

	keys, ok := childKeys(j.data)
	if !assert.True(j.t, ok && len(keys) > 0, "Cannot scope directly onto the entries of [%s]: it is empty or not an array or object.", j.dotPath("")) {
		return j
	}
	for _, key := range keys {
		value, _ := j.lookup(key)
		j.interactsWith(key)
		j.scope(key, value, cb)
	}
	return j
}

// First runs cb in a scope over the first entry of the current scope.
func (j *JSON) First(cb Callback) *JSON {
	j.helper()

	keys, ok := childKeys(j.data)
	if !assert.True(j.t, ok && len(keys) > 0, "Cannot scope directly onto the first entry of [%s]: it is empty or not an array or object.", j.dotPath("")) {
		return j
	}
	value, _ := j.lookup(keys[0])
	j.interactsWith(keys[0])
	j.scope(keys[0], value, cb)
	return j
}

// Etc disables the untouched-property check for this scope.
func (j *JSON) Etc() *JSON {
	j.etc = true
	return j
}

// Prop returns the value at key, or the whole scope when key is empty. The
// second result reports whether it exists.
func (j *JSON) Prop(key string) (any, bool) {
	if key == "" {
		return j.data, true
	}
	return j.lookup(key)
}

// Path returns the dotted path of this scope, "" at the root.
func (j *JSON) Path() string {
	return j.path
}

// Fail reports an assertion failure located at this scope.
func (j *JSON) Fail(format string, args ...any) {
	j.helper()
	msg := fmt.Sprintf(format, args...)
	if j.path != "" {
		msg = fmt.Sprintf("[%s] %s", j.path, msg)
	}
	assert.Fail(j.t, msg)
}

// Interacted asserts that every property of this scope was asserted on,
// unless Etc was called.
func (j *JSON) Interacted() {
	j.helper()
	if j.etc {
		return
	}

	keys, _ := childKeys(j.data)
	var unexpected []string
	for _, k := range keys {
		if !j.interacted[k] {
			unexpected = append(unexpected, k)
		}
	}

	if j.path == "" {
		assert.Empty(j.t, unexpected, "Unexpected properties were found on the root level.")
		return
	}
	assert.Empty(j.t, unexpected, "Unexpected properties were found in scope [%s].", j.path)
}

func (j *JSON) scope(key string, value any, callbacks ...Callback) {
	j.helper()

	if _, ok := childKeys(value); !ok {
		assert.Fail(j.t, fmt.Sprintf("Property [%s] is not scopeable.", j.dotPath(key)))
		return
	}

	child := newScope(j.t, value, j.dotPath(key))
	for _, cb := range callbacks {
		if cb != nil {
			cb(child)
		}
	}
	child.Interacted()
}

// lookup walks a dotted key. Integer segments index arrays.
func (j *JSON) lookup(key string) (any, bool) {
	if key == "" {
		return j.data, true
	}

	var x jp.Expr
	current := j.data
	for _, segment := range strings.Split(key, ".") {
		if _, isArray := current.([]any); isArray {
			i, err := strconv.Atoi(segment)
			if err != nil {
				return nil, false
			}
			x = x.N(i)
		} else {
			x = x.C(segment)
		}

		results := x.Get(j.data)
		if len(results) == 0 {
			return nil, false
		}
		current = results[0]
	}
	return current, true
}

func (j *JSON) interactsWith(key string) {
	first, _, _ := strings.Cut(key, ".")
	j.interacted[first] = true
}

func (j *JSON) dotPath(key string) string {
	switch {
	case j.path == "":
		return key
	case key == "":
		return j.path
	default:
		return j.path + "." + key
	}
}

func (j *JSON) helper() {
	if h, ok := j.t.(tHelper); ok {
		h.Helper()
	}
}

// childKeys returns the keys of an object (sorted) or the indexes of an array.
func childKeys(v any) ([]string, bool) {
	switch tv := v.(type) {
	case map[string]any:
		return slices.Sorted(maps.Keys(tv)), true
	case []any:
		keys := make([]string, len(tv))
		for i := range tv {
			keys[i] = strconv.Itoa(i)
		}
		return keys, true
	default:
		return nil, false
	}
}

func length(v any) (int, bool) {
	switch tv := v.(type) {
	case map[string]any:
		return len(tv), true
	case []any:
		return len(tv), true
	default:
		return 0, false
	}
}
