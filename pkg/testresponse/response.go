// Package testresponse wraps a recorded HTTP response with test assertions.
package testresponse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/factories/pkg/assertjson"
	"github.com/getmockd/factories/pkg/validation"
)

// Response is a completed HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Request is the request that produced the response, if known.
	Request *http.Request
}

type tHelper interface {
	Helper()
}

// FromRecorder captures the response written to rec.
func FromRecorder(rec *httptest.ResponseRecorder) *Response {
	res := rec.Result()
	defer func() { _ = res.Body.Close() }()
	body, _ := io.ReadAll(res.Body)
	return &Response{StatusCode: res.StatusCode, Header: res.Header, Body: body}
}

// FromHTTP reads and closes the body of res.
func FromHTTP(res *http.Response) (*Response, error) {
	defer func() { _ = res.Body.Close() }()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Response{StatusCode: res.StatusCode, Header: res.Header, Body: body, Request: res.Request}, nil
}

// WithRequest records the request that produced the response.
func (r *Response) WithRequest(req *http.Request) *Response {
	r.Request = req
	return r
}

// JSON decodes the body as a JSON object.
func (r *Response) JSON() (map[string]any, error) {
	var out map[string]any
	if err := r.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode decodes the body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("response body is empty")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("response body is not valid JSON: %w", err)
	}
	return nil
}

// AssertStatus asserts the status code.
func (r *Response) AssertStatus(t assert.TestingT, expected int) *Response {
	helper(t)
	assert.Equal(t, expected, r.StatusCode, "Expected response status code [%d] but received %d.\nbody: %s", expected, r.StatusCode, r.Body)
	return r
}

// AssertOK asserts a 200 response.
func (r *Response) AssertOK(t assert.TestingT) *Response {
	helper(t)
	return r.AssertStatus(t, http.StatusOK)
}

// AssertSuccessful asserts a 2xx response.
func (r *Response) AssertSuccessful(t assert.TestingT) *Response {
	helper(t)
	assert.True(t, r.StatusCode >= 200 && r.StatusCode < 300,
		"Expected response status code [>=200, <300] but received %d.\nbody: %s", r.StatusCode, r.Body)
	return r
}

// AssertForbidden asserts a 403 response.
func (r *Response) AssertForbidden(t assert.TestingT) *Response {
	helper(t)
	return r.AssertStatus(t, http.StatusForbidden)
}

// AssertUnprocessable asserts a 422 response.
func (r *Response) AssertUnprocessable(t assert.TestingT) *Response {
	helper(t)
	return r.AssertStatus(t, http.StatusUnprocessableEntity)
}

// AssertServerError asserts a 5xx response.
func (r *Response) AssertServerError(t assert.TestingT) *Response {
	helper(t)
	assert.True(t, r.StatusCode >= 500 && r.StatusCode < 600,
		"Expected response status code [>=500, <600] but received %d.\nbody: %s", r.StatusCode, r.Body)
	return r
}

// AssertHeader asserts a header value.
func (r *Response) AssertHeader(t assert.TestingT, key, expected string) *Response {
	helper(t)
	values, ok := r.Header[http.CanonicalHeaderKey(key)]
	if !assert.True(t, ok, "Header [%s] not present on response.", key) {
		return r
	}
	assert.Equal(t, expected, strings.Join(values, ", "), "Header [%s] was found, but value does not match.", key)
	return r
}

// AssertBodyContains asserts that the raw body contains substr.
func (r *Response) AssertBodyContains(t assert.TestingT, substr string) *Response {
	helper(t)
	assert.Contains(t, string(r.Body), substr)
	return r
}

// AssertExactJSON asserts that the body equals expected. expected can be a
// string, []byte, or any value that encodes to JSON.
func (r *Response) AssertExactJSON(t assert.TestingT, expected any) *Response {
	helper(t)

	var want string
	switch v := expected.(type) {
	case string:
		want = v
	case []byte:
		want = string(v)
	default:
		b, err := json.Marshal(v)
		if !assert.NoError(t, err, "failed to marshal expected value") {
			return r
		}
		want = string(b)
	}
	assert.JSONEq(t, want, string(r.Body))
	return r
}

// AssertJSON runs cb against the decoded body, then checks that every
// top-level property was asserted on.
func (r *Response) AssertJSON(t assert.TestingT, cb assertjson.Callback) *Response {
	helper(t)
	j := assertjson.FromBytes(t, r.Body)
	cb(j)
	j.Interacted()
	return r
}

// AssertJSONValidationErrors asserts that the body lists a validation error
// for every key.
func (r *Response) AssertJSONValidationErrors(t assert.TestingT, keys ...string) *Response {
	helper(t)

	errs, ok := r.validationErrors(t)
	if !ok {
		return r
	}
	for _, key := range keys {
		_, found := errs[key]
		assert.True(t, found, "Failed to find a validation error in the response for key: '%s'\nbody: %s", key, r.Body)
	}
	return r
}

// AssertJSONMissingValidationErrors asserts that none of the keys has a
// validation error. Without keys it asserts there are no validation errors.
func (r *Response) AssertJSONMissingValidationErrors(t assert.TestingT, keys ...string) *Response {
	helper(t)

	if len(r.Body) == 0 {
		return r
	}
	var body map[string]any
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return r
	}
	errs, _ := body["errors"].(map[string]any)

	if len(keys) == 0 {
		assert.Empty(t, errs, "Response has unexpected validation errors.\nbody: %s", r.Body)
		return r
	}
	for _, key := range keys {
		_, found := errs[key]
		assert.False(t, found, "Found unexpected validation error for key: '%s'\nbody: %s", key, r.Body)
	}
	return r
}

// AssertOpenAPI validates the response against an OpenAPI document. The
// request that produced it must be known.
func (r *Response) AssertOpenAPI(t assert.TestingT, v *validation.OpenAPIValidator) *Response {
	helper(t)
	if !assert.NotNil(t, r.Request, "Response has no request to match an OpenAPI operation against.") {
		return r
	}
	result := v.ValidateResponse(r.Request, r.StatusCode, r.Header, r.Body)
	for _, e := range result.Errors {
		assert.Fail(t, "Response does not match the OpenAPI document.", e.Error())
	}
	return r
}

func (r *Response) validationErrors(t assert.TestingT) (map[string]any, bool) {
	var body map[string]any
	if err := json.Unmarshal(r.Body, &body); err != nil {
		assert.Fail(t, fmt.Sprintf("Invalid JSON was returned from the route: %v", err))
		return nil, false
	}
	errs, ok := body["errors"].(map[string]any)
	if !assert.True(t, ok, "Response does not have JSON validation errors.\nbody: %s", r.Body) {
		return nil, false
	}
	return errs, true
}

func helper(t assert.TestingT) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
}
