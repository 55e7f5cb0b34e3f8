package validation

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsAPI = `
openapi: 3.0.3
info:
  title: Posts
  version: 1.0.0
servers:
  - url: http://localhost
paths:
  /posts:
    post:
      operationId: storePost
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [title]
              properties:
                title:
                  type: string
                  minLength: 1
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                type: object
                required: [id]
                properties:
                  id:
                    type: integer
  /posts/{post}:
    get:
      operationId: showPost
      parameters:
        - name: post
          in: path
          required: true
          schema:
            type: integer
        - name: include
          in: query
          schema:
            type: string
            enum: [creator]
      responses:
        "200":
          description: ok
`

func loadPostsAPI(t *testing.T) *OpenAPIValidator {
	t.Helper()
	v, err := LoadOpenAPIData(context.Background(), []byte(postsAPI))
	require.NoError(t, err)
	return v
}

func TestOpenAPI_LoadErrors(t *testing.T) {
	_, err := NewOpenAPIValidator(context.Background(), nil)
	assert.Error(t, err)

	_, err = LoadOpenAPIData(context.Background(), []byte("not: [valid"))
	assert.Error(t, err)

	_, err = LoadOpenAPIFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenAPI_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(postsAPI), 0o600))

	v, err := LoadOpenAPIFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Posts", v.Document().Info.Title)
}

func TestOpenAPI_ValidateRequestBody(t *testing.T) {
	v := loadPostsAPI(t)

	tests := []struct {
		name      string
		body      string
		wantValid bool
	}{
		{name: "valid body", body: `{"title":"Hello"}`, wantValid: true},
		{name: "missing title", body: `{}`},
		{name: "wrong type", body: `{"title":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://localhost/posts", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			result := v.ValidateRequest(req)
			assert.Equal(t, tt.wantValid, result.Valid, errorText(result))

			// body is still readable afterwards
			buf := new(bytes.Buffer)
			_, err := buf.ReadFrom(req.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, buf.String())
		})
	}
}

func TestOpenAPI_ValidateRequestParams(t *testing.T) {
	v := loadPostsAPI(t)

	ok := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "http://localhost/posts/5?include=creator", nil))
	assert.True(t, ok.Valid, errorText(ok))

	badPath := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "http://localhost/posts/abc", nil))
	require.False(t, badPath.Valid)
	assert.Equal(t, LocationRoute, badPath.Errors[0].Location)
	assert.Equal(t, "post", badPath.Errors[0].Field)

	badQuery := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "http://localhost/posts/5?include=comments", nil))
	require.False(t, badQuery.Valid)
	assert.Equal(t, LocationQuery, badQuery.Errors[0].Location)
}

func TestOpenAPI_NoRoute(t *testing.T) {
	v := loadPostsAPI(t)

	result := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "http://localhost/users", nil))
	require.False(t, result.Valid)
	assert.Equal(t, "no_route", result.Errors[0].Code)
}

func TestOpenAPI_ValidateResponse(t *testing.T) {
	v := loadPostsAPI(t)
	header := http.Header{"Content-Type": []string{"application/json"}}

	req := httptest.NewRequest(http.MethodPost, "http://localhost/posts", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	ok := v.ValidateResponse(req, http.StatusCreated, header, []byte(`{"id":1}`))
	assert.True(t, ok.Valid, errorText(ok))

	bad := v.ValidateResponse(req, http.StatusCreated, header, []byte(`{"id":"one"}`))
	require.False(t, bad.Valid)
	assert.Equal(t, "response", bad.Errors[0].Location)
}
