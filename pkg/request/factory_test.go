package request_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/factories/pkg/request"
	"github.com/getmockd/factories/pkg/routing"
)

func TestFactory_Form(t *testing.T) {
	t.Run("definition defaults", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		assert.Equal(t, map[string]any{"title": "Hello", "body": "World"}, f.Form())
	})

	t.Run("overrides win over definition", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.Set("title", "Changed")
		assert.Equal(t, "Changed", f.Form()["title"])
	})

	t.Run("unset wins over overrides", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.Set("title", "Changed").Unset("title")
		assert.NotContains(t, f.Form(), "title")
		assert.Contains(t, f.Form(), "body")
	})

	t.Run("set after unset restores the key", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.WithoutTitle().Set("title", "Back")
		assert.Equal(t, "Back", f.Form()["title"])
	})

	t.Run("form overrides persist", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		assert.Equal(t, "Once", f.Form(map[string]any{"title": "Once"})["title"])
		assert.Equal(t, "Once", f.Form()["title"])
	})

	t.Run("create applies overrides", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.Create(map[string]any{"extra": 1})
		assert.Equal(t, 1, f.Form()["extra"])
	})

	t.Run("state writes every key", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.State(map[string]any{"a": 1, "b": 2})
		form := f.Form()
		assert.Equal(t, 1, form["a"])
		assert.Equal(t, 2, form["b"])
	})

	t.Run("result is a fresh map", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		form := f.Form()
		form["title"] = "mutated"
		assert.Equal(t, "Hello", f.Form()["title"])
	})
}

func TestFactory_Make(t *testing.T) {
	t.Run("post sends a json body", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		r, err := f.Method("post").URI("/posts").Make()
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "http://localhost/posts", r.URL.String())
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(request.RequestIDHeader))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, map[string]any{"title": "Hello", "body": "World"}, decoded)

		assert.Equal(t, "Hello", r.Input("title"))
		assert.Equal(t, storePostRequest{}, r.Subject())
	})

	t.Run("get sends the query string", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.State(map[string]any{
			"tags":      []string{"go", "php"},
			"published": true,
			"author":    map[string]any{"name": "Ada"},
			"draft":     nil,
		})

		r, err := f.URI("/posts?sort=asc").Make()
		require.NoError(t, err)

		q := r.URL.Query()
		assert.Equal(t, "asc", q.Get("sort"))
		assert.Equal(t, "Hello", q.Get("title"))
		assert.Equal(t, "go", q.Get("tags[0]"))
		assert.Equal(t, "php", q.Get("tags[1]"))
		assert.Equal(t, "1", q.Get("published"))
		assert.Equal(t, "Ada", q.Get("author[name]"))
		assert.True(t, q.Has("draft"))
		assert.Equal(t, http.NoBody, r.Body)
		assert.Empty(t, r.Header.Get("Content-Type"))
	})

	t.Run("supplied request id is kept", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		r, err := f.Header(request.RequestIDHeader, "abc").Make()
		require.NoError(t, err)
		assert.Equal(t, "abc", r.Header.Get(request.RequestIDHeader))
	})

	t.Run("cookies", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		r, err := f.Cookie("session", "s3cr3t").Make()
		require.NoError(t, err)
		c, err := r.Cookie("session")
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", c.Value)
	})

	t.Run("raw content", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		r, err := f.Method(http.MethodPut).Header("Content-Type", "text/plain").Content([]byte("raw")).Make()
		require.NoError(t, err)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "raw", string(body))
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "Hello", r.Input("title"))
	})

	t.Run("files send a multipart body", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		f.Method(http.MethodPost).File("avatar", request.File{
			Filename:    "me.png",
			ContentType: "image/png",
			Content:     []byte("png-bytes"),
		})

		r, err := f.Make()
		require.NoError(t, err)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Hello", r.FormValue("title"))
		headers := r.MultipartForm.File["avatar"]
		require.Len(t, headers, 1)
		assert.Equal(t, "me.png", headers[0].Filename)
		assert.Equal(t, "image/png", headers[0].Header.Get("Content-Type"))

		file, ok := r.File("avatar")
		require.True(t, ok)
		assert.Equal(t, "me.png", file.Filename)
		_, ok = r.File("missing")
		assert.False(t, ok)
	})

	t.Run("route binding", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		r, err := f.URI("/posts/7").RouteParam("post", 7).Make()
		require.NoError(t, err)

		route := r.Route()
		require.NotNil(t, route)
		assert.Equal(t, "/posts/7", route.URI)
		assert.Equal(t, []string{http.MethodGet, http.MethodHead}, route.Methods)
		v, ok := route.Param("post")
		assert.True(t, ok)
		assert.Equal(t, 7, v)
		assert.Equal(t, "7", mux.Vars(r.Request)["post"])
	})

	t.Run("non get route methods", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		r, err := f.Method(http.MethodPatch).Make()
		require.NoError(t, err)
		assert.Equal(t, []string{http.MethodPatch}, r.Route().Methods)
	})

	t.Run("named route", func(t *testing.T) {
		router := routing.New().Get("posts.show", "/posts/{post}")
		f := storePostFactory(newTestProvider(request.WithRouter(router)))

		r, err := f.Route("posts.show").RouteParam("post", 12).Make()
		require.NoError(t, err)
		assert.Equal(t, "/posts/12", r.URL.Path)
		assert.Equal(t, "posts.show", r.Route().Name)
	})

	t.Run("named route without router", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		_, err := f.Route("posts.show").Make()
		assert.ErrorIs(t, err, request.ErrNoRouter)
	})

	t.Run("unknown named route", func(t *testing.T) {
		f := storePostFactory(newTestProvider(request.WithRouter(routing.New())))
		_, err := f.Route("missing").Make()
		assert.ErrorIs(t, err, routing.ErrRouteNotFound)
	})

	t.Run("user resolver", func(t *testing.T) {
		f := storePostFactory(newTestProvider())
		user := admin{ID: 1, IsAdmin: true}

		r, err := f.As(user).Make()
		require.NoError(t, err)
		assert.Equal(t, user, r.User())

		r, err = f.AsGuest().Make()
		require.NoError(t, err)
		assert.Nil(t, r.User())
	})

	t.Run("without subject", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		f, err := p.New(&configuredFactory{})
		require.NoError(t, err)
		_, err = f.Make()
		assert.ErrorIs(t, err, request.ErrNoSubject)
		assert.Nil(t, f.Subject())
	})

	t.Run("subject inferred from factory name", func(t *testing.T) {
		p := newTestProvider()
		b, err := newStorePostRequestFactory(p)
		require.NoError(t, err)
		assert.Equal(t, storePostRequest{}, b.Base().Subject())
	})

	t.Run("explicit subject", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		f, err := p.New(&configuredFactory{})
		require.NoError(t, err)
		r, err := f.For(storePostRequest{}).Make()
		require.NoError(t, err)
		assert.Equal(t, storePostRequest{}, r.Subject())
	})
}

func TestFactory_Validate(t *testing.T) {
	t.Run("passing request", func(t *testing.T) {
		res, err := storePostFactory(newTestProvider()).Validate()
		require.NoError(t, err)
		res.AssertOK(t)
		assert.Empty(t, res.Body)
		res.AssertJSONMissingValidationErrors(t, "title")
	})

	t.Run("missing field", func(t *testing.T) {
		res, err := storePostFactory(newTestProvider()).WithoutTitle().Validate()
		require.NoError(t, err)
		res.AssertUnprocessable(t).AssertJSONValidationErrors(t, "title")

		body, err := res.JSON()
		require.NoError(t, err)
		assert.Equal(t, "The title field is required.", body["message"])
	})

	t.Run("overrides given to validate", func(t *testing.T) {
		res, err := storePostFactory(newTestProvider()).Validate(map[string]any{"title": 5})
		require.NoError(t, err)
		res.AssertUnprocessable(t).AssertJSONValidationErrors(t, "title")
	})

	t.Run("denied", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		f, err := p.New(&configuredFactory{})
		require.NoError(t, err)

		res, err := f.For(policyRequest{request.MustExprPolicy("user != nil && user.is_admin")}).
			As(admin{ID: 2}).
			Validate()
		require.NoError(t, err)
		res.AssertForbidden(t)

		body, err := res.JSON()
		require.NoError(t, err)
		assert.Equal(t, request.UnauthorizedMessage, body["message"])
	})

	t.Run("allowed", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		f, err := p.New(&configuredFactory{})
		require.NoError(t, err)

		res, err := f.For(policyRequest{request.MustExprPolicy("user != nil && user.is_admin")}).
			As(admin{ID: 1, IsAdmin: true}).
			Validate()
		require.NoError(t, err)
		res.AssertOK(t)
	})

	t.Run("authorizer error is a server error", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		f, err := p.New(&configuredFactory{})
		require.NoError(t, err)

		res, err := f.For(erroringRequest{}).Validate()
		require.NoError(t, err)
		res.AssertServerError(t)

		body, err := res.JSON()
		require.NoError(t, err)
		assert.Equal(t, request.ServerErrorMessage, body["message"])
	})

	t.Run("panic is a server error", func(t *testing.T) {
		p := request.NewProvider(testResolver, request.WithDebug(true))
		f, err := p.New(&configuredFactory{})
		require.NoError(t, err)

		res, err := f.For(panickingRequest{}).Validate()
		require.NoError(t, err)
		res.AssertServerError(t).AssertBodyContains(t, "rules exploded")
	})

	t.Run("make errors are returned", func(t *testing.T) {
		_, err := storePostFactory(newTestProvider()).Route("nowhere").Validate()
		assert.ErrorIs(t, err, request.ErrNoRouter)
	})

	t.Run("response carries the request", func(t *testing.T) {
		res, err := storePostFactory(newTestProvider()).URI("/posts").Validate()
		require.NoError(t, err)
		require.NotNil(t, res.Request)
		assert.Equal(t, "/posts", res.Request.URL.Path)
	})
}
