package testapp_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/factories/internal/testapp"
	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/request"
)

func TestRequestFactory_Resolution(t *testing.T) {
	k := newKit(t)

	t.Run("conventional factory", func(t *testing.T) {
		b, err := k.Requests.Factory(testapp.SimpleRequest{})
		require.NoError(t, err)
		assert.IsType(t, &testapp.SimpleRequestFactory{}, b)
	})

	t.Run("factory from the subject hook", func(t *testing.T) {
		b, err := k.Requests.Factory(testapp.NewRequest{})
		require.NoError(t, err)
		assert.IsType(t, &testapp.AnotherRequestFactory{}, b)
	})

	t.Run("hook factory keeps its own subject", func(t *testing.T) {
		f, err := testapp.NewRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		r, err := f.Make()
		require.NoError(t, err)
		assert.Equal(t, testapp.SimpleRequest{}, r.Subject())
	})

	t.Run("factory name round trip", func(t *testing.T) {
		resolver := k.Config.RequestResolver()
		factory := resolver.ResolveFactory("app/http/requests/Any/SubRequest")
		assert.Equal(t, "tests/requestfactories/Any/SubRequestFactory", factory)
		assert.Equal(t, "app/http/requests/Any/SubRequest", resolver.ResolveSubject(factory))
	})
}

func TestRequestFactory_Form(t *testing.T) {
	k := newKit(t)
	fake := faker.New()

	simple := func(t *testing.T) *testapp.SimpleRequestFactory {
		t.Helper()
		f, err := testapp.SimpleRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		return f
	}

	t.Run("definition is the seed", func(t *testing.T) {
		assert.Equal(t, map[string]any{"title": "Form title"}, simple(t).Form())
	})

	t.Run("faker in states", func(t *testing.T) {
		form1 := simple(t).WithRandom().Form()
		form2 := simple(t).WithRandom().Form()
		require.Contains(t, form1, "unique_random")
		require.Contains(t, form2, "unique_random")
		assert.NotEqual(t, form1["unique_random"], form2["unique_random"])
	})

	t.Run("set", func(t *testing.T) {
		key, value := fake.Word(), fake.Sentence()
		form := simple(t).Set(key, value).Form()
		assert.Equal(t, value, form[key])
	})

	t.Run("state method", func(t *testing.T) {
		value := fake.Sentence()
		assert.Equal(t, value, simple(t).SomeState(value).Form()["state_key"])
	})

	t.Run("unset", func(t *testing.T) {
		f := simple(t)
		assert.Contains(t, f.Form(), "title")
		assert.NotContains(t, f.Unset("title").Form(), "title")
	})

	t.Run("unset several", func(t *testing.T) {
		f := simple(t)
		f.State(map[string]any{"first": "foo", "second": "bar"})
		assert.Contains(t, f.Form(), "first")
		assert.Contains(t, f.Form(), "second")

		f.Unset("first", "second")
		assert.NotContains(t, f.Form(), "first")
		assert.NotContains(t, f.Form(), "second")
	})

	t.Run("set cancels unset", func(t *testing.T) {
		assert.Contains(t, simple(t).WithoutTitle().Title(fake.Word()).Form(), "title")
	})

	t.Run("configure runs before definition", func(t *testing.T) {
		f, err := testapp.ConfiguredRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		assert.NotEmpty(t, f.Title)
		assert.Equal(t, f.Title, f.Form()["title"])
	})

	t.Run("states override configure", func(t *testing.T) {
		title := fake.Sentence()
		f, err := testapp.ConfiguredRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		assert.Equal(t, title, f.WithTitle(title).Form()["title"])
	})

	t.Run("anonymous factory", func(t *testing.T) {
		f, err := k.Requests.New(nil)
		require.NoError(t, err)
		assert.Empty(t, f.Form())

		form := map[string]any{"foo": "bar", "7": nil}
		assert.Equal(t, form, f.Form(form))
	})

	t.Run("anonymous factory state", func(t *testing.T) {
		f, err := k.Requests.New(nil)
		require.NoError(t, err)
		state := map[string]any{"foo": "bar", "7": nil}
		assert.Equal(t, state, f.State(state).Form())
	})
}

func TestRequestFactory_Make(t *testing.T) {
	k := newKit(t)

	simple := func(t *testing.T) *testapp.SimpleRequestFactory {
		t.Helper()
		f, err := testapp.SimpleRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		return f
	}

	t.Run("defaults", func(t *testing.T) {
		r, err := simple(t).Make()
		require.NoError(t, err)
		assert.Equal(t, testapp.SimpleRequest{}, r.Subject())
		assert.Nil(t, r.User())
		require.NotNil(t, r.Route())
		assert.Equal(t, "/", r.Route().URI)
		assert.Equal(t, []string{http.MethodGet, http.MethodHead}, r.Route().Methods)
		assert.Empty(t, r.Route().Parameters)
	})

	t.Run("given inputs", func(t *testing.T) {
		r, err := simple(t).Make(map[string]any{"key": "value"})
		require.NoError(t, err)
		assert.Contains(t, r.All(), "key")
		assert.Equal(t, "value", r.Input("key"))
		assert.Equal(t, "Form title", r.Input("title"))
	})

	t.Run("as guest", func(t *testing.T) {
		r, err := simple(t).AsGuest().Make()
		require.NoError(t, err)
		assert.Nil(t, r.User())
	})

	t.Run("as user", func(t *testing.T) {
		user := &testapp.User{ID: 1}
		r, err := simple(t).As(user).Make()
		require.NoError(t, err)
		assert.Same(t, user, r.User())
	})

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		t.Run("method "+method, func(t *testing.T) {
			r, err := simple(t).Method(method).Make()
			require.NoError(t, err)
			assert.Contains(t, r.Route().Methods, method)
		})
	}

	for name, value := range map[string]any{"nil": nil, "digit": 7, "word": "slug"} {
		t.Run("route param "+name, func(t *testing.T) {
			r, err := simple(t).RouteParam("key", value).Make()
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"key": value}, r.Route().Parameters)
		})
	}

	t.Run("named route", func(t *testing.T) {
		r, err := simple(t).Route("welcome").Make()
		require.NoError(t, err)
		assert.Equal(t, "/welcome", r.Route().URI)
		assert.Equal(t, "localhost", r.URL.Host)
		assert.Equal(t, "/welcome", r.URL.Path)
	})
}

func TestRequestFactory_Validate(t *testing.T) {
	k := newKit(t)

	simple := func(t *testing.T) *testapp.SimpleRequestFactory {
		t.Helper()
		f, err := testapp.SimpleRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		return f
	}
	authenticated := func(t *testing.T) *testapp.AuthenticatedRequestFactory {
		t.Helper()
		f, err := testapp.AuthenticatedRequest{}.Factory(k.Requests)
		require.NoError(t, err)
		return f
	}

	t.Run("rules", func(t *testing.T) {
		res, err := simple(t).Validate()
		require.NoError(t, err)
		res.AssertJSONMissingValidationErrors(t, "title")

		res, err = simple(t).WithoutTitle().Validate()
		require.NoError(t, err)
		res.AssertJSONValidationErrors(t, "title")
	})

	t.Run("validate overrides", func(t *testing.T) {
		res, err := simple(t).WithoutTitle().Validate()
		require.NoError(t, err)
		res.AssertJSONValidationErrors(t, "title")

		res, err = simple(t).WithoutTitle().Validate(map[string]any{"title": "A word"})
		require.NoError(t, err)
		res.AssertJSONMissingValidationErrors(t, "title")
	})

	t.Run("user resolution", func(t *testing.T) {
		res, err := authenticated(t).AsGuest().Validate()
		require.NoError(t, err)
		res.AssertStatus(t, http.StatusInternalServerError)

		res, err = authenticated(t).As(&testapp.User{IsAdmin: false}).Validate()
		require.NoError(t, err)
		res.AssertForbidden(t)

		admin := &testapp.User{IsAdmin: true}
		res, err = authenticated(t).As(admin).Validate()
		require.NoError(t, err)
		res.AssertJSONValidationErrors(t, "title")

		res, err = authenticated(t).WithTitle().As(admin).Validate()
		require.NoError(t, err)
		res.AssertSuccessful(t)
	})

	t.Run("configure error", func(t *testing.T) {
		_, err := k.Requests.New(failingFactory{})
		assert.ErrorContains(t, err, "Should throw an error")
	})
}

type failingFactory struct{}

func (failingFactory) Definition(*request.Factory) map[string]any { return nil }

func (failingFactory) Configure(*request.Factory) error {
	return errors.New("Should throw an error")
}
