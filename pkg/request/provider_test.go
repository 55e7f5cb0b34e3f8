package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/registry"
	"github.com/getmockd/factories/pkg/request"
)

func TestProvider_Factory(t *testing.T) {
	t.Run("conventional factory", func(t *testing.T) {
		p := newTestProvider()
		b, err := p.Factory(storePostRequest{})
		require.NoError(t, err)
		assert.IsType(t, &storePostRequestFactory{}, b)
		assert.Equal(t, "tests/requestfactories/StorePostRequestFactory", b.Base().Name())
		assert.Equal(t, storePostRequest{}, b.Base().Subject())
	})

	t.Run("override hook", func(t *testing.T) {
		p := newTestProvider()
		b, err := p.Factory(overriddenRequest{})
		require.NoError(t, err)
		assert.IsType(t, &storePostRequestFactory{}, b)
		assert.Equal(t, overriddenRequest{}, b.Base().Subject())
	})

	t.Run("nil override falls back to convention", func(t *testing.T) {
		p := newTestProvider()
		require.NoError(t, p.RegisterFor(fallbackRequest{}, newStorePostRequestFactory))

		b, err := p.Factory(fallbackRequest{})
		require.NoError(t, err)
		assert.Equal(t, fallbackRequest{}, b.Base().Subject())
	})

	t.Run("missing factory", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		_, err := p.Factory(storePostRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, registry.ErrNotFound)
		assert.Contains(t, err.Error(), "tests/requestfactories/StorePostRequestFactory")
	})

	t.Run("typed lookup", func(t *testing.T) {
		p := newTestProvider()
		f, err := request.For[*storePostRequestFactory](p, storePostRequest{})
		require.NoError(t, err)
		assert.NotContains(t, f.WithoutTitle().Form(), "title")
	})

	t.Run("typed lookup mismatch", func(t *testing.T) {
		p := newTestProvider()
		_, err := request.For[*request.Factory](p, storePostRequest{})
		assert.ErrorContains(t, err, "not *request.Factory")
	})

	t.Run("duplicate registration", func(t *testing.T) {
		p := newTestProvider()
		err := p.RegisterFor(storePostRequest{}, newStorePostRequestFactory)
		assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
	})
}

func TestProvider_New(t *testing.T) {
	t.Run("configure runs once", func(t *testing.T) {
		p := request.NewProvider(testResolver, request.WithFaker(func() *faker.Faker { return faker.NewSeeded(7) }))
		c := &configuredFactory{}
		_, err := p.New(c)
		require.NoError(t, err)
		assert.NotEmpty(t, c.title)
	})

	t.Run("seeded fakers repeat", func(t *testing.T) {
		p := request.NewProvider(testResolver, request.WithFaker(func() *faker.Faker { return faker.NewSeeded(7) }))
		a, b := &configuredFactory{}, &configuredFactory{}
		_, err := p.New(a)
		require.NoError(t, err)
		_, err = p.New(b)
		require.NoError(t, err)
		assert.Equal(t, a.title, b.title)
	})

	t.Run("configure error", func(t *testing.T) {
		p := request.NewProvider(testResolver)
		_, err := p.New(misconfiguredFactory{})
		assert.EqualError(t, err, "request: configure tests/requestfactories/MisconfiguredRequestFactory: missing fixture")
	})

	t.Run("subject lookup", func(t *testing.T) {
		p := newTestProvider()
		s, err := p.Subject("app/http/requests/StorePostRequest")
		require.NoError(t, err)
		assert.Equal(t, storePostRequest{}, s)

		_, err = p.Subject("app/http/requests/Nope")
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})
}
