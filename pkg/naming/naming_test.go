package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var requests = Resolver{
	SubjectRoot: "app/http/requests/",
	FactoryRoot: "tests/requestfactories/",
}

func TestResolveFactory(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"app/http/requests/SimpleRequest", "tests/requestfactories/SimpleRequestFactory"},
		{"app/http/requests/user/StoreRequest", "tests/requestfactories/user/StoreRequestFactory"},
		{"app/http/requests/a/b/c/DeepRequest", "tests/requestfactories/a/b/c/DeepRequestFactory"},
		// names outside the subject root are not rejected
		{"SimpleRequest", "tests/requestfactories/SimpleRequestFactory"},
		{"other/SimpleRequest", "tests/requestfactories/other/SimpleRequestFactory"},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, requests.ResolveFactory(tt.subject))
		})
	}
}

func TestResolveSubject(t *testing.T) {
	tests := []struct {
		factory string
		want    string
	}{
		{"tests/requestfactories/SimpleRequestFactory", "app/http/requests/SimpleRequest"},
		{"tests/requestfactories/user/StoreRequestFactory", "app/http/requests/user/StoreRequest"},
		{"SimpleRequestFactory", "app/http/requests/SimpleRequest"},
		{"tests/requestfactories/NoSuffix", "app/http/requests/NoSuffix"},
	}

	for _, tt := range tests {
		t.Run(tt.factory, func(t *testing.T) {
			assert.Equal(t, tt.want, requests.ResolveSubject(tt.factory))
		})
	}
}

func TestResolver_RoundTrip(t *testing.T) {
	subjects := []string{
		"app/http/requests/SimpleRequest",
		"app/http/requests/user/StoreRequest",
		"app/http/requests/admin/posts/UpdateRequest",
	}
	for _, s := range subjects {
		assert.Equal(t, s, requests.ResolveSubject(requests.ResolveFactory(s)))
	}

	factories := []string{
		"tests/requestfactories/SimpleRequestFactory",
		"tests/requestfactories/user/StoreRequestFactory",
	}
	for _, f := range factories {
		assert.Equal(t, f, requests.ResolveFactory(requests.ResolveSubject(f)))
	}
}

func TestResolver_EmptyRoots(t *testing.T) {
	var r Resolver
	assert.Equal(t, "UserResourceFactory", r.ResolveFactory("UserResource"))
	assert.Equal(t, "UserResource", r.ResolveSubject("UserResourceFactory"))
}

type named struct{}

func (named) EntityName() string { return "app/http/resources/UserResource" }

type plain struct{}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "app/http/resources/UserResource", NameOf(named{}))
	assert.Equal(t, "github.com/getmockd/factories/pkg/naming/plain", NameOf(plain{}))
	assert.Equal(t, "github.com/getmockd/factories/pkg/naming/plain", NameOf(&plain{}))
	assert.Equal(t, "", NameOf(nil))
	assert.Equal(t, "", NameOf(struct{}{}))
	assert.Equal(t, "string", NameOf("x"))
}

func TestBase(t *testing.T) {
	assert.Equal(t, "StoreRequest", Base("app/http/requests/user/StoreRequest"))
	assert.Equal(t, "StoreRequest", Base("StoreRequest"))
}
