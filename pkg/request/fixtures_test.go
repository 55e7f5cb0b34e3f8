package request_test

import (
	"errors"

	"github.com/getmockd/factories/pkg/naming"
	"github.com/getmockd/factories/pkg/request"
	"github.com/getmockd/factories/pkg/validation"
)

var testResolver = naming.Resolver{
	SubjectRoot: "app/http/requests/",
	FactoryRoot: "tests/requestfactories/",
}

type storePostRequest struct{}

func (storePostRequest) EntityName() string { return "app/http/requests/StorePostRequest" }

func (storePostRequest) Rules(*request.Request) *validation.Rules {
	return &validation.Rules{
		Fields: map[string]*validation.FieldValidator{
			"title": validation.String().AsRequired(),
		},
	}
}

type storePostRequestFactory struct {
	*request.Factory
}

func (*storePostRequestFactory) EntityName() string {
	return "tests/requestfactories/StorePostRequestFactory"
}

func (*storePostRequestFactory) Definition(*request.Factory) map[string]any {
	return map[string]any{"title": "Hello", "body": "World"}
}

func (f *storePostRequestFactory) WithoutTitle() *storePostRequestFactory {
	f.Unset("title")
	return f
}

func newStorePostRequestFactory(p *request.Provider) (request.Builder, error) {
	f := &storePostRequestFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

// policyRequest only admits admins.
type policyRequest struct {
	*request.ExprPolicy
}

func (policyRequest) EntityName() string { return "app/http/requests/PolicyRequest" }

func (policyRequest) Rules(*request.Request) *validation.Rules { return nil }

type erroringRequest struct{}

func (erroringRequest) Rules(*request.Request) *validation.Rules { return nil }

func (erroringRequest) Authorize(*request.Request) (bool, error) {
	return false, errors.New("database is down")
}

type panickingRequest struct{}

func (panickingRequest) Rules(*request.Request) *validation.Rules {
	panic("rules exploded")
}

// overriddenRequest builds its own factory.
type overriddenRequest struct{}

func (overriddenRequest) EntityName() string { return "app/http/requests/OverriddenRequest" }

func (overriddenRequest) Rules(*request.Request) *validation.Rules { return nil }

func (overriddenRequest) NewFactory(p *request.Provider) (request.Builder, error) {
	return newStorePostRequestFactory(p)
}

type fallbackRequest struct{}

func (fallbackRequest) EntityName() string { return "app/http/requests/FallbackRequest" }

func (fallbackRequest) Rules(*request.Request) *validation.Rules { return nil }

func (fallbackRequest) NewFactory(*request.Provider) (request.Builder, error) {
	return nil, nil
}

type misconfiguredFactory struct{}

func (misconfiguredFactory) EntityName() string {
	return "tests/requestfactories/MisconfiguredRequestFactory"
}

func (misconfiguredFactory) Definition(*request.Factory) map[string]any { return nil }

func (misconfiguredFactory) Configure(*request.Factory) error {
	return errors.New("missing fixture")
}

type configuredFactory struct {
	title string
}

func (*configuredFactory) Definition(*request.Factory) map[string]any { return nil }

func (c *configuredFactory) Configure(f *request.Factory) error {
	c.title = f.Faker().Sentence()
	return nil
}

type admin struct {
	ID      int  `json:"id"`
	IsAdmin bool `json:"is_admin"`
}

func newTestProvider(opts ...request.Option) *request.Provider {
	p := request.NewProvider(testResolver, opts...)
	_ = p.RegisterSubject(storePostRequest{})
	_ = p.RegisterFor(storePostRequest{}, newStorePostRequestFactory)
	return p
}

func storePostFactory(p *request.Provider) *storePostRequestFactory {
	f, err := request.For[*storePostRequestFactory](p, storePostRequest{})
	if err != nil {
		panic(err)
	}
	return f
}
