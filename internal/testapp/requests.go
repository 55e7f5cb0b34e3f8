package testapp

import (
	"github.com/getmockd/factories/pkg/request"
	"github.com/getmockd/factories/pkg/validation"
)

func titleRules() *validation.Rules {
	return &validation.Rules{
		Fields: map[string]*validation.FieldValidator{
			"title": validation.String().AsRequired(),
		},
	}
}

// SimpleRequest requires a title.
type SimpleRequest struct{}

func (SimpleRequest) EntityName() string { return "app/http/requests/SimpleRequest" }

func (SimpleRequest) Rules(*request.Request) *validation.Rules { return titleRules() }

// Factory returns a new SimpleRequestFactory.
func (SimpleRequest) Factory(p *request.Provider) (*SimpleRequestFactory, error) {
	return request.For[*SimpleRequestFactory](p, SimpleRequest{})
}

// AuthenticatedRequest requires a title and an admin user. A guest makes the
// policy fail with a server error.
type AuthenticatedRequest struct{}

var adminPolicy = request.MustExprPolicy("user.is_admin")

func (AuthenticatedRequest) EntityName() string { return "app/http/requests/AuthenticatedRequest" }

func (AuthenticatedRequest) Rules(*request.Request) *validation.Rules { return titleRules() }

func (AuthenticatedRequest) Authorize(r *request.Request) (bool, error) {
	return adminPolicy.Authorize(r)
}

// Factory returns a new AuthenticatedRequestFactory.
func (AuthenticatedRequest) Factory(p *request.Provider) (*AuthenticatedRequestFactory, error) {
	return request.For[*AuthenticatedRequestFactory](p, AuthenticatedRequest{})
}

// ConfiguredRequest requires a title.
type ConfiguredRequest struct{}

func (ConfiguredRequest) EntityName() string { return "app/http/requests/ConfiguredRequest" }

func (ConfiguredRequest) Rules(*request.Request) *validation.Rules { return titleRules() }

// Factory returns a new ConfiguredRequestFactory.
func (ConfiguredRequest) Factory(p *request.Provider) (*ConfiguredRequestFactory, error) {
	return request.For[*ConfiguredRequestFactory](p, ConfiguredRequest{})
}

// NewRequest has no rules and builds its factory itself.
type NewRequest struct{}

func (NewRequest) EntityName() string { return "app/http/requests/NewRequest" }

func (NewRequest) Rules(*request.Request) *validation.Rules { return nil }

func (NewRequest) NewFactory(p *request.Provider) (request.Builder, error) {
	return NewAnotherRequestFactory(p)
}

// Factory returns a new AnotherRequestFactory.
func (NewRequest) Factory(p *request.Provider) (*AnotherRequestFactory, error) {
	return request.For[*AnotherRequestFactory](p, NewRequest{})
}
