package testapp

import (
	"github.com/getmockd/factories/pkg/request"
)

// SimpleRequestFactory builds SimpleRequest.
type SimpleRequestFactory struct {
	*request.Factory
}

// NewSimpleRequestFactory is the Constructor of SimpleRequestFactory.
func NewSimpleRequestFactory(p *request.Provider) (request.Builder, error) {
	f := &SimpleRequestFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

func (*SimpleRequestFactory) EntityName() string {
	return "tests/requestfactories/SimpleRequestFactory"
}

func (*SimpleRequestFactory) Definition(*request.Factory) map[string]any {
	return map[string]any{"title": "Form title"}
}

// WithRandom adds a random value.
func (f *SimpleRequestFactory) WithRandom() *SimpleRequestFactory {
	f.Set("unique_random", f.Faker().UUID())
	return f
}

// SomeState sets state_key.
func (f *SimpleRequestFactory) SomeState(value string) *SimpleRequestFactory {
	f.Set("state_key", value)
	return f
}

// WithoutTitle removes the title.
func (f *SimpleRequestFactory) WithoutTitle() *SimpleRequestFactory {
	f.Unset("title")
	return f
}

// Title sets the title.
func (f *SimpleRequestFactory) Title(title string) *SimpleRequestFactory {
	f.Set("title", title)
	return f
}

// AuthenticatedRequestFactory builds AuthenticatedRequest. Its definition
// is empty.
type AuthenticatedRequestFactory struct {
	*request.Factory
}

// NewAuthenticatedRequestFactory is the Constructor of
// AuthenticatedRequestFactory.
func NewAuthenticatedRequestFactory(p *request.Provider) (request.Builder, error) {
	f := &AuthenticatedRequestFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

func (*AuthenticatedRequestFactory) EntityName() string {
	return "tests/requestfactories/AuthenticatedRequestFactory"
}

func (*AuthenticatedRequestFactory) Definition(*request.Factory) map[string]any { return nil }

// WithTitle sets a fake title.
func (f *AuthenticatedRequestFactory) WithTitle() *AuthenticatedRequestFactory {
	f.Set("title", f.Faker().Sentence())
	return f
}

// ConfiguredRequestFactory picks its title when constructed.
type ConfiguredRequestFactory struct {
	*request.Factory

	Title string
}

// NewConfiguredRequestFactory is the Constructor of ConfiguredRequestFactory.
func NewConfiguredRequestFactory(p *request.Provider) (request.Builder, error) {
	f := &ConfiguredRequestFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

func (*ConfiguredRequestFactory) EntityName() string {
	return "tests/requestfactories/ConfiguredRequestFactory"
}

func (c *ConfiguredRequestFactory) Configure(f *request.Factory) error {
	c.Title = f.Faker().Sentence()
	return nil
}

func (c *ConfiguredRequestFactory) Definition(*request.Factory) map[string]any {
	return map[string]any{"title": c.Title}
}

// WithTitle replaces the configured title.
func (c *ConfiguredRequestFactory) WithTitle(title string) *ConfiguredRequestFactory {
	c.Title = title
	return c
}

// AnotherRequestFactory always targets SimpleRequest.
type AnotherRequestFactory struct {
	*request.Factory
}

// NewAnotherRequestFactory is the Constructor of AnotherRequestFactory.
func NewAnotherRequestFactory(p *request.Provider) (request.Builder, error) {
	f := &AnotherRequestFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base.For(SimpleRequest{})
	return f, nil
}

func (*AnotherRequestFactory) EntityName() string {
	return "tests/requestfactories/AnotherRequestFactory"
}

func (*AnotherRequestFactory) Definition(*request.Factory) map[string]any { return nil }
