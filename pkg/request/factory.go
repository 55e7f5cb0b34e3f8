package request

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/getmockd/factories/pkg/attributes"
	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/naming"
)

// Defaults of a new factory.
const (
	DefaultMethod = http.MethodGet
	DefaultURI    = "/"
)

// Factory accumulates the state of one simulated request.
//
// Fluent methods return the factory itself. The first error raised by a
// fluent method is kept and returned by the next terminal call (Make,
// Validate).
type Factory struct {
	provider *Provider
	definer  Definer
	name     string
	subject  FormRequest

	attrs attributes.Bag

	method      string
	uri         string
	routeName   string
	routeParams map[string]any
	headers     http.Header
	cookies     []*http.Cookie
	files       map[string][]File
	content     []byte
	hasContent  bool

	userResolver func() any

	faker  *faker.Faker
	logger *slog.Logger
	err    error
}

func newFactory(p *Provider, definer Definer) *Factory {
	f := &Factory{
		provider:    p,
		definer:     definer,
		name:        naming.NameOf(definer),
		method:      DefaultMethod,
		uri:         DefaultURI,
		routeParams: make(map[string]any),
		headers:     http.Header{"Accept": []string{"application/json"}},
		files:       make(map[string][]File),
		faker:       p.newFaker(),
	}
	f.logger = p.logger.With("factory", f.name)
	return f
}

// Base returns f.
func (f *Factory) Base() *Factory { return f }

// Name returns the qualified name of the user factory.
func (f *Factory) Name() string { return f.name }

// Faker returns the fake data generator of this factory.
func (f *Factory) Faker() *faker.Faker { return f.faker }

// Err returns the first error recorded by a fluent call.
func (f *Factory) Err() error { return f.err }

func (f *Factory) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// For binds the subject explicitly.
func (f *Factory) For(subject FormRequest) *Factory {
	f.subject = subject
	return f
}

// Subject returns the bound subject, or the one inferred from the factory
// name. It is nil when neither exists.
func (f *Factory) Subject() FormRequest {
	s, _ := f.resolveSubject()
	return s
}

// Set writes an attribute override.
func (f *Factory) Set(key string, value any) *Factory {
	f.attrs.Set(key, value)
	return f
}

// Unset removes attributes from the materialized form.
func (f *Factory) Unset(keys ...string) *Factory {
	f.attrs.Unset(keys...)
	return f
}

// State writes several attribute overrides.
func (f *Factory) State(values map[string]any) *Factory {
	f.attrs.State(values)
	return f
}

// Create applies overrides and returns f.
func (f *Factory) Create(overrides ...map[string]any) *Factory {
	for _, o := range overrides {
		f.attrs.State(o)
	}
	return f
}

// Form applies overrides and returns the materialized attributes.
func (f *Factory) Form(overrides ...map[string]any) map[string]any {
	var definition map[string]any
	if f.definer != nil {
		definition = f.definer.Definition(f)
	}

	var merged map[string]any
	for _, o := range overrides {
		if merged == nil {
			merged = make(map[string]any, len(o))
		}
		for k, v := range o {
			merged[k] = v
		}
	}
	return f.attrs.Materialize(definition, merged)
}

// AsGuest makes the request unauthenticated.
func (f *Factory) AsGuest() *Factory {
	f.userResolver = func() any { return nil }
	return f
}

// As authenticates the request as user.
func (f *Factory) As(user any) *Factory {
	f.userResolver = func() any { return user }
	return f
}

// User is As.
func (f *Factory) User(user any) *Factory {
	return f.As(user)
}

// Method sets the HTTP method.
func (f *Factory) Method(method string) *Factory {
	f.method = strings.ToUpper(method)
	return f
}

// URI sets the request URI. It clears a named route set earlier.
func (f *Factory) URI(uri string) *Factory {
	f.uri = uri
	f.routeName = ""
	return f
}

// Route targets a named route. The URL is resolved through the router when
// the request is made, using the route parameters set by then.
func (f *Factory) Route(name string) *Factory {
	f.routeName = name
	return f
}

// RouteParam sets a route parameter.
func (f *Factory) RouteParam(key string, value any) *Factory {
	f.routeParams[key] = value
	return f
}

// Header sets a request header.
func (f *Factory) Header(key, value string) *Factory {
	f.headers.Set(key, value)
	return f
}

// Cookie adds a request cookie.
func (f *Factory) Cookie(name, value string) *Factory {
	f.cookies = append(f.cookies, &http.Cookie{Name: name, Value: value})
	return f
}

// File attaches uploaded files under key. The request is sent as
// multipart/form-data.
func (f *Factory) File(key string, files ...File) *Factory {
	f.files[key] = append(f.files[key], files...)
	return f
}

// Content sets the raw request body. Attributes are then only sent in the
// query string of GET, HEAD and DELETE requests.
func (f *Factory) Content(body []byte) *Factory {
	f.content = body
	f.hasContent = true
	return f
}
