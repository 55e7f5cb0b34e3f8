package request

import (
	"context"
	"maps"
	"net/http"
	"strconv"
	"strings"

	"github.com/getmockd/factories/pkg/validation"
)

// FormRequest is a request subject: a named set of validation rules.
type FormRequest interface {
	Rules(r *Request) *validation.Rules
}

// Authorizer is implemented by subjects that restrict who may send them.
// Returning false yields a 403 response. An error or a panic yields a 500.
type Authorizer interface {
	Authorize(r *Request) (bool, error)
}

// FactoryProvider lets a subject build its own factory. Returning a nil
// Builder falls back to the conventional factory.
type FactoryProvider interface {
	NewFactory(p *Provider) (Builder, error)
}

// Definer supplies the default attributes of a factory.
type Definer interface {
	Definition(f *Factory) map[string]any
}

// Configurer is run once when a factory is constructed. An error aborts
// construction.
type Configurer interface {
	Configure(f *Factory) error
}

// Builder is any factory: *Factory itself, or a user type embedding it.
type Builder interface {
	Base() *Factory
}

// Constructor builds a user factory.
type Constructor func(p *Provider) (Builder, error)

// Pipeline validates a made request. A nil error means the request passed.
type Pipeline interface {
	Validate(ctx context.Context, r *Request) error
}

// PipelineFunc adapts a function to Pipeline.
type PipelineFunc func(ctx context.Context, r *Request) error

// Validate calls fn(ctx, r).
func (fn PipelineFunc) Validate(ctx context.Context, r *Request) error {
	return fn(ctx, r)
}

// Renderer turns a pipeline failure into a response.
type Renderer interface {
	Render(w http.ResponseWriter, r *Request, err error)
}

// Router resolves named routes. pairs alternate parameter names and values.
type Router interface {
	URL(name string, pairs ...string) (string, error)
}

// Route is the route binding attached to a made request.
type Route struct {
	Name       string
	Method     string
	URI        string
	Methods    []string
	Parameters map[string]any
}

// Param returns a route parameter.
func (r *Route) Param(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Parameters[key]
	return v, ok
}

// File is an uploaded file.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Request is a made request: the underlying *http.Request plus the decoded
// input, files, route binding and user resolver.
type Request struct {
	*http.Request

	subject      FormRequest
	input        map[string]any
	files        map[string][]File
	route        *Route
	userResolver func() any
}

// NewRequest wraps r without a subject or input. Resources are rendered
// against such a request.
func NewRequest(r *http.Request) *Request {
	return &Request{Request: r, input: map[string]any{}}
}

// Subject returns the form request this request was made for.
func (r *Request) Subject() FormRequest {
	return r.subject
}

// All returns a copy of the input.
func (r *Request) All() map[string]any {
	return maps.Clone(r.input)
}

// Input returns the input value at key. Dotted keys reach into nested maps
// and slices: "tags.0", "address.city". def is returned when key is absent.
func (r *Request) Input(key string, def ...any) any {
	if v, ok := lookup(r.input, key); ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Has reports whether every key is present in the input.
func (r *Request) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := lookup(r.input, k); !ok {
			return false
		}
	}
	return true
}

// User returns the authenticated user, or nil for a guest.
func (r *Request) User() any {
	if r.userResolver == nil {
		return nil
	}
	return r.userResolver()
}

// SetUserResolver replaces the user resolver.
func (r *Request) SetUserResolver(fn func() any) {
	r.userResolver = fn
}

// Route returns the route binding.
func (r *Request) Route() *Route {
	return r.route
}

// SetRoute replaces the route binding.
func (r *Request) SetRoute(route *Route) {
	r.route = route
}

// File returns the first file uploaded under key.
func (r *Request) File(key string) (File, bool) {
	files := r.files[key]
	if len(files) == 0 {
		return File{}, false
	}
	return files[0], true
}

// Files returns every uploaded file by key.
func (r *Request) Files() map[string][]File {
	return maps.Clone(r.files)
}

func lookup(data map[string]any, key string) (any, bool) {
	if v, ok := data[key]; ok {
		return v, true
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var current any = data
	for _, segment := range strings.Split(key, ".") {
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[segment]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			current = c[i]
		default:
			return nil, false
		}
	}
	return current, true
}
