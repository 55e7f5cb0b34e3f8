package resource

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"

	"github.com/getmockd/factories/pkg/assertjson"
	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/naming"
	"github.com/getmockd/factories/pkg/pagination"
	"github.com/getmockd/factories/pkg/request"
	"github.com/getmockd/factories/pkg/testresponse"
)

// DefaultPerPage is the page size assumed by Pagination.
const DefaultPerPage = 15

type subjectKind int

const (
	subjectNone subjectKind = iota
	subjectModel
	subjectCollection
	subjectPage
)

type loaded struct {
	key      string
	resource Resource
	relation string
}

// pageState holds the scalars asserted on the meta object of a page.
type pageState struct {
	perPage     int
	currentPage int
	from        int
	to          int
	total       int
	lastPage    int
}

// PageOption overrides one of the scalars expected in pagination meta.
type PageOption func(*pageState)

// PerPage sets the expected per_page.
func PerPage(n int) PageOption { return func(s *pageState) { s.perPage = n } }

// CurrentPage sets the expected current_page.
func CurrentPage(n int) PageOption { return func(s *pageState) { s.currentPage = n } }

// From sets the expected from.
func From(n int) PageOption { return func(s *pageState) { s.from = n } }

// To sets the expected to.
func To(n int) PageOption { return func(s *pageState) { s.to = n } }

// Total sets the expected total.
func Total(n int) PageOption { return func(s *pageState) { s.total = n } }

// LastPage sets the expected last_page.
func LastPage(n int) PageOption { return func(s *pageState) { s.lastPage = n } }

// Factory renders a resource and asserts on its JSON.
type Factory struct {
	provider *Provider
	definer  Definer
	name     string
	resource Resource

	kind      subjectKind
	model     any
	items     []any
	paginator *pagination.Paginator
	page      pageState

	wrapper string
	user    any
	loaded  []loaded

	current any
	faker   *faker.Faker
	logger  *slog.Logger
	err     error
}

func newFactory(p *Provider, definer Definer) *Factory {
	f := &Factory{
		provider: p,
		definer:  definer,
		name:     naming.NameOf(definer),
		wrapper:  DefaultWrapper,
		faker:    p.newFaker(),
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

// Current returns the model being asserted on. Only meaningful inside
// Definition.
func (f *Factory) Current() any { return f.current }

// Authenticated returns the user set with User.
func (f *Factory) Authenticated() any { return f.user }

// For binds the resource explicitly.
func (f *Factory) For(res Resource) *Factory {
	f.resource = res
	return f
}

// Resource returns the bound resource, or the one inferred from the factory
// name. It is nil when neither exists.
func (f *Factory) Resource() Resource {
	res, _ := f.resolveResource()
	return res
}

// Model makes a single model the subject.
func (f *Factory) Model(m any) *Factory {
	f.kind = subjectModel
	f.model = m
	f.items = nil
	f.paginator = nil
	return f
}

// Collection makes items, a slice or array, the subject.
func (f *Factory) Collection(items any) *Factory {
	if items != nil && !IsCollection(items) {
		f.fail(fmt.Errorf("resource: collection of %T: not a slice or array", items))
		return f
	}
	f.kind = subjectCollection
	f.model = nil
	f.items = toSlice(items)
	f.paginator = nil
	return f
}

// Pagination makes the current page of p the subject.
//
// The expected meta scalars default to per_page 15, current_page 1, from 1,
// to and total equal to the item count of the page, and last_page
// ceil(total/per_page).
func (f *Factory) Pagination(p *pagination.Paginator, opts ...PageOption) *Factory {
	if p == nil {
		f.fail(fmt.Errorf("resource: nil paginator"))
		return f
	}
	f.kind = subjectPage
	f.model = nil
	f.items = p.Items()
	f.paginator = p

	count := p.Count()
	s := pageState{perPage: DefaultPerPage, currentPage: 1, from: 1, to: count, total: count, lastPage: -1}
	for _, opt := range opts {
		opt(&s)
	}
	if s.perPage <= 0 {
		s.perPage = DefaultPerPage
	}
	if s.lastPage < 0 {
		s.lastPage = int(math.Ceil(float64(s.total) / float64(s.perPage)))
	}
	f.page = s
	return f
}

// User sets the authenticated user of the rendering request.
func (f *Factory) User(u any) *Factory {
	f.user = u
	return f
}

// With asserts the relation of the model under key with the factory of
// related. relation defaults to key.
func (f *Factory) With(key string, related Resource, relation ...string) *Factory {
	rel := key
	if len(relation) > 0 && relation[0] != "" {
		rel = relation[0]
	}
	for i, l := range f.loaded {
		if l.key == key {
			f.loaded[i] = loaded{key: key, resource: related, relation: rel}
			return f
		}
	}
	f.loaded = append(f.loaded, loaded{key: key, resource: related, relation: rel})
	return f
}

// Wrapper sets the envelope key. "" disables wrapping.
func (f *Factory) Wrapper(name string) *Factory {
	f.wrapper = name
	return f
}

// Make binds the resource to the subject.
func (f *Factory) Make() (*JSONResource, error) {
	if f.err != nil {
		return nil, f.err
	}
	res, err := f.resolveResource()
	if err != nil {
		return nil, err
	}

	var j *JSONResource
	switch f.kind {
	case subjectPage:
		j = Paginated(res, f.paginator)
	case subjectCollection:
		j = Collection(res, f.items)
	default:
		j = New(res, f.model)
	}
	return j.Wrap(f.wrapper), nil
}

// ToArray renders the resource without its envelope.
func (f *Factory) ToArray() (any, error) {
	j, err := f.Make()
	if err != nil {
		return nil, err
	}
	return j.ToArray(f.request()), nil
}

// Response renders the resource as an HTTP response.
func (f *Factory) Response() (*testresponse.Response, error) {
	j, err := f.Make()
	if err != nil {
		return nil, err
	}

	r := f.request()
	rec := httptest.NewRecorder()
	if err := j.ToResponse(rec, r); err != nil {
		return nil, err
	}
	f.logger.Debug("rendered resource", "status", rec.Code, "size", rec.Body.Len())
	return testresponse.FromRecorder(rec).WithRequest(r.Request), nil
}

// JSON renders the resource and decodes the response body. It is a
// map[string]any, or a []any for a collection rendered without a wrapper.
func (f *Factory) JSON() (any, error) {
	res, err := f.Response()
	if err != nil {
		return nil, err
	}
	var body any
	if err := res.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

func (f *Factory) request() *request.Request {
	httpReq, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, request.BaseURL+"/", http.NoBody)
	httpReq.Header.Set("Accept", "application/json")
	r := request.NewRequest(httpReq)
	user := f.user
	r.SetUserResolver(func() any { return user })
	return r
}

func (f *Factory) resolveResource() (Resource, error) {
	if f.resource != nil {
		return f.resource, nil
	}
	if f.name == "" {
		return nil, ErrNoResource
	}
	name := f.provider.resolver.ResolveSubject(f.name)
	res, err := f.provider.resources.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoResource, err)
	}
	return res, nil
}

func (f *Factory) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// definition runs the user assertions for the current model.
func (f *Factory) definition(j *assertjson.JSON) {
	if f.definer != nil {
		f.definer.Definition(f, j)
	}
}
