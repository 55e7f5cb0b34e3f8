package resource

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"slices"

	"github.com/getmockd/factories/pkg/httputil"
	"github.com/getmockd/factories/pkg/pagination"
	"github.com/getmockd/factories/pkg/request"
)

// DefaultWrapper is the envelope key of a rendered resource.
const DefaultWrapper = "data"

// Resource turns a model into its JSON representation. Map values may be
// nested *JSONResource values or Missing.
type Resource interface {
	ToArray(r *request.Request, model any) map[string]any
}

type missing struct{}

// Missing drops the key holding it from a rendered resource.
var Missing any = missing{}

// WhenLoaded renders the relation of model with res, or returns Missing when
// it is absent or nil.
func WhenLoaded(model any, relation string, res Resource) any {
	v, ok := Relation(model, relation)
	if !ok || isNil(v) {
		return Missing
	}
	if IsCollection(v) {
		return Collection(res, v)
	}
	return New(res, v)
}

// JSONResource is a resource bound to a model, a collection or a paginator.
type JSONResource struct {
	resource   Resource
	model      any
	items      []any
	paginator  *pagination.Paginator
	collection bool
	wrapper    string
}

// New binds res to a single model.
func New(res Resource, model any) *JSONResource {
	return &JSONResource{resource: res, model: model, wrapper: DefaultWrapper}
}

// Collection binds res to every element of items, a slice or array.
// Anything else is treated as a one element collection.
func Collection(res Resource, items any) *JSONResource {
	return &JSONResource{resource: res, items: toSlice(items), collection: true, wrapper: DefaultWrapper}
}

// Paginated binds res to the current page of p.
func Paginated(res Resource, p *pagination.Paginator) *JSONResource {
	return &JSONResource{resource: res, items: p.Items(), paginator: p, collection: true, wrapper: DefaultWrapper}
}

// Wrap sets the envelope key. "" renders models and collections bare.
func (j *JSONResource) Wrap(wrapper string) *JSONResource {
	j.wrapper = wrapper
	return j
}

// Resource returns the bound resource.
func (j *JSONResource) Resource() Resource { return j.resource }

// Model returns the bound model, nil for collections.
func (j *JSONResource) Model() any { return j.model }

// Items returns the bound collection.
func (j *JSONResource) Items() []any { return j.items }

// IsCollection reports whether a collection or page is bound.
func (j *JSONResource) IsCollection() bool { return j.collection }

// Paginator returns the bound paginator, if any.
func (j *JSONResource) Paginator() *pagination.Paginator { return j.paginator }

// ToArray renders the resource without its envelope: a map for a model, a
// slice of maps for a collection. A nil model renders as an empty map.
func (j *JSONResource) ToArray(r *request.Request) any {
	if !j.collection {
		return j.render(r, j.model)
	}
	out := make([]any, 0, len(j.items))
	for _, item := range j.items {
		out = append(out, j.render(r, item))
	}
	return out
}

// Envelope returns the full response body.
//
// A model is wrapped unless the wrapper is empty or its data already holds
// the wrapper key. A page is always wrapped, under "data" when the wrapper
// is empty, and carries links and meta.
func (j *JSONResource) Envelope(r *request.Request) any {
	data := j.ToArray(r)

	if j.paginator != nil {
		key := j.wrapper
		if key == "" {
			key = DefaultWrapper
		}
		return map[string]any{
			key:     data,
			"links": j.paginator.LinksMeta(),
			"meta":  j.paginator.Meta(),
		}
	}

	if j.wrapper == "" {
		return data
	}
	if m, ok := data.(map[string]any); ok {
		if _, wrapped := m[j.wrapper]; wrapped {
			return m
		}
	}
	return map[string]any{j.wrapper: data}
}

// ToResponse writes the envelope as a 200 JSON response.
func (j *JSONResource) ToResponse(w http.ResponseWriter, r *request.Request) error {
	body, err := json.Marshal(j.Envelope(r))
	if err != nil {
		return fmt.Errorf("resource: encode response: %w", err)
	}
	w.Header().Set("Content-Type", httputil.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

func (j *JSONResource) render(r *request.Request, model any) map[string]any {
	if model == nil || j.resource == nil {
		return map[string]any{}
	}
	return resolveMap(r, j.resource.ToArray(r, model))
}

func resolveMap(r *request.Request, m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == Missing {
			continue
		}
		out[k] = resolveValue(r, v)
	}
	return out
}

func resolveValue(r *request.Request, v any) any {
	switch tv := v.(type) {
	case *JSONResource:
		return tv.ToArray(r)
	case map[string]any:
		return resolveMap(r, tv)
	case []any:
		out := make([]any, 0, len(tv))
		for _, item := range tv {
			if item == Missing {
				continue
			}
			out = append(out, resolveValue(r, item))
		}
		return out
	}
	return v
}

func toSlice(items any) []any {
	if items == nil {
		return []any{}
	}
	if s, ok := items.([]any); ok {
		return slices.Clone(s)
	}
	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{items}
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
