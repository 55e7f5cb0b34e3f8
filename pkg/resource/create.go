package resource

import (
	"strconv"

	"github.com/getmockd/factories/pkg/assertjson"
)

// Create returns the assertion for the JSON the subject renders to. It is
// not run until handed a scope, usually through
// testresponse.Response.AssertJSON. An error recorded by a fluent call
// fails the assertion instead.
func (f *Factory) Create() assertjson.Callback {
	if err := f.err; err != nil {
		return func(j *assertjson.JSON) {
			j.Fail("%v", err)
		}
	}

	switch f.kind {
	case subjectPage:
		items, page := f.items, f.page
		return func(j *assertjson.JSON) {
			j.Has("data", func(data *assertjson.JSON) {
				f.eachItem(data, items)
			})
			j.Has("meta", func(meta *assertjson.JSON) {
				meta.
					Where("current_page", page.currentPage).
					Where("from", page.from).
					Where("to", page.to).
					Where("total", page.total).
					Where("last_page", page.lastPage).
					Has("links").
					Has("path").
					Where("per_page", page.perPage)
			})
			j.Has("links")
		}

	case subjectCollection:
		items, wrapper := f.items, f.wrapper
		return func(j *assertjson.JSON) {
			if wrapper != "" {
				j.Has(wrapper, func(data *assertjson.JSON) { data.Etc() })
				return
			}
			f.eachItem(j, items)
		}
	}

	model, wrapper := f.model, f.wrapper
	return func(j *assertjson.JSON) {
		if wrapper == "" {
			f.assert(j, model)
			return
		}
		j.Has(wrapper, func(data *assertjson.JSON) {
			f.assert(data, model)
		})
	}
}

func (f *Factory) eachItem(j *assertjson.JSON, items []any) {
	for i, item := range items {
		j.Has(strconv.Itoa(i), func(scope *assertjson.JSON) {
			f.assert(scope, item)
		})
	}
}

// assert runs the definition for model, then the assertions of every
// loaded relation.
func (f *Factory) assert(j *assertjson.JSON, model any) {
	f.current = model
	f.definition(j)

	for _, l := range f.loaded {
		value, ok := Relation(model, l.relation)
		if !ok || isNil(value) {
			j.Fail("Relation [%s] is not loaded.", l.relation)
			continue
		}

		b, err := f.provider.Factory(l.resource)
		if err != nil {
			j.Fail("Relation [%s]: %v", l.relation, err)
			continue
		}

		child := b.Base().Wrapper("").User(f.user)
		if IsCollection(value) {
			child.Collection(value)
		} else {
			child.Model(value)
		}
		if err := child.Err(); err != nil {
			j.Fail("Relation [%s]: %v", l.relation, err)
			continue
		}
		j.Has(l.key, child.Create())
	}
}
