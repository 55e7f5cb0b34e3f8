package resource

import (
	"reflect"
	"strings"
)

// RelationLoader is implemented by models that resolve their own relations.
type RelationLoader interface {
	Relation(name string) (any, bool)
}

// Relation returns the relation name of model.
//
// A RelationLoader is asked first. A map[string]any is indexed by name. A
// struct, or a pointer to one, is searched for a field whose json tag is
// name, then for a field whose name matches case-insensitively.
func Relation(model any, name string) (any, bool) {
	if model == nil {
		return nil, false
	}
	if l, ok := model.(RelationLoader); ok {
		return l.Relation(name)
	}
	if m, ok := model.(map[string]any); ok {
		v, found := m[name]
		return v, found
	}

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == name {
			return rv.Field(i).Interface(), true
		}
	}
	for i := range rt.NumField() {
		field := rt.Field(i)
		if field.IsExported() && strings.EqualFold(field.Name, name) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

// IsCollection reports whether v is a slice or array of models.
func IsCollection(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
