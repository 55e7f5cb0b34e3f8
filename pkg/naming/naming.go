// Package naming maps subject names to factory names and back.
//
// Names are slash-separated qualified names such as
// "app/http/requests/user/StoreRequest". A Resolver swaps the subject root for
// the factory root and appends (or strips) the "Factory" suffix. Nested
// segments between the root and the type name are kept as they are.
package naming

import (
	"reflect"
	"strings"
)

// Suffix is appended to a subject name to form its factory name.
const Suffix = "Factory"

// Resolver converts between subject and factory names.
//
// Both directions are permissive: a name that does not start with the
// expected root is not rejected, the root is simply prepended to it.
type Resolver struct {
	SubjectRoot string
	FactoryRoot string
}

// ResolveFactory returns the factory name for a subject name.
func (r Resolver) ResolveFactory(subject string) string {
	return r.FactoryRoot + strings.TrimPrefix(subject, r.SubjectRoot) + Suffix
}

// ResolveSubject returns the subject name for a factory name.
func (r Resolver) ResolveSubject(factory string) string {
	return r.SubjectRoot + strings.TrimSuffix(strings.TrimPrefix(factory, r.FactoryRoot), Suffix)
}

// Namer is implemented by types that declare their own qualified name.
type Namer interface {
	EntityName() string
}

// NameOf returns the qualified name of v.
//
// A Namer wins. Otherwise the name is built from the package path and type
// name of v, with pointers dereferenced. Unnamed types yield "".
func NameOf(v any) string {
	if v == nil {
		return ""
	}
	if n, ok := v.(Namer); ok {
		return n.EntityName()
	}
	return TypeName(reflect.TypeOf(v))
}

// TypeName returns "pkgpath/Name" for a named type, following pointers.
func TypeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "/" + t.Name()
}

// Base returns the last segment of a qualified name.
func Base(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
