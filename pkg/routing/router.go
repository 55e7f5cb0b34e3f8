// Package routing holds the named routes a request factory resolves URLs from.
package routing

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gorilla/mux"
)

// ErrRouteNotFound is returned when no route is registered under a name.
var ErrRouteNotFound = errors.New("route not found")

// Route describes a named route.
type Route struct {
	Name    string
	Path    string
	Methods []string
}

// Router is a registry of named routes backed by a gorilla/mux router.
// Routes without a handler answer 204.
type Router struct {
	mux *mux.Router
}

// New creates an empty Router.
func New() *Router {
	return &Router{mux: mux.NewRouter()}
}

// Handle registers a named route. A nil handler is allowed.
func (r *Router) Handle(name, path string, h http.Handler, methods ...string) *Router {
	if h == nil {
		h = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	}
	route := r.mux.Handle(path, h).Name(name)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
	return r
}

// Get registers a named GET route.
func (r *Router) Get(name, path string) *Router {
	return r.Handle(name, path, nil, http.MethodGet, http.MethodHead)
}

// Post registers a named POST route.
func (r *Router) Post(name, path string) *Router {
	return r.Handle(name, path, nil, http.MethodPost)
}

// Put registers a named PUT route.
func (r *Router) Put(name, path string) *Router {
	return r.Handle(name, path, nil, http.MethodPut)
}

// Delete registers a named DELETE route.
func (r *Router) Delete(name, path string) *Router {
	return r.Handle(name, path, nil, http.MethodDelete)
}

// URL builds the path of a named route. pairs are alternating parameter
// names and values: URL("posts.show", "post", "5") -> "/posts/5".
func (r *Router) URL(name string, pairs ...string) (string, error) {
	route := r.mux.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("building url for route %s: %w", name, err)
	}
	return u.String(), nil
}

// Lookup returns the named route.
func (r *Router) Lookup(name string) (Route, error) {
	route := r.mux.Get(name)
	if route == nil {
		return Route{}, fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	path, _ := route.GetPathTemplate()
	methods, _ := route.GetMethods()
	return Route{Name: name, Path: path, Methods: methods}, nil
}

// Names returns the registered route names, sorted.
func (r *Router) Names() []string {
	var names []string
	_ = r.mux.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if n := route.GetName(); n != "" {
			names = append(names, n)
		}
		return nil
	})
	slices.Sort(names)
	return names
}

// ServeHTTP dispatches to the registered routes.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
