package testapp

import (
	"github.com/getmockd/factories/pkg/request"
	"github.com/getmockd/factories/pkg/resource"
)

// SimpleResource renders a user's username.
type SimpleResource struct{}

func (SimpleResource) EntityName() string { return "app/http/resources/SimpleResource" }

func (SimpleResource) ToArray(_ *request.Request, model any) map[string]any {
	u := asUser(model)
	return map[string]any{"username": u.Username}
}

// AnotherResource renders a user's username next to the authenticated
// user's. It builds its factory itself.
type AnotherResource struct{}

func (AnotherResource) EntityName() string { return "app/http/resources/AnotherResource" }

func (AnotherResource) ToArray(r *request.Request, model any) map[string]any {
	var auth string
	if u := asUser(r.User()); u != nil {
		auth = u.Username
	}
	return map[string]any{
		"auth":     auth,
		"username": asUser(model).Username,
	}
}

func (AnotherResource) NewFactory(p *resource.Provider) (resource.Builder, error) {
	return NewForAnotherResourceFactory(p)
}

// UserResource renders a user and, when loaded, their posts.
type UserResource struct{}

func (UserResource) EntityName() string { return "app/http/resources/UserResource" }

func (UserResource) ToArray(_ *request.Request, model any) map[string]any {
	u := asUser(model)
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"posts": resource.WhenLoaded(u, "posts", PostResource{}),
	}
}

// PostResource renders a post and, when loaded, its creator.
type PostResource struct{}

func (PostResource) EntityName() string { return "app/http/resources/PostResource" }

func (PostResource) ToArray(_ *request.Request, model any) map[string]any {
	p := asPost(model)
	return map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"creator":     resource.WhenLoaded(p, "creator", UserResource{}),
	}
}

// Factory returns a new SimpleResourceFactory.
func (SimpleResource) Factory(p *resource.Provider) (*SimpleResourceFactory, error) {
	return resource.For[*SimpleResourceFactory](p, SimpleResource{})
}

// Factory returns a new ForAnotherResourceFactory.
func (AnotherResource) Factory(p *resource.Provider) (*ForAnotherResourceFactory, error) {
	return resource.For[*ForAnotherResourceFactory](p, AnotherResource{})
}

// Factory returns a new UserResourceFactory.
func (UserResource) Factory(p *resource.Provider) (*UserResourceFactory, error) {
	return resource.For[*UserResourceFactory](p, UserResource{})
}

// Factory returns a new PostResourceFactory.
func (PostResource) Factory(p *resource.Provider) (*PostResourceFactory, error) {
	return resource.For[*PostResourceFactory](p, PostResource{})
}
