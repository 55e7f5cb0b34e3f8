package testapp

import (
	"github.com/getmockd/factories/pkg/assertjson"
	"github.com/getmockd/factories/pkg/resource"
)

// SimpleResourceFactory asserts SimpleResource.
type SimpleResourceFactory struct {
	*resource.Factory
}

// NewSimpleResourceFactory is the Constructor of SimpleResourceFactory.
func NewSimpleResourceFactory(p *resource.Provider) (resource.Builder, error) {
	f := &SimpleResourceFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

func (*SimpleResourceFactory) EntityName() string {
	return "tests/resourcefactories/SimpleResourceFactory"
}

func (*SimpleResourceFactory) Definition(f *resource.Factory, j *assertjson.JSON) {
	j.Where("username", asUser(f.Current()).Username)
}

// ForAnotherResourceFactory asserts AnotherResource.
type ForAnotherResourceFactory struct {
	*resource.Factory
}

// NewForAnotherResourceFactory is the Constructor of
// ForAnotherResourceFactory.
func NewForAnotherResourceFactory(p *resource.Provider) (resource.Builder, error) {
	f := &ForAnotherResourceFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base.For(AnotherResource{})
	return f, nil
}

func (*ForAnotherResourceFactory) EntityName() string {
	return "tests/resourcefactories/ForAnotherResourceFactory"
}

func (*ForAnotherResourceFactory) Definition(f *resource.Factory, j *assertjson.JSON) {
	j.Where("auth", asUser(f.Authenticated()).Username).
		Where("username", asUser(f.Current()).Username)
}

// UserResourceFactory asserts UserResource.
type UserResourceFactory struct {
	*resource.Factory
}

// NewUserResourceFactory is the Constructor of UserResourceFactory.
func NewUserResourceFactory(p *resource.Provider) (resource.Builder, error) {
	f := &UserResourceFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

func (*UserResourceFactory) EntityName() string {
	return "tests/resourcefactories/UserResourceFactory"
}

func (*UserResourceFactory) Definition(f *resource.Factory, j *assertjson.JSON) {
	u := asUser(f.Current())
	j.Where("id", u.ID).
		Where("name", u.Name).
		Where("email", u.Email)
}

// PostResourceFactory asserts PostResource.
type PostResourceFactory struct {
	*resource.Factory
}

// NewPostResourceFactory is the Constructor of PostResourceFactory.
func NewPostResourceFactory(p *resource.Provider) (resource.Builder, error) {
	f := &PostResourceFactory{}
	base, err := p.New(f)
	if err != nil {
		return nil, err
	}
	f.Factory = base
	return f, nil
}

func (*PostResourceFactory) EntityName() string {
	return "tests/resourcefactories/PostResourceFactory"
}

func (*PostResourceFactory) Definition(f *resource.Factory, j *assertjson.JSON) {
	p := asPost(f.Current())
	j.Where("title", p.Title).
		Where("description", p.Description)
}
