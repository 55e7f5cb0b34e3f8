package testapp

import (
	"errors"

	"github.com/getmockd/factories/pkg/factories"
	"github.com/getmockd/factories/pkg/routing"
)

// Routes returns the named routes of the application.
func Routes() *routing.Router {
	return routing.New().
		Get("welcome", "/welcome").
		Post("posts.store", "/posts").
		Get("posts.show", "/posts/{post}")
}

// Register binds every subject and factory of the application into k.
func Register(k *factories.Kit) error {
	reqs, res := k.Requests, k.Resources
	return errors.Join(
		reqs.RegisterSubject(SimpleRequest{}),
		reqs.RegisterSubject(AuthenticatedRequest{}),
		reqs.RegisterSubject(ConfiguredRequest{}),
		reqs.RegisterSubject(NewRequest{}),
		reqs.RegisterFor(SimpleRequest{}, NewSimpleRequestFactory),
		reqs.RegisterFor(AuthenticatedRequest{}, NewAuthenticatedRequestFactory),
		reqs.RegisterFor(ConfiguredRequest{}, NewConfiguredRequestFactory),
		reqs.Register("tests/requestfactories/AnotherRequestFactory", NewAnotherRequestFactory),

		res.RegisterResource(SimpleResource{}),
		res.RegisterResource(AnotherResource{}),
		res.RegisterResource(UserResource{}),
		res.RegisterResource(PostResource{}),
		res.RegisterFor(SimpleResource{}, NewSimpleResourceFactory),
		res.RegisterFor(UserResource{}, NewUserResourceFactory),
		res.RegisterFor(PostResource{}, NewPostResourceFactory),
		res.Register("tests/resourcefactories/ForAnotherResourceFactory", NewForAnotherResourceFactory),
	)
}

// NewKit returns a Kit with the default configuration, the application
// routes and every registration done.
func NewKit(opts ...factories.Option) (*factories.Kit, error) {
	opts = append([]factories.Option{factories.WithRouter(Routes())}, opts...)
	k, err := factories.New(nil, opts...)
	if err != nil {
		return nil, err
	}
	if err := k.Register(Register); err != nil {
		return nil, err
	}
	return k, nil
}
