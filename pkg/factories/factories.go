// Package factories wires the request and resource providers from a
// configuration.
package factories

import (
	"fmt"
	"log/slog"

	"github.com/getmockd/factories/pkg/config"
	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/logging"
	"github.com/getmockd/factories/pkg/request"
	"github.com/getmockd/factories/pkg/resource"
	"github.com/getmockd/factories/pkg/routing"
)

// Kit holds the providers built from one configuration.
type Kit struct {
	Config    *config.Config
	Logger    *slog.Logger
	Router    *routing.Router
	Requests  *request.Provider
	Resources *resource.Provider
}

type options struct {
	logger   *slog.Logger
	router   *routing.Router
	pipeline request.Pipeline
	renderer request.Renderer
	newFaker func() *faker.Faker
}

// Option configures New.
type Option func(*options)

// WithLogger replaces the logger built from the logging section.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRouter sets the router used for named routes. New creates an empty
// one otherwise.
func WithRouter(r *routing.Router) Option {
	return func(o *options) { o.router = r }
}

// WithPipeline replaces the request pipeline.
func WithPipeline(p request.Pipeline) Option {
	return func(o *options) { o.pipeline = p }
}

// WithRenderer replaces the request failure renderer.
func WithRenderer(r request.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithFaker sets the fake data generator constructor of both providers.
func WithFaker(fn func() *faker.Faker) Option {
	return func(o *options) { o.newFaker = fn }
}

// New validates cfg and builds the providers. A nil cfg means
// config.DefaultConfig().
func New(cfg *config.Config, opts ...Option) (*Kit, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("factories: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.New(cfg.LoggerConfig())
	}
	if o.router == nil {
		o.router = routing.New()
	}

	reqOpts := []request.Option{
		request.WithLogger(o.logger),
		request.WithRouter(o.router),
		request.WithDebug(cfg.Debug),
	}
	resOpts := []resource.Option{resource.WithLogger(o.logger)}
	if o.pipeline != nil {
		reqOpts = append(reqOpts, request.WithPipeline(o.pipeline))
	}
	if o.renderer != nil {
		reqOpts = append(reqOpts, request.WithRenderer(o.renderer))
	}
	if o.newFaker != nil {
		reqOpts = append(reqOpts, request.WithFaker(o.newFaker))
		resOpts = append(resOpts, resource.WithFaker(o.newFaker))
	}

	k := &Kit{
		Config:    cfg,
		Logger:    o.logger,
		Router:    o.router,
		Requests:  request.NewProvider(cfg.RequestResolver(), reqOpts...),
		Resources: resource.NewProvider(cfg.ResourceResolver(), resOpts...),
	}
	k.Logger.Debug("factories ready",
		"requestDirectory", cfg.RequestDirectory,
		"resourceDirectory", cfg.ResourceDirectory,
	)
	return k, nil
}

// Registrar binds subjects and factories into a Kit.
type Registrar func(k *Kit) error

// Register runs every registrar in order and stops at the first error.
func (k *Kit) Register(registrars ...Registrar) error {
	for _, r := range registrars {
		if err := r(k); err != nil {
			return err
		}
	}
	return nil
}
