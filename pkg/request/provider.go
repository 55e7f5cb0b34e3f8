package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/logging"
	"github.com/getmockd/factories/pkg/naming"
	"github.com/getmockd/factories/pkg/registry"
)

// Provider owns the subject and factory registries and the collaborators
// shared by every factory it builds.
type Provider struct {
	resolver  naming.Resolver
	subjects  *registry.Registry[FormRequest]
	factories *registry.Registry[Constructor]

	router   Router
	pipeline Pipeline
	renderer Renderer
	logger   *slog.Logger
	newFaker func() *faker.Faker
	debug    bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithRouter sets the router used to resolve named routes.
func WithRouter(r Router) Option {
	return func(p *Provider) { p.router = r }
}

// WithPipeline replaces the default authorize-then-validate pipeline.
func WithPipeline(pl Pipeline) Option {
	return func(p *Provider) { p.pipeline = pl }
}

// WithRenderer replaces the default ExceptionRenderer.
func WithRenderer(r Renderer) Option {
	return func(p *Provider) { p.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// WithFaker sets the fake data generator constructor. Each factory gets its
// own generator.
func WithFaker(fn func() *faker.Faker) Option {
	return func(p *Provider) { p.newFaker = fn }
}

// WithDebug makes the default renderer expose error text in 500 responses.
func WithDebug(debug bool) Option {
	return func(p *Provider) { p.debug = debug }
}

// NewProvider creates a Provider resolving names with resolver.
func NewProvider(resolver naming.Resolver, opts ...Option) *Provider {
	p := &Provider{
		resolver:  resolver,
		subjects:  registry.New[FormRequest]("request"),
		factories: registry.New[Constructor]("request factory"),
		pipeline:  DefaultPipeline{},
		newFaker:  faker.New,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.logger = logging.WithComponent(logging.OrNop(p.logger), "request")
	if p.renderer == nil {
		p.renderer = ExceptionRenderer{Debug: p.debug, Logger: p.logger}
	}
	return p
}

// Resolver returns the naming resolver.
func (p *Provider) Resolver() naming.Resolver { return p.resolver }

// Logger returns the provider logger.
func (p *Provider) Logger() *slog.Logger { return p.logger }

// New builds the base factory for definer and runs its Configure hook.
func (p *Provider) New(definer Definer) (*Factory, error) {
	f := newFactory(p, definer)
	if c, ok := definer.(Configurer); ok {
		if err := c.Configure(f); err != nil {
			return nil, fmt.Errorf("request: configure %s: %w", f.name, err)
		}
	}
	return f, nil
}

// Register binds a factory constructor to a qualified factory name.
func (p *Provider) Register(name string, ctor Constructor) error {
	return p.factories.Register(name, ctor)
}

// RegisterFor binds ctor under the conventional factory name of subject.
func (p *Provider) RegisterFor(subject FormRequest, ctor Constructor) error {
	return p.Register(p.resolver.ResolveFactory(naming.NameOf(subject)), ctor)
}

// RegisterSubject makes subject discoverable from the names of its
// factories.
func (p *Provider) RegisterSubject(subject FormRequest) error {
	return p.subjects.Register(naming.NameOf(subject), subject)
}

// Subject looks up a registered subject by qualified name.
func (p *Provider) Subject(name string) (FormRequest, error) {
	return p.subjects.Get(name)
}

// Factory returns a new factory for subject. A FactoryProvider subject is
// asked first; otherwise the constructor registered under the conventional
// name is used. The returned factory is bound to subject unless it already
// targets one.
func (p *Provider) Factory(subject FormRequest) (Builder, error) {
	if fp, ok := subject.(FactoryProvider); ok {
		b, err := fp.NewFactory(p)
		if err != nil {
			return nil, err
		}
		if b != nil {
			bind(b, subject)
			return b, nil
		}
	}

	subjectName := naming.NameOf(subject)
	name := p.resolver.ResolveFactory(subjectName)
	ctor, err := p.factories.Get(name)
	if err != nil {
		return nil, fmt.Errorf("request: resolve factory for %s: %w", subjectName, err)
	}

	b, err := ctor(p)
	if err != nil {
		return nil, err
	}
	bind(b, subject)
	return b, nil
}

// For returns the factory of subject as B.
func For[B Builder](p *Provider, subject FormRequest) (B, error) {
	var zero B
	b, err := p.Factory(subject)
	if err != nil {
		return zero, err
	}
	typed, ok := b.(B)
	if !ok {
		return zero, fmt.Errorf("request: factory for %s is %T, not %T", naming.NameOf(subject), b, zero)
	}
	return typed, nil
}

func bind(b Builder, subject FormRequest) {
	if f := b.Base(); f != nil && f.subject == nil {
		f.subject = subject
	}
}

func (p *Provider) runPipeline(r *Request) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()
	return p.pipeline.Validate(context.Background(), r)
}
