package resource

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/getmockd/factories/pkg/assertjson"
	"github.com/getmockd/factories/pkg/faker"
	"github.com/getmockd/factories/pkg/logging"
	"github.com/getmockd/factories/pkg/naming"
	"github.com/getmockd/factories/pkg/registry"
)

// ErrNoResource is returned when a factory has no resource to render.
var ErrNoResource = errors.New("resource: no resource")

// Definer asserts the JSON of the current model, f.Current().
type Definer interface {
	Definition(f *Factory, j *assertjson.JSON)
}

// Configurer is run once when a factory is constructed.
type Configurer interface {
	Configure(f *Factory) error
}

// FactoryProvider lets a resource build its own factory. Returning a nil
// Builder falls back to the conventional factory.
type FactoryProvider interface {
	NewFactory(p *Provider) (Builder, error)
}

// Builder is any resource factory.
type Builder interface {
	Base() *Factory
}

// Constructor builds a user factory.
type Constructor func(p *Provider) (Builder, error)

// Provider owns the resource and factory registries.
type Provider struct {
	resolver  naming.Resolver
	resources *registry.Registry[Resource]
	factories *registry.Registry[Constructor]
	logger    *slog.Logger
	newFaker  func() *faker.Faker
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// WithFaker sets the fake data generator constructor.
func WithFaker(fn func() *faker.Faker) Option {
	return func(p *Provider) { p.newFaker = fn }
}

// NewProvider creates a Provider resolving names with resolver.
func NewProvider(resolver naming.Resolver, opts ...Option) *Provider {
	p := &Provider{
		resolver:  resolver,
		resources: registry.New[Resource]("resource"),
		factories: registry.New[Constructor]("resource factory"),
		newFaker:  faker.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.WithComponent(logging.OrNop(p.logger), "resource")
	return p
}

// Resolver returns the naming resolver.
func (p *Provider) Resolver() naming.Resolver { return p.resolver }

// New builds the base factory for definer and runs its Configure hook.
func (p *Provider) New(definer Definer) (*Factory, error) {
	f := newFactory(p, definer)
	if c, ok := definer.(Configurer); ok {
		if err := c.Configure(f); err != nil {
			return nil, fmt.Errorf("resource: configure %s: %w", f.name, err)
		}
	}
	return f, nil
}

// Register binds a factory constructor to a qualified factory name.
func (p *Provider) Register(name string, ctor Constructor) error {
	return p.factories.Register(name, ctor)
}

// RegisterFor binds ctor under the conventional factory name of res.
func (p *Provider) RegisterFor(res Resource, ctor Constructor) error {
	return p.Register(p.resolver.ResolveFactory(naming.NameOf(res)), ctor)
}

// RegisterResource makes res discoverable from the names of its factories.
func (p *Provider) RegisterResource(res Resource) error {
	return p.resources.Register(naming.NameOf(res), res)
}

// Resource looks up a registered resource by qualified name.
func (p *Provider) Resource(name string) (Resource, error) {
	return p.resources.Get(name)
}

// Factory returns a new factory for res, asking a FactoryProvider first.
func (p *Provider) Factory(res Resource) (Builder, error) {
	if fp, ok := res.(FactoryProvider); ok {
		b, err := fp.NewFactory(p)
		if err != nil {
			return nil, err
		}
		if b != nil {
			bind(b, res)
			return b, nil
		}
	}

	resName := naming.NameOf(res)
	ctor, err := p.factories.Get(p.resolver.ResolveFactory(resName))
	if err != nil {
		return nil, fmt.Errorf("resource: resolve factory for %s: %w", resName, err)
	}
	b, err := ctor(p)
	if err != nil {
		return nil, err
	}
	bind(b, res)
	return b, nil
}

// For returns the factory of res as B.
func For[B Builder](p *Provider, res Resource) (B, error) {
	var zero B
	b, err := p.Factory(res)
	if err != nil {
		return zero, err
	}
	typed, ok := b.(B)
	if !ok {
		return zero, fmt.Errorf("resource: factory for %s is %T, not %T", naming.NameOf(res), b, zero)
	}
	return typed, nil
}

func bind(b Builder, res Resource) {
	if f := b.Base(); f != nil && f.resource == nil {
		f.resource = res
	}
}
