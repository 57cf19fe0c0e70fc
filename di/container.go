package di

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/kbukum/injector/config"
	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/graph"
	"github.com/kbukum/injector/logger"
	"github.com/kbukum/injector/observability"
)

// Container owns the bindings, the lifecycle resolvers and the scope stack.
type Container struct {
	registry *registry
	checker  *graph.Checker[TypeKey]

	instances     *instanceResolver
	transients    *transientResolver
	singletons    *singletonResolver
	scoped        *scopedResolver
	scopeContexts *scopeContextResolver
	resolvers     map[Lifecycle]resolver

	scopes   scopeStack
	building []TypeKey // keys under construction, outermost first

	marker Marker
	log    *logger.Logger
	inst   *observability.Instrumentation
}

type options struct {
	marker Marker
	log    *logger.Logger
	mode   graph.Mode
	inst   *observability.Instrumentation
}

// Option configures a Container.
type Option func(*options)

// WithMarker restricts injection to the fields accepted by m.
func WithMarker(m Marker) Option {
	return func(o *options) { o.marker = m }
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithCycleCheck selects the cycle check mode. Defaults to graph.ModeFull.
func WithCycleCheck(mode graph.Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithInstrumentation enables spans and metrics. Defaults to no-op.
func WithInstrumentation(inst *observability.Instrumentation) Option {
	return func(o *options) { o.inst = inst }
}

// New creates an empty container.
func New(opts ...Option) *Container {
	o := options{mode: graph.ModeFull}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}
	if o.inst == nil {
		o.inst = observability.Noop()
	}

	return newContainer(graph.NewChecker(o.mode, TypeKey.String), o.marker, o.log.WithComponent("di"), o.inst)
}

func newContainer(checker *graph.Checker[TypeKey], marker Marker, log *logger.Logger, inst *observability.Instrumentation) *Container {
	c := &Container{
		registry: newRegistry(),
		checker:  checker,
		marker:   marker,
		log:      log,
		inst:     inst,
	}
	c.instances = newInstanceResolver()
	c.transients = newTransientResolver(c)
	c.singletons = newSingletonResolver(c, Singleton)
	c.scoped = newScopedResolver(c)
	c.scopeContexts = newScopeContextResolver(c)
	c.resolvers = map[Lifecycle]resolver{
		Instance:     c.instances,
		Transient:    c.transients,
		Singleton:    c.singletons,
		Scoped:       c.scoped,
		ScopeContext: c.scopeContexts,
	}
	return c
}

// Fork returns a container with the same bindings, marker, logger and
// instrumentation. Instance values are shared; singleton caches start
// empty and the scope stack of the fork is empty. Later bindings on either
// container are not seen by the other.
func (c *Container) Fork() *Container {
	f := newContainer(c.checker.Clone(), c.marker, c.log, c.inst)
	f.registry.lifecycles = maps.Clone(c.registry.lifecycles)
	f.instances.values = maps.Clone(c.instances.values)
	f.transients.ctors = maps.Clone(c.transients.ctors)
	f.singletons.ctors = maps.Clone(c.singletons.ctors)
	f.singletons.factories = maps.Clone(c.singletons.factories)
	f.scoped.ctors = maps.Clone(c.scoped.ctors)
	for key, permitted := range c.scopeContexts.permitted {
		f.scopeContexts.permitted[key] = slices.Clone(permitted)
	}
	return f
}

// NewFromConfig creates a container from configuration. cfg is copied and
// defaults are applied to the copy before it is validated. opts override
// the configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, errors.InvalidConfig("config is nil")
	}
	copied := *cfg
	cfg = &copied
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := graph.ParseMode(cfg.CycleCheck)
	if err != nil {
		return nil, errors.InvalidConfig(err.Error())
	}

	base := []Option{
		WithCycleCheck(mode),
		WithLogger(logger.New(&cfg.Logging, "")),
	}
	if !cfg.InjectAll {
		marker, err := TagMarker(cfg.InjectTag)
		if err != nil {
			return nil, err
		}
		base = append(base, WithMarker(marker))
	}
	if cfg.Tracing {
		inst, err := observability.New()
		if err != nil {
			return nil, err
		}
		base = append(base, WithInstrumentation(inst))
	}
	return New(append(base, opts...)...), nil
}

// Resolve returns an instance of key built according to its lifecycle.
func (c *Container) Resolve(key TypeKey) (any, error) {
	return c.resolve(context.Background(), key)
}

// ResolveContext is Resolve with a context for tracing.
func (c *Container) ResolveContext(ctx context.Context, key TypeKey) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.resolve(ctx, key)
}

func (c *Container) resolve(ctx context.Context, key TypeKey) (any, error) {
	start := time.Now()
	ctx, span := c.inst.StartResolve(ctx, key.String())

	var (
		instance  any
		lifecycle string
	)
	l, err := c.registry.lifecycleOf(key)
	if err == nil {
		lifecycle = l.String()
		instance, err = c.resolvers[l].resolve(ctx, key)
	}

	c.inst.EndResolve(ctx, span, key.String(), lifecycle, start, err)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// Lifecycle returns the lifecycle key was bound with.
func (c *Container) Lifecycle(key TypeKey) (Lifecycle, error) {
	return c.registry.lifecycleOf(key)
}

// IsRegistered reports whether key has a binding.
func (c *Container) IsRegistered(key TypeKey) bool {
	return c.registry.has(key)
}

// RegisteredTypes lists the keys bound as Instance, Transient, Singleton or
// Scoped, sorted by name. Scope context keys are not included.
func (c *Container) RegisteredTypes() []TypeKey {
	var keys []TypeKey
	for _, r := range []resolver{c.instances, c.transients, c.singletons, c.scoped} {
		keys = append(keys, r.registeredTypes()...)
	}
	return sortKeys(keys)
}

// ScopeContextTypes lists the keys bound as ScopeContext, sorted by name.
func (c *Container) ScopeContextTypes() []TypeKey {
	return sortKeys(c.scopeContexts.registeredTypes())
}

// PermittedContexts returns the context types that may satisfy a
// ScopeContext key.
func (c *Container) PermittedContexts(key TypeKey) ([]TypeKey, error) {
	if !c.scopeContexts.isRegistered(key) {
		return nil, errors.UnregisteredType(key.String())
	}
	return c.scopeContexts.permittedFor(key), nil
}

// ConcreteTypeFor returns the type that is built or returned for key. For
// a ScopeContext key it is the type of the current scope context, and the
// same errors as Resolve are returned when none would be accepted.
func (c *Container) ConcreteTypeFor(key TypeKey) (TypeKey, error) {
	l, err := c.registry.lifecycleOf(key)
	if err != nil {
		return TypeKey{}, err
	}
	if l == ScopeContext {
		value, err := c.scopeContexts.resolve(context.Background(), key)
		if err != nil {
			return TypeKey{}, err
		}
		return KeyFor(value), nil
	}
	concrete, ok := c.resolvers[l].concreteTypeFor(key)
	if !ok {
		return TypeKey{}, errors.UnregisteredType(key.String())
	}
	return concrete, nil
}

// Dependencies returns the constructor parameters of key in declaration
// order. Instance, factory and ScopeContext bindings have none.
func (c *Container) Dependencies(key TypeKey) ([]TypeKey, error) {
	if _, err := c.registry.lifecycleOf(key); err != nil {
		return nil, err
	}
	deps, _ := c.checker.Dependencies(key)
	return deps, nil
}

// DependencyLevels groups the keys with constructors or factories by
// dependency depth, dependencies first.
func (c *Container) DependencyLevels() ([][]TypeKey, error) {
	return c.checker.Levels()
}

// CycleCheck returns the cycle check mode of the container.
func (c *Container) CycleCheck() graph.Mode {
	return c.checker.Mode()
}

// BeginScope pushes a frame without a context value.
func (c *Container) BeginScope() *ScopeFrame {
	return c.BeginScopeWith(nil)
}

// BeginScopeWith pushes a frame carrying value as its scope context.
// Scoped bindings registered later are not visible in the frame.
func (c *Container) BeginScopeWith(value any) *ScopeFrame {
	frame := c.scoped.newFrame(value)
	depth := c.scopes.push(frame)

	c.log.Debug("scope begun", logger.Fields(
		logger.FieldScopeID, frame.ID.String(),
		logger.FieldScopeDepth, depth,
	))
	c.inst.ScopeBegun(context.Background(), frame.ID.String())
	return frame
}

// EndScope pops the current frame and discards its instances.
func (c *Container) EndScope() error {
	frame, ok := c.scopes.pop()
	if !ok {
		return errors.NoActiveScope()
	}

	c.log.Debug("scope ended", logger.Fields(
		logger.FieldScopeID, frame.ID.String(),
		logger.FieldScopeDepth, c.scopes.depth(),
	))
	c.inst.ScopeEnded(context.Background(), frame.ID.String())
	return nil
}

// ScopeDepth returns the number of active frames.
func (c *Container) ScopeDepth() int {
	return c.scopes.depth()
}

// CurrentScope returns the frame on top of the stack.
func (c *Container) CurrentScope() (*ScopeFrame, bool) {
	return c.scopes.top()
}
