package di

import (
	"context"

	"github.com/kbukum/injector/errors"
)

// resolver is the capability shared by all lifecycles.
type resolver interface {
	resolve(ctx context.Context, key TypeKey) (any, error)
	concreteTypeFor(key TypeKey) (TypeKey, bool)
	isRegistered(key TypeKey) bool
	registeredTypes() []TypeKey
}

// instanceResolver returns values supplied at bind time.
type instanceResolver struct {
	values map[TypeKey]any
}

func newInstanceResolver() *instanceResolver {
	return &instanceResolver{values: make(map[TypeKey]any)}
}

func (r *instanceResolver) register(key TypeKey, value any) {
	r.values[key] = value
}

func (r *instanceResolver) resolve(_ context.Context, key TypeKey) (any, error) {
	value, ok := r.values[key]
	if !ok {
		return nil, errors.UnregisteredType(key.String())
	}
	return value, nil
}

func (r *instanceResolver) concreteTypeFor(key TypeKey) (TypeKey, bool) {
	value, ok := r.values[key]
	if !ok {
		return TypeKey{}, false
	}
	return KeyFor(value), true
}

func (r *instanceResolver) isRegistered(key TypeKey) bool {
	_, ok := r.values[key]
	return ok
}

func (r *instanceResolver) registeredTypes() []TypeKey {
	keys := make([]TypeKey, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	return keys
}

// transientResolver constructs a new instance on every call.
type transientResolver struct {
	c     *Container
	ctors map[TypeKey]Constructor
}

func newTransientResolver(c *Container) *transientResolver {
	return &transientResolver{c: c, ctors: make(map[TypeKey]Constructor)}
}

func (r *transientResolver) register(key TypeKey, ctor Constructor) {
	r.ctors[key] = ctor
}

func (r *transientResolver) resolve(ctx context.Context, key TypeKey) (any, error) {
	ctor, ok := r.ctors[key]
	if !ok {
		return nil, errors.UnregisteredType(key.String())
	}
	return r.c.construct(ctx, key, Transient, ctor)
}

func (r *transientResolver) concreteTypeFor(key TypeKey) (TypeKey, bool) {
	ctor, ok := r.ctors[key]
	return ctor.Concrete, ok
}

func (r *transientResolver) isRegistered(key TypeKey) bool {
	_, ok := r.ctors[key]
	return ok
}

func (r *transientResolver) registeredTypes() []TypeKey {
	return ctorKeys(r.ctors)
}

// singletonResolver builds each instance at most once and caches it. It
// also serves as the per-frame cache of a scope.
type singletonResolver struct {
	c         *Container
	lifecycle Lifecycle
	ctors     map[TypeKey]Constructor
	factories map[TypeKey]Factory
	cache     map[TypeKey]any
}

func newSingletonResolver(c *Container, lifecycle Lifecycle) *singletonResolver {
	return &singletonResolver{
		c:         c,
		lifecycle: lifecycle,
		ctors:     make(map[TypeKey]Constructor),
		factories: make(map[TypeKey]Factory),
		cache:     make(map[TypeKey]any),
	}
}

// checkSource fails if key already has a constructor or a factory.
func (r *singletonResolver) checkSource(key TypeKey) error {
	if _, ok := r.factories[key]; ok {
		return errors.SingletonSourceConflict(key.String(), true)
	}
	if _, ok := r.ctors[key]; ok {
		return errors.SingletonSourceConflict(key.String(), false)
	}
	return nil
}

func (r *singletonResolver) register(key TypeKey, ctor Constructor) error {
	if err := r.checkSource(key); err != nil {
		return err
	}
	r.ctors[key] = ctor
	return nil
}

func (r *singletonResolver) registerFactory(key TypeKey, factory Factory) error {
	if err := r.checkSource(key); err != nil {
		return err
	}
	r.factories[key] = factory
	return nil
}

func (r *singletonResolver) resolve(ctx context.Context, key TypeKey) (any, error) {
	if instance, ok := r.cache[key]; ok {
		return instance, nil
	}

	var (
		instance any
		err      error
	)
	if ctor, ok := r.ctors[key]; ok {
		instance, err = r.c.construct(ctx, key, r.lifecycle, ctor)
	} else if factory, ok := r.factories[key]; ok {
		instance, err = r.c.create(ctx, key, factory)
	} else {
		return nil, errors.UnregisteredType(key.String())
	}
	if err != nil {
		return nil, err
	}

	r.cache[key] = instance
	return instance, nil
}

func (r *singletonResolver) cached(key TypeKey) bool {
	_, ok := r.cache[key]
	return ok
}

func (r *singletonResolver) concreteTypeFor(key TypeKey) (TypeKey, bool) {
	if ctor, ok := r.ctors[key]; ok {
		return ctor.Concrete, true
	}
	if factory, ok := r.factories[key]; ok {
		return factory.Concrete, true
	}
	return TypeKey{}, false
}

func (r *singletonResolver) isRegistered(key TypeKey) bool {
	_, byCtor := r.ctors[key]
	_, byFactory := r.factories[key]
	return byCtor || byFactory
}

func (r *singletonResolver) registeredTypes() []TypeKey {
	keys := ctorKeys(r.ctors)
	for k := range r.factories {
		keys = append(keys, k)
	}
	return keys
}

func ctorKeys(ctors map[TypeKey]Constructor) []TypeKey {
	keys := make([]TypeKey, 0, len(ctors))
	for k := range ctors {
		keys = append(keys, k)
	}
	return keys
}
