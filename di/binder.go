package di

import (
	"fmt"

	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
)

// Binder completes the binding of one abstract key. Only the first
// successful call on any binder for the key takes effect; later calls fail
// with TYPE_ALREADY_REGISTERED.
type Binder struct {
	c   *Container
	key TypeKey
}

// Bind starts a binding for key.
func (c *Container) Bind(key TypeKey) (*Binder, error) {
	if key.IsZero() {
		return nil, errors.InvalidBinding(key.String(), "abstract type is required")
	}
	if err := c.registry.checkFree(key); err != nil {
		return nil, err
	}
	return &Binder{c: c, key: key}, nil
}

// Key returns the abstract key being bound.
func (b *Binder) Key() TypeKey { return b.key }

// Instance binds the key to value, which every resolution returns as is.
func (b *Binder) Instance(value any) error {
	return b.c.bind(binding{
		key:       b.key,
		lifecycle: Instance,
		concrete:  KeyFor(value),
		validate: func() error {
			if value == nil {
				return errors.InvalidBinding(b.key.String(), "instance must not be nil")
			}
			return nil
		},
		apply: func() { b.c.instances.register(b.key, value) },
	})
}

// Transient binds the key to ctor, called on every resolution.
func (b *Binder) Transient(ctor Constructor) error {
	return b.c.bind(binding{
		key:       b.key,
		lifecycle: Transient,
		concrete:  ctor.Concrete,
		deps:      ctor.Params,
		checked:   true,
		validate:  func() error { return ctor.validate(b.key) },
		apply:     func() { b.c.transients.register(b.key, ctor) },
	})
}

// Singleton binds the key to ctor, called once on first resolution.
func (b *Binder) Singleton(ctor Constructor) error {
	return b.c.bind(binding{
		key:       b.key,
		lifecycle: Singleton,
		concrete:  ctor.Concrete,
		deps:      ctor.Params,
		checked:   true,
		validate: func() error {
			if err := ctor.validate(b.key); err != nil {
				return err
			}
			return b.c.singletons.checkSource(b.key)
		},
		apply: func() { _ = b.c.singletons.register(b.key, ctor) },
	})
}

// SingletonFactory binds the key to factory, called once on first resolution.
func (b *Binder) SingletonFactory(factory Factory) error {
	return b.c.bind(binding{
		key:       b.key,
		lifecycle: Singleton,
		concrete:  factory.Concrete,
		checked:   true,
		validate: func() error {
			if err := factory.validate(b.key); err != nil {
				return err
			}
			return b.c.singletons.checkSource(b.key)
		},
		apply: func() { _ = b.c.singletons.registerFactory(b.key, factory) },
	})
}

// Scoped binds the key to ctor, called once per scope frame.
func (b *Binder) Scoped(ctor Constructor) error {
	return b.c.bind(binding{
		key:       b.key,
		lifecycle: Scoped,
		concrete:  ctor.Concrete,
		deps:      ctor.Params,
		checked:   true,
		validate:  func() error { return ctor.validate(b.key) },
		apply:     func() { b.c.scoped.register(b.key, ctor) },
	})
}

// ScopeContext binds the key to the context value of the current scope
// frame. The runtime type of that value must be one of permitted.
func (b *Binder) ScopeContext(permitted ...TypeKey) error {
	return b.c.bind(binding{
		key:       b.key,
		lifecycle: ScopeContext,
		validate: func() error {
			if len(permitted) == 0 {
				return errors.InvalidBinding(b.key.String(), "at least one permitted context type is required")
			}
			for i, p := range permitted {
				if p.IsZero() {
					return errors.InvalidBinding(b.key.String(), fmt.Sprintf("permitted context type %d is nil", i))
				}
				if !p.Type().AssignableTo(b.key.Type()) {
					return errors.InvalidBinding(b.key.String(), fmt.Sprintf("context type %s is not assignable to %s", p, b.key))
				}
			}
			return nil
		},
		apply: func() { b.c.scopeContexts.register(b.key, permitted) },
	})
}

// binding is one registration request.
type binding struct {
	key       TypeKey
	lifecycle Lifecycle
	concrete  TypeKey
	deps      []TypeKey
	checked   bool // feed deps to the cycle checker
	validate  func() error
	apply     func()
}

// bind commits b only after every check passed, so a rejected binding
// leaves the container unchanged.
func (c *Container) bind(b binding) error {
	if err := c.registry.checkFree(b.key); err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	if !b.concrete.IsZero() && !b.concrete.Type().AssignableTo(b.key.Type()) {
		return errors.InvalidBinding(b.key.String(), fmt.Sprintf("%s is not assignable to %s", b.concrete, b.key))
	}
	if b.checked {
		if err := c.checker.Register(b.key, b.deps); err != nil {
			c.log.Debug("binding rejected", logger.Fields(
				logger.FieldType, b.key.String(),
				logger.FieldLifecycle, b.lifecycle.String(),
				logger.FieldError, err.Error(),
			))
			return err
		}
	}

	b.apply()
	_ = c.registry.register(b.key, b.lifecycle)

	c.log.Debug("type bound", logger.Fields(
		logger.FieldType, b.key.String(),
		logger.FieldConcrete, b.concrete.String(),
		logger.FieldLifecycle, b.lifecycle.String(),
	))
	return nil
}
