package di

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
)

// construct resolves the parameters of ctor in order and builds an
// instance for abstract. Parameter failures are returned unchanged.
// Re-entering a key that is already being built fails with
// CYCLIC_DEPENDENCY.
func (c *Container) construct(ctx context.Context, abstract TypeKey, lifecycle Lifecycle, ctor Constructor) (any, error) {
	if path := c.buildingPath(abstract); path != nil {
		err := errors.CyclicDependency(abstract.String(), path)
		c.log.Debug("cycle detected during resolution", logger.Fields(
			logger.FieldType, abstract.String(),
			logger.FieldError, err.Error(),
		))
		return nil, err
	}
	c.building = append(c.building, abstract)
	defer func() { c.building = c.building[:len(c.building)-1] }()

	var args []any
	if len(ctor.Params) > 0 {
		args = make([]any, len(ctor.Params))
		for i, param := range ctor.Params {
			arg, err := c.resolve(ctx, param)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
	}

	instance, err := invoke(func() (any, error) { return ctor.Build(args) })
	return c.finishConstruct(ctx, abstract, lifecycle, instance, err)
}

// buildingPath returns the chain from the outer construction of key back
// to key, or nil if key is not being built.
func (c *Container) buildingPath(key TypeKey) []string {
	for i, k := range c.building {
		if k != key {
			continue
		}
		path := make([]string, 0, len(c.building)-i+1)
		for _, onPath := range c.building[i:] {
			path = append(path, onPath.String())
		}
		return append(path, key.String())
	}
	return nil
}

// create builds a singleton through its factory.
func (c *Container) create(ctx context.Context, abstract TypeKey, factory Factory) (any, error) {
	instance, err := invoke(factory.Create)
	return c.finishConstruct(ctx, abstract, Singleton, instance, err)
}

func (c *Container) finishConstruct(ctx context.Context, abstract TypeKey, lifecycle Lifecycle, instance any, err error) (any, error) {
	if err == nil {
		err = checkResult(abstract, instance)
	}
	if err != nil {
		err = errors.ConstructorResolution(abstract.String(), err)
		c.log.Debug("construction failed", logger.Fields(
			logger.FieldType, abstract.String(),
			logger.FieldLifecycle, lifecycle.String(),
			logger.FieldError, err.Error(),
		))
	}
	c.inst.RecordConstruct(ctx, abstract.String(), lifecycle.String(), err)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// invoke calls fn and turns a panic into an error.
func invoke(fn func() (any, error)) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("constructor panicked: %w", e)
			} else {
				err = fmt.Errorf("constructor panicked: %v", r)
			}
			instance = nil
		}
	}()
	return fn()
}

func checkResult(abstract TypeKey, instance any) error {
	if instance == nil {
		return fmt.Errorf("constructor returned nil")
	}
	v := reflect.ValueOf(instance)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return fmt.Errorf("constructor returned a nil %s", v.Type())
		}
	}
	if !v.Type().AssignableTo(abstract.Type()) {
		return fmt.Errorf("constructor returned %s, which is not assignable to %s", v.Type(), abstract)
	}
	return nil
}
