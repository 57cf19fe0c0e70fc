package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/injector/errors"
)

// Constructor is the designated constructor of a concrete type. Params
// lists the keys resolved, in order, before Build is called with them.
type Constructor struct {
	Concrete TypeKey
	Params   []TypeKey
	Build    func(args []any) (any, error)
}

func (c Constructor) validate(abstract TypeKey) error {
	if c.Build == nil {
		return errors.InvalidBinding(abstract.String(), "constructor has no build function")
	}
	if c.Concrete.IsZero() {
		return errors.InvalidBinding(abstract.String(), "constructor has no concrete type")
	}
	for i, p := range c.Params {
		if p.IsZero() {
			return errors.InvalidBinding(abstract.String(), fmt.Sprintf("constructor parameter %d has no type", i))
		}
	}
	return nil
}

// Factory creates a singleton instance without declared dependencies.
type Factory struct {
	Concrete TypeKey
	Create   func() (any, error)
}

func (f Factory) validate(abstract TypeKey) error {
	if f.Create == nil {
		return errors.InvalidBinding(abstract.String(), "factory has no create function")
	}
	if f.Concrete.IsZero() {
		return errors.InvalidBinding(abstract.String(), "factory has no concrete type")
	}
	return nil
}

// FactoryOf wraps a factory function producing T.
func FactoryOf[T any](fn func() (T, error)) Factory {
	return Factory{
		Concrete: KeyOf[T](),
		Create: func() (any, error) {
			v, err := fn()
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// Ctor0 designates a constructor without parameters.
func Ctor0[T any](fn func() T) Constructor {
	return Constructor{
		Concrete: KeyOf[T](),
		Build: func([]any) (any, error) {
			return fn(), nil
		},
	}
}

// Ctor1 designates a constructor with one parameter.
func Ctor1[T, P1 any](fn func(P1) T) Constructor {
	return Constructor{
		Concrete: KeyOf[T](),
		Params:   []TypeKey{KeyOf[P1]()},
		Build: func(args []any) (any, error) {
			p1, err := argAt[P1](args, 0)
			if err != nil {
				return nil, err
			}
			return fn(p1), nil
		},
	}
}

// Ctor2 designates a constructor with two parameters.
func Ctor2[T, P1, P2 any](fn func(P1, P2) T) Constructor {
	return Constructor{
		Concrete: KeyOf[T](),
		Params:   []TypeKey{KeyOf[P1](), KeyOf[P2]()},
		Build: func(args []any) (any, error) {
			p1, err := argAt[P1](args, 0)
			if err != nil {
				return nil, err
			}
			p2, err := argAt[P2](args, 1)
			if err != nil {
				return nil, err
			}
			return fn(p1, p2), nil
		},
	}
}

// Ctor3 designates a constructor with three parameters.
func Ctor3[T, P1, P2, P3 any](fn func(P1, P2, P3) T) Constructor {
	return Constructor{
		Concrete: KeyOf[T](),
		Params:   []TypeKey{KeyOf[P1](), KeyOf[P2](), KeyOf[P3]()},
		Build: func(args []any) (any, error) {
			p1, err := argAt[P1](args, 0)
			if err != nil {
				return nil, err
			}
			p2, err := argAt[P2](args, 1)
			if err != nil {
				return nil, err
			}
			p3, err := argAt[P3](args, 2)
			if err != nil {
				return nil, err
			}
			return fn(p1, p2, p3), nil
		},
	}
}

// Ctor4 designates a constructor with four parameters.
func Ctor4[T, P1, P2, P3, P4 any](fn func(P1, P2, P3, P4) T) Constructor {
	return Constructor{
		Concrete: KeyOf[T](),
		Params:   []TypeKey{KeyOf[P1](), KeyOf[P2](), KeyOf[P3](), KeyOf[P4]()},
		Build: func(args []any) (any, error) {
			p1, err := argAt[P1](args, 0)
			if err != nil {
				return nil, err
			}
			p2, err := argAt[P2](args, 1)
			if err != nil {
				return nil, err
			}
			p3, err := argAt[P3](args, 2)
			if err != nil {
				return nil, err
			}
			p4, err := argAt[P4](args, 3)
			if err != nil {
				return nil, err
			}
			return fn(p1, p2, p3, p4), nil
		},
	}
}

func argAt[P any](args []any, i int) (P, error) {
	var zero P
	if i >= len(args) {
		return zero, fmt.Errorf("missing argument %d", i)
	}
	if args[i] == nil {
		return zero, nil
	}
	p, ok := args[i].(P)
	if !ok {
		return zero, fmt.Errorf("argument %d is %T, expected %s", i, args[i], KeyOf[P]())
	}
	return p, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Func designates an arbitrary Go function as a constructor. The function
// parameters become the constructor parameters. Accepted shapes are
// func(P...) T and func(P...) (T, error); variadic functions are rejected.
func Func(fn any) (Constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Constructor{}, errors.InvalidBinding(fmt.Sprintf("%T", fn), "constructor must be a non-nil function")
	}
	fnType := v.Type()
	if fnType.IsVariadic() {
		return Constructor{}, errors.InvalidBinding(fnType.String(), "variadic constructors are not supported")
	}
	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return Constructor{}, errors.InvalidBinding(fnType.String(), "second return value must be error")
		}
	default:
		return Constructor{}, errors.InvalidBinding(fnType.String(), "constructor must return either (instance) or (instance, error)")
	}

	params := make([]TypeKey, fnType.NumIn())
	for i := range params {
		params[i] = KeyOfType(fnType.In(i))
	}

	return Constructor{
		Concrete: KeyOfType(fnType.Out(0)),
		Params:   params,
		Build: func(args []any) (any, error) {
			in := make([]reflect.Value, len(params))
			for i, p := range params {
				if i >= len(args) || args[i] == nil {
					in[i] = reflect.Zero(p.Type())
					continue
				}
				arg := reflect.ValueOf(args[i])
				if !arg.Type().AssignableTo(p.Type()) {
					return nil, fmt.Errorf("argument %d is %s, expected %s", i, arg.Type(), p.Type())
				}
				in[i] = arg
			}
			return handleResults(v.Call(in))
		},
	}, nil
}

// MustFunc is like Func but panics on an invalid function.
func MustFunc(fn any) Constructor {
	ctor, err := Func(fn)
	if err != nil {
		panic(err)
	}
	return ctor
}

func handleResults(results []reflect.Value) (any, error) {
	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}
