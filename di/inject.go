package di

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
)

// Field describes one injectable field of a target.
type Field struct {
	Name string
	Type TypeKey
	Tag  reflect.StructTag
	Set  func(value any) error
}

// Injectable is implemented by targets that list their own fields instead
// of having them discovered by reflection.
type Injectable interface {
	InjectionFields() []Field
}

// Marker decides whether a field takes part in injection.
type Marker func(Field) bool

// TagMarker accepts fields carrying the struct tag key tag, unless its
// value is "-".
func TagMarker(tag string) (Marker, error) {
	if tag == "" {
		return nil, errors.InvalidMarker("struct tag key must not be empty")
	}
	return func(f Field) bool {
		value, ok := f.Tag.Lookup(tag)
		return ok && value != "-"
	}, nil
}

// FieldFor describes a field through a pointer to it.
func FieldFor[T any](name string, dst *T) Field {
	return Field{
		Name: name,
		Type: KeyOf[T](),
		Set: func(value any) error {
			if value == nil {
				var zero T
				*dst = zero
				return nil
			}
			v, ok := value.(T)
			if !ok {
				return fmt.Errorf("value of type %T is not assignable to %s", value, KeyOf[T]())
			}
			*dst = v
			return nil
		},
	}
}

// Inject resolves and assigns every eligible field of target.
//
// Without an Injectable implementation target must be a non-nil pointer to
// a struct; its exported, non-embedded fields accepted by the marker are
// set. An unexported field fails with INJECTION_FAILED. To inject
// unexported fields, implement Injectable and describe them with FieldFor:
//
//	func (s *service) InjectionFields() []di.Field {
//	    return []di.Field{di.FieldFor("repo", &s.repo)}
//	}
func (c *Container) Inject(target any) error {
	return c.InjectContext(context.Background(), target)
}

// InjectContext is Inject with a context for tracing.
func (c *Container) InjectContext(ctx context.Context, target any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	targetName := fmt.Sprintf("%T", target)

	fields, err := fieldsOf(target)
	if err != nil {
		return err
	}

	for _, field := range fields {
		if c.marker != nil && !c.marker(field) {
			continue
		}
		if field.Type.IsZero() || field.Set == nil {
			return errors.Injection(field.Name, targetName, fmt.Errorf("field descriptor is incomplete"))
		}

		value, err := c.resolve(ctx, field.Type)
		if err != nil {
			return err
		}
		if err := field.Set(value); err != nil {
			return errors.Injection(field.Name, targetName, err)
		}

		c.log.Debug("field injected", logger.Fields(
			logger.FieldTarget, targetName,
			logger.FieldField, field.Name,
			logger.FieldType, field.Type.String(),
		))
	}
	return nil
}

// fieldsOf lists the fields of target. Only fields declared directly on the
// struct are returned; embedded structs are not descended into.
func fieldsOf(target any) ([]Field, error) {
	if injectable, ok := target.(Injectable); ok {
		return injectable.InjectionFields(), nil
	}

	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, errors.InvalidInjectionTarget(fmt.Sprintf("%T", target))
	}

	elem := v.Elem()
	t := elem.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			continue
		}
		fields = append(fields, Field{
			Name: sf.Name,
			Type: KeyOfType(sf.Type),
			Tag:  sf.Tag,
			Set:  structSetter(elem.Field(i), sf),
		})
	}
	return fields, nil
}

func structSetter(fv reflect.Value, sf reflect.StructField) func(any) error {
	return func(value any) error {
		if !sf.IsExported() || !fv.CanSet() {
			return fmt.Errorf("field %s is not exported", sf.Name)
		}
		if value == nil {
			fv.Set(reflect.Zero(sf.Type))
			return nil
		}
		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(sf.Type) {
			return fmt.Errorf("value of type %s is not assignable to %s", rv.Type(), sf.Type)
		}
		fv.Set(rv)
		return nil
	}
}
