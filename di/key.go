package di

import "reflect"

// TypeKey identifies an abstract or concrete type. Keys compare by type
// identity and are used as map keys throughout the container.
type TypeKey struct {
	typ reflect.Type
}

// KeyOf returns the key of the static type T. Interface types are allowed.
func KeyOf[T any]() TypeKey {
	return TypeKey{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// KeyFor returns the key of the runtime type of v.
func KeyFor(v any) TypeKey {
	if v == nil {
		return TypeKey{}
	}
	return TypeKey{typ: reflect.TypeOf(v)}
}

// KeyOfType wraps a reflect.Type.
func KeyOfType(t reflect.Type) TypeKey {
	return TypeKey{typ: t}
}

// Type returns the underlying reflect.Type, nil for the zero key.
func (k TypeKey) Type() reflect.Type { return k.typ }

// IsZero reports whether the key identifies no type.
func (k TypeKey) IsZero() bool { return k.typ == nil }

// String returns the Go name of the type.
func (k TypeKey) String() string {
	if k.typ == nil {
		return "<nil>"
	}
	return k.typ.String()
}

func keyNames(keys []TypeKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
