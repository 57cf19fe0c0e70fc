package di

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"github.com/kbukum/injector/errors"
)

// ScopeFrame is one level of the scope stack. It owns the cache of scoped
// instances built while it is on top and the optional context value
// supplied when it was pushed.
type ScopeFrame struct {
	ID uuid.UUID

	context    any
	singletons *singletonResolver
}

// Context returns the context value of the frame, nil if none was supplied.
func (f *ScopeFrame) Context() any { return f.context }

// HasContext reports whether the frame carries a context value.
func (f *ScopeFrame) HasContext() bool { return f.context != nil }

// scopeStack is a strictly LIFO stack of frames.
type scopeStack struct {
	frames []*ScopeFrame
}

func (s *scopeStack) push(f *ScopeFrame) int {
	s.frames = append(s.frames, f)
	return len(s.frames)
}

func (s *scopeStack) pop() (*ScopeFrame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top, true
}

func (s *scopeStack) top() (*ScopeFrame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	return s.frames[len(s.frames)-1], true
}

func (s *scopeStack) depth() int { return len(s.frames) }

// scopedResolver keeps the scoped bindings used to seed new frames and
// delegates resolution to the frame on top of the stack.
type scopedResolver struct {
	c     *Container
	ctors map[TypeKey]Constructor
}

func newScopedResolver(c *Container) *scopedResolver {
	return &scopedResolver{c: c, ctors: make(map[TypeKey]Constructor)}
}

func (r *scopedResolver) register(key TypeKey, ctor Constructor) {
	r.ctors[key] = ctor
}

// newFrame creates a frame whose cache knows the scoped bindings that exist now.
func (r *scopedResolver) newFrame(value any) *ScopeFrame {
	cache := newSingletonResolver(r.c, Scoped)
	cache.ctors = maps.Clone(r.ctors)
	return &ScopeFrame{
		ID:         uuid.New(),
		context:    value,
		singletons: cache,
	}
}

func (r *scopedResolver) resolve(ctx context.Context, key TypeKey) (any, error) {
	frame, ok := r.c.scopes.top()
	if !ok {
		return nil, errors.ScopedOutsideScope(key.String())
	}
	if !frame.singletons.isRegistered(key) {
		if _, bound := r.ctors[key]; bound {
			return nil, errors.UnregisteredInScope(key.String(), frame.ID.String())
		}
		return nil, errors.UnregisteredType(key.String())
	}
	return frame.singletons.resolve(ctx, key)
}

func (r *scopedResolver) concreteTypeFor(key TypeKey) (TypeKey, bool) {
	ctor, ok := r.ctors[key]
	return ctor.Concrete, ok
}

func (r *scopedResolver) isRegistered(key TypeKey) bool {
	_, ok := r.ctors[key]
	return ok
}

func (r *scopedResolver) registeredTypes() []TypeKey {
	return ctorKeys(r.ctors)
}

// scopeContextResolver answers with the context value of the current frame
// when its runtime type is one of the permitted types.
type scopeContextResolver struct {
	c         *Container
	permitted map[TypeKey][]TypeKey
}

func newScopeContextResolver(c *Container) *scopeContextResolver {
	return &scopeContextResolver{c: c, permitted: make(map[TypeKey][]TypeKey)}
}

func (r *scopeContextResolver) register(key TypeKey, permitted []TypeKey) {
	r.permitted[key] = append(r.permitted[key], permitted...)
}

func (r *scopeContextResolver) resolve(_ context.Context, key TypeKey) (any, error) {
	permitted, ok := r.permitted[key]
	if !ok {
		return nil, errors.UnregisteredType(key.String())
	}
	frame, ok := r.c.scopes.top()
	if !ok {
		return nil, errors.OutsideScope(key.String())
	}
	if !frame.HasContext() {
		return nil, errors.NullScopeContext(key.String())
	}
	contextKey := KeyFor(frame.context)
	for _, p := range permitted {
		if p == contextKey {
			return frame.context, nil
		}
	}
	return nil, errors.ScopeContextMismatch(key.String(), contextKey.String(), keyNames(permitted))
}

// concreteTypeFor reports the runtime type of the current context when it
// would satisfy key.
func (r *scopeContextResolver) concreteTypeFor(key TypeKey) (TypeKey, bool) {
	value, err := r.resolve(context.Background(), key)
	if err != nil {
		return TypeKey{}, false
	}
	return KeyFor(value), true
}

func (r *scopeContextResolver) isRegistered(key TypeKey) bool {
	_, ok := r.permitted[key]
	return ok
}

func (r *scopeContextResolver) registeredTypes() []TypeKey {
	keys := make([]TypeKey, 0, len(r.permitted))
	for k := range r.permitted {
		keys = append(keys, k)
	}
	return keys
}

func (r *scopeContextResolver) permittedFor(key TypeKey) []TypeKey {
	return append([]TypeKey(nil), r.permitted[key]...)
}
