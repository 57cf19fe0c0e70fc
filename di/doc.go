// Package di is a runtime object-graph resolution engine.
//
// Abstract types are bound to construction strategies under one of five
// lifecycles. The container builds fully wired instances on demand,
// caches them according to their lifecycle, and rejects bindings that
// would make the dependency graph cyclic before anything is built.
//
// # Lifecycles
//
//   - Instance: a value supplied at bind time, returned verbatim.
//   - Transient: a new instance on every resolution.
//   - Singleton: built once, lazily, by constructor or factory.
//   - Scoped: built once per scope frame.
//   - ScopeContext: the context value of the current scope frame.
//
// # Binding
//
//	c := di.New()
//	b, err := c.Bind(di.KeyOf[Greeter]())
//	err = b.Singleton(di.Ctor1(NewEnglishGreeter))
//
// or with the typed helpers:
//
//	err := di.BindSingleton[Greeter](c, di.Ctor1(NewEnglishGreeter))
//
// # Resolution
//
//	g, err := di.Resolve[Greeter](c)
//
// # Scopes
//
//	c.BeginScopeWith(req)
//	defer c.EndScope()
//	h := di.MustResolve[Handler](c)
//
// A Container is not safe for concurrent use. Confine it to one goroutine
// or guard binding and scope changes with an external lock.
package di
