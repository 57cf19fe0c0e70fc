package di

import (
	"testing"

	"github.com/kbukum/injector/logger"
)

// A -> B -> C chain used across tests.

type A interface{ DepB() B }
type B interface{ DepC() C }
type C interface{ Name() string }

type concreteA struct{ b B }

func newConcreteA(b B) *concreteA { return &concreteA{b: b} }
func (a *concreteA) DepB() B { return a.b }

type concreteB struct{ c C }

func newConcreteB(c C) *concreteB { return &concreteB{c: c} }
func (b *concreteB) DepC() C { return b.c }

type concreteC struct{ name string }

func newConcreteC() *concreteC { return &concreteC{name: "c"} }
func (c *concreteC) Name() string { return c.name }

// Ping and Pong depend on each other.

type Ping interface{ Ping() }
type Pong interface{ Pong() }

type ping struct{ pong Pong }

func newPing(p Pong) *ping { return &ping{pong: p} }
func (*ping) Ping() {}

type pong struct{ ping Ping }

func newPong(p Ping) *pong { return &pong{ping: p} }
func (*pong) Pong() {}

// Scope context values.

type RequestContext interface{ RequestID() string }

type httpRequest struct{ id string }

func (r *httpRequest) RequestID() string { return r.id }

type grpcRequest struct{ id string }

func (r *grpcRequest) RequestID() string { return r.id }

type cliRequest struct{ id string }

func (r *cliRequest) RequestID() string { return r.id }

// Handler is built per scope from the scope context.
type Handler interface{ Request() RequestContext }

type handler struct{ req RequestContext }

func newHandler(req RequestContext) *handler { return &handler{req: req} }
func (h *handler) Request() RequestContext { return h.req }

// counter counts constructor invocations.
type counter struct{ n int }

func (c *counter) ctor() Constructor {
	return Ctor0(func() *concreteC {
		c.n++
		return newConcreteC()
	})
}

func newTestContainer(t *testing.T, opts ...Option) *Container {
	t.Helper()
	return New(append([]Option{WithLogger(logger.Nop())}, opts...)...)
}

func bindChain(t *testing.T, c *Container) {
	t.Helper()
	if err := BindTransient[A](c, Ctor1(newConcreteA)); err != nil {
		t.Fatalf("bind A failed: %v", err)
	}
	if err := BindTransient[B](c, Ctor1(newConcreteB)); err != nil {
		t.Fatalf("bind B failed: %v", err)
	}
	if err := BindTransient[C](c, Ctor0(newConcreteC)); err != nil {
		t.Fatalf("bind C failed: %v", err)
	}
}
