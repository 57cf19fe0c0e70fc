package di

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/injector/config"
	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/graph"
	"github.com/kbukum/injector/logger"
	"github.com/kbukum/injector/observability"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("expected non-nil container")
	}
	if c.CycleCheck() != graph.ModeFull {
		t.Errorf("expected full cycle check by default, got %s", c.CycleCheck())
	}
	if c.ScopeDepth() != 0 {
		t.Errorf("expected empty scope stack, got depth %d", c.ScopeDepth())
	}
}

func TestResolve_Unregistered(t *testing.T) {
	c := newTestContainer(t)
	_, err := c.Resolve(KeyOf[A]())
	if !errors.HasCode(err, errors.ErrCodeUnregisteredType) {
		t.Fatalf("expected UNREGISTERED_TYPE, got %v", err)
	}
	if !strings.Contains(err.Error(), "di.A") {
		t.Errorf("expected type name in error, got %q", err.Error())
	}

	if _, err := c.Lifecycle(KeyOf[A]()); !errors.HasCode(err, errors.ErrCodeUnregisteredType) {
		t.Errorf("expected UNREGISTERED_TYPE from Lifecycle, got %v", err)
	}
}

func TestBind_Twice(t *testing.T) {
	c := newTestContainer(t)
	if err := BindTransient[C](c, Ctor0(newConcreteC)); err != nil {
		t.Fatalf("first bind failed: %v", err)
	}

	_, err := c.Bind(KeyOf[C]())
	if !errors.HasCode(err, errors.ErrCodeTypeAlreadyRegistered) {
		t.Fatalf("expected TYPE_ALREADY_REGISTERED, got %v", err)
	}
	if !strings.Contains(err.Error(), "TRANSIENT") {
		t.Errorf("expected existing lifecycle in error, got %q", err.Error())
	}

	lifecycle, err := c.Lifecycle(KeyOf[C]())
	if err != nil {
		t.Fatalf("Lifecycle failed: %v", err)
	}
	if lifecycle != Transient {
		t.Errorf("expected lifecycle to stay TRANSIENT, got %s", lifecycle)
	}
}

func TestBind_TwoBindersSameKey(t *testing.T) {
	c := newTestContainer(t)
	first, err := c.Bind(KeyOf[C]())
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	second, err := c.Bind(KeyOf[C]())
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	if err := first.Transient(Ctor0(newConcreteC)); err != nil {
		t.Fatalf("Transient failed: %v", err)
	}
	if err := second.Singleton(Ctor0(newConcreteC)); !errors.HasCode(err, errors.ErrCodeTypeAlreadyRegistered) {
		t.Fatalf("expected TYPE_ALREADY_REGISTERED, got %v", err)
	}
	if err := first.Instance(newConcreteC()); !errors.HasCode(err, errors.ErrCodeTypeAlreadyRegistered) {
		t.Fatalf("expected binder reuse to fail, got %v", err)
	}
}

func TestBind_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		bind func(c *Container) error
	}{
		{"zero key", func(c *Container) error {
			_, err := c.Bind(TypeKey{})
			return err
		}},
		{"nil instance", func(c *Container) error {
			return BindInstance[C](c, nil)
		}},
		{"empty constructor", func(c *Container) error {
			return BindTransient[C](c, Constructor{})
		}},
		{"constructor without concrete type", func(c *Container) error {
			return BindSingleton[C](c, Constructor{Build: func([]any) (any, error) { return nil, nil }})
		}},
		{"zero parameter", func(c *Container) error {
			return BindScoped[C](c, Constructor{
				Concrete: KeyOf[*concreteC](),
				Params:   []TypeKey{{}},
				Build:    func([]any) (any, error) { return newConcreteC(), nil },
			})
		}},
		{"empty factory", func(c *Container) error {
			return BindSingletonFactory[C](c, Factory{})
		}},
		{"concrete not assignable", func(c *Container) error {
			return BindTransient[C](c, Ctor1(newConcreteB))
		}},
		{"no permitted context", func(c *Container) error {
			return BindScopeContext[RequestContext](c)
		}},
		{"permitted context not assignable", func(c *Container) error {
			return BindScopeContext[RequestContext](c, KeyOf[*concreteC]())
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContainer(t)
			err := tc.bind(c)
			if !errors.HasCode(err, errors.ErrCodeInvalidBinding) {
				t.Fatalf("expected INVALID_BINDING, got %v", err)
			}
			if len(c.RegisteredTypes()) != 0 || len(c.ScopeContextTypes()) != 0 {
				t.Error("expected nothing to be registered")
			}
		})
	}
}

func TestInstance_Identity(t *testing.T) {
	c := newTestContainer(t)
	x := newConcreteC()
	if err := BindInstance[C](c, x); err != nil {
		t.Fatalf("BindInstance failed: %v", err)
	}

	got, err := c.Resolve(KeyOf[C]())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != C(x) {
		t.Error("expected the bound instance to be returned")
	}

	concrete, err := c.ConcreteTypeFor(KeyOf[C]())
	if err != nil {
		t.Fatalf("ConcreteTypeFor failed: %v", err)
	}
	if concrete != KeyOf[*concreteC]() {
		t.Errorf("expected *di.concreteC, got %s", concrete)
	}
}

func TestTransient_Distinct(t *testing.T) {
	c := newTestContainer(t)
	bindChain(t, c)

	first := MustResolve[C](c)
	second := MustResolve[C](c)
	if first == second {
		t.Error("expected two distinct transient instances")
	}
}

func TestSingleton_ConstructedOnce(t *testing.T) {
	c := newTestContainer(t)
	calls := &counter{}
	if err := BindSingleton[C](c, calls.ctor()); err != nil {
		t.Fatalf("BindSingleton failed: %v", err)
	}

	first := MustResolve[C](c)
	second := MustResolve[C](c)
	if first != second {
		t.Error("expected the same singleton instance")
	}
	if calls.n != 1 {
		t.Errorf("expected constructor to run once, ran %d times", calls.n)
	}
}

func TestSingletonFactory_CalledOnce(t *testing.T) {
	c := newTestContainer(t)
	calls := 0
	factory := FactoryOf(func() (*concreteC, error) {
		calls++
		return &concreteC{name: "from-factory"}, nil
	})
	if err := BindSingletonFactory[C](c, factory); err != nil {
		t.Fatalf("BindSingletonFactory failed: %v", err)
	}

	first := MustResolve[C](c)
	second := MustResolve[C](c)
	if first != second {
		t.Error("expected the same singleton instance")
	}
	if calls != 1 {
		t.Errorf("expected factory to run once, ran %d times", calls)
	}
	if first.Name() != "from-factory" {
		t.Errorf("expected factory instance, got %q", first.Name())
	}
}

func TestSingletonFactory_Error(t *testing.T) {
	c := newTestContainer(t)
	boom := stderrors.New("boom")
	factory := FactoryOf(func() (*concreteC, error) { return nil, boom })
	if err := BindSingletonFactory[C](c, factory); err != nil {
		t.Fatalf("BindSingletonFactory failed: %v", err)
	}

	_, err := c.Resolve(KeyOf[C]())
	if !errors.HasCode(err, errors.ErrCodeConstructorResolution) {
		t.Fatalf("expected CONSTRUCTOR_RESOLUTION, got %v", err)
	}
	if !stderrors.Is(err, boom) {
		t.Error("expected factory error to be kept as cause")
	}
}

func TestSingletonSourceConflict(t *testing.T) {
	c := newTestContainer(t)
	key := KeyOf[C]()

	if err := c.singletons.registerFactory(key, FactoryOf(func() (*concreteC, error) { return newConcreteC(), nil })); err != nil {
		t.Fatalf("registerFactory failed: %v", err)
	}
	err := c.singletons.register(key, Ctor0(newConcreteC))
	if !errors.HasCode(err, errors.ErrCodeTypeAlreadyRegistered) {
		t.Fatalf("expected TYPE_ALREADY_REGISTERED, got %v", err)
	}
	if !strings.Contains(err.Error(), "using a factory") {
		t.Errorf("expected factory source in message, got %q", err.Error())
	}

	other := KeyOf[B]()
	if err := c.singletons.register(other, Ctor1(newConcreteB)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	err = c.singletons.registerFactory(other, FactoryOf(func() (*concreteB, error) { return &concreteB{}, nil }))
	if err == nil || strings.Contains(err.Error(), "using a factory") {
		t.Errorf("expected constructor source in message, got %v", err)
	}
}

func TestResolve_EndToEnd(t *testing.T) {
	c := newTestContainer(t)
	bindChain(t, c)

	a, err := Resolve[A](c)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a == nil {
		t.Fatal("expected non-nil A")
	}
	if a.DepB() == nil {
		t.Fatal("expected A.depB to be set")
	}
	if a.DepB().DepC() == nil {
		t.Fatal("expected A.depB.depC to be set")
	}
}

func TestResolve_ParameterErrorPropagates(t *testing.T) {
	c := newTestContainer(t)
	if err := BindTransient[A](c, Ctor1(newConcreteA)); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	_, err := c.Resolve(KeyOf[A]())
	if !errors.HasCode(err, errors.ErrCodeUnregisteredType) {
		t.Fatalf("expected UNREGISTERED_TYPE for the missing parameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "di.B") {
		t.Errorf("expected missing parameter in error, got %q", err.Error())
	}
}

func TestCyclicPair(t *testing.T) {
	lifecycles := []struct {
		name string
		bind func(c *Container) error
	}{
		{"transient", func(c *Container) error { return BindTransient[Pong](c, Ctor1(newPong)) }},
		{"singleton", func(c *Container) error { return BindSingleton[Pong](c, Ctor1(newPong)) }},
		{"scoped", func(c *Container) error { return BindScoped[Pong](c, Ctor1(newPong)) }},
	}

	for _, tc := range lifecycles {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContainer(t)
			if err := BindTransient[Ping](c, Ctor1(newPing)); err != nil {
				t.Fatalf("first bind failed: %v", err)
			}

			err := tc.bind(c)
			if !errors.HasCode(err, errors.ErrCodeCyclicDependency) {
				t.Fatalf("expected CYCLIC_DEPENDENCY, got %v", err)
			}
			if c.IsRegistered(KeyOf[Pong]()) {
				t.Error("rejected binding must not be registered")
			}
			// the key can still be bound without the cycle
			if err := BindInstance[Pong](c, &pong{}); err != nil {
				t.Errorf("expected rejected key to stay free, got %v", err)
			}
		})
	}
}

type nodeA struct{}
type nodeB struct{}
type nodeC struct{}

func node[T any](params ...TypeKey) Constructor {
	return Constructor{
		Concrete: KeyOf[T](),
		Params:   params,
		Build: func([]any) (any, error) {
			var v T
			return v, nil
		},
	}
}

func TestCycleCheck_Modes(t *testing.T) {
	// nodeA -> (nodeB, nodeC), nodeC -> nodeA closes a cycle on the second edge.
	bind := func(t *testing.T, c *Container) error {
		t.Helper()
		if err := BindTransient[nodeA](c, node[nodeA](KeyOf[nodeB](), KeyOf[nodeC]())); err != nil {
			t.Fatalf("bind nodeA failed: %v", err)
		}
		if err := BindTransient[nodeB](c, node[nodeB]()); err != nil {
			t.Fatalf("bind nodeB failed: %v", err)
		}
		return BindTransient[nodeC](c, node[nodeC](KeyOf[nodeA]()))
	}

	t.Run("full", func(t *testing.T) {
		err := bind(t, newTestContainer(t))
		if !errors.HasCode(err, errors.ErrCodeCyclicDependency) {
			t.Fatalf("expected CYCLIC_DEPENDENCY, got %v", err)
		}
	})

	t.Run("first edge", func(t *testing.T) {
		c := newTestContainer(t, WithCycleCheck(graph.ModeFirstEdge))
		if err := bind(t, c); err != nil {
			t.Fatalf("expected first_edge mode to miss the cycle, got %v", err)
		}
		for range 2 {
			_, err := c.Resolve(KeyOf[nodeA]())
			if !errors.HasCode(err, errors.ErrCodeCyclicDependency) {
				t.Fatalf("expected resolution to stop at the cycle, got %v", err)
			}
		}
		if len(c.building) != 0 {
			t.Errorf("expected no keys left under construction, got %v", c.building)
		}
	})
}

func TestResolve_CycleMissedAtRegistration(t *testing.T) {
	c := newTestContainer(t, WithCycleCheck(graph.ModeFirstEdge))
	if err := BindTransient[C](c, Ctor0(newConcreteC)); err != nil {
		t.Fatalf("bind C failed: %v", err)
	}
	newPingWithC := func(_ C, p Pong) Ping { return newPing(p) }
	if err := BindSingleton[Ping](c, Ctor2(newPingWithC)); err != nil {
		t.Fatalf("bind Ping failed: %v", err)
	}
	if err := BindTransient[Pong](c, Ctor1(newPong)); err != nil {
		t.Fatalf("expected first_edge mode to accept Pong, got %v", err)
	}

	_, err := c.Resolve(KeyOf[Ping]())
	if !errors.HasCode(err, errors.ErrCodeCyclicDependency) {
		t.Fatalf("expected CYCLIC_DEPENDENCY, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["path"] != "di.Ping -> di.Pong -> di.Ping" {
		t.Errorf("unexpected path %v", appErr.Details["path"])
	}
	if _, err := c.Resolve(KeyOf[Pong]()); !errors.HasCode(err, errors.ErrCodeCyclicDependency) {
		t.Errorf("expected CYCLIC_DEPENDENCY from Pong, got %v", err)
	}
}

func TestResolve_DiamondIsNotACycle(t *testing.T) {
	c := newTestContainer(t)
	if err := BindSingleton[C](c, Ctor0(newConcreteC)); err != nil {
		t.Fatalf("bind C failed: %v", err)
	}
	pair := func(a, b C) fmt.Stringer { return stringer(a.Name() + b.Name()) }
	if err := BindTransient[fmt.Stringer](c, Ctor2(pair)); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if got := MustResolve[fmt.Stringer](c).String(); got != "cc" {
		t.Errorf("expected cc, got %q", got)
	}
}

func TestConstructorFailure(t *testing.T) {
	boom := stderrors.New("boom")
	tests := []struct {
		name  string
		ctor  Constructor
		cause error
	}{
		{"error", MustFunc(func() (*concreteC, error) { return nil, boom }), boom},
		{"panic with error", Ctor0(func() *concreteC { panic(boom) }), boom},
		{"panic with value", Ctor0(func() *concreteC { panic("bad state") }), nil},
		{"nil result", Ctor0(func() *concreteC { return nil }), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContainer(t)
			if err := BindSingleton[C](c, tc.ctor); err != nil {
				t.Fatalf("bind failed: %v", err)
			}

			_, err := c.Resolve(KeyOf[C]())
			if !errors.HasCode(err, errors.ErrCodeConstructorResolution) {
				t.Fatalf("expected CONSTRUCTOR_RESOLUTION, got %v", err)
			}
			if !strings.Contains(err.Error(), "{di.C}") {
				t.Errorf("expected abstract type in message, got %q", err.Error())
			}
			appErr, _ := errors.AsAppError(err)
			if appErr.Cause == nil {
				t.Error("expected the original failure as cause")
			}
			if tc.cause != nil && !stderrors.Is(err, tc.cause) {
				t.Errorf("expected cause %v in chain", tc.cause)
			}
		})
	}
}

func TestSingleton_FailureNotCached(t *testing.T) {
	c := newTestContainer(t)
	calls := 0
	ctor := Ctor0(func() *concreteC {
		calls++
		if calls == 1 {
			panic("first call fails")
		}
		return newConcreteC()
	})
	if err := BindSingleton[C](c, ctor); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	if _, err := c.Resolve(KeyOf[C]()); err == nil {
		t.Fatal("expected first resolution to fail")
	}
	if _, err := c.Resolve(KeyOf[C]()); err != nil {
		t.Fatalf("expected second resolution to succeed, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 constructor calls, got %d", calls)
	}
}

func TestIntrospection(t *testing.T) {
	c := newTestContainer(t)
	bindChain(t, c)
	if err := BindInstance[Ping](c, &ping{}); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := BindScopeContext[RequestContext](c, KeyOf[*httpRequest]()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	got := keyNames(c.RegisteredTypes())
	want := []string{"di.A", "di.B", "di.C", "di.Ping"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
	if ctx := c.ScopeContextTypes(); len(ctx) != 1 || ctx[0] != KeyOf[RequestContext]() {
		t.Errorf("expected RequestContext as only scope context type, got %v", ctx)
	}

	deps, err := c.Dependencies(KeyOf[A]())
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps) != 1 || deps[0] != KeyOf[B]() {
		t.Errorf("expected [di.B], got %v", deps)
	}
	if deps, _ := c.Dependencies(KeyOf[Ping]()); len(deps) != 0 {
		t.Errorf("expected no dependencies for an instance, got %v", deps)
	}
	if _, err := c.Dependencies(KeyOf[Pong]()); !errors.HasCode(err, errors.ErrCodeUnregisteredType) {
		t.Errorf("expected UNREGISTERED_TYPE, got %v", err)
	}

	concrete, err := c.ConcreteTypeFor(KeyOf[A]())
	if err != nil {
		t.Fatalf("ConcreteTypeFor failed: %v", err)
	}
	if concrete != KeyOf[*concreteA]() {
		t.Errorf("expected *di.concreteA, got %s", concrete)
	}

	levels, err := c.DependencyLevels()
	if err != nil {
		t.Fatalf("DependencyLevels failed: %v", err)
	}
	if len(levels) != 3 || levels[0][0] != KeyOf[C]() || levels[2][0] != KeyOf[A]() {
		t.Errorf("expected [[C] [B] [A]], got %v", levels)
	}

	permitted, err := c.PermittedContexts(KeyOf[RequestContext]())
	if err != nil || len(permitted) != 1 {
		t.Errorf("expected one permitted context, got %v (%v)", permitted, err)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithLogger(logger.NewWriter(&buf, "debug", "")))

	if err := BindSingleton[C](c, Ctor0(newConcreteC)); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	c.BeginScope()
	if err := c.EndScope(); err != nil {
		t.Fatalf("EndScope failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"message":"type bound"`, `"lifecycle":"SINGLETON"`, `"component":"di"`, `"message":"scope begun"`, `"message":"scope ended"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log output, got %s", want, out)
		}
	}
}

func TestInstrumentation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	inst, err := observability.New(observability.WithTracerProvider(tp))
	if err != nil {
		t.Fatalf("observability.New failed: %v", err)
	}

	c := newTestContainer(t, WithInstrumentation(inst))
	bindChain(t, c)

	if _, err := c.ResolveContext(context.Background(), KeyOf[A]()); err != nil {
		t.Fatalf("ResolveContext failed: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected one span per resolved type, got %d", len(spans))
	}
	root := spans[len(spans)-1]
	if root.Parent().IsValid() {
		t.Error("expected the last ended span to be the root")
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("expected nested resolutions to be child spans")
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewFromConfig(&config.Config{}, WithLogger(logger.Nop()))
		if err != nil {
			t.Fatalf("NewFromConfig failed: %v", err)
		}
		if c.CycleCheck() != graph.ModeFull {
			t.Errorf("expected full mode, got %s", c.CycleCheck())
		}
		if c.marker == nil {
			t.Error("expected the inject tag marker to be configured")
		}
	})

	t.Run("first edge and inject all", func(t *testing.T) {
		cfg := &config.Config{CycleCheck: config.CycleCheckFirstEdge, InjectAll: true}
		c, err := NewFromConfig(cfg, WithLogger(logger.Nop()))
		if err != nil {
			t.Fatalf("NewFromConfig failed: %v", err)
		}
		if c.CycleCheck() != graph.ModeFirstEdge {
			t.Errorf("expected first_edge mode, got %s", c.CycleCheck())
		}
		if c.marker != nil {
			t.Error("expected no marker when every field is injected")
		}
	})

	t.Run("leaves the caller's config untouched", func(t *testing.T) {
		cfg := &config.Config{}
		if _, err := NewFromConfig(cfg, WithLogger(logger.Nop())); err != nil {
			t.Fatalf("NewFromConfig failed: %v", err)
		}
		if cfg.CycleCheck != "" || cfg.InjectTag != "" || cfg.Logging.Level != "" {
			t.Errorf("expected defaults to be applied to a copy, got %+v", cfg)
		}
	})

	t.Run("nil", func(t *testing.T) {
		_, err := NewFromConfig(nil)
		if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
			t.Fatalf("expected INVALID_CONFIG, got %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewFromConfig(&config.Config{CycleCheck: "sometimes"})
		if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
			t.Fatalf("expected INVALID_CONFIG, got %v", err)
		}
	})
}

func TestMultipleContainersAreIndependent(t *testing.T) {
	first := newTestContainer(t)
	second := newTestContainer(t)
	if err := BindInstance[C](first, newConcreteC()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if second.IsRegistered(KeyOf[C]()) {
		t.Error("bindings must not leak between containers")
	}
}

func TestFork(t *testing.T) {
	c := newTestContainer(t)
	bindSharedChain(t, c)
	if err := BindScopeContext[RequestContext](c, KeyOf[*httpRequest]()); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	original := MustResolve[A](c)

	f := c.Fork()
	if got := MustResolve[A](f); got == original {
		t.Error("expected the fork to build its own singletons")
	}
	if MustResolve[A](c) != original {
		t.Error("expected the original cache to be kept")
	}
	if f.CycleCheck() != c.CycleCheck() {
		t.Errorf("expected mode %s, got %s", c.CycleCheck(), f.CycleCheck())
	}
	if permitted, err := f.PermittedContexts(KeyOf[RequestContext]()); err != nil || len(permitted) != 1 {
		t.Errorf("expected scope context binding to be copied, got %v (%v)", permitted, err)
	}

	c.BeginScope()
	if f.ScopeDepth() != 0 {
		t.Error("expected the fork to have its own scope stack")
	}

	if err := BindInstance[Handler](f, &handler{}); err != nil {
		t.Fatalf("bind on fork failed: %v", err)
	}
	if c.IsRegistered(KeyOf[Handler]()) {
		t.Error("expected bindings on the fork not to reach the original")
	}
	if _, err := f.Dependencies(KeyOf[A]()); err != nil {
		t.Errorf("expected dependency lists to be copied, got %v", err)
	}
}
