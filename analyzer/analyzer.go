package analyzer

import (
	stderrors "errors"
	"fmt"

	"github.com/kbukum/injector/di"
	"github.com/kbukum/injector/errors"
	"github.com/kbukum/injector/logger"
)

// Problem is one failed check.
type Problem struct {
	// Type is the bound type the problem was found on.
	Type di.TypeKey
	// Dependency is the missing parameter, zero for dry-run failures.
	Dependency di.TypeKey
	Err        error
}

func (p Problem) String() string {
	if !p.Dependency.IsZero() {
		return fmt.Sprintf("%s requires %s: %v", p.Type, p.Dependency, p.Err)
	}
	return fmt.Sprintf("%s: %v", p.Type, p.Err)
}

// ScopeDependent reports whether the problem comes from the state of the
// scope stack rather than from the bindings, for example a dry run without
// a scope context.
func (p Problem) ScopeDependent() bool {
	return errors.IsScopeCode(errors.CodeOf(p.Err))
}

// Report is the outcome of one check.
type Report struct {
	Checked  int
	Problems []Problem
}

// OK reports whether the check found nothing.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Err joins the errors of all problems, nil if there are none.
func (r *Report) Err() error {
	errs := make([]error, len(r.Problems))
	for i, p := range r.Problems {
		errs[i] = p.Err
	}
	return stderrors.Join(errs...)
}

// Analyzer inspects a container through its public surface.
type Analyzer struct {
	c            *di.Container
	log          *logger.Logger
	scopeContext any
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithScopeContext sets the context value of the scope a dry run executes in.
func WithScopeContext(value any) Option {
	return func(a *Analyzer) { a.scopeContext = value }
}

// New creates an analyzer for c.
func New(c *di.Container, opts ...Option) *Analyzer {
	a := &Analyzer{c: c}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.GetGlobalLogger()
	}
	a.log = a.log.WithComponent("analyzer")
	return a
}

// ValidateRegistrations checks that every constructor parameter of every
// bound type is bound itself, under any lifecycle.
func (a *Analyzer) ValidateRegistrations() *Report {
	report := &Report{}
	for _, key := range a.c.RegisteredTypes() {
		report.Checked++
		deps, err := a.c.Dependencies(key)
		if err != nil {
			a.record(report, Problem{Type: key, Err: err})
			continue
		}
		for _, dep := range deps {
			if a.c.IsRegistered(dep) {
				continue
			}
			a.record(report, Problem{
				Type:       key,
				Dependency: dep,
				Err:        errors.UnregisteredType(dep.String()).WithDetail("required_by", key.String()),
			})
		}
	}
	return report
}

// DryRun resolves every bound type, dependencies first, inside a scope of
// a fork of the container. The analyzed container keeps its caches and
// scope stack.
func (a *Analyzer) DryRun() *Report {
	report := &Report{}

	fork := a.c.Fork()
	fork.BeginScopeWith(a.scopeContext)
	defer func() {
		if err := fork.EndScope(); err != nil {
			a.log.Warn("failed to end dry-run scope", logger.ErrorFields("dry_run", err))
		}
	}()

	for _, key := range a.order() {
		report.Checked++
		if _, err := fork.Resolve(key); err != nil {
			a.record(report, Problem{Type: key, Err: err})
		}
	}
	return report
}

// Valid reports whether both ValidateRegistrations and DryRun pass.
func (a *Analyzer) Valid() bool {
	return a.ValidateRegistrations().OK() && a.DryRun().OK()
}

// order lists the bound types so that dependencies precede their
// dependents. Instance bindings come first.
func (a *Analyzer) order() []di.TypeKey {
	registered := a.c.RegisteredTypes()
	levels, err := a.c.DependencyLevels()
	if err != nil {
		a.log.Warn("falling back to name order", logger.ErrorFields("dependency_levels", err))
		return registered
	}

	want := make(map[di.TypeKey]bool, len(registered))
	for _, key := range registered {
		want[key] = true
	}
	leveled := make(map[di.TypeKey]bool, len(registered))
	var ordered []di.TypeKey
	for _, level := range levels {
		for _, key := range level {
			if want[key] {
				leveled[key] = true
				ordered = append(ordered, key)
			}
		}
	}

	order := make([]di.TypeKey, 0, len(registered))
	for _, key := range registered {
		if !leveled[key] {
			order = append(order, key)
		}
	}
	return append(order, ordered...)
}

func (a *Analyzer) record(report *Report, p Problem) {
	report.Problems = append(report.Problems, p)
	fields := logger.Fields(
		logger.FieldType, p.Type.String(),
		logger.FieldError, p.Err.Error(),
	)
	if code := errors.CodeOf(p.Err); code != "" {
		fields["code"] = string(code)
	}
	if !p.Dependency.IsZero() {
		fields["dependency"] = p.Dependency.String()
	}
	if p.ScopeDependent() {
		fields["scope_dependent"] = true
	}
	a.log.Warn("analysis problem", fields)
}
