// Package observability provides OpenTelemetry tracing and metrics for
// container resolution.
//
// An Instrumentation opens one span per resolution and records counters
// for resolutions, constructions and active scopes. By default it uses the
// global otel providers, which are no-ops until the application installs
// SDK providers:
//
//	tp := sdktrace.NewTracerProvider(...)
//	inst, err := observability.New(observability.WithTracerProvider(tp))
//	c := di.New(di.WithInstrumentation(inst))
package observability
