package di

import "fmt"

// MustResolve resolves T with type safety, panics on error.
// Use this in wiring code where a missing binding is a programming error.
//
// Example:
//
//	repo := di.MustResolve[contracts.BotRepository](c)
func MustResolve[T any](c *Container) T {
	result, err := Resolve[T](c)
	if err != nil {
		panic(err.Error())
	}
	return result
}

// Resolve resolves T with type safety, returns error on failure.
// Use this when you want to handle resolution errors gracefully.
//
// Example:
//
//	repo, err := di.Resolve[contracts.BotRepository](c)
//	if err != nil {
//	    return fmt.Errorf("failed to get bot repository: %w", err)
//	}
func Resolve[T any](c *Container) (T, error) {
	var zero T
	key := KeyOf[T]()
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, fmt.Errorf("di: failed to resolve %s: %w", key, err)
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: component %s is %T, expected %s", key, instance, key)
	}
	return result, nil
}

// TryResolve resolves T, returns zero value and false if it cannot be resolved.
// Use this when a dependency is optional.
//
// Example:
//
//	if metrics, ok := di.TryResolve[MetricsClient](c); ok {
//	    metrics.RecordEvent(...)
//	}
func TryResolve[T any](c *Container) (T, bool) {
	result, err := Resolve[T](c)
	if err != nil {
		return result, false
	}
	return result, true
}
