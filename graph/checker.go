package graph

import (
	"fmt"

	"github.com/kbukum/injector/errors"
)

// Mode selects how much of the graph a cycle check explores.
type Mode string

const (
	// ModeFull follows every dependency edge.
	ModeFull Mode = "full"
	// ModeFirstEdge follows only the first dependency of each key.
	ModeFirstEdge Mode = "first_edge"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFull:
		return ModeFull, nil
	case ModeFirstEdge:
		return ModeFirstEdge, nil
	default:
		return "", fmt.Errorf("graph: unknown cycle check mode %q", s)
	}
}

// Checker holds the dependency lists of registered keys.
// It is not safe for concurrent use.
type Checker[K comparable] struct {
	mode  Mode
	name  func(K) string
	order []K // registration order, keeps traversal deterministic
	deps  map[K][]K
}

// NewChecker creates an empty checker. name renders keys in error messages.
func NewChecker[K comparable](mode Mode, name func(K) string) *Checker[K] {
	if mode == "" {
		mode = ModeFull
	}
	if name == nil {
		name = func(k K) string { return fmt.Sprint(k) }
	}
	return &Checker[K]{
		mode: mode,
		name: name,
		deps: make(map[K][]K),
	}
}

// Mode returns the traversal mode of the checker.
func (c *Checker[K]) Mode() Mode { return c.mode }

// Register stores deps as the dependency list of key and verifies that the
// graph is still acyclic. On failure the previous state is restored and a
// CYCLIC_DEPENDENCY error naming key is returned.
func (c *Checker[K]) Register(key K, deps []K) error {
	prev, existed := c.deps[key]
	c.deps[key] = append([]K(nil), deps...)
	if !existed {
		c.order = append(c.order, key)
	}

	if path := c.findCycle(); path != nil {
		if existed {
			c.deps[key] = prev
		} else {
			delete(c.deps, key)
			c.order = c.order[:len(c.order)-1]
		}
		return errors.CyclicDependency(c.name(key), c.names(path))
	}
	return nil
}

// Dependencies returns the stored dependency list of key.
func (c *Checker[K]) Dependencies(key K) ([]K, bool) {
	deps, ok := c.deps[key]
	if !ok {
		return nil, false
	}
	return append([]K(nil), deps...), true
}

// Has reports whether key has a stored dependency list.
func (c *Checker[K]) Has(key K) bool {
	_, ok := c.deps[key]
	return ok
}

// Len returns the number of keys with a stored dependency list.
func (c *Checker[K]) Len() int { return len(c.order) }

// Clone returns an independent copy of the checker.
func (c *Checker[K]) Clone() *Checker[K] {
	deps := make(map[K][]K, len(c.deps))
	for k, d := range c.deps {
		deps[k] = append([]K(nil), d...)
	}
	return &Checker[K]{
		mode:  c.mode,
		name:  c.name,
		order: append([]K(nil), c.order...),
		deps:  deps,
	}
}

func (c *Checker[K]) findCycle() []K {
	if c.mode == ModeFirstEdge {
		for _, start := range c.order {
			if path := c.firstEdgeCycle(start); path != nil {
				return path
			}
		}
		return nil
	}

	const (
		white = iota
		grey
		black
	)
	color := make(map[K]int, len(c.deps))
	var stack []K

	var visit func(k K) []K
	visit = func(k K) []K {
		switch color[k] {
		case grey:
			for i, onPath := range stack {
				if onPath == k {
					return append(append([]K(nil), stack[i:]...), k)
				}
			}
		case black:
			return nil
		}
		color[k] = grey
		stack = append(stack, k)
		for _, dep := range c.deps[k] {
			if path := visit(dep); path != nil {
				return path
			}
		}
		stack = stack[:len(stack)-1]
		color[k] = black
		return nil
	}

	for _, start := range c.order {
		if path := visit(start); path != nil {
			return path
		}
	}
	return nil
}

// firstEdgeCycle walks the chain of first dependencies starting at start.
func (c *Checker[K]) firstEdgeCycle(start K) []K {
	trail := make(map[K]bool)
	var path []K
	current := start
	for {
		if trail[current] {
			return append(path, current)
		}
		trail[current] = true
		path = append(path, current)
		deps := c.deps[current]
		if len(deps) == 0 {
			return nil
		}
		current = deps[0]
	}
}

func (c *Checker[K]) names(path []K) []string {
	out := make([]string, len(path))
	for i, k := range path {
		out[i] = c.name(k)
	}
	return out
}
