package graph

import "fmt"

// Levels groups registered keys by dependency depth using Kahn's algorithm.
// Level 0 holds keys whose dependencies are all unregistered or absent; each
// following level only depends on earlier ones. Dependencies on keys without
// a stored list are ignored. Order within a level follows registration order.
func (c *Checker[K]) Levels() ([][]K, error) {
	inDegree := make(map[K]int, len(c.order))
	dependents := make(map[K][]K) // dependency -> keys that need it

	for _, k := range c.order {
		inDegree[k] = 0
	}
	for _, k := range c.order {
		for _, dep := range c.deps[k] {
			if _, ok := c.deps[dep]; !ok {
				continue
			}
			inDegree[k]++
			dependents[dep] = append(dependents[dep], k)
		}
	}

	var queue []K
	for _, k := range c.order {
		if inDegree[k] == 0 {
			queue = append(queue, k)
		}
	}

	var levels [][]K
	visited := 0
	for len(queue) > 0 {
		levels = append(levels, queue)
		visited += len(queue)

		var next []K
		for _, k := range queue {
			for _, dependent := range dependents[k] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		queue = next
	}

	if visited != len(c.order) {
		return nil, fmt.Errorf("graph: cycle detected, processed %d of %d keys", visited, len(c.order))
	}
	return levels, nil
}
