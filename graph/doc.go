// Package graph tracks the dependency edges declared by container bindings
// and rejects registrations that would make the graph cyclic.
//
// Each registration stores the ordered dependency list of one key. After
// every registration the checker walks the graph from every known key and
// fails if a walk revisits a key already on its own path. A rejected
// registration is rolled back, so the graph is acyclic at every point in
// time.
//
// Two traversal modes exist:
//   - ModeFull explores every edge of every key.
//   - ModeFirstEdge follows only the first declared dependency of each key.
//
// Levels groups the registered keys by dependency depth using Kahn's
// algorithm, dependencies first.
package graph
