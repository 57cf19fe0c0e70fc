// Package analyzer checks the bindings of a container before it is used.
//
// ValidateRegistrations verifies that every constructor parameter of every
// bound type has a binding itself. DryRun resolves every bound type inside
// a fresh scope, dependencies first, and reports each failure. Neither
// panics; problems are collected into a Report and logged.
//
//	a := analyzer.New(c)
//	if report := a.ValidateRegistrations(); !report.OK() {
//	    return report.Err()
//	}
//
// A dry run works on a fork of the container, so the singletons it builds
// are discarded with the fork and the analyzed container is left as it was.
package analyzer
