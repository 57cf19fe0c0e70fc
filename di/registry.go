package di

import (
	"sort"

	"github.com/kbukum/injector/errors"
)

// registry maps every bound abstract key to its lifecycle. Entries are
// never removed or changed.
type registry struct {
	lifecycles map[TypeKey]Lifecycle
}

func newRegistry() *registry {
	return &registry{lifecycles: make(map[TypeKey]Lifecycle)}
}

// checkFree fails if key already has a lifecycle.
func (r *registry) checkFree(key TypeKey) error {
	if lifecycle, exists := r.lifecycles[key]; exists {
		return errors.TypeAlreadyRegistered(key.String(), lifecycle.String())
	}
	return nil
}

func (r *registry) register(key TypeKey, lifecycle Lifecycle) error {
	if err := r.checkFree(key); err != nil {
		return err
	}
	r.lifecycles[key] = lifecycle
	return nil
}

func (r *registry) lifecycleOf(key TypeKey) (Lifecycle, error) {
	lifecycle, ok := r.lifecycles[key]
	if !ok {
		return 0, errors.UnregisteredType(key.String())
	}
	return lifecycle, nil
}

func (r *registry) has(key TypeKey) bool {
	_, ok := r.lifecycles[key]
	return ok
}

// sortKeys orders keys by type name so listings are deterministic.
func sortKeys(keys []TypeKey) []TypeKey {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
