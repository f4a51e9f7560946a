package effectchain

import (
	"errors"
	"fmt"
)

// Factory builds one Runtime instance for a chain stage.
type Factory func() (Runtime, error)

// Registry maps effect ids to their factories. The set of registered
// effects is fixed at construction time; per-session parameter values
// and bypass flags live in the Chain, not here, so one registry can
// back many sessions.
type Registry struct {
	factories map[string]Factory
	order     []string
}

var errDuplicateEffect = errors.New("duplicate effect id")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect id. Registration order
// is the default chain order.
func (r *Registry) Register(effectID string, factory Factory) error {
	if effectID == "" {
		return errors.New("empty effect id")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[effectID]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectID)
	}

	r.factories[effectID] = factory
	r.order = append(r.order, effectID)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectID string, factory Factory) {
	err := r.Register(effectID, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect id, or nil.
func (r *Registry) Lookup(effectID string) Factory {
	return r.factories[effectID]
}

// IDs returns the registered effect ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
