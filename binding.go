package thicket

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
)

// AnyBinding is the type-erased form of a Binding, used when an encoder
// declares its inputs.
type AnyBinding interface {
	Component() component.IComponentType
	Name() string
}

// Binding is a read-only, optional-per-entity view of one component type.
type Binding[T any] struct {
	ct *donburi.ComponentType[T]
}

// Encode wraps a donburi component type as an encoder input.
func Encode[T any](ct *donburi.ComponentType[T]) Binding[T] {
	return Binding[T]{ct: ct}
}

// Component returns the underlying donburi component type.
func (b Binding[T]) Component() component.IComponentType { return b.ct }

// Name returns the component type name.
func (b Binding[T]) Name() string { return b.ct.Name() }

// Get returns the component on entry, or nil if the entry does not carry it.
// The pointer is only valid inside the callback that received it and must
// not be written through.
func (b Binding[T]) Get(entry *donburi.Entry) *T {
	if !entry.HasComponent(b.ct) {
		return nil
	}
	return b.ct.Get(entry)
}
