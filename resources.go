package thicket

import (
	"reflect"
	"sync/atomic"
)

// ResourceKey identifies a resource by its pointer type.
type ResourceKey = reflect.Type

// KeyOf returns the ResourceKey for *T.
func KeyOf[T any]() ResourceKey {
	return reflect.TypeOf((*T)(nil))
}

// Resources holds shared external data encoders borrow read-only, such as the
// sprite sheet storage. One resource per type. Resources may only be changed
// between System.Update calls.
type Resources struct {
	items    map[ResourceKey]any
	borrowed atomic.Int32
}

// NewResources returns an empty registry.
func NewResources() *Resources {
	return &Resources{items: make(map[ResourceKey]any)}
}

// Insert adds or replaces the resource of type *T. Panics while a frame is
// encoding or if res is nil.
func Insert[T any](r *Resources, res *T) {
	if res == nil {
		panic("thicket: cannot insert nil resource")
	}
	r.mustNotBeBorrowed()
	r.items[KeyOf[T]()] = res
}

// Remove drops the resource of type *T if present. Panics while a frame is
// encoding.
func Remove[T any](r *Resources) {
	r.mustNotBeBorrowed()
	delete(r.items, KeyOf[T]())
}

// Has reports whether a resource is registered under key.
func (r *Resources) Has(key ResourceKey) bool {
	if r == nil {
		return false
	}
	_, ok := r.items[key]
	return ok
}

func (r *Resources) mustNotBeBorrowed() {
	if r.borrowed.Load() != 0 {
		panic("thicket: resources mutated during encoding")
	}
}

func (r *Resources) borrow() ResourceView {
	if r != nil {
		r.borrowed.Add(1)
	}
	return ResourceView{r: r}
}

func (r *Resources) release() {
	if r != nil {
		r.borrowed.Add(-1)
	}
}

// ResourceView is a read-only borrow of Resources for one Encode call.
type ResourceView struct {
	r *Resources
}

// View returns a read-only view of r outside of a System pass, for running a
// single encoder on its own.
func (r *Resources) View() ResourceView {
	return ResourceView{r: r}
}

// Fetch returns the resource of type *T from the view.
func Fetch[T any](v ResourceView) (*T, bool) {
	if v.r == nil {
		return nil, false
	}
	res, ok := v.r.items[KeyOf[T]()]
	if !ok {
		return nil, false
	}
	return res.(*T), true
}
