package thicket

// Handle is an opaque reference into an AssetStorage. The zero Handle never
// resolves.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

type assetSlot[T any] struct {
	gen   uint32
	asset *T
}

// AssetStorage maps Handles to immutable assets. Removing an asset
// invalidates every Handle issued for it, even if its slot is reused.
type AssetStorage[T any] struct {
	slots []assetSlot[T]
	free  []uint32
}

// SpriteSheets is the asset storage the sprite encoders resolve against.
type SpriteSheets = AssetStorage[SpriteSheet]

// NewAssetStorage returns an empty storage.
func NewAssetStorage[T any]() *AssetStorage[T] {
	return &AssetStorage[T]{}
}

// Insert stores asset and returns its Handle.
func (s *AssetStorage[T]) Insert(asset *T) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, assetSlot[T]{})
		idx = uint32(len(s.slots) - 1)
	}
	slot := &s.slots[idx]
	slot.gen++
	slot.asset = asset
	return Handle{index: idx, gen: slot.gen}
}

// Get resolves h.
func (s *AssetStorage[T]) Get(h Handle) (*T, bool) {
	if h.gen == 0 || int(h.index) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[h.index]
	if slot.gen != h.gen || slot.asset == nil {
		return nil, false
	}
	return slot.asset, true
}

// Remove drops the asset behind h. Stale handles are ignored.
func (s *AssetStorage[T]) Remove(h Handle) {
	if _, ok := s.Get(h); !ok {
		return
	}
	s.slots[h.index].asset = nil
	s.free = append(s.free, h.index)
}

// Len returns the number of live assets.
func (s *AssetStorage[T]) Len() int {
	return len(s.slots) - len(s.free)
}
