// Package thicket encodes per-entity sprite attributes into flat instance
// buffers for batched drawing with [Ebitengine], reading entities from a
// [Donburi] world.
//
// Each frame, a [System] collects the entities carrying any component its
// encoders read, runs every registered [Encoder] over that shared row set,
// and returns [InstanceData]: one [InstanceBuffer] of [Vec4] per [Property].
// Row i of every buffer refers to the same entity, so the buffers can be
// uploaded side by side as per-instance attributes or expanded by a
// [Batcher] into a single DrawTriangles32 call.
//
// # Quick start
//
//	world := donburi.NewWorld()
//	sheets := thicket.NewAssetStorage[thicket.SpriteSheet]()
//	res := thicket.NewResources()
//	thicket.Insert(res, sheets)
//
//	sys := thicket.NewSystem(thicket.DefaultConfig())
//	for _, enc := range thicket.SpriteEncoders(thicket.DefaultDefaults()) {
//		if err := sys.Register(enc); err != nil {
//			log.Fatal(err)
//		}
//	}
//
//	// every frame
//	data := sys.Update(world, res)
//	batcher.Draw(screen, data, page)
//
// # Encoders
//
// An encoder declares its output Properties, its input component
// [Binding]s, and the resource types it borrows. Its Encode method hands a
// per-entity function to one of the typed join runners ([Run1], [Run2],
// [Run3]). The function receives one pointer per binding, nil when the
// entity lacks that component, and fills a [Row] with one slot per declared
// Property:
//
//	return thicket.Run1(loop, e.tint, func(out *thicket.Row, tint *thicket.Tint) {
//		if tint == nil {
//			out.Set(0, fallback)
//			return
//		}
//		out.Set(0, tint.Vec4())
//	})
//
// A slot left empty is "no value". Columns are zero-filled at the start of
// every frame, so an empty slot reads as zero; an encoder decides per
// Property whether to leave it empty or substitute a default.
//
// # Failures
//
// An encoder whose required resource is missing returns an error wrapping
// [ErrResourceUnavailable]. Its columns stay zero for that frame and the
// remaining encoders run normally. Missing components on an entity are never
// errors.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package thicket
