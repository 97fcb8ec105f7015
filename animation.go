package thicket

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// TintTween animates an entity's Tint channels toward a target color.
type TintTween struct {
	tweens [4]*gween.Tween
	Done   bool
}

// TintTweenComponent holds the active tween of an entity.
var TintTweenComponent = donburi.NewComponentType[TintTween]()

// NewTintTween returns a tween from one tint to another over duration seconds.
func NewTintTween(from, to Tint, duration float32, fn ease.TweenFunc) TintTween {
	var tw TintTween
	tw.tweens[0] = gween.New(from.R, to.R, duration, fn)
	tw.tweens[1] = gween.New(from.G, to.G, duration, fn)
	tw.tweens[2] = gween.New(from.B, to.B, duration, fn)
	tw.tweens[3] = gween.New(from.A, to.A, duration, fn)
	return tw
}

// Update advances the tween by dt seconds and returns the current tint.
func (tw *TintTween) Update(dt float32) Tint {
	var v [4]float32
	done := true
	for i, t := range tw.tweens {
		if t == nil {
			continue
		}
		val, finished := t.Update(dt)
		v[i] = val
		if !finished {
			done = false
		}
	}
	tw.Done = done
	return Tint{v[0], v[1], v[2], v[3]}
}

var tintTweenQuery = donburi.NewQuery(filter.Contains(TintTweenComponent, TintComponent))

// UpdateTintTweens advances every entity's TintTween by dt seconds and writes
// the result into its Tint. Finished tweens are removed. Run it before
// System.Update, never during it.
func UpdateTintTweens(world donburi.World, dt float32) {
	var finished []donburi.Entity
	tintTweenQuery.Each(world, func(entry *donburi.Entry) {
		tw := TintTweenComponent.Get(entry)
		TintComponent.SetValue(entry, tw.Update(dt))
		if tw.Done {
			finished = append(finished, entry.Entity())
		}
	})
	for _, e := range finished {
		world.Entry(e).RemoveComponent(TintTweenComponent)
	}
}
