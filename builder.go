package thicket

import (
	"github.com/rotisserie/eris"
	"github.com/yohamta/donburi"
)

// SpawnSprite creates an entity carrying everything the sprite encoders read.
// A nil tint leaves the entity untinted, so the tint encoder's default
// applies.
func SpawnSprite(world donburi.World, transform GlobalTransform, render SpriteRender, tint *Tint) donburi.Entity {
	var e donburi.Entity
	if tint != nil {
		e = world.Create(GlobalTransformComponent, SpriteRenderComponent, TintComponent)
	} else {
		e = world.Create(GlobalTransformComponent, SpriteRenderComponent)
	}
	entry := world.Entry(e)
	GlobalTransformComponent.SetValue(entry, transform)
	SpriteRenderComponent.SetValue(entry, render)
	if tint != nil {
		TintComponent.SetValue(entry, *tint)
	}
	return e
}

// WithSprite attaches the sprite encoders' inputs to an existing entity,
// replacing any it already has. Fails with ErrAttachment if the entity no
// longer exists.
func WithSprite(world donburi.World, entity donburi.Entity, transform GlobalTransform, render SpriteRender) error {
	if !world.Valid(entity) {
		return eris.Wrapf(ErrAttachment, "entity %v does not exist", entity)
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(GlobalTransformComponent) {
		entry.AddComponent(GlobalTransformComponent)
	}
	GlobalTransformComponent.SetValue(entry, transform)
	if !entry.HasComponent(SpriteRenderComponent) {
		entry.AddComponent(SpriteRenderComponent)
	}
	SpriteRenderComponent.SetValue(entry, render)
	return nil
}
