package thicket

import "github.com/yohamta/donburi"

// Component types read by the built-in encoders.
var (
	TintComponent            = donburi.NewComponentType[Tint]()
	GlobalTransformComponent = donburi.NewComponentType[GlobalTransform]()
	SpriteRenderComponent    = donburi.NewComponentType[SpriteRender]()
)
