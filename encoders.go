package thicket

import "github.com/rotisserie/eris"

// Defaults holds the fallback values encoders substitute for missing optional
// inputs. It is passed to encoders explicitly and never mutated.
type Defaults struct {
	Tint Tint
}

// DefaultDefaults returns the stock fallbacks: opaque white tint.
func DefaultDefaults() Defaults {
	return Defaults{Tint: TintWhite}
}

// TintEncoder writes each entity's Tint into the "tint" property unchanged.
// Entities without a Tint get Defaults.Tint instead of "no value".
type TintEncoder struct {
	tint     Binding[Tint]
	fallback Vec4
}

// NewTintEncoder returns a TintEncoder reading TintComponent.
func NewTintEncoder(defaults Defaults) *TintEncoder {
	return &TintEncoder{
		tint:     Encode(TintComponent),
		fallback: defaults.Tint.Vec4(),
	}
}

func (e *TintEncoder) Name() string             { return "tint" }
func (e *TintEncoder) Properties() []Property   { return []Property{TintProperty} }
func (e *TintEncoder) Components() []AnyBinding { return []AnyBinding{e.tint} }
func (e *TintEncoder) Requires() []ResourceKey  { return nil }

func (e *TintEncoder) Encode(loop *EncodeLoop, _ ResourceView) error {
	fallback := e.fallback
	return Run1(loop, e.tint, func(out *Row, tint *Tint) {
		if tint == nil {
			out.Set(0, fallback)
			return
		}
		out.Set(0, Vec4{tint.R, tint.G, tint.B, tint.A})
	})
}

// SpriteTransformEncoder derives the quad geometry of a sprite from its
// GlobalTransform and the referenced sprite's metadata:
//
//	pos   = M * (-OffsetX, -OffsetY, 0, 1)
//	dir_x = column0(M) * Width
//	dir_y = column1(M) * Height
//
// The three outputs are all-or-nothing: an entity missing either input, or
// whose sheet or sprite index does not resolve, gets no value for any of them.
type SpriteTransformEncoder struct {
	transform Binding[GlobalTransform]
	sprite    Binding[SpriteRender]
}

// NewSpriteTransformEncoder returns an encoder reading
// GlobalTransformComponent and SpriteRenderComponent.
func NewSpriteTransformEncoder() *SpriteTransformEncoder {
	return &SpriteTransformEncoder{
		transform: Encode(GlobalTransformComponent),
		sprite:    Encode(SpriteRenderComponent),
	}
}

func (e *SpriteTransformEncoder) Name() string { return "sprite_transform" }

func (e *SpriteTransformEncoder) Properties() []Property {
	return []Property{PosProperty, DirXProperty, DirYProperty}
}

func (e *SpriteTransformEncoder) Components() []AnyBinding {
	return []AnyBinding{e.transform, e.sprite}
}

func (e *SpriteTransformEncoder) Requires() []ResourceKey {
	return []ResourceKey{KeyOf[SpriteSheets]()}
}

func (e *SpriteTransformEncoder) Encode(loop *EncodeLoop, res ResourceView) error {
	sheets, ok := Fetch[SpriteSheets](res)
	if !ok {
		return eris.Wrapf(ErrResourceUnavailable, "encoder %q: sprite sheets", e.Name())
	}
	return Run2(loop, e.transform, e.sprite, func(out *Row, t *GlobalTransform, sr *SpriteRender) {
		if t == nil || sr == nil {
			return
		}
		sprite, ok := resolveSprite(sheets, sr)
		if !ok {
			return
		}
		m := &t.Matrix
		out.Set(0, MulVec4(m, Vec4{-sprite.OffsetX, -sprite.OffsetY, 0, 1}))
		out.Set(1, Scale4(Column(m, 0), sprite.Width))
		out.Set(2, Scale4(Column(m, 1), sprite.Height))
	})
}

// SpriteUVEncoder writes the referenced sprite's texture rectangle into the
// "uv" property as (left, top, right, bottom).
type SpriteUVEncoder struct {
	sprite Binding[SpriteRender]
}

// NewSpriteUVEncoder returns an encoder reading SpriteRenderComponent.
func NewSpriteUVEncoder() *SpriteUVEncoder {
	return &SpriteUVEncoder{sprite: Encode(SpriteRenderComponent)}
}

func (e *SpriteUVEncoder) Name() string             { return "sprite_uv" }
func (e *SpriteUVEncoder) Properties() []Property   { return []Property{UVProperty} }
func (e *SpriteUVEncoder) Components() []AnyBinding { return []AnyBinding{e.sprite} }

func (e *SpriteUVEncoder) Requires() []ResourceKey {
	return []ResourceKey{KeyOf[SpriteSheets]()}
}

func (e *SpriteUVEncoder) Encode(loop *EncodeLoop, res ResourceView) error {
	sheets, ok := Fetch[SpriteSheets](res)
	if !ok {
		return eris.Wrapf(ErrResourceUnavailable, "encoder %q: sprite sheets", e.Name())
	}
	return Run1(loop, e.sprite, func(out *Row, sr *SpriteRender) {
		if sr == nil {
			return
		}
		if sprite, ok := resolveSprite(sheets, sr); ok {
			out.Set(0, sprite.UV())
		}
	})
}

func resolveSprite(sheets *SpriteSheets, sr *SpriteRender) (Sprite, bool) {
	sheet, ok := sheets.Get(sr.Sheet)
	if !ok {
		return Sprite{}, false
	}
	return sheet.Sprite(sr.Index)
}

// SpriteEncoders returns the encoders that feed the sprite pass: geometry,
// texture rectangle and tint.
func SpriteEncoders(defaults Defaults) []Encoder {
	return []Encoder{
		NewSpriteTransformEncoder(),
		NewSpriteUVEncoder(),
		NewTintEncoder(defaults),
	}
}
