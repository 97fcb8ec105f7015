package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/math/f32"
)

// Vec4 is one property value: four float32 scalars, the width of a single
// GPU per-instance attribute.
type Vec4 = f32.Vec4

// Mat4 is a 4x4 matrix in row-major order: m[4*r+c] is row r, column c.
type Mat4 = f32.Mat4

// Tint is a per-entity RGBA color with components in [0, 1]. Not
// premultiplied; premultiplication happens at submission time.
type Tint struct {
	R, G, B, A float32
}

// TintWhite is the fully opaque white tint.
var TintWhite = Tint{1, 1, 1, 1}

// Vec4 returns the tint as a property value in RGBA order.
func (t Tint) Vec4() Vec4 {
	return Vec4{t.R, t.G, t.B, t.A}
}

// GlobalTransform is an entity's already-resolved world transform. Its first
// two columns are the local X and Y basis vectors.
type GlobalTransform struct {
	Matrix Mat4
}

// SpriteRender references one sprite of a sprite sheet held in the
// SpriteSheets asset storage.
type SpriteRender struct {
	Sheet Handle
	Index int
}

// BlendMode selects a compositing operation for the Batcher.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendNone                      // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
