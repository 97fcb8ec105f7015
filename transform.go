package thicket

import "math"

// Identity4 is the identity transform.
var Identity4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Column returns column c of m.
func Column(m *Mat4, c int) Vec4 {
	return Vec4{m[c], m[4+c], m[8+c], m[12+c]}
}

// MulVec4 returns m * v.
func MulVec4(m *Mat4, v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// MulMat4 returns a * b.
func MulMat4(a, b *Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[4*row+k] * b[4*k+col]
			}
			r[4*row+col] = sum
		}
	}
	return r
}

// Scale4 returns v * s.
func Scale4(v Vec4, s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Length4 returns the Euclidean length of v.
func Length4(v Vec4) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])))
}

// AffineToMat4 lifts a 2D affine matrix [a, b, c, d, tx, ty] into a 4x4
// transform acting on the XY plane.
//
//	| a  c  0  tx |
//	| b  d  0  ty |
//	| 0  0  1  0  |
//	| 0  0  0  1  |
func AffineToMat4(m [6]float64) Mat4 {
	return Mat4{
		float32(m[0]), float32(m[2]), 0, float32(m[4]),
		float32(m[1]), float32(m[3]), 0, float32(m[5]),
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Transform2D describes a flat 2D placement. It is a convenience for building
// GlobalTransform values; thicket does not compose transform hierarchies.
type Transform2D struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64 // radians
	SkewX, SkewY   float64 // radians
	PivotX, PivotY float64
}

// Affine returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func (t Transform2D) Affine() [6]float64 {
	sx := t.ScaleX
	sy := t.ScaleY

	sin, cos := math.Sincos(t.Rotation)

	var tanSkewX, tanSkewY float64
	if t.SkewX != 0 {
		tanSkewX = math.Tan(t.SkewX)
	}
	if t.SkewY != 0 {
		tanSkewY = math.Tan(t.SkewY)
	}

	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	preTx := -t.PivotX*sx - tanSkewX*t.PivotY*sy
	preTy := -tanSkewY*t.PivotX*sx - t.PivotY*sy

	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + t.X, rty + t.Y}
}

// Global returns t as a GlobalTransform.
func (t Transform2D) Global() GlobalTransform {
	return GlobalTransform{Matrix: AffineToMat4(t.Affine())}
}
