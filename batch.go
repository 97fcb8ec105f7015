package thicket

import "github.com/hajimehoshi/ebiten/v2"

// Batcher turns a frame's InstanceData into one DrawTriangles32 call: one
// quad per row, spanned by pos, dir_x and dir_y, sampled from the uv column
// and colored by the tint column.
type Batcher struct {
	Blend BlendMode

	verts []ebiten.Vertex
	inds  []uint32
}

// Build expands data into the Batcher's vertex and index buffers and returns
// the number of quads. pageW and pageH convert normalized UVs to the page's
// pixel coordinates. Rows without geometry or with zero alpha are skipped.
// The pos, dir_x and dir_y columns are required; without a tint column rows
// are opaque white, and without a uv column they sample the whole page.
func (b *Batcher) Build(data *InstanceData, pageW, pageH float32) int {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]

	pos := data.Buffer(PosProperty)
	dirX := data.Buffer(DirXProperty)
	dirY := data.Buffer(DirYProperty)
	if pos == nil || dirX == nil || dirY == nil {
		return 0
	}
	tint := data.Buffer(TintProperty)
	uv := data.Buffer(UVProperty)

	quads := 0
	for i := 0; i < data.Len(); i++ {
		dx := dirX.data[i]
		dy := dirY.data[i]
		if dx == (Vec4{}) && dy == (Vec4{}) {
			continue
		}

		// Premultiplied RGBA.
		cr, cg, cb, ca := float32(1), float32(1), float32(1), float32(1)
		if tint != nil {
			t := tint.data[i]
			ca = t[3]
			cr, cg, cb = t[0]*ca, t[1]*ca, t[2]*ca
		}
		if ca == 0 {
			continue
		}

		rect := Vec4{0, 0, 1, 1}
		if uv != nil {
			rect = uv.data[i]
		}
		// TL, TR, BL, BR in texture space.
		sx := [4]float32{rect[0] * pageW, rect[2] * pageW, rect[0] * pageW, rect[2] * pageW}
		sy := [4]float32{rect[1] * pageH, rect[1] * pageH, rect[3] * pageH, rect[3] * pageH}
		lu := [4]float32{0, 1, 0, 1}
		lv := [4]float32{0, 0, 1, 1}

		p := pos.data[i]
		base := uint32(len(b.verts))
		for c := 0; c < 4; c++ {
			b.verts = append(b.verts, ebiten.Vertex{
				DstX:   p[0] + lu[c]*dx[0] + lv[c]*dy[0],
				DstY:   p[1] + lu[c]*dx[1] + lv[c]*dy[1],
				SrcX:   sx[c],
				SrcY:   sy[c],
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}

		// Two triangles: TL-TR-BL, TR-BR-BL
		b.inds = append(b.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
		quads++
	}
	return quads
}

// Draw builds data against page and submits it to target in a single draw
// call. It returns the number of quads drawn.
func (b *Batcher) Draw(target *ebiten.Image, data *InstanceData, page *ebiten.Image) int {
	bounds := page.Bounds()
	quads := b.Build(data, float32(bounds.Dx()), float32(bounds.Dy()))
	if quads == 0 {
		return 0
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = b.Blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(b.verts, b.inds, page, &triOp)
	return quads
}

// Vertices returns the vertices of the last Build.
func (b *Batcher) Vertices() []ebiten.Vertex { return b.verts }

// Indices returns the indices of the last Build.
func (b *Batcher) Indices() []uint32 { return b.inds }
