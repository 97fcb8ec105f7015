package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/yohamta/donburi"
)

// Mesh is indexed triangle geometry in local space.
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Meshes is the asset storage holding generated meshes.
type Meshes = AssetStorage[Mesh]

// PlaneMesh returns a two-triangle quad centered on the origin spanning
// [-halfW, halfW] x [-halfH, halfH], with source coordinates covering the
// unit square.
func PlaneMesh(halfW, halfH float32) Mesh {
	return Mesh{
		Vertices: []ebiten.Vertex{
			{DstX: -halfW, DstY: -halfH, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			{DstX: halfW, DstY: -halfH, SrcX: 1, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			{DstX: -halfW, DstY: halfH, SrcX: 0, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
			{DstX: halfW, DstY: halfH, SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		},
		Indices: []uint16{0, 1, 2, 1, 3, 2},
	}
}

// Bounds returns the axis-aligned bounding box of the mesh's positions as
// (minX, minY, maxX, maxY).
func (m *Mesh) Bounds() Vec4 {
	if len(m.Vertices) == 0 {
		return Vec4{}
	}
	b := Vec4{m.Vertices[0].DstX, m.Vertices[0].DstY, m.Vertices[0].DstX, m.Vertices[0].DstY}
	for _, v := range m.Vertices[1:] {
		b[0] = min(b[0], v.DstX)
		b[1] = min(b[1], v.DstY)
		b[2] = max(b[2], v.DstX)
		b[3] = max(b[3], v.DstY)
	}
	return b
}

// TextureOffset is the sub-rectangle of a texture a material samples, as
// (start, end) pairs on each axis.
type TextureOffset struct {
	U [2]float32
	V [2]float32
}

// Material describes how a mesh is shaded.
type Material struct {
	Albedo       Handle
	AlbedoOffset TextureOffset
	Tint         Tint
	Blend        BlendMode
}

// MaterialDefaults is the immutable template new materials start from.
type MaterialDefaults struct {
	Material Material
}

// DefaultMaterial returns the stock template: white tint, normal blending,
// full texture.
func DefaultMaterial() MaterialDefaults {
	return MaterialDefaults{Material: Material{
		AlbedoOffset: TextureOffset{U: [2]float32{0, 1}, V: [2]float32{0, 1}},
		Tint:         TintWhite,
		Blend:        BlendNormal,
	}}
}

// MeshRef is the component pointing an entity at a mesh asset.
type MeshRef struct {
	Mesh Handle
}

// Component types written by SpriteRenderData.
var (
	MeshComponent     = donburi.NewComponentType[MeshRef]()
	MaterialComponent = donburi.NewComponentType[Material]()
)

// SpriteRenderData attaches mesh-and-material sprite representations to
// entities, for render paths that draw sprites as individual meshes.
type SpriteRenderData struct {
	World    donburi.World
	Meshes   *Meshes
	Defaults MaterialDefaults
}

// BuildMeshAndMaterial creates a plane mesh sized to the sprite's texture
// rectangle and a material sampling it from texture. size is the texture's
// extent in the same units as the sprite's coordinates. Reuse the result when
// attaching the same sprite many times.
func (d *SpriteRenderData) BuildMeshAndMaterial(sprite Sprite, texture Handle, size [2]float32) (Handle, Material) {
	halfW := (sprite.Right - sprite.Left) * 0.5
	halfH := (sprite.Bottom - sprite.Top) * 0.5
	plane := PlaneMesh(halfW, halfH)
	mesh := d.Meshes.Insert(&plane)

	mat := d.Defaults.Material
	mat.Albedo = texture
	mat.AlbedoOffset = TextureOffset{
		U: [2]float32{sprite.Left / size[0], sprite.Right / size[0]},
		V: [2]float32{1 - sprite.Bottom/size[1], 1 - sprite.Top/size[1]},
	}
	return mesh, mat
}

// Add attaches a mesh and material for sprite to entity.
func (d *SpriteRenderData) Add(entity donburi.Entity, sprite Sprite, texture Handle, size [2]float32) error {
	if !d.World.Valid(entity) {
		return eris.Wrapf(ErrAttachment, "entity %v does not exist", entity)
	}
	mesh, mat := d.BuildMeshAndMaterial(sprite, texture, size)
	attachMesh(d.World.Entry(entity), mesh, mat)
	return nil
}

// AddMultiple attaches one shared mesh and a copy of one material to every
// entity. Every entity is checked before anything is written, so a failure
// leaves all of them untouched. An empty slice is a no-op.
func (d *SpriteRenderData) AddMultiple(entities []donburi.Entity, sprite Sprite, texture Handle, size [2]float32) error {
	if len(entities) == 0 {
		return nil
	}
	for _, e := range entities {
		if !d.World.Valid(e) {
			return eris.Wrapf(ErrAttachment, "entity %v does not exist", e)
		}
	}
	mesh, mat := d.BuildMeshAndMaterial(sprite, texture, size)
	for _, e := range entities {
		attachMesh(d.World.Entry(e), mesh, mat)
	}
	return nil
}

func attachMesh(entry *donburi.Entry, mesh Handle, mat Material) {
	if !entry.HasComponent(MeshComponent) {
		entry.AddComponent(MeshComponent)
	}
	MeshComponent.SetValue(entry, MeshRef{Mesh: mesh})
	if !entry.HasComponent(MaterialComponent) {
		entry.AddComponent(MaterialComponent)
	}
	MaterialComponent.SetValue(entry, mat)
}
