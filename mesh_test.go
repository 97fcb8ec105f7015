package thicket

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/yohamta/donburi"
)

func newRenderData() *SpriteRenderData {
	return &SpriteRenderData{
		World:    donburi.NewWorld(),
		Meshes:   NewAssetStorage[Mesh](),
		Defaults: DefaultMaterial(),
	}
}

var testSprite = Sprite{Width: 64, Height: 32, Left: 0, Right: 64, Top: 0, Bottom: 32}

func TestPlaneMeshBounds(t *testing.T) {
	m := PlaneMesh(3, 2)
	if len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Fatalf("vertices = %d, indices = %d", len(m.Vertices), len(m.Indices))
	}
	if got, want := m.Bounds(), (Vec4{-3, -2, 3, 2}); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	var empty Mesh
	if empty.Bounds() != (Vec4{}) {
		t.Error("empty mesh should have zero bounds")
	}
}

func TestBuildMeshAndMaterial(t *testing.T) {
	d := newRenderData()
	tex := Handle{index: 7, gen: 1}
	h, mat := d.BuildMeshAndMaterial(testSprite, tex, [2]float32{128, 64})

	mesh, ok := d.Meshes.Get(h)
	if !ok {
		t.Fatal("mesh not stored")
	}
	if got, want := mesh.Bounds(), (Vec4{-32, -16, 32, 16}); got != want {
		t.Errorf("mesh bounds = %v, want %v", got, want)
	}
	if mat.Albedo != tex {
		t.Errorf("albedo = %v, want %v", mat.Albedo, tex)
	}
	want := TextureOffset{U: [2]float32{0, 0.5}, V: [2]float32{0.5, 1}}
	if mat.AlbedoOffset != want {
		t.Errorf("offset = %+v, want %+v", mat.AlbedoOffset, want)
	}
	if mat.Tint != TintWhite || mat.Blend != BlendNormal {
		t.Errorf("material did not start from defaults: %+v", mat)
	}
	if d.Defaults.Material.Albedo != (Handle{}) {
		t.Error("defaults were mutated")
	}
}

func TestAddMultipleSharesOneMesh(t *testing.T) {
	d := newRenderData()
	entities := make([]donburi.Entity, 5)
	for i := range entities {
		entities[i] = d.World.Create(TintComponent)
	}
	if err := d.AddMultiple(entities, testSprite, Handle{index: 1, gen: 1}, [2]float32{64, 32}); err != nil {
		t.Fatal(err)
	}
	if d.Meshes.Len() != 1 {
		t.Errorf("meshes = %d, want 1", d.Meshes.Len())
	}

	first := d.World.Entry(entities[0])
	ref := MeshComponent.Get(first)
	mat := MaterialComponent.Get(first)
	for _, e := range entities[1:] {
		entry := d.World.Entry(e)
		if got := MeshComponent.Get(entry); *got != *ref {
			t.Errorf("entity %v mesh = %v, want %v", e, *got, *ref)
		}
		got := MaterialComponent.Get(entry)
		if *got != *mat {
			t.Errorf("entity %v material = %+v, want %+v", e, *got, *mat)
		}
		if got == mat {
			t.Error("materials share storage")
		}
	}
}

func TestAddMultipleEmptyIsNoop(t *testing.T) {
	d := newRenderData()
	if err := d.AddMultiple(nil, testSprite, Handle{}, [2]float32{64, 32}); err != nil {
		t.Fatal(err)
	}
	if d.Meshes.Len() != 0 {
		t.Errorf("meshes = %d, want 0", d.Meshes.Len())
	}
}

func TestAddMultipleInvalidEntityWritesNothing(t *testing.T) {
	d := newRenderData()
	alive := d.World.Create(TintComponent)
	gone := d.World.Create(TintComponent)
	d.World.Remove(gone)

	err := d.AddMultiple([]donburi.Entity{alive, gone}, testSprite, Handle{}, [2]float32{64, 32})
	if !eris.Is(err, ErrAttachment) {
		t.Fatalf("err = %v, want ErrAttachment", err)
	}
	if d.Meshes.Len() != 0 {
		t.Errorf("meshes = %d, want 0", d.Meshes.Len())
	}
	if d.World.Entry(alive).HasComponent(MeshComponent) {
		t.Error("valid entity was modified before the failure was detected")
	}
}

func TestAddSingle(t *testing.T) {
	d := newRenderData()
	e := d.World.Create(TintComponent)
	if err := d.Add(e, testSprite, Handle{}, [2]float32{64, 32}); err != nil {
		t.Fatal(err)
	}
	entry := d.World.Entry(e)
	if !entry.HasComponent(MeshComponent) || !entry.HasComponent(MaterialComponent) {
		t.Error("mesh components not attached")
	}

	d.World.Remove(e)
	if err := d.Add(e, testSprite, Handle{}, [2]float32{64, 32}); !eris.Is(err, ErrAttachment) {
		t.Errorf("err = %v, want ErrAttachment", err)
	}
}

func TestWithSprite(t *testing.T) {
	world := donburi.NewWorld()
	e := world.Create(TintComponent)
	render := SpriteRender{Index: 2}
	if err := WithSprite(world, e, identityAt(1, 2), render); err != nil {
		t.Fatal(err)
	}
	entry := world.Entry(e)
	if got := *SpriteRenderComponent.Get(entry); got != render {
		t.Errorf("render = %+v, want %+v", got, render)
	}
	if got := GlobalTransformComponent.Get(entry).Matrix; got != identityAt(1, 2).Matrix {
		t.Errorf("transform = %v", got)
	}

	// Replaces existing values.
	if err := WithSprite(world, e, identityAt(3, 4), SpriteRender{Index: 5}); err != nil {
		t.Fatal(err)
	}
	if SpriteRenderComponent.Get(entry).Index != 5 {
		t.Error("render not replaced")
	}

	world.Remove(e)
	if err := WithSprite(world, e, identityAt(0, 0), render); !eris.Is(err, ErrAttachment) {
		t.Errorf("err = %v, want ErrAttachment", err)
	}
}
