package thicket

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/yohamta/donburi"
)

// spriteFixture is a world with one sprite sheet registered as a resource.
type spriteFixture struct {
	world  donburi.World
	sheets *SpriteSheets
	res    *Resources
	sheet  Handle
}

func newSpriteFixture() *spriteFixture {
	sheets := NewAssetStorage[SpriteSheet]()
	h := sheets.Insert(&SpriteSheet{
		TextureID: 1,
		Sprites: []Sprite{
			SpriteFromSlice([6]float32{10, 20, 0, 0.5, 0, 0.5}),
			{Width: 4, Height: 8, Left: 0.5, Right: 1, Top: 0.5, Bottom: 1, OffsetX: 5, OffsetY: 6},
		},
	})
	res := NewResources()
	Insert(res, sheets)
	return &spriteFixture{world: donburi.NewWorld(), sheets: sheets, res: res, sheet: h}
}

func identityAt(x, y float64) GlobalTransform {
	return Transform2D{X: x, Y: y, ScaleX: 1, ScaleY: 1}.Global()
}

func runSingle(t *testing.T, world donburi.World, enc Encoder, res *Resources) (*EncodeLoop, error) {
	t.Helper()
	frame := NewFrame(world, enc.Components()...)
	loop := NewEncodeLoop(frame, enc)
	return loop, enc.Encode(loop, res.View())
}

// --- TintEncoder ---

func TestTintEncoderDefaultsMissingTintToWhite(t *testing.T) {
	f := newSpriteFixture()
	enc := NewTintEncoder(DefaultDefaults())
	// Visited through the sprite binding only.
	sys := NewSystem(DefaultConfig())
	if err := sys.Register(enc); err != nil {
		t.Fatal(err)
	}
	if err := sys.Register(NewSpriteUVEncoder()); err != nil {
		t.Fatal(err)
	}
	SpawnSprite(f.world, identityAt(0, 0), SpriteRender{Sheet: f.sheet}, nil)

	data := sys.Update(f.world, f.res)
	if data.Len() != 1 {
		t.Fatalf("rows = %d, want 1", data.Len())
	}
	if got := data.Buffer(TintProperty).At(0); got != (Vec4{1, 1, 1, 1}) {
		t.Errorf("tint = %v, want [1 1 1 1]", got)
	}
}

func TestTintEncoderPassesThroughExactly(t *testing.T) {
	f := newSpriteFixture()
	tints := []Tint{{0.1, 0.2, 0.3, 0.4}, {1, 0, 0.5, 0.25}, {0, 0, 0, 0}}
	for _, tint := range tints {
		e := f.world.Create(TintComponent)
		TintComponent.SetValue(f.world.Entry(e), tint)
	}

	loop, err := runSingle(t, f.world, NewTintEncoder(DefaultDefaults()), f.res)
	if err != nil {
		t.Fatal(err)
	}
	col := loop.Buffer(0)
	if col.Len() != len(tints) {
		t.Fatalf("rows = %d, want %d", col.Len(), len(tints))
	}
	for i, tint := range tints {
		want := Vec4{tint.R, tint.G, tint.B, tint.A}
		if got := col.At(i); got != want {
			t.Errorf("row %d = %v, want %v", i, got, want)
		}
	}
}

func TestTintEncoderCustomDefault(t *testing.T) {
	f := newSpriteFixture()
	sys := NewSystem(DefaultConfig())
	red := Tint{1, 0, 0, 1}
	_ = sys.Register(NewTintEncoder(Defaults{Tint: red}))
	_ = sys.Register(NewSpriteUVEncoder())
	SpawnSprite(f.world, identityAt(0, 0), SpriteRender{Sheet: f.sheet}, nil)

	data := sys.Update(f.world, f.res)
	if got := data.Buffer(TintProperty).At(0); got != red.Vec4() {
		t.Errorf("tint = %v, want %v", got, red.Vec4())
	}
}

// --- SpriteTransformEncoder ---

func TestSpriteTransformEncoderGeometry(t *testing.T) {
	f := newSpriteFixture()
	SpawnSprite(f.world, identityAt(100, 50), SpriteRender{Sheet: f.sheet, Index: 1}, nil)

	loop, err := runSingle(t, f.world, NewSpriteTransformEncoder(), f.res)
	if err != nil {
		t.Fatal(err)
	}
	assertVec4Near(t, "pos", loop.Buffer(0).At(0), Vec4{95, 44, 0, 1})
	assertVec4Near(t, "dir_x", loop.Buffer(1).At(0), Vec4{4, 0, 0, 0})
	assertVec4Near(t, "dir_y", loop.Buffer(2).At(0), Vec4{0, 8, 0, 0})
}

func TestSpriteTransformEncoderDirectionMagnitude(t *testing.T) {
	cases := []Transform2D{
		{ScaleX: 1, ScaleY: 1},
		{ScaleX: 2, ScaleY: 3, Rotation: 0.5, X: 10, Y: 20},
		{ScaleX: 0.25, ScaleY: 4, Rotation: -2.1},
		{ScaleX: 1.5, ScaleY: 1.5, Rotation: math.Pi, PivotX: 3, PivotY: 7},
	}
	for i, tr := range cases {
		f := newSpriteFixture()
		gt := tr.Global()
		SpawnSprite(f.world, gt, SpriteRender{Sheet: f.sheet, Index: 0}, nil)

		loop, err := runSingle(t, f.world, NewSpriteTransformEncoder(), f.res)
		if err != nil {
			t.Fatal(err)
		}
		lx := Length4(Column(&gt.Matrix, 0))
		ly := Length4(Column(&gt.Matrix, 1))
		gotX := Length4(loop.Buffer(1).At(0))
		gotY := Length4(loop.Buffer(2).At(0))
		if math.Abs(float64(gotX-lx*10)) > 1e-3 {
			t.Errorf("case %d: |dir_x| = %v, want %v", i, gotX, lx*10)
		}
		if math.Abs(float64(gotY-ly*20)) > 1e-3 {
			t.Errorf("case %d: |dir_y| = %v, want %v", i, gotY, ly*20)
		}
	}
}

func TestSpriteTransformEncoderAllOrNothing(t *testing.T) {
	f := newSpriteFixture()

	onlyTransform := f.world.Create(GlobalTransformComponent)
	GlobalTransformComponent.SetValue(f.world.Entry(onlyTransform), identityAt(1, 1))

	onlySprite := f.world.Create(SpriteRenderComponent)
	SpriteRenderComponent.SetValue(f.world.Entry(onlySprite), SpriteRender{Sheet: f.sheet})

	badIndex := SpawnSprite(f.world, identityAt(2, 2), SpriteRender{Sheet: f.sheet, Index: 9}, nil)
	badSheet := SpawnSprite(f.world, identityAt(3, 3), SpriteRender{Sheet: Handle{}}, nil)
	good := SpawnSprite(f.world, identityAt(4, 4), SpriteRender{Sheet: f.sheet}, nil)

	enc := NewSpriteTransformEncoder()
	frame := NewFrame(f.world, enc.Components()...)
	loop := NewEncodeLoop(frame, enc)
	if err := enc.Encode(loop, f.res.View()); err != nil {
		t.Fatal(err)
	}
	if frame.Len() != 5 {
		t.Fatalf("rows = %d, want 5", frame.Len())
	}

	for i := 0; i < frame.Len(); i++ {
		e := frame.Entity(i)
		zero := 0
		for p := 0; p < 3; p++ {
			if loop.Buffer(p).At(i) == (Vec4{}) {
				zero++
			}
		}
		switch e {
		case onlyTransform, onlySprite, badIndex, badSheet:
			if zero != 3 {
				t.Errorf("entity %v: %d of 3 outputs empty, want all", e, zero)
			}
		case good:
			if zero != 0 {
				t.Errorf("good entity: %d outputs empty", zero)
			}
		}
	}
}

func TestSpriteTransformEncoderMissingSheetsResource(t *testing.T) {
	f := newSpriteFixture()
	SpawnSprite(f.world, identityAt(0, 0), SpriteRender{Sheet: f.sheet}, nil)

	_, err := runSingle(t, f.world, NewSpriteTransformEncoder(), NewResources())
	if !eris.Is(err, ErrResourceUnavailable) {
		t.Errorf("err = %v, want ErrResourceUnavailable", err)
	}
}

// --- SpriteUVEncoder ---

func TestSpriteUVEncoder(t *testing.T) {
	f := newSpriteFixture()
	SpawnSprite(f.world, identityAt(0, 0), SpriteRender{Sheet: f.sheet, Index: 1}, nil)
	SpawnSprite(f.world, identityAt(0, 0), SpriteRender{Sheet: f.sheet, Index: 5}, nil)

	loop, err := runSingle(t, f.world, NewSpriteUVEncoder(), f.res)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := loop.Buffer(0).At(0), (Vec4{0.5, 0.5, 1, 1}); got != want {
		t.Errorf("uv = %v, want %v", got, want)
	}
	if got := loop.Buffer(0).At(1); got != (Vec4{}) {
		t.Errorf("unresolved uv = %v, want zero", got)
	}
}

// --- Determinism ---

func TestEncodersDeterministic(t *testing.T) {
	f := newSpriteFixture()
	for i := 0; i < 50; i++ {
		var tint *Tint
		if i%3 == 0 {
			tint = &Tint{float32(i) / 50, 0.5, 0.5, 1}
		}
		SpawnSprite(f.world, Transform2D{X: float64(i), Y: float64(2 * i), ScaleX: 1, ScaleY: 1, Rotation: float64(i) * 0.1}.Global(),
			SpriteRender{Sheet: f.sheet, Index: i % 2}, tint)
	}

	sys := NewSystem(DefaultConfig())
	for _, enc := range SpriteEncoders(DefaultDefaults()) {
		if err := sys.Register(enc); err != nil {
			t.Fatal(err)
		}
	}

	snapshot := func() map[string][]Vec4 {
		data := sys.Update(f.world, f.res)
		out := make(map[string][]Vec4)
		for _, p := range data.Properties() {
			out[p.Name()] = append([]Vec4(nil), data.Buffer(p).Values()...)
		}
		return out
	}

	first := snapshot()
	for run := 0; run < 3; run++ {
		again := snapshot()
		for name, col := range first {
			if len(again[name]) != len(col) {
				t.Fatalf("run %d: %s has %d rows, want %d", run, name, len(again[name]), len(col))
			}
			for i := range col {
				if again[name][i] != col[i] {
					t.Errorf("run %d: %s[%d] = %v, want %v", run, name, i, again[name][i], col[i])
				}
			}
		}
	}
}
