package thicket

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Sprite is one sub-image of a sprite sheet: pixel dimensions plus texture
// coordinates normalized to [0, 1].
//
//   - X axis: 0 is the left side and 1 is the right side.
//   - Y axis: 0 is the top and 1 is the bottom.
//
// OffsetX and OffsetY locate the sprite's origin in pixels; the geometry
// encoder places the quad at the transform applied to (-OffsetX, -OffsetY).
type Sprite struct {
	Width   float32 `json:"width"`
	Height  float32 `json:"height"`
	Left    float32 `json:"left"`
	Right   float32 `json:"right"`
	Top     float32 `json:"top"`
	Bottom  float32 `json:"bottom"`
	OffsetX float32 `json:"offset_x,omitempty"`
	OffsetY float32 `json:"offset_y,omitempty"`
}

// SpriteFromPairs builds a Sprite from ((width, height), (left, right),
// (top, bottom)).
func SpriteFromPairs(size, horizontal, vertical [2]float32) Sprite {
	return Sprite{
		Width:  size[0],
		Height: size[1],
		Left:   horizontal[0],
		Right:  horizontal[1],
		Top:    vertical[0],
		Bottom: vertical[1],
	}
}

// SpriteFromSlice builds a Sprite from [width, height, left, right, top, bottom].
func SpriteFromSlice(v [6]float32) Sprite {
	return Sprite{
		Width:  v[0],
		Height: v[1],
		Left:   v[2],
		Right:  v[3],
		Top:    v[4],
		Bottom: v[5],
	}
}

// UV returns the texture rectangle as (left, top, right, bottom).
func (s Sprite) UV() Vec4 {
	return Vec4{s.Left, s.Top, s.Right, s.Bottom}
}

// UnmarshalJSON accepts either the object form or the flat six-number form.
func (s *Sprite) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var flat []float32
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return eris.Wrap(ErrInvalidSpriteSheet, err.Error())
		}
		if len(flat) != 6 {
			return eris.Wrapf(ErrInvalidSpriteSheet, "flat sprite has %d values, want 6", len(flat))
		}
		*s = SpriteFromSlice([6]float32(flat))
		return nil
	}
	type plain Sprite
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return eris.Wrap(ErrInvalidSpriteSheet, err.Error())
	}
	*s = Sprite(p)
	return nil
}

// SpriteSheet is the metadata of one texture holding many sprites.
type SpriteSheet struct {
	// TextureID identifies the texture the backend binds for this sheet.
	TextureID uint64 `json:"texture_id"`
	// Sprites are addressed by SpriteRender.Index.
	Sprites []Sprite `json:"sprites"`
	// Names maps optional sprite names to indices.
	Names map[string]int `json:"names,omitempty"`
}

// Sprite returns sprite i, or false if i is out of range.
func (s *SpriteSheet) Sprite(i int) (Sprite, bool) {
	if i < 0 || i >= len(s.Sprites) {
		return Sprite{}, false
	}
	return s.Sprites[i], true
}

// Index returns the index of the named sprite.
func (s *SpriteSheet) Index(name string) (int, bool) {
	i, ok := s.Names[name]
	return i, ok
}

// LoadSpriteSheet parses the serialized form:
//
//	{"texture_id": 3, "sprites": [{"width": 10, ...}, [10, 20, 0, 0.5, 0.75, 1]]}
func LoadSpriteSheet(data []byte) (*SpriteSheet, error) {
	var sheet SpriteSheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		if eris.Is(err, ErrInvalidSpriteSheet) {
			return nil, err
		}
		return nil, eris.Wrap(ErrInvalidSpriteSheet, err.Error())
	}
	for name, i := range sheet.Names {
		if i < 0 || i >= len(sheet.Sprites) {
			return nil, eris.Wrapf(ErrInvalidSpriteSheet, "name %q points at sprite %d of %d", name, i, len(sheet.Sprites))
		}
	}
	return &sheet, nil
}

// MarshalSpriteSheet encodes sheet in the object form LoadSpriteSheet reads.
func MarshalSpriteSheet(sheet *SpriteSheet) ([]byte, error) {
	data, err := json.Marshal(sheet)
	if err != nil {
		return nil, eris.Wrap(err, "thicket: failed to encode sprite sheet")
	}
	return data, nil
}

// --- TexturePacker import ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Size   jsonSize             `json:"size"`
	Frames map[string]jsonFrame `json:"frames"`
}

// SpriteSheetsFromTexturePacker converts TexturePacker JSON into one
// SpriteSheet per atlas page. Both the hash format (top-level "frames" with
// "meta.size") and the array format ("textures", each with its own "size")
// are accepted. Page i gets texture id firstTextureID+i. Sprites are ordered
// by name and reachable through SpriteSheet.Index. Rotated frames are
// rejected.
func SpriteSheetsFromTexturePacker(data []byte, firstTextureID uint64) ([]*SpriteSheet, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     struct {
			Size jsonSize `json:"size"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, eris.Wrap(ErrInvalidSpriteSheet, "failed to parse atlas JSON: "+err.Error())
	}

	var pages []jsonTexturePage
	switch {
	case probe.Textures != nil:
		if err := json.Unmarshal(probe.Textures, &pages); err != nil {
			return nil, eris.Wrap(ErrInvalidSpriteSheet, "failed to parse atlas textures array: "+err.Error())
		}
	case probe.Frames != nil:
		page := jsonTexturePage{Size: probe.Meta.Size}
		if err := json.Unmarshal(probe.Frames, &page.Frames); err != nil {
			return nil, eris.Wrap(ErrInvalidSpriteSheet, "failed to parse atlas frames: "+err.Error())
		}
		pages = append(pages, page)
	default:
		return nil, eris.Wrap(ErrInvalidSpriteSheet, `atlas JSON has neither "frames" nor "textures" key`)
	}

	sheets := make([]*SpriteSheet, 0, len(pages))
	for i, page := range pages {
		sheet, err := pageToSheet(page, firstTextureID+uint64(i))
		if err != nil {
			return nil, eris.Wrapf(err, "page %d", i)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func pageToSheet(page jsonTexturePage, textureID uint64) (*SpriteSheet, error) {
	if page.Size.W <= 0 || page.Size.H <= 0 {
		return nil, eris.Wrap(ErrInvalidSpriteSheet, "atlas page size missing")
	}
	names := make([]string, 0, len(page.Frames))
	for name := range page.Frames {
		names = append(names, name)
	}
	sort.Strings(names)

	sheet := &SpriteSheet{
		TextureID: textureID,
		Sprites:   make([]Sprite, 0, len(names)),
		Names:     make(map[string]int, len(names)),
	}
	pw := float32(page.Size.W)
	ph := float32(page.Size.H)
	for _, name := range names {
		f := page.Frames[name]
		if f.Rotated {
			return nil, eris.Wrapf(ErrInvalidSpriteSheet, "frame %q is rotated", name)
		}
		sheet.Names[name] = len(sheet.Sprites)
		sheet.Sprites = append(sheet.Sprites, frameToSprite(f, pw, ph))
	}
	return sheet, nil
}

// frameToSprite maps a packed frame to normalized UVs. A trimmed frame keeps
// its placement inside the untrimmed source through a negative offset.
func frameToSprite(f jsonFrame, pageW, pageH float32) Sprite {
	s := Sprite{
		Width:  float32(f.Frame.W),
		Height: float32(f.Frame.H),
		Left:   float32(f.Frame.X) / pageW,
		Right:  float32(f.Frame.X+f.Frame.W) / pageW,
		Top:    float32(f.Frame.Y) / pageH,
		Bottom: float32(f.Frame.Y+f.Frame.H) / pageH,
	}
	if f.Trimmed {
		s.OffsetX = -float32(f.SpriteSourceSize.X)
		s.OffsetY = -float32(f.SpriteSourceSize.Y)
	}
	return s
}
