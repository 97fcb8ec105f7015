package thicket

// Encoder derives per-entity property values from component bindings.
//
// Properties, Components and Requires are read once at registration and must
// return the same declarations every time. Encode runs once per frame; it
// must not keep the loop or the resource view after it returns and must not
// carry mutable state between calls. A nil return means the encoder ran to
// completion. An error wrapping ErrResourceUnavailable means it could not run
// this frame; its columns stay zero-filled and other encoders are unaffected.
type Encoder interface {
	Name() string
	Properties() []Property
	Components() []AnyBinding
	Requires() []ResourceKey
	Encode(loop *EncodeLoop, res ResourceView) error
}

// FuncEncoder adapts a function to the Encoder interface.
type FuncEncoder struct {
	EncoderName string
	Props       []Property
	Bindings    []AnyBinding
	Needs       []ResourceKey
	Fn          func(loop *EncodeLoop, res ResourceView) error
}

func (f *FuncEncoder) Name() string             { return f.EncoderName }
func (f *FuncEncoder) Properties() []Property   { return f.Props }
func (f *FuncEncoder) Components() []AnyBinding { return f.Bindings }
func (f *FuncEncoder) Requires() []ResourceKey  { return f.Needs }

func (f *FuncEncoder) Encode(loop *EncodeLoop, res ResourceView) error {
	return f.Fn(loop, res)
}
