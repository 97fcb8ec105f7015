package thicket

// Property is a named output attribute stream. Every value written to a
// Property is a Vec4. Properties are compared by name; the column a Property
// occupies in InstanceData is fixed when its encoder is registered.
type Property struct {
	name string
}

// NewProperty declares a Property. Names must be unique within a System.
func NewProperty(name string) Property {
	return Property{name: name}
}

// Name returns the property name, which is also its InstanceData column key.
func (p Property) Name() string { return p.name }

func (p Property) String() string { return p.name }

// Built-in properties consumed by the sprite pass.
var (
	TintProperty = NewProperty("tint")  // vec4 tint (r, g, b, a)
	PosProperty  = NewProperty("pos")   // vec4 pos, homogeneous
	DirXProperty = NewProperty("dir_x") // vec4 dir_x, local X edge scaled by sprite width
	DirYProperty = NewProperty("dir_y") // vec4 dir_y, local Y edge scaled by sprite height
	UVProperty   = NewProperty("uv")    // vec4 uv (left, top, right, bottom)
)

// Row holds one entity's results: exactly one slot per declared Property, in
// declaration order. A slot is either a value or "no value". The join resets
// every slot to "no value" before handing the Row to the per-entity function.
type Row struct {
	vals []Vec4
	set  []bool
}

func newRow(n int) Row {
	return Row{vals: make([]Vec4, n), set: make([]bool, n)}
}

// Len returns the number of slots, equal to the encoder's Property arity.
func (r *Row) Len() int { return len(r.vals) }

// Set stores v for the i'th declared Property. Panics if i is out of range.
func (r *Row) Set(i int, v Vec4) {
	r.vals[i] = v
	r.set[i] = true
}

// Clear marks the i'th slot as "no value".
func (r *Row) Clear(i int) {
	r.set[i] = false
}

// Value returns the i'th slot and whether it holds a value.
func (r *Row) Value(i int) (Vec4, bool) {
	return r.vals[i], r.set[i]
}

func (r *Row) reset() {
	clear(r.set)
}
