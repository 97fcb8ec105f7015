package thicket

import (
	"unsafe"

	"github.com/yohamta/donburi"
)

// InstanceBuffer is one Property's column for a frame: one Vec4 per frame
// row. Rows an encoder leaves without a value read as zero.
type InstanceBuffer struct {
	prop Property
	data []Vec4
}

func newInstanceBuffer(p Property, capacity int) *InstanceBuffer {
	return &InstanceBuffer{prop: p, data: make([]Vec4, 0, capacity)}
}

// Property returns the Property this column belongs to.
func (b *InstanceBuffer) Property() Property { return b.prop }

// Len returns the number of rows.
func (b *InstanceBuffer) Len() int { return len(b.data) }

// Values returns the column. The slice is reused by the next frame.
func (b *InstanceBuffer) Values() []Vec4 { return b.data }

// At returns row i.
func (b *InstanceBuffer) At(i int) Vec4 { return b.data[i] }

// Floats returns the column as a flat []float32 of length 4*Len, the layout
// a per-instance vertex attribute upload expects. It aliases Values.
func (b *InstanceBuffer) Floats() []float32 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice(&b.data[0][0], len(b.data)*4)
}

// reset resizes the column to n rows and zero-fills it.
func (b *InstanceBuffer) reset(n int) {
	if cap(b.data) < n {
		b.data = make([]Vec4, n)
		return
	}
	b.data = b.data[:n]
	clear(b.data)
}

// InstanceData is the output of one System.Update: a shared row index plus
// one InstanceBuffer per registered Property. Row i of every column refers to
// Entity(i). It is valid until the next Update.
type InstanceData struct {
	frame   *Frame
	columns []*InstanceBuffer
	byName  map[string]*InstanceBuffer
}

// Len returns the number of rows in every column.
func (d *InstanceData) Len() int {
	if d.frame == nil {
		return 0
	}
	return d.frame.Len()
}

// Entity returns the entity occupying row i.
func (d *InstanceData) Entity(i int) donburi.Entity { return d.frame.Entity(i) }

// Column returns the buffer for the named Property, or nil if no registered
// encoder owns it.
func (d *InstanceData) Column(name string) *InstanceBuffer {
	return d.byName[name]
}

// Buffer returns the buffer for p, or nil if no registered encoder owns it.
func (d *InstanceData) Buffer(p Property) *InstanceBuffer {
	return d.byName[p.name]
}

// Properties returns every column's Property in registration order.
func (d *InstanceData) Properties() []Property {
	props := make([]Property, len(d.columns))
	for i, c := range d.columns {
		props[i] = c.prop
	}
	return props
}
