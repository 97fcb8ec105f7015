package thicket

import (
	"github.com/rotisserie/eris"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"
)

// Frame is the ordered row set of one encoding pass: every live entity that
// carries at least one of the frame's bindings, in donburi query order. All
// encoders of a pass iterate the same Frame, so row i means the same entity
// in every column.
type Frame struct {
	query   *donburi.Query
	rows    []*donburi.Entry
	collect func(*donburi.Entry)
}

// NewFrame builds a Frame over the union of bindings and collects world's
// rows into it.
func NewFrame(world donburi.World, bindings ...AnyBinding) *Frame {
	f := newFrame(bindings, 0)
	f.Reset(world)
	return f
}

func newFrame(bindings []AnyBinding, capacity int) *Frame {
	seen := make(map[component.IComponentType]struct{}, len(bindings))
	filters := make([]filter.LayoutFilter, 0, len(bindings))
	for _, b := range bindings {
		c := b.Component()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		filters = append(filters, filter.Contains(c))
	}

	f := &Frame{rows: make([]*donburi.Entry, 0, capacity)}
	switch len(filters) {
	case 0:
	case 1:
		f.query = donburi.NewQuery(filters[0])
	default:
		f.query = donburi.NewQuery(filter.Or(filters...))
	}
	f.collect = func(e *donburi.Entry) {
		f.rows = append(f.rows, e)
	}
	return f
}

// Reset recollects the rows from world, reusing the row storage.
func (f *Frame) Reset(world donburi.World) {
	clear(f.rows)
	f.rows = f.rows[:0]
	if f.query == nil {
		return
	}
	f.query.Each(world, f.collect)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Entity returns the entity at row i.
func (f *Frame) Entity(i int) donburi.Entity { return f.rows[i].Entity() }

// Entry returns the donburi entry at row i.
func (f *Frame) Entry(i int) *donburi.Entry { return f.rows[i] }

// EncodeLoop binds one encoder's declared Properties and Components to a
// Frame and to the columns that encoder owns. It is only valid during the
// Encode call that received it.
type EncodeLoop struct {
	encoder  string
	frame    *Frame
	declared []component.IComponentType
	cols     []*InstanceBuffer
	row      Row
}

// NewEncodeLoop returns a loop over frame for enc with freshly allocated,
// zero-filled columns. The System builds its loops internally; this is for
// running a single encoder on its own.
func NewEncodeLoop(frame *Frame, enc Encoder) *EncodeLoop {
	props := enc.Properties()
	cols := make([]*InstanceBuffer, len(props))
	for i, p := range props {
		cols[i] = newInstanceBuffer(p, frame.Len())
		cols[i].reset(frame.Len())
	}
	return newEncodeLoop(frame, enc, cols)
}

func newEncodeLoop(frame *Frame, enc Encoder, cols []*InstanceBuffer) *EncodeLoop {
	comps := enc.Components()
	declared := make([]component.IComponentType, len(comps))
	for i, b := range comps {
		declared[i] = b.Component()
	}
	return &EncodeLoop{
		encoder:  enc.Name(),
		frame:    frame,
		declared: declared,
		cols:     cols,
		row:      newRow(len(cols)),
	}
}

// Len returns the number of rows the loop visits.
func (l *EncodeLoop) Len() int { return l.frame.Len() }

// Buffer returns the column of the i'th declared Property.
func (l *EncodeLoop) Buffer(i int) *InstanceBuffer { return l.cols[i] }

func (l *EncodeLoop) check(bindings ...AnyBinding) error {
	for _, b := range bindings {
		c := b.Component()
		found := false
		for _, d := range l.declared {
			if d == c {
				found = true
				break
			}
		}
		if !found {
			return eris.Wrapf(ErrUndeclaredBinding, "encoder %q: component %q", l.encoder, b.Name())
		}
	}
	return nil
}

// scatter copies the current Row's set slots into the columns at row i.
// Unset slots keep the frame's zero fill.
func (l *EncodeLoop) scatter(i int) {
	for p, col := range l.cols {
		if l.row.set[p] {
			col.data[i] = l.row.vals[p]
		}
	}
}

// Run1 joins one binding. fn is called once per frame row, in row order,
// with a nil pointer when the row does not carry the component.
func Run1[A any](l *EncodeLoop, a Binding[A], fn func(out *Row, a *A)) error {
	if err := l.check(a); err != nil {
		return err
	}
	for i, e := range l.frame.rows {
		l.row.reset()
		fn(&l.row, a.Get(e))
		l.scatter(i)
	}
	return nil
}

// Run2 joins two bindings; each is independently optional per row.
func Run2[A, B any](l *EncodeLoop, a Binding[A], b Binding[B], fn func(out *Row, a *A, b *B)) error {
	if err := l.check(a, b); err != nil {
		return err
	}
	for i, e := range l.frame.rows {
		l.row.reset()
		fn(&l.row, a.Get(e), b.Get(e))
		l.scatter(i)
	}
	return nil
}

// Run3 joins three bindings; each is independently optional per row.
func Run3[A, B, C any](l *EncodeLoop, a Binding[A], b Binding[B], c Binding[C], fn func(out *Row, a *A, b *B, c *C)) error {
	if err := l.check(a, b, c); err != nil {
		return err
	}
	for i, e := range l.frame.rows {
		l.row.reset()
		fn(&l.row, a.Get(e), b.Get(e), c.Get(e))
		l.scatter(i)
	}
	return nil
}

// RunEach hands fn the raw donburi entry of every row, for encoders joining
// more bindings than the typed runners cover. Components must be read through
// declared Bindings.
func RunEach(l *EncodeLoop, fn func(out *Row, entry *donburi.Entry)) error {
	for i, e := range l.frame.rows {
		l.row.reset()
		fn(&l.row, e)
		l.scatter(i)
	}
	return nil
}
