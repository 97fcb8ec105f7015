package thicket

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"golang.org/x/sync/errgroup"
)

// Reporter receives the outcome of every System.Update.
type Reporter interface {
	Report(r Report)
}

// EncoderReport is one encoder's outcome for a frame.
type EncoderReport struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Report summarizes one System.Update.
type Report struct {
	Frame    uint64
	Rows     int
	Collect  time.Duration
	Encode   time.Duration
	Encoders []EncoderReport
}

// Failed returns the reports of encoders that did not run to completion.
func (r Report) Failed() []EncoderReport {
	var failed []EncoderReport
	for _, e := range r.Encoders {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

type registeredEncoder struct {
	enc     Encoder
	cols    []*InstanceBuffer
	loop    *EncodeLoop
	failing bool
}

// System runs every registered Encoder once per frame over a shared row set
// and assembles one InstanceBuffer per Property.
type System struct {
	cfg      Config
	logger   zerolog.Logger
	reporter Reporter

	encoders []*registeredEncoder
	owners   map[string]string // property name -> encoder name
	names    map[string]struct{}

	sealed  bool
	frame   *Frame
	data    *InstanceData
	frameNo uint64
	report  Report
}

// NewSystem returns an empty System. Zero fields of cfg take their defaults.
func NewSystem(cfg Config) *System {
	if cfg.RowCapacity <= 0 {
		cfg.RowCapacity = defaultRowCapacity
	}
	return &System{
		cfg:    cfg,
		logger: zerolog.Nop(),
		owners: make(map[string]string),
		names:  make(map[string]struct{}),
		data:   &InstanceData{byName: make(map[string]*InstanceBuffer)},
	}
}

// SetLogger replaces the System's logger. The default discards everything.
func (s *System) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// SetReporter sets the Reporter notified after every Update. Pass nil to
// disable.
func (s *System) SetReporter(r Reporter) {
	s.reporter = r
}

// Register adds enc. Each Property may be owned by one encoder only.
// Registration is closed once the first frame has run.
func (s *System) Register(enc Encoder) error {
	if s.sealed {
		return eris.Wrapf(ErrRegistrationClosed, "encoder %q", enc.Name())
	}
	name := enc.Name()
	if _, ok := s.names[name]; ok {
		return eris.Wrapf(ErrDuplicateEncoder, "encoder %q", name)
	}

	props := enc.Properties()
	if len(props) == 0 {
		return eris.Wrapf(ErrArity, "encoder %q declares no properties", name)
	}
	if len(enc.Components()) == 0 {
		return eris.Wrapf(ErrArity, "encoder %q declares no components", name)
	}
	for _, b := range enc.Components() {
		if b == nil || b.Component() == nil {
			return eris.Wrapf(ErrArity, "encoder %q declares a nil component", name)
		}
	}

	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if _, dup := seen[p.name]; dup {
			return eris.Wrapf(ErrDuplicateProperty, "encoder %q declares %q twice", name, p.name)
		}
		seen[p.name] = struct{}{}
		if owner, taken := s.owners[p.name]; taken {
			return eris.Wrapf(ErrDuplicateProperty, "encoder %q: %q is owned by %q", name, p.name, owner)
		}
	}

	r := &registeredEncoder{enc: enc, cols: make([]*InstanceBuffer, len(props))}
	for i, p := range props {
		col := newInstanceBuffer(p, s.cfg.RowCapacity)
		r.cols[i] = col
		s.owners[p.name] = name
		s.data.columns = append(s.data.columns, col)
		s.data.byName[p.name] = col
	}
	s.names[name] = struct{}{}
	s.encoders = append(s.encoders, r)

	s.logger.Debug().
		Str("encoder", name).
		Int("properties", len(props)).
		Int("components", len(enc.Components())).
		Msg("encoder registered")
	return nil
}

// Offset returns the column index of p in InstanceData, or -1 if no encoder
// owns it.
func (s *System) Offset(p Property) int {
	for i, c := range s.data.columns {
		if c.prop.name == p.name {
			return i
		}
	}
	return -1
}

// seal freezes registration and builds the shared frame and the per-encoder
// loops.
func (s *System) seal() {
	var bindings []AnyBinding
	for _, r := range s.encoders {
		bindings = append(bindings, r.enc.Components()...)
	}
	s.frame = newFrame(bindings, s.cfg.RowCapacity)
	s.data.frame = s.frame
	for _, r := range s.encoders {
		r.loop = newEncodeLoop(s.frame, r.enc, r.cols)
	}
	s.report.Encoders = make([]EncoderReport, len(s.encoders))
	s.sealed = true
}

// Update encodes one frame of world. res is borrowed read-only for the whole
// call and must not be modified until Update returns. The returned
// InstanceData is reused by the next Update.
func (s *System) Update(world donburi.World, res *Resources) *InstanceData {
	if !s.sealed {
		s.seal()
	}
	s.frameNo++

	start := time.Now()
	s.frame.Reset(world)
	n := s.frame.Len()
	for _, c := range s.data.columns {
		c.reset(n)
	}
	collected := time.Now()

	view := res.borrow()
	defer res.release()

	reports := s.report.Encoders
	if s.cfg.Parallel && len(s.encoders) > 1 {
		var g errgroup.Group
		for i, r := range s.encoders {
			g.Go(func() error {
				reports[i] = s.runEncoder(r, res, view)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, r := range s.encoders {
			reports[i] = s.runEncoder(r, res, view)
		}
	}

	s.report.Frame = s.frameNo
	s.report.Rows = n
	s.report.Collect = collected.Sub(start)
	s.report.Encode = time.Since(collected)
	s.debugLog()
	if s.reporter != nil {
		s.reporter.Report(s.Report())
	}
	return s.data
}

func (s *System) runEncoder(r *registeredEncoder, res *Resources, view ResourceView) EncoderReport {
	start := time.Now()
	name := r.enc.Name()

	var err error
	for _, key := range r.enc.Requires() {
		if !res.Has(key) {
			err = eris.Wrapf(ErrResourceUnavailable, "encoder %q: resource %v", name, key)
			break
		}
	}
	if err == nil {
		err = r.enc.Encode(r.loop, view)
	}

	if err != nil {
		// Drop anything written before the failure.
		for _, c := range r.cols {
			clear(c.data)
		}
		if !r.failing {
			s.logger.Warn().Str("encoder", name).Err(err).Msg("encoder produced no data")
		}
		r.failing = true
	} else if r.failing {
		s.logger.Info().Str("encoder", name).Msg("encoder recovered")
		r.failing = false
	}

	return EncoderReport{Name: name, Err: err, Duration: time.Since(start)}
}

// Report returns a copy of the most recent frame's report.
func (s *System) Report() Report {
	r := s.report
	r.Encoders = append([]EncoderReport(nil), s.report.Encoders...)
	return r
}

// Data returns the most recent frame's output.
func (s *System) Data() *InstanceData {
	return s.data
}
