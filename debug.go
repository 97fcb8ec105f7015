package thicket

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w (stderr when nil) at
// cfg.LogLevel, or debug level when cfg.Debug is set.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Str("component", "thicket").Logger()
}

// debugLog writes the frame's timing and row stats when Config.Debug is set.
func (s *System) debugLog() {
	if !s.cfg.Debug {
		return
	}
	failed := 0
	for _, e := range s.report.Encoders {
		if e.Err != nil {
			failed++
		}
	}
	ev := s.logger.Debug().
		Uint64("frame", s.report.Frame).
		Int("rows", s.report.Rows).
		Dur("collect", s.report.Collect).
		Dur("encode", s.report.Encode).
		Int("encoders", len(s.report.Encoders)).
		Int("failed", failed)
	dict := zerolog.Dict()
	for _, e := range s.report.Encoders {
		dict = dict.Dur(e.Name, e.Duration)
	}
	ev.Dict("timings", dict).Msg("frame encoded")
}
