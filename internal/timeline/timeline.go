package timeline

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
)

// DefaultBasename names the animation when frames is set without basename.
const DefaultBasename = "animation"

// KnobTable holds, for each frame index, the knob values written by vary
// directives for that frame. Knobs absent from a row are not reset.
type KnobTable []map[string]float64

// Timeline is the result of the two-pass analysis of a script.
// It is built once and never modified afterwards.
type Timeline struct {
	// Frames is the resolved frame count; zero when no frames directive exists.
	Frames   int
	Basename string
	Animate  bool
	Knobs    KnobTable
}

// FrameCount is the number of frames the executor must produce.
// Without a resolved frame count the script runs exactly once.
func (t *Timeline) FrameCount() int {
	if t.Frames < 1 {
		return 1
	}
	return t.Frames
}

// Row returns the knob writes for frame i, or nil when the frame has none.
func (t *Timeline) Row(i int) map[string]float64 {
	if i < 0 || i >= len(t.Knobs) {
		return nil
	}
	return t.Knobs[i]
}

// Resolve computes the effective knob values of every frame, applying the
// sticky rule: a knob keeps its last written value, or its declared value in
// defaults if it was never written.
func (t *Timeline) Resolve(defaults domain.SymbolTable) []map[string]float64 {
	current := defaults.Clone()
	out := make([]map[string]float64, t.FrameCount())
	for i := range out {
		for k, v := range t.Row(i) {
			current.SetKnob(k, v)
		}
		out[i] = current.Knobs()
	}
	return out
}

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger used for the default basename notice.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

type builder struct {
	logger *slog.Logger
}

// Build runs both passes over the command stream. A ConfigError aborts the
// whole analysis: no partial table is ever returned.
func Build(cmds []domain.Command, opts ...Option) (*Timeline, error) {
	b := &builder{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(b)
	}

	tl, err := b.discover(cmds)
	if err != nil {
		return nil, err
	}
	if tl.Frames > 0 {
		knobs, err := buildKnobs(cmds, tl.Frames)
		if err != nil {
			return nil, err
		}
		tl.Knobs = knobs
	}
	return tl, nil
}

// discover is the first pass. It always scans the full stream.
func (b *builder) discover(cmds []domain.Command) (*Timeline, error) {
	tl := &Timeline{}
	hasBasename := false

	for _, cmd := range cmds {
		switch cmd.Op {
		case domain.OpFrames:
			n, err := frameIndex(cmd, 0)
			if err != nil {
				return nil, err
			}
			if n < 1 {
				return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: fmt.Sprintf("frame count must be positive, got %d", n)}
			}
			tl.Frames = n
			tl.Animate = true

		case domain.OpBasename:
			syms := cmd.Symbols()
			if len(syms) != 1 {
				return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: "expected a single name"}
			}
			tl.Basename = syms[0]
			hasBasename = true
			tl.Animate = true

		case domain.OpVary:
			tl.Animate = true
			if tl.Frames == 0 {
				return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: "vary found without frames"}
			}
		}
	}

	if !hasBasename {
		tl.Basename = DefaultBasename
		if tl.Frames > 0 {
			b.logger.Info("setting basename to default", "basename", DefaultBasename)
		}
	}
	return tl, nil
}

// buildKnobs is the second pass: linear interpolation of every vary range.
func buildKnobs(cmds []domain.Command, frames int) (KnobTable, error) {
	knobs := make(KnobTable, frames)
	for i := range knobs {
		knobs[i] = make(map[string]float64)
	}

	for _, cmd := range cmds {
		if cmd.Op != domain.OpVary {
			continue
		}
		if cmd.Knob == "" {
			return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: "missing knob name"}
		}
		nums := cmd.Numbers()
		if len(nums) != 4 {
			return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: fmt.Sprintf("expected 4 numbers, got %d", len(nums))}
		}
		startF, err := frameIndex(cmd, 0)
		if err != nil {
			return nil, err
		}
		endF, err := frameIndex(cmd, 1)
		if err != nil {
			return nil, err
		}
		startV, endV := nums[2], nums[3]

		if endF < startF {
			return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: fmt.Sprintf("end frame %d precedes start frame %d", endF, startF)}
		}
		if startF < 0 || endF >= frames {
			return nil, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: fmt.Sprintf("range [%d, %d] outside frames [0, %d]", startF, endF, frames-1)}
		}

		var step float64
		if endF > startF {
			step = (endV - startV) / float64(endF-startF)
		}
		for f := startF; f <= endF; f++ {
			v := startV + step*float64(f-startF)
			if f == endF {
				v = endV
			}
			knobs[f][cmd.Knob] = v
		}
	}
	return knobs, nil
}

// frameIndex reads the i-th numeric argument of cmd as a whole frame number.
func frameIndex(cmd domain.Command, i int) (int, error) {
	nums := cmd.Numbers()
	if i >= len(nums) {
		return 0, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: "missing frame number"}
	}
	v := nums[i]
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, &domain.ConfigError{Op: cmd.Op, Line: cmd.Line, Reason: fmt.Sprintf("frame number %g is not an integer", v)}
	}
	return int(v), nil
}
