// Package executor replays a script once per frame, threading the transform
// stack through the command stream and routing primitives to the raster.
package executor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path"
	"time"

	"github.com/aretw0/reel/internal/geometry"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/internal/raster"
	"github.com/aretw0/reel/internal/timeline"
	"github.com/aretw0/reel/internal/transform"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// DefaultAnimDir is where per-frame artifacts are written.
const DefaultAnimDir = "anim"

// Executor renders the frames of a script.
// It holds configuration only; all per-run state lives on the stack of Run.
type Executor struct {
	store      ports.ImageStore
	viewer     ports.Viewer
	lighting   raster.Lighting
	foreground color.RGBA
	background color.RGBA
	width      int
	height     int
	step       int
	animDir    string
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option configures the Executor.
type Option func(*Executor)

// WithImageStore sets where save and per-frame artifacts are written.
func WithImageStore(s ports.ImageStore) Option {
	return func(e *Executor) {
		e.store = s
	}
}

// WithViewer sets the display collaborator. Without one, display is a no-op.
func WithViewer(v ports.Viewer) Option {
	return func(e *Executor) {
		e.viewer = v
	}
}

// WithLighting sets the fixed shading parameters of every frame.
func WithLighting(l raster.Lighting) Option {
	return func(e *Executor) {
		e.lighting = l
	}
}

// WithColors sets the line color and the frame background.
func WithColors(foreground, background color.RGBA) Option {
	return func(e *Executor) {
		e.foreground = foreground
		e.background = background
	}
}

// WithSize sets the frame dimensions in pixels.
func WithSize(width, height int) Option {
	return func(e *Executor) {
		e.width = width
		e.height = height
	}
}

// WithStep sets the sphere and torus tessellation step.
func WithStep(step int) Option {
	return func(e *Executor) {
		if step > 0 {
			e.step = step
		}
	}
}

// WithAnimDir sets the directory of per-frame artifacts. Empty means the store root.
func WithAnimDir(dir string) Option {
	return func(e *Executor) {
		e.animDir = dir
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an executor. By default frames are kept in memory.
func New(opts ...Option) *Executor {
	e := &Executor{
		lighting:   raster.DefaultLighting,
		foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		background: color.RGBA{A: 255},
		width:      raster.DefaultWidth,
		height:     raster.DefaultHeight,
		step:       geometry.DefaultStep,
		animDir:    DefaultAnimDir,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	return e
}

// FrameName is the artifact name of frame i of an animation.
func (e *Executor) FrameName(basename string, i int) string {
	return path.Join(e.animDir, fmt.Sprintf("%s%03d.png", basename, i))
}

// Run renders every frame of the timeline in order and returns the names of
// the per-frame artifacts (empty outside animation mode). The first failing
// frame aborts the run.
func (e *Executor) Run(ctx context.Context, script *domain.Script, tl *timeline.Timeline) ([]string, error) {
	// knob values are sticky across frames, so the table is cloned once per run
	symbols := script.Symbols.Clone()
	if symbols == nil {
		symbols = make(domain.SymbolTable)
	}

	n := tl.FrameCount()
	var artifacts []string
	for i := 0; i < n; i++ {
		for k, v := range tl.Row(i) {
			symbols.SetKnob(k, v)
		}

		f := e.newFrame(i, n, symbols, true)
		if err := e.render(ctx, f, script.Commands); err != nil {
			return artifacts, err
		}

		if tl.Animate {
			name := e.FrameName(tl.Basename, i)
			if err := e.store.Save(ctx, name, f.fb.Image()); err != nil {
				return artifacts, &FrameError{Frame: i, Err: fmt.Errorf("save %s: %w", name, err)}
			}
			artifacts = append(artifacts, name)
		}
	}
	return artifacts, nil
}

// RenderFrame renders frame i alone, with the knob state it would have in a
// full run. display and save are skipped.
func (e *Executor) RenderFrame(ctx context.Context, script *domain.Script, tl *timeline.Timeline, i int) (*image.RGBA, error) {
	n := tl.FrameCount()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("frame %d out of range [0, %d]", i, n-1)
	}
	symbols := script.Symbols.Clone()
	if symbols == nil {
		symbols = make(domain.SymbolTable)
	}
	for j := 0; j <= i; j++ {
		for k, v := range tl.Row(j) {
			symbols.SetKnob(k, v)
		}
	}

	f := e.newFrame(i, n, symbols, false)
	if err := e.render(ctx, f, script.Commands); err != nil {
		return nil, err
	}
	return f.fb.Image(), nil
}

// frame is the per-frame render state. The stack and buffer never outlive it.
type frame struct {
	index   int
	total   int
	symbols domain.SymbolTable
	stack   *transform.Stack
	fb      *raster.FrameBuffer
	outputs bool
}

func (e *Executor) newFrame(i, n int, symbols domain.SymbolTable, outputs bool) *frame {
	return &frame{
		index:   i,
		total:   n,
		symbols: symbols,
		stack:   transform.NewStack(),
		fb:      raster.NewFrameBuffer(e.width, e.height, e.background),
		outputs: outputs,
	}
}

func (e *Executor) render(ctx context.Context, f *frame, cmds []domain.Command) (err error) {
	start := time.Now()
	knobs := f.symbols.Knobs()
	e.logger.Debug("frame start", "frame", f.index, "frames", f.total)
	if e.hooks.OnFrameStart != nil {
		e.hooks.OnFrameStart(ctx, &domain.FrameEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventFrameStart},
			Frame:     f.index,
			Frames:    f.total,
			Knobs:     knobs,
		})
	}
	defer func() {
		elapsed := time.Since(start)
		e.logger.Debug("frame end", "frame", f.index, "duration", elapsed)
		if e.hooks.OnFrameEnd != nil {
			e.hooks.OnFrameEnd(ctx, &domain.FrameEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFrameEnd},
				Frame:     f.index,
				Frames:    f.total,
				Knobs:     knobs,
				Duration:  elapsed,
				Err:       err,
			})
		}
	}()

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return &FrameError{Frame: f.index, Command: cmd, Err: err}
		}
		if err := e.dispatch(ctx, f, cmd); err != nil {
			return &FrameError{Frame: f.index, Command: cmd, Err: err}
		}
	}
	return nil
}
