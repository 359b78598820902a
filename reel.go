package reel

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/aretw0/reel/internal/animation"
	"github.com/aretw0/reel/internal/compiler"
	"github.com/aretw0/reel/internal/executor"
	"github.com/aretw0/reel/internal/geometry"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/internal/raster"
	"github.com/aretw0/reel/internal/timeline"
	"github.com/aretw0/reel/pkg/adapters/gif"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// Lighting is the fixed shading configuration of a render.
type Lighting = raster.Lighting

// DefaultLighting is used unless WithLighting is given.
var DefaultLighting = raster.DefaultLighting

// Engine is the high-level entry point for the reel library.
// It wires the parser, the timeline analysis, the frame executor and the
// animation assembler.
type Engine struct {
	parser     *compiler.Parser
	store      ports.ImageStore
	viewer     ports.Viewer
	encoder    ports.Encoder
	encoderSet bool
	lighting   Lighting
	foreground color.RGBA
	background color.RGBA
	width      int
	height     int
	step       int
	animDir    string
	hooks      domain.LifecycleHooks
	onAssemble func(context.Context, domain.EventType, time.Duration, error)
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithImageStore sets where saved images and frame artifacts go.
// The default keeps them in memory.
func WithImageStore(s ports.ImageStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithViewer sets the collaborator behind the display command.
func WithViewer(v ports.Viewer) Option {
	return func(e *Engine) {
		e.viewer = v
	}
}

// WithEncoder sets the animation encoder. The default writes an animated GIF
// to the image store; nil disables assembly.
func WithEncoder(enc ports.Encoder) Option {
	return func(e *Engine) {
		e.encoder = enc
		e.encoderSet = true
	}
}

// WithLighting sets the shading parameters.
func WithLighting(l Lighting) Option {
	return func(e *Engine) {
		e.lighting = l
	}
}

// WithColors sets the line color and the background.
func WithColors(foreground, background color.RGBA) Option {
	return func(e *Engine) {
		e.foreground = foreground
		e.background = background
	}
}

// WithSize sets the frame size in pixels.
func WithSize(width, height int) Option {
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

// WithStep sets the sphere and torus tessellation step.
func WithStep(step int) Option {
	return func(e *Engine) {
		e.step = step
	}
}

// WithAnimDir sets the directory of per-frame artifacts (default "anim").
func WithAnimDir(dir string) Option {
	return func(e *Engine) {
		e.animDir = dir
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithAssembleObserver registers a callback run after each animation assembly.
func WithAssembleObserver(fn func(context.Context, domain.EventType, time.Duration, error)) Option {
	return func(e *Engine) {
		e.onAssemble = fn
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		parser:     compiler.NewParser(),
		lighting:   raster.DefaultLighting,
		foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		background: color.RGBA{A: 255},
		width:      raster.DefaultWidth,
		height:     raster.DefaultHeight,
		step:       geometry.DefaultStep,
		animDir:    executor.DefaultAnimDir,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if !eng.encoderSet {
		eng.encoder = gif.New(eng.store)
	}
	return eng
}

// Store returns the image store used by the engine.
func (e *Engine) Store() ports.ImageStore {
	return e.store
}

func (e *Engine) executor() *executor.Executor {
	return executor.New(
		executor.WithImageStore(e.store),
		executor.WithViewer(e.viewer),
		executor.WithLighting(e.lighting),
		executor.WithColors(e.foreground, e.background),
		executor.WithSize(e.width, e.height),
		executor.WithStep(e.step),
		executor.WithAnimDir(e.animDir),
		executor.WithLifecycleHooks(e.hooks),
		executor.WithLogger(e.logger),
	)
}

// Parse decodes a script. The format follows the extension of name:
// .yaml, .yml and .json are documents, anything else is MDL text.
func (e *Engine) Parse(data []byte, name string) (*domain.Script, error) {
	return e.parser.Parse(data, name, compiler.FormatOf(name))
}

// ParseFile reads and parses a script file.
func (e *Engine) ParseFile(path string) (*domain.Script, error) {
	return e.parser.ParseFile(path)
}

// Plan is the resolved animation timeline of a script.
type Plan struct {
	Frames   int                  `json:"frames"`
	Basename string               `json:"basename"`
	Animate  bool                 `json:"animate"`
	Knobs    []map[string]float64 `json:"knobs"`
}

// Plan analyzes the animation directives of script without rendering.
// Knobs holds the effective value of every knob at every frame.
func (e *Engine) Plan(script *domain.Script) (*Plan, error) {
	tl, err := e.timeline(script)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Frames:   tl.FrameCount(),
		Basename: tl.Basename,
		Animate:  tl.Animate,
		Knobs:    tl.Resolve(script.Symbols),
	}, nil
}

func (e *Engine) timeline(script *domain.Script) (*timeline.Timeline, error) {
	tl, err := timeline.Build(script.Commands, timeline.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	return tl, nil
}

// Result summarizes a completed run.
type Result struct {
	Frames    int
	Animate   bool
	Basename  string
	Artifacts []string
	// Animation is the name of the assembled animation, empty when none was made.
	Animation string
}

// Run renders script. In animation mode every frame is saved and the frames
// are assembled once at the end. Any error aborts the run.
func (e *Engine) Run(ctx context.Context, script *domain.Script) (*Result, error) {
	logger := e.logger
	if script.Name != "" {
		logger = logger.With("script", script.Name)
	}

	tl, err := e.timeline(script)
	if err != nil {
		return nil, err
	}
	res := &Result{Frames: tl.FrameCount(), Animate: tl.Animate, Basename: tl.Basename}
	logger.Debug("render start", "frames", res.Frames, "animate", res.Animate)

	artifacts, err := e.executor().Run(ctx, script, tl)
	res.Artifacts = artifacts
	if err != nil {
		return res, err
	}

	if tl.Animate && e.encoder != nil {
		asm := animation.New(e.encoder,
			animation.WithLogger(logger),
			animation.WithObserver(e.onAssemble),
		)
		if err := asm.Assemble(ctx, artifacts, tl.Basename); err != nil {
			return res, err
		}
		res.Animation = tl.Basename + ".gif"
	}
	return res, nil
}

// RunFile parses and renders the script at path.
func (e *Engine) RunFile(ctx context.Context, path string) (*Result, error) {
	script, err := e.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, script)
}

// RenderFrame renders frame i of script without side effects: display and
// save are skipped and no artifact is written.
func (e *Engine) RenderFrame(ctx context.Context, script *domain.Script, i int) (image.Image, error) {
	tl, err := e.timeline(script)
	if err != nil {
		return nil, err
	}
	return e.executor().RenderFrame(ctx, script, tl, i)
}
