// Package animation combines the per-frame artifacts of a run into one file.
package animation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// Assembler hands the ordered frame artifacts to an encoder, once per run.
type Assembler struct {
	encoder ports.Encoder
	logger  *slog.Logger
	onDone  func(context.Context, domain.EventType, time.Duration, error)
}

type Option func(*Assembler)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after every assembly attempt.
func WithObserver(fn func(ctx context.Context, t domain.EventType, d time.Duration, err error)) Option {
	return func(a *Assembler) {
		a.onDone = fn
	}
}

// New creates an assembler. A nil encoder makes Assemble a no-op.
func New(encoder ports.Encoder, opts ...Option) *Assembler {
	a := &Assembler{encoder: encoder, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble encodes frames into <basename>.gif (or whatever the encoder
// produces). It does nothing when there are no frames.
func (a *Assembler) Assemble(ctx context.Context, frames []string, basename string) error {
	if a.encoder == nil || len(frames) == 0 {
		a.logger.Debug("animation skipped", "frames", len(frames))
		return nil
	}
	start := time.Now()
	err := a.encoder.Encode(ctx, frames, basename)
	elapsed := time.Since(start)
	if a.onDone != nil {
		a.onDone(ctx, domain.EventAssemble, elapsed, err)
	}
	if err != nil {
		return fmt.Errorf("assemble %s: %w", basename, err)
	}
	a.logger.Info("animation assembled", "basename", basename, "frames", len(frames), "duration", elapsed)
	return nil
}
