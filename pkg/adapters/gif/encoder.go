// Package gif assembles per-frame artifacts into an animated GIF without
// external programs.
package gif

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"

	"github.com/aretw0/reel/pkg/ports"
)

// DefaultDelay is the per-frame delay in hundredths of a second.
const DefaultDelay = 2

// Encoder implements ports.Encoder. Frames are read back from the store and
// the result is written to the same store as <basename>.gif.
type Encoder struct {
	store ports.ImageStore
	delay int
	loop  int
}

type Option func(*Encoder)

// WithDelay sets the per-frame delay in hundredths of a second.
func WithDelay(d int) Option {
	return func(e *Encoder) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithLoopCount sets the loop count; 0 loops forever, -1 plays once.
func WithLoopCount(n int) Option {
	return func(e *Encoder) {
		e.loop = n
	}
}

// New creates an encoder over store.
func New(store ports.ImageStore, opts ...Option) *Encoder {
	e := &Encoder{store: store, delay: DefaultDelay}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoder) Encode(ctx context.Context, frames []string, basename string) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode %s: no frames", basename)
	}

	anim := &gif.GIF{LoopCount: e.loop}
	for _, name := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := e.store.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("encode %s: %w", basename, err)
		}
		anim.Image = append(anim.Image, quantize(img))
		anim.Delay = append(anim.Delay, e.delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return fmt.Errorf("encode %s: %w", basename, err)
	}
	return e.store.Put(ctx, basename+".gif", buf.Bytes())
}

// quantize maps img onto the Plan 9 palette with Floyd-Steinberg dithering.
func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}
