package memory

import (
	"context"
	"image"
	"image/draw"
	"sync"
)

// Viewer records displayed frames instead of showing them.
type Viewer struct {
	mu     sync.Mutex
	frames []*image.RGBA
}

// NewViewer creates an empty recording viewer.
func NewViewer() *Viewer {
	return &Viewer{}
}

// Display keeps a copy of img.
func (v *Viewer) Display(ctx context.Context, img image.Image) error {
	b := img.Bounds()
	snapshot := image.NewRGBA(b)
	draw.Draw(snapshot, b, img, b.Min, draw.Src)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.frames = append(v.frames, snapshot)
	return nil
}

// Frames returns the displayed frames in call order.
func (v *Viewer) Frames() []*image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]*image.RGBA(nil), v.frames...)
}

// EncodeCall is one recorded Encoder.Encode invocation.
type EncodeCall struct {
	Frames   []string
	Basename string
}

// Encoder records animation requests.
type Encoder struct {
	mu    sync.Mutex
	calls []EncodeCall
}

// NewEncoder creates an empty recording encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(ctx context.Context, frames []string, basename string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, EncodeCall{
		Frames:   append([]string(nil), frames...),
		Basename: basename,
	})
	return nil
}

// Calls returns the recorded invocations.
func (e *Encoder) Calls() []EncodeCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]EncodeCall(nil), e.calls...)
}
