package ports

import (
	"context"
	"image"
)

// Viewer shows a frame. Display returns once the frame has been handed over;
// it does not wait for the user to close the view.
type Viewer interface {
	Display(ctx context.Context, img image.Image) error
}

// Encoder combines ordered per-frame artifacts into a single animation named
// after basename.
type Encoder interface {
	Encode(ctx context.Context, frames []string, basename string) error
}
