package ports

import (
	"context"
	"image"
)

// ImageStore persists rendered images by name.
// The encoding is chosen from the name's extension.
type ImageStore interface {
	// Save encodes img and stores it under name.
	Save(ctx context.Context, name string, img image.Image) error

	// Load decodes the image stored under name.
	// Returns domain.ErrArtifactNotFound if nothing is stored under name.
	Load(ctx context.Context, name string) (image.Image, error)

	// Put stores already encoded bytes under name (e.g. an animation).
	Put(ctx context.Context, name string, data []byte) error
}
