// Package file stores rendered artifacts on the local filesystem.
package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/imageio"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Store implements ports.ImageStore using the local filesystem.
// Names are paths relative to BasePath; intermediate directories are created.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to the working directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// Path returns the filesystem path of name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(name))
}

// Save encodes img by the extension of name and writes it atomically.
func (s *Store) Save(ctx context.Context, name string, img image.Image) error {
	format, err := imageio.FormatOf(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return s.Put(ctx, name, buf.Bytes())
}

// Put writes raw bytes to name atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	destPath := s.Path(name)
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	// same directory keeps the rename on one filesystem
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load decodes the image stored under name.
func (s *Store) Load(ctx context.Context, name string) (image.Image, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return img, nil
}
