package memory

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/imageio"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Store implements ports.ImageStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save encodes the image by extension and keeps the bytes.
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

// Put stores a copy of data under name.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load decodes the image stored under name.
func (s *Store) Load(ctx context.Context, name string) (image.Image, error) {
	data, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return img, nil
}

// Get returns a copy of the raw bytes stored under name.
func (s *Store) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrArtifactNotFound)
	}
	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, nil
}

// List returns the stored names in lexical order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
