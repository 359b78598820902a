package ports

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunImageStoreContract runs a suite of tests to verify that an ImageStore
// implementation adheres to the defined interface contract.
func RunImageStoreContract(t *testing.T, store ImageStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.SetRGBA(2, 3, color.RGBA{R: 10, G: 200, B: 30, A: 255})

	t.Run("Save and Load", func(t *testing.T) {
		name := prefix + "-frame.png"
		require.NoError(t, store.Save(ctx, name, img), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, img.Bounds(), loaded.Bounds())

		r, g, b, _ := loaded.At(2, 3).RGBA()
		assert.Equal(t, []uint32{10, 200, 30}, []uint32{r >> 8, g >> 8, b >> 8})
	})

	t.Run("Overwrite", func(t *testing.T) {
		name := prefix + "-again.png"
		require.NoError(t, store.Save(ctx, name, img))
		other := image.NewRGBA(image.Rect(0, 0, 3, 3))
		require.NoError(t, store.Save(ctx, name, other))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, other.Bounds(), loaded.Bounds())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, prefix+"-missing.png")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("Unsupported Extension", func(t *testing.T) {
		err := store.Save(ctx, prefix+"-frame.xyz", img)
		assert.Error(t, err)
	})

	t.Run("Put Raw", func(t *testing.T) {
		err := store.Put(ctx, prefix+"-anim.gif", []byte("GIF89a"))
		assert.NoError(t, err)
	})
}
