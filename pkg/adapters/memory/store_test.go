package memory_test

import (
	"context"
	"image"
	"testing"

	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunImageStoreContract(t, store)
}

func TestMemoryStore_ListSorted(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	require.NoError(t, store.Save(ctx, "b.png", img))
	require.NoError(t, store.Save(ctx, "a.bmp", img))
	require.NoError(t, store.Put(ctx, "c.gif", []byte("x")))

	assert.Equal(t, []string{"a.bmp", "b.png", "c.gif"}, store.List())
}

func TestMemoryStore_PutCopies(t *testing.T) {
	store := memory.NewStore()
	data := []byte("abc")
	require.NoError(t, store.Put(context.Background(), "raw", data))
	data[0] = 'z'

	got, err := store.Get("raw")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestViewer_KeepsSnapshot(t *testing.T) {
	v := memory.NewViewer()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, v.Display(context.Background(), img))
	img.Pix[0] = 99

	frames := v.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, uint8(0), frames[0].Pix[0])
}

func TestEncoder_Records(t *testing.T) {
	e := memory.NewEncoder()
	names := []string{"anim/a000.png", "anim/a001.png"}
	require.NoError(t, e.Encode(context.Background(), names, "a"))
	names[0] = "changed"

	calls := e.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a", calls[0].Basename)
	assert.Equal(t, []string{"anim/a000.png", "anim/a001.png"}, calls[0].Frames)
}
