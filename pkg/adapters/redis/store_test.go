package redis_test

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/reel/pkg/adapters/redis"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ports.RunImageStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "anim/spin000.png", image.NewRGBA(image.Rect(0, 0, 2, 2))))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "anim/spin000.png")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "anim/spin000.png")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "spin.gif", []byte("GIF89a")))

	assert.True(t, mr.Exists("custom:app:spin.gif"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	data, err := store.Get(ctx, "spin.gif")
	require.NoError(t, err)
	assert.Equal(t, []byte("GIF89a"), data)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"spin.gif"}, names)
}
