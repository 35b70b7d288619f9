package store

import (
	"context"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/wiki/internal/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.TODO()
	blobs := blob.NewMemoryStore()
	users := NewUserStore(blobs)

	_, err := users.GetPasswordHash(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, users.PutPasswordHash(ctx, "Alice", "hash", 0))
	assert.ErrorIs(t, users.PutPasswordHash(ctx, "alice", "other", 0), ErrUserExists)

	hash, err := users.GetPasswordHash(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "hash", hash)

	obj, err := blobs.Get(ctx, "users-data/alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", string(obj.Data))

	_, err = blobs.Put(ctx, "users-data/", nil, blob.AnyGeneration)
	require.NoError(t, err)
	require.NoError(t, users.PutPasswordHash(ctx, "bob", "h2", blob.AnyGeneration))

	names, err := users.ListUsernames(ctx)
	require.NoError(t, err)
	assert.True(t, names.Equal(mapset.NewSet("alice", "bob")))
}
