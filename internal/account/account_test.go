package account

import (
	"context"
	"testing"

	"github.com/emrgen/wiki/internal/blob"
	"github.com/emrgen/wiki/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_SignUpSignIn(t *testing.T) {
	ctx := context.TODO()
	accounts := NewService(store.NewUserStore(blob.NewMemoryStore()), "siam")

	ok, err := accounts.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, accounts.SignUp(ctx, "Alice", "secret"))
	assert.ErrorIs(t, accounts.SignUp(ctx, "alice", "other"), ErrUsernameTaken)

	ok, err = accounts.Exists(ctx, "ALICE")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, accounts.SignIn(ctx, "alice", "secret"))
	assert.NoError(t, accounts.SignIn(ctx, "Alice", "secret"))
	assert.ErrorIs(t, accounts.SignIn(ctx, "alice", "wrong"), ErrWrongPassword)
	assert.ErrorIs(t, accounts.SignIn(ctx, "bob", "secret"), ErrUserNotFound)

	assert.ErrorIs(t, accounts.SignUp(ctx, "", "secret"), ErrInvalidInput)
}

func TestService_HashPassword(t *testing.T) {
	accounts := NewService(nil, "siam")

	hash := accounts.HashPassword("Alice", "secret")
	assert.Len(t, hash, 128)
	assert.Equal(t, hash, accounts.HashPassword("alice", "secret"))
	assert.NotEqual(t, hash, accounts.HashPassword("alice", "Secret"))
	assert.NotEqual(t, hash, NewService(nil, "other").HashPassword("alice", "secret"))
}

func TestService_StoredHash(t *testing.T) {
	ctx := context.TODO()
	blobs := blob.NewMemoryStore()
	accounts := NewService(store.NewUserStore(blobs), "siam")

	require.NoError(t, accounts.SignUp(ctx, "bob", "pw"))

	obj, err := blobs.Get(ctx, "users-data/bob")
	require.NoError(t, err)
	assert.Equal(t, accounts.HashPassword("bob", "pw"), string(obj.Data))
}
