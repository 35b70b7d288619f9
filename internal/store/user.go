package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/wiki/internal/blob"
	"github.com/emrgen/wiki/internal/model"
)

var _ UserStore = (*BlobUserStore)(nil)

// BlobUserStore keeps the password hash of each user under model.UserPrefix,
// keyed by the lowercased username.
type BlobUserStore struct {
	blobs blob.Store
}

func NewUserStore(blobs blob.Store) *BlobUserStore {
	return &BlobUserStore{blobs: blobs}
}

func userKey(username string) string {
	return model.UserPrefix + strings.ToLower(username)
}

func (s *BlobUserStore) GetPasswordHash(ctx context.Context, username string) (string, error) {
	key := userKey(username)
	obj, err := s.blobs.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	if err != nil {
		return "", &StoreError{Op: "get", Key: key, Err: err}
	}

	return string(obj.Data), nil
}

func (s *BlobUserStore) PutPasswordHash(ctx context.Context, username, hash string, ifGeneration int64) error {
	key := userKey(username)
	_, err := s.blobs.Put(ctx, key, []byte(hash), ifGeneration)
	if errors.Is(err, blob.ErrConflict) {
		if ifGeneration == 0 {
			return fmt.Errorf("%w: %s", ErrUserExists, username)
		}
		return fmt.Errorf("%w: %s", ErrConflict, username)
	}
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	return nil
}

func (s *BlobUserStore) ListUsernames(ctx context.Context) (mapset.Set[string], error) {
	keys, err := s.blobs.List(ctx, model.UserPrefix)
	if err != nil {
		return nil, &StoreError{Op: "list", Key: model.UserPrefix, Err: err}
	}

	users := mapset.NewSet[string]()
	for _, key := range keys {
		if name := strings.TrimPrefix(key, model.UserPrefix); name != "" {
			users.Add(name)
		}
	}

	return users, nil
}
