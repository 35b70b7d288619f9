package store

import (
	"context"
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/wiki/internal/model"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrPageExists   = errors.New("page already exists")
	// ErrConflict is returned by conditional writes when the record changed
	// since it was read.
	ErrConflict     = errors.New("record was modified concurrently")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// StoreError wraps a failure of the underlying blob store.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("blob store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

type PageStore interface {
	// GetPage loads a page and the generation it was read at.
	GetPage(ctx context.Context, name string) (*model.Page, int64, error)
	// SavePage overwrites the whole page. ifGeneration is blob.AnyGeneration for
	// last-writer-wins or the generation returned by GetPage.
	SavePage(ctx context.Context, page *model.Page, ifGeneration int64) (int64, error)
	// CreatePage saves a page that must not exist yet.
	CreatePage(ctx context.Context, page *model.Page) error
	// ListPageNames lists the names of all pages.
	ListPageNames(ctx context.Context) ([]string, error)
	// ListPages loads all pages.
	ListPages(ctx context.Context) ([]*model.Page, error)
}

type UserStore interface {
	// GetPasswordHash returns the stored hash of the user.
	GetPasswordHash(ctx context.Context, username string) (string, error)
	// PutPasswordHash stores the hash of the user; ifGeneration 0 creates the user.
	PutPasswordHash(ctx context.Context, username, hash string, ifGeneration int64) error
	// ListUsernames returns every registered username.
	ListUsernames(ctx context.Context) (mapset.Set[string], error)
}
