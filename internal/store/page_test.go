package store

import (
	"context"
	"errors"
	"testing"

	"github.com/emrgen/wiki/internal/blob"
	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore fails every call, standing in for an unreachable bucket.
type brokenStore struct{}

var errUnavailable = errors.New("service unavailable")

func (brokenStore) Get(context.Context, string) (*blob.Object, error) { return nil, errUnavailable }
func (brokenStore) Put(context.Context, string, []byte, int64) (int64, error) {
	return 0, errUnavailable
}
func (brokenStore) List(context.Context, string) ([]string, error) { return nil, errUnavailable }
func (brokenStore) Delete(context.Context, string) error           { return errUnavailable }
func (brokenStore) Close() error                                    { return nil }

func TestPageStore_SaveGet(t *testing.T) {
	for _, codec := range []compress.Compress{compress.NewNop(), compress.NewGZip()} {
		blobs := blob.NewMemoryStore()
		pages := NewPageStore(blobs, codec)
		ctx := context.TODO()

		page := model.NewPage("p1", "bob", "orig", "", "2024-01-01")
		require.NoError(t, pages.CreatePage(ctx, page))

		got, gen, err := pages.GetPage(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen)
		assert.Equal(t, page, got)

		got.AppendEdit("alice", "new text", "2024-01-02")
		gen, err = pages.SavePage(ctx, got, gen)
		require.NoError(t, err)
		assert.Equal(t, int64(2), gen)

		again, _, err := pages.GetPage(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, again.Edits, 1)
	}
}

func TestPageStore_PlainJSONLayout(t *testing.T) {
	blobs := blob.NewMemoryStore()
	pages := NewPageStore(blobs, nil)

	require.NoError(t, pages.CreatePage(context.TODO(), model.NewPage("p1", "bob", "orig", "img", "2024-01-01")))

	obj, err := blobs.Get(context.TODO(), "uploaded-pages/p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"p1","Author":"bob","Content":"orig","Image":"img","Date":"2024-01-01","Edits":[]}`, string(obj.Data))
}

func TestPageStore_Errors(t *testing.T) {
	ctx := context.TODO()
	pages := NewPageStore(blob.NewMemoryStore(), nil)

	_, _, err := pages.GetPage(ctx, "missing")
	assert.ErrorIs(t, err, ErrPageNotFound)

	page := model.NewPage("p1", "bob", "orig", "", "")
	require.NoError(t, pages.CreatePage(ctx, page))
	assert.ErrorIs(t, pages.CreatePage(ctx, page), ErrPageExists)

	_, err = pages.SavePage(ctx, page, 7)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = pages.SavePage(ctx, page, blob.AnyGeneration)
	assert.NoError(t, err)
}

func TestPageStore_StoreError(t *testing.T) {
	ctx := context.TODO()
	pages := NewPageStore(brokenStore{}, nil)

	var storeErr *StoreError

	_, _, err := pages.GetPage(ctx, "p1")
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Op)
	assert.ErrorIs(t, err, errUnavailable)

	_, err = pages.SavePage(ctx, model.NewPage("p1", "bob", "", "", ""), blob.AnyGeneration)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "put", storeErr.Op)

	_, err = pages.ListPages(ctx)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "list", storeErr.Op)
}

func TestPageStore_Malformed(t *testing.T) {
	ctx := context.TODO()
	blobs := blob.NewMemoryStore()
	pages := NewPageStore(blobs, nil)

	_, err := blobs.Put(ctx, "uploaded-pages/bad", []byte(`{"Name":"bad"}`), blob.AnyGeneration)
	require.NoError(t, err)

	_, _, err = pages.GetPage(ctx, "bad")
	assert.ErrorIs(t, err, model.ErrMalformedRecord)
}

func TestPageStore_List(t *testing.T) {
	ctx := context.TODO()
	blobs := blob.NewMemoryStore()
	pages := NewPageStore(blobs, nil)

	// folder marker and a stray empty object
	_, err := blobs.Put(ctx, "uploaded-pages/", nil, blob.AnyGeneration)
	require.NoError(t, err)
	_, err = blobs.Put(ctx, "uploaded-pages/empty", []byte{}, blob.AnyGeneration)
	require.NoError(t, err)
	_, err = blobs.Put(ctx, "uploaded-pages/bad", []byte(`nope`), blob.AnyGeneration)
	require.NoError(t, err)
	_, err = blobs.Put(ctx, "users-data/alice", []byte("hash"), blob.AnyGeneration)
	require.NoError(t, err)

	for _, name := range []string{"p1", "p2", "p3"} {
		require.NoError(t, pages.CreatePage(ctx, model.NewPage(name, "bob", name, "", "")))
	}

	names, err := pages.ListPageNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bad", "empty", "p1", "p2", "p3"}, names)

	all, err := pages.ListPages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	got := make([]string, 0)
	for _, page := range all {
		got = append(got, page.Name)
	}
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, got)
}
