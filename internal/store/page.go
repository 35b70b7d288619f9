package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emrgen/wiki/internal/blob"
	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// listParallelism bounds the concurrent blob reads of ListPages.
const listParallelism = 8

var _ PageStore = (*BlobPageStore)(nil)

// BlobPageStore keeps one blob per page under model.PagePrefix.
type BlobPageStore struct {
	blobs blob.Store
	codec compress.Compress
}

func NewPageStore(blobs blob.Store, codec compress.Compress) *BlobPageStore {
	if codec == nil {
		codec = compress.NewNop()
	}

	return &BlobPageStore{
		blobs: blobs,
		codec: codec,
	}
}

func (s *BlobPageStore) GetPage(ctx context.Context, name string) (*model.Page, int64, error) {
	if name == "" {
		return nil, 0, fmt.Errorf("%w: empty name", ErrPageNotFound)
	}

	key := model.PageKey(name)
	obj, err := s.blobs.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, 0, fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}
	if err != nil {
		return nil, 0, &StoreError{Op: "get", Key: key, Err: err}
	}

	page, err := s.decode(obj)
	if err != nil {
		return nil, 0, err
	}

	return page, obj.Generation, nil
}

func (s *BlobPageStore) SavePage(ctx context.Context, page *model.Page, ifGeneration int64) (int64, error) {
	if page.Name == "" {
		return 0, errors.New("page name is required")
	}

	data, err := page.Encode()
	if err != nil {
		return 0, err
	}

	data, err = s.codec.Encode(data)
	if err != nil {
		return 0, err
	}

	key := model.PageKey(page.Name)
	generation, err := s.blobs.Put(ctx, key, data, ifGeneration)
	if errors.Is(err, blob.ErrConflict) {
		return 0, fmt.Errorf("%w: %s", ErrConflict, page.Name)
	}
	if err != nil {
		return 0, &StoreError{Op: "put", Key: key, Err: err}
	}

	return generation, nil
}

func (s *BlobPageStore) CreatePage(ctx context.Context, page *model.Page) error {
	_, err := s.SavePage(ctx, page, 0)
	if errors.Is(err, ErrConflict) {
		return fmt.Errorf("%w: %s", ErrPageExists, page.Name)
	}

	return err
}

func (s *BlobPageStore) ListPageNames(ctx context.Context) ([]string, error) {
	keys, err := s.blobs.List(ctx, model.PagePrefix)
	if err != nil {
		return nil, &StoreError{Op: "list", Key: model.PagePrefix, Err: err}
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, model.PagePrefix)
		// the prefix itself is a folder marker
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

// ListPages loads every page in ListPageNames order. Zero-byte objects, pages
// removed while listing and records that fail to decode are skipped.
func (s *BlobPageStore) ListPages(ctx context.Context) ([]*model.Page, error) {
	names, err := s.ListPageNames(ctx)
	if err != nil {
		return nil, err
	}

	loaded := make([]*model.Page, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(listParallelism)
	for i, name := range names {
		g.Go(func() error {
			key := model.PageKey(name)
			obj, err := s.blobs.Get(ctx, key)
			if errors.Is(err, blob.ErrNotFound) {
				return nil
			}
			if err != nil {
				return &StoreError{Op: "get", Key: key, Err: err}
			}
			if len(obj.Data) == 0 {
				return nil
			}

			page, err := s.decode(obj)
			if errors.Is(err, model.ErrMalformedRecord) {
				return nil
			}
			if err != nil {
				return err
			}

			loaded[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pages := make([]*model.Page, 0, len(loaded))
	for _, page := range loaded {
		if page != nil {
			pages = append(pages, page)
		}
	}

	return pages, nil
}

func (s *BlobPageStore) decode(obj *blob.Object) (*model.Page, error) {
	data, err := s.codec.Decode(obj.Data)
	if err != nil {
		logrus.Errorf("error decoding page blob %s: %v", obj.Key, err)
		return nil, fmt.Errorf("%w: %s: %v", model.ErrMalformedRecord, obj.Key, err)
	}

	page, err := model.DecodePage(data)
	if err != nil {
		logrus.Errorf("error decoding page blob %s: %v", obj.Key, err)
		return nil, fmt.Errorf("%s: %w", obj.Key, err)
	}

	return page, nil
}
