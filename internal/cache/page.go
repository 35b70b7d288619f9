package cache

import (
	"context"

	"github.com/emrgen/wiki/internal/model"
)

// PageCache is a read-through cache of page records. Entries carry the store
// generation they were read at, and an entry is never replaced by an older one.
type PageCache interface {
	// GetPage returns the cached page, or nil when it is not cached.
	GetPage(ctx context.Context, name string) (*model.Page, error)
	// SetPage caches a page read or written at generation. It does nothing when
	// the cached entry is at the same or a newer generation.
	SetPage(ctx context.Context, page *model.Page, generation int64) error
	// DeletePage drops a page from the cache.
	DeletePage(ctx context.Context, name string) error
}

var _ PageCache = NopPageCache{}

// NopPageCache caches nothing.
type NopPageCache struct{}

func NewNopPageCache() NopPageCache {
	return NopPageCache{}
}

func (NopPageCache) GetPage(context.Context, string) (*model.Page, error) { return nil, nil }

func (NopPageCache) SetPage(context.Context, *model.Page, int64) error { return nil }

func (NopPageCache) DeletePage(context.Context, string) error { return nil }
