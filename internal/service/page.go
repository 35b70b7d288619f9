package service

import (
	"context"
	"fmt"

	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
	"github.com/sirupsen/logrus"
)

// NewPageService creates a new PageService.
func NewPageService(pages store.PageStore, pageCache cache.PageCache) *PageService {
	if pageCache == nil {
		pageCache = cache.NewNopPageCache()
	}

	return &PageService{
		pages: pages,
		cache: pageCache,
	}
}

// PageService uploads and reads pages.
type PageService struct {
	pages store.PageStore
	cache cache.PageCache
}

// UploadPage creates a page. An empty image falls back to model.DefaultImage.
func (s *PageService) UploadPage(ctx context.Context, name, author, content, image, date string) (*model.Page, error) {
	if name == "" || author == "" {
		return nil, fmt.Errorf("%w: page name and author are required", ErrInvalidArgument)
	}

	page := model.NewPage(name, author, content, image, date)
	if err := s.pages.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	logrus.Infof("page %s uploaded by %s", name, author)

	return page, nil
}

// GetPage returns a page, from the cache when possible.
func (s *PageService) GetPage(ctx context.Context, name string) (*model.Page, error) {
	cached, err := s.cache.GetPage(ctx, name)
	if err != nil {
		logrus.Warnf("error reading cached page %s: %v", name, err)
	}
	if cached != nil {
		return cached, nil
	}

	page, generation, err := s.pages.GetPage(ctx, name)
	if err != nil {
		return nil, err
	}

	// an update saved after this read has already cached a newer generation
	if err := s.cache.SetPage(ctx, page, generation); err != nil {
		logrus.Warnf("error caching page %s: %v", name, err)
	}

	return page, nil
}

// ListPageNames lists the names of all pages.
func (s *PageService) ListPageNames(ctx context.Context) ([]string, error) {
	return s.pages.ListPageNames(ctx)
}
