package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// ActionAccept accepts the pending edit. Any other action declines it.
	ActionAccept = "Accept"
	// ActionDecline is the action the review screen sends for a decline.
	ActionDecline = "Decline"

	// MaxAttempts bounds the read-modify-write loop of a page update.
	MaxAttempts = 3
)

// NewEditService creates a new EditService.
func NewEditService(pages store.PageStore) *EditService {
	return &EditService{
		pages: pages,
		cache: cache.NewNopPageCache(),
	}
}

// EditService moves suggested edits through review: Pending, then Accepted or
// Declined by the page author.
type EditService struct {
	pages store.PageStore
	cache cache.PageCache
}

// WithCache makes the service refresh cached pages it changes.
func (s *EditService) WithCache(pages cache.PageCache) *EditService {
	s.cache = pages
	return s
}

// HasPendingEdit reports whether the page is waiting for its author's decision,
// in which case no new edit may be submitted.
func (s *EditService) HasPendingEdit(page *model.Page) bool {
	return page.HasPendingEdit()
}

// SubmitEdit appends a pending edit proposed by editor.
func (s *EditService) SubmitEdit(ctx context.Context, pageName, editor, content, date string) error {
	if pageName == "" || editor == "" {
		return fmt.Errorf("%w: page name and editor are required", ErrInvalidArgument)
	}

	return s.update(ctx, pageName, "submit", func(page *model.Page) error {
		if page.HasPendingEdit() {
			return fmt.Errorf("%w: %s", ErrEditPending, pageName)
		}

		page.AppendEdit(editor, content, date)
		return nil
	})
}

// Decide records the author's decision on the latest edit. ActionAccept replaces
// the page content with the edit; every other action declines it.
func (s *EditService) Decide(ctx context.Context, pageName, reviewer, action string) error {
	if pageName == "" {
		return fmt.Errorf("%w: page name is required", ErrInvalidArgument)
	}

	return s.update(ctx, pageName, "decide", func(page *model.Page) error {
		if !page.IsAuthoredBy(reviewer) {
			return fmt.Errorf("%w: %s is not the author of %s", ErrNotPageAuthor, reviewer, pageName)
		}

		last, ok := page.LastEdit()
		if !ok {
			return fmt.Errorf("%w: page %s has no edits", ErrPreconditionFailed, pageName)
		}
		if last.Status != model.StatusPending {
			return fmt.Errorf("%w: latest edit of %s has status %d", ErrPreconditionFailed, pageName, last.Status)
		}

		if action == ActionAccept {
			page.Content = last.Content
			last.Status = model.StatusAccepted
		} else {
			last.Status = model.StatusDeclined
		}

		return nil
	})
}

// update loads the page, applies mutate and writes the page back on the
// generation it was read at. A concurrent write makes it start over.
func (s *EditService) update(ctx context.Context, pageName, op string, mutate func(page *model.Page) error) error {
	opID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"op":    op,
		"op_id": opID,
		"page":  pageName,
	})

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		page, generation, err := s.pages.GetPage(ctx, pageName)
		if err != nil {
			return err
		}

		if err := mutate(page); err != nil {
			return err
		}

		saved, err := s.pages.SavePage(ctx, page, generation)
		if err == nil {
			log.Infof("page updated at attempt %d", attempt)
			s.refreshCache(ctx, log, page, saved)
			return nil
		}

		if !errors.Is(err, store.ErrConflict) {
			return err
		}

		log.Warnf("page changed while updating, attempt %d/%d", attempt, MaxAttempts)
	}

	return fmt.Errorf("%w: %s after %d attempts (op_id %s)", ErrConflict, pageName, MaxAttempts, opID)
}

// refreshCache caches the saved page at its new generation, so a reader still
// holding an older copy cannot put it back. The entry is dropped when that fails.
func (s *EditService) refreshCache(ctx context.Context, log *logrus.Entry, page *model.Page, generation int64) {
	err := s.cache.SetPage(ctx, page, generation)
	if err == nil {
		return
	}

	log.Warnf("error caching updated page: %v", err)
	if err := s.cache.DeletePage(ctx, page.Name); err != nil {
		log.Warnf("error invalidating cached page: %v", err)
	}
}
