package service

import (
	"context"

	"github.com/emrgen/wiki/internal/model"
)

// UserEditView is one edit a user submitted, with the page it belongs to.
type UserEditView struct {
	PageName    string
	PageAuthor  string
	Status      model.EditStatus
	EditContent string
	EditDate    string
}

// GetEditsBy lists the edits submitted by username on any page. Edits of a
// page come most recent first; pages come in store order.
func (s *EditService) GetEditsBy(ctx context.Context, username string) ([]UserEditView, error) {
	pages, err := s.pages.ListPages(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]UserEditView, 0)
	for _, page := range pages {
		for i := len(page.Edits) - 1; i >= 0; i-- {
			edit := page.Edits[i]
			if !edit.IsBy(username) {
				continue
			}

			views = append(views, UserEditView{
				PageName:    page.Name,
				PageAuthor:  page.Author,
				Status:      edit.Status,
				EditContent: edit.Content,
				EditDate:    edit.Date,
			})
		}
	}

	return views, nil
}

// GetPagesAuthoredWithEdits lists the pages written by username that have
// received at least one edit.
func (s *EditService) GetPagesAuthoredWithEdits(ctx context.Context, username string) ([]*model.Page, error) {
	pages, err := s.pages.ListPages(ctx)
	if err != nil {
		return nil, err
	}

	authored := make([]*model.Page, 0)
	for _, page := range pages {
		if page.IsAuthoredBy(username) && len(page.Edits) > 0 {
			authored = append(authored, page)
		}
	}

	return authored, nil
}

// ListPendingReviews lists the pages whose latest edit awaits its author.
func (s *EditService) ListPendingReviews(ctx context.Context) ([]*model.Page, error) {
	pages, err := s.pages.ListPages(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]*model.Page, 0)
	for _, page := range pages {
		if page.HasPendingEdit() {
			pending = append(pending, page)
		}
	}

	return pending, nil
}
