package jobs

import (
	"context"
	"time"

	"github.com/emrgen/wiki/internal/model"
	"github.com/sirupsen/logrus"
)

const pendingReviewTimeout = time.Minute

// PendingReviewLister lists the pages waiting for their author's decision.
type PendingReviewLister interface {
	ListPendingReviews(ctx context.Context) ([]*model.Page, error)
}

var _ CronJob = (*PendingReviewTask)(nil)

// PendingReviewTask logs every page whose latest edit is still pending.
type PendingReviewTask struct {
	edits PendingReviewLister
	cron  string
}

func NewPendingReviewTask(schedule string, edits PendingReviewLister) *PendingReviewTask {
	return &PendingReviewTask{
		edits: edits,
		cron:  schedule,
	}
}

func (p *PendingReviewTask) Name() string {
	return "pending_review"
}

func (p *PendingReviewTask) Schedule() string {
	return p.cron
}

func (p *PendingReviewTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), pendingReviewTimeout)
	defer cancel()

	if _, err := p.Report(ctx); err != nil {
		logrus.Errorf("pending review report failed: %v", err)
	}
}

// Report logs the pending pages and returns how many there are.
func (p *PendingReviewTask) Report(ctx context.Context) (int, error) {
	pages, err := p.edits.ListPendingReviews(ctx)
	if err != nil {
		return 0, err
	}

	for _, page := range pages {
		last, _ := page.LastEdit()
		logrus.WithFields(logrus.Fields{
			"page":   page.Name,
			"author": page.Author,
			"editor": last.Editor,
			"date":   last.Date,
		}).Info("edit awaiting review")
	}
	logrus.Infof("%d pages awaiting review", len(pages))

	return len(pages), nil
}
