package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/emrgen/wiki/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	pages []*model.Page
	err   error
}

func (f fakeLister) ListPendingReviews(context.Context) ([]*model.Page, error) {
	return f.pages, f.err
}

func TestPendingReviewTask_Report(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	page := model.NewPage("p1", "bob", "orig", "", "")
	page.AppendEdit("alice", "new text", "2024-01-01")

	task := NewPendingReviewTask("@every 1m", fakeLister{pages: []*model.Page{page}})
	assert.Equal(t, "@every 1m", task.Schedule())

	n, err := task.Report(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "edit awaiting review" {
			found = true
			assert.Equal(t, "p1", entry.Data["page"])
			assert.Equal(t, "alice", entry.Data["editor"])
		}
	}
	assert.True(t, found)

	task = NewPendingReviewTask("@every 1m", fakeLister{err: errors.New("boom")})
	_, err = task.Report(context.TODO())
	assert.Error(t, err)

	hook.Reset()
	task.Run()
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

// blockingJob holds its run open until released.
type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingJob) Name() string { return "blocking" }

func (b *blockingJob) Run() {
	close(b.started)
	<-b.release
}

func TestTaskExecutor_SkipsOverlappingRuns(t *testing.T) {
	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	executor := NewTaskExecutor()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.True(t, executor.runOnce(job))
	}()

	<-job.started
	assert.False(t, executor.runOnce(job))

	close(job.release)
	wg.Wait()
}

func TestTaskExecutor_InvalidSchedule(t *testing.T) {
	executor := NewTaskExecutor(NewPendingReviewTask("not a schedule", fakeLister{}))
	assert.Error(t, executor.Run())
}
