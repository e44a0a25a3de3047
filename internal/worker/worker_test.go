package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"
	"learning-hub/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockScraper struct {
	MockTitle   string
	MockContent string
	MockExcerpt string
	ShouldFail  bool
}

// Scrape simulates article scraping
func (m *MockScraper) Scrape(url string, timeout time.Duration) (*readability.Article, error) {
	if m.ShouldFail {
		return nil, fmt.Errorf("simulated 404 error")
	}
	return &readability.Article{
		Title:   m.MockTitle,
		Content: m.MockContent,
		Excerpt: m.MockExcerpt,
	}, nil
}

func newTestStore(t *testing.T) *store.HybridStore {
	return newTestStoreWithLogger(t, zap.NewNop())
}

func newTestStoreWithLogger(t *testing.T, logger *zap.Logger) *store.HybridStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// Empty badger path keeps everything in memory.
	st, err := store.NewHybridStore(mr.Addr(), "", logger)
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

// runOnce starts the worker, waits for the job to leave the pending
// state and stops it.
func runOnce(t *testing.T, w *Worker, st *store.HybridStore, id uuid.UUID) *model.ImportJob {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	var job *model.ImportJob
	require.Eventually(t, func() bool {
		var err error
		job, err = st.GetImport(context.Background(), id)
		return err == nil && job.Status != model.ImportPending
	}, 2*time.Second, 10*time.Millisecond)
	return job
}

func TestWorker_ProcessJob(t *testing.T) {
	st := newTestStore(t)

	w := NewWorker(st, st, zap.NewNop())
	w.scraper = &MockScraper{
		MockTitle:   "Rust Book",
		MockContent: "<p>Ownership and borrowing</p>",
		MockExcerpt: "Learn Rust",
	}

	admin := uuid.New()
	job := model.NewImportJob("http://fake-url.com", "Rust", admin)
	job.Color = "orange"
	require.NoError(t, st.SaveImport(context.Background(), &job))

	done := runOnce(t, w, st, job.ID)
	assert.Equal(t, model.ImportDone, done.Status)
	require.NotNil(t, done.ArticleID)
	assert.NotNil(t, done.FinishedAt)

	article, err := st.GetByID(context.Background(), *done.ArticleID)
	require.NoError(t, err)
	assert.Equal(t, "Rust Book", article.Title)
	assert.Equal(t, "rust-book", article.Slug)
	assert.Equal(t, "Learn Rust", article.Description)
	assert.Equal(t, "<p>Ownership and borrowing</p>", article.Content)
	assert.Equal(t, "Rust", article.Language)
	assert.Equal(t, "orange", article.Color)
	assert.Equal(t, admin, article.CreatedBy)
}

func TestWorker_HandlesScrapeFailure(t *testing.T) {
	st := newTestStore(t)

	w := NewWorker(st, st, zap.NewNop())
	w.scraper = &MockScraper{ShouldFail: true}

	job := model.NewImportJob("http://bad-url.com", "Go", uuid.New())
	require.NoError(t, st.SaveImport(context.Background(), &job))

	failed := runOnce(t, w, st, job.ID)
	assert.Equal(t, model.ImportFailed, failed.Status)
	assert.Equal(t, "simulated 404 error", failed.ErrorMessage)
	assert.Nil(t, failed.ArticleID)
}

func TestWorker_FailsOnIncompletePage(t *testing.T) {
	st := newTestStore(t)

	w := NewWorker(st, st, zap.NewNop())
	w.scraper = &MockScraper{MockTitle: "No body"}

	job := model.NewImportJob("http://empty.com", "Go", uuid.New())
	require.NoError(t, st.SaveImport(context.Background(), &job))

	failed := runOnce(t, w, st, job.ID)
	assert.Equal(t, model.ImportFailed, failed.Status)
	assert.Contains(t, failed.ErrorMessage, "content")

	list, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWorker_FailsOnSlugConflict(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sess := auth.Session{AdminID: uuid.New()}
	_, err := st.Create(ctx, sess, model.Fields{
		Title:       model.String("Go"),
		Description: model.String("d"),
		Content:     model.String("c"),
		Language:    model.String("Go"),
	})
	require.NoError(t, err)

	w := NewWorker(st, st, zap.NewNop())
	w.scraper = &MockScraper{MockTitle: "GO", MockContent: "<p>x</p>", MockExcerpt: "x"}

	job := model.NewImportJob("http://go.dev", "Go", sess.AdminID)
	require.NoError(t, st.SaveImport(ctx, &job))

	failed := runOnce(t, w, st, job.ID)
	assert.Equal(t, model.ImportFailed, failed.Status)
	assert.Equal(t, "an article with the same slug already exists", failed.ErrorMessage)
}

func TestWorker_CreatesOnBehalfOfRequester(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	st := newTestStoreWithLogger(t, zap.New(core))

	w := NewWorker(st, st, zap.NewNop())
	w.scraper = &MockScraper{MockTitle: "Zig", MockContent: "<p>comptime</p>", MockExcerpt: "Learn Zig"}

	job := model.NewImportJob("http://ziglang.org", "Zig", uuid.New())
	job.RequestedByName = "root"
	require.NoError(t, st.SaveImport(context.Background(), &job))

	done := runOnce(t, w, st, job.ID)
	require.Equal(t, model.ImportDone, done.Status)

	created := logs.FilterMessage("Article created").All()
	require.Len(t, created, 1)
	assert.Equal(t, "root", created[0].ContextMap()["admin"])
}
