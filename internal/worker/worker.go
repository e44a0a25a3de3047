package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"
	"learning-hub/internal/store"

	"github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"github.com/jpillora/backoff"
	"go.uber.org/zap"
)

const scrapeTimeout = 30 * time.Second

// Scraper downloads a page and extracts its main article.
// Tests replace it to avoid the network.
type Scraper interface {
	Scrape(url string, timeout time.Duration) (*readability.Article, error)
}

// DefaultScraper is the real implementation that uses the internet
type DefaultScraper struct{}

func (s *DefaultScraper) Scrape(url string, timeout time.Duration) (*readability.Article, error) {
	art, err := readability.FromURL(url, timeout)
	return &art, err
}

// Worker turns queued import jobs into articles.
type Worker struct {
	articles store.Store
	imports  store.ImportQueue
	logger   *zap.Logger
	scraper  Scraper
	backoff  *backoff.Backoff
}

// NewWorker initializes the worker with the DefaultScraper
func NewWorker(articles store.Store, imports store.ImportQueue, logger *zap.Logger) *Worker {
	return &Worker{
		articles: articles,
		imports:  imports,
		logger:   logger,
		scraper:  &DefaultScraper{},
		backoff: &backoff.Backoff{
			Min: 100 * time.Millisecond,
			Max: 30 * time.Second,
		},
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Import worker started. Waiting for jobs...")

	for {
		id, err := w.imports.PopImport(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Import worker shutting down")
				return
			}
			dur := w.backoff.Duration()
			w.logger.Error("Queue error", zap.Error(err), zap.Duration("retrying_after", dur))

			timer := time.NewTimer(dur)
			select {
			case <-ctx.Done():
				timer.Stop()
				w.logger.Info("Import worker shutting down")
				return
			case <-timer.C:
			}
			continue
		}
		w.backoff.Reset()

		w.processJob(ctx, id)
	}
}

func (w *Worker) processJob(ctx context.Context, id uuid.UUID) {
	logger := w.logger.With(zap.String("job_id", id.String()))
	logger.Info("Import started")

	job, err := w.imports.GetImport(ctx, id)
	if err != nil {
		logger.Error("Job failed: import not found", zap.Error(err))
		return
	}

	logger.Info("Downloading", zap.String("url", job.URL))
	page, err := w.scraper.Scrape(job.URL, scrapeTimeout)
	if err != nil {
		logger.Error("Scraping failed", zap.Error(err))
		w.failJob(ctx, job, err.Error())
		return
	}

	fields := model.Fields{
		Title:       model.String(page.Title),
		Description: model.String(page.Excerpt),
		Content:     model.String(page.Content),
		Language:    model.String(job.Language),
	}
	if job.Color != "" {
		fields.Color = model.String(job.Color)
	}

	// Imports write on behalf of the admin who queued them.
	sess := auth.Session{AdminID: job.RequestedBy, Username: job.RequestedByName}
	article, err := w.articles.Create(ctx, sess, fields)
	if err != nil {
		logger.Error("Failed to create article", zap.Error(err))
		w.failJob(ctx, job, describe(err))
		return
	}

	now := time.Now().UTC()
	job.Status = model.ImportDone
	job.ArticleID = &article.ID
	job.FinishedAt = &now
	if err := w.imports.SaveImport(ctx, job); err != nil {
		logger.Error("Failed to save job result", zap.Error(err))
		return
	}

	logger.Info("Import complete", zap.String("slug", article.Slug))
}

func (w *Worker) failJob(ctx context.Context, job *model.ImportJob, msg string) {
	now := time.Now().UTC()
	job.Status = model.ImportFailed
	job.ErrorMessage = msg
	job.FinishedAt = &now
	if err := w.imports.SaveImport(ctx, job); err != nil {
		w.logger.Error("Failed to record job failure", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

func describe(err error) string {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("page is missing %v", verr.Fields)
	case errors.Is(err, store.ErrConflict):
		return "an article with the same slug already exists"
	default:
		return err.Error()
	}
}
