package store

import (
	"context"
	"errors"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("article not found")
	ErrConflict = errors.New("an article with this slug already exists")

	ErrImportNotFound = errors.New("import job not found")
)

// Store is the article repository. Mutations take the acting admin's
// session explicitly.
type Store interface {
	List(ctx context.Context) ([]model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	Create(ctx context.Context, sess auth.Session, fields model.Fields) (*model.Article, error)
	Update(ctx context.Context, sess auth.Session, id uuid.UUID, fields model.Fields) (*model.Article, error)
	Delete(ctx context.Context, sess auth.Session, id uuid.UUID) error
}

// ImportQueue holds URL import jobs for the worker.
type ImportQueue interface {
	SaveImport(ctx context.Context, job *model.ImportJob) error
	GetImport(ctx context.Context, id uuid.UUID) (*model.ImportJob, error)
	PopImport(ctx context.Context) (uuid.UUID, error)
}
