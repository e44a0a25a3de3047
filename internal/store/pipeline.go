package store

import (
	"time"

	"learning-hub/internal/model"
	"learning-hub/internal/slug"
)

// Pipeline prepares an article for a write:
// validate -> derive slug -> stamp timestamps. The caller commits.
type Pipeline struct {
	deriver *slug.Deriver
	now     func() time.Time
}

func NewPipeline(deriver *slug.Deriver) *Pipeline {
	if deriver == nil {
		deriver = slug.New()
	}
	return &Pipeline{
		deriver: deriver,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Validate rejects articles with missing required fields.
func (p *Pipeline) Validate(a *model.Article) error {
	return a.Validate()
}

// DeriveSlug recomputes the slug when the title is new or changed.
// prev is nil on create.
func (p *Pipeline) DeriveSlug(prev, a *model.Article) {
	if prev == nil || prev.Title != a.Title || a.Slug == "" {
		a.Slug = p.deriver.Derive(a.Title)
	}
}

// Stamp sets CreatedAt on create and advances UpdatedAt whenever the
// article changed.
func (p *Pipeline) Stamp(prev, a *model.Article, changed bool) {
	now := p.now()
	if prev == nil {
		a.CreatedAt = now
		a.UpdatedAt = now
		return
	}
	if !changed {
		return
	}
	if now.Before(a.CreatedAt) {
		now = a.CreatedAt
	}
	a.UpdatedAt = now
}

// Prepare runs every stage in order.
func (p *Pipeline) Prepare(prev, a *model.Article, changed bool) error {
	if err := p.Validate(a); err != nil {
		return err
	}
	p.DeriveSlug(prev, a)
	p.Stamp(prev, a, changed)
	return nil
}
