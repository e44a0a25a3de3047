// Package admin is the article management view used by the hub CLI.
//
// The console keeps the full article list in memory, filters it by title
// locally and re-fetches everything after each successful change. Every
// failure becomes a notice; the console never keeps a half-loaded list.
package admin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"learning-hub/internal/client"
	"learning-hub/internal/model"
	"learning-hub/internal/view"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the subset of the API client the console needs.
type Repository interface {
	ListAll(ctx context.Context) ([]model.Article, error)
	Create(ctx context.Context, cred client.Credential, fields model.Fields) (*model.Article, error)
	Update(ctx context.Context, cred client.Credential, id uuid.UUID, fields model.Fields) (*model.Article, error)
	Delete(ctx context.Context, cred client.Credential, id uuid.UUID) error
}

type Console struct {
	repo    Repository
	cred    client.Credential
	logger  *zap.Logger
	notices Notices

	articles []model.Article
	search   string
}

func NewConsole(repo Repository, cred client.Credential, logger *zap.Logger) *Console {
	return &Console{repo: repo, cred: cred, logger: logger}
}

// Notices returns the console's notice queue.
func (c *Console) Notices() *Notices {
	return &c.notices
}

// Load fetches every article. On failure the list is emptied.
func (c *Console) Load(ctx context.Context) error {
	articles, err := c.repo.ListAll(ctx)
	if err != nil {
		c.logger.Error("Error fetching articles", zap.Error(err))
		c.articles = nil
		c.notices.push(LevelError, "Error", "Failed to load articles")
		return err
	}
	c.articles = articles
	return nil
}

// SetSearch sets the title filter applied by Visible.
func (c *Console) SetSearch(term string) {
	c.search = term
}

// Visible returns the loaded articles matching the search term.
func (c *Console) Visible() []model.Article {
	return view.FilterByTitle(c.articles, c.search)
}

func (c *Console) Create(ctx context.Context, fields model.Fields) (*model.Article, error) {
	a, err := c.repo.Create(ctx, c.cred, fields)
	if err != nil {
		c.fail("create", err)
		return nil, err
	}
	c.notices.push(LevelSuccess, "Success", "Article created successfully")
	c.reload(ctx, "create")
	return a, nil
}

func (c *Console) Update(ctx context.Context, id uuid.UUID, fields model.Fields) (*model.Article, error) {
	a, err := c.repo.Update(ctx, c.cred, id, fields)
	if err != nil {
		c.fail("update", err)
		return nil, err
	}
	c.notices.push(LevelSuccess, "Success", "Article updated successfully")
	c.reload(ctx, "update")
	return a, nil
}

func (c *Console) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.Delete(ctx, c.cred, id); err != nil {
		c.fail("delete", err)
		return err
	}
	c.notices.push(LevelSuccess, "Success", "Article deleted successfully")
	c.reload(ctx, "delete")
	return nil
}

// reload re-fetches after a successful change. The change itself stands
// even when the reload fails; Load has already queued a notice.
func (c *Console) reload(ctx context.Context, action string) {
	if err := c.Load(ctx); err != nil {
		c.logger.Warn("Reload after "+action+" failed", zap.Error(err))
	}
}

func (c *Console) fail(action string, err error) {
	c.logger.Error("Article "+action+" failed", zap.Error(err))
	c.notices.push(LevelError, "Error", fmt.Sprintf("Failed to %s article: %v", action, err))
}

// Render writes pending notices followed by the visible articles.
func (c *Console) Render(w io.Writer) {
	for _, n := range c.notices.Drain() {
		fmt.Fprintf(w, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
	}

	visible := c.Visible()
	if len(visible) == 0 {
		if c.search != "" {
			fmt.Fprintf(w, "No articles match %q\n", c.search)
		} else {
			fmt.Fprintln(w, "No articles found")
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSLUG\tLANGUAGE\tUPDATED")
	for _, a := range visible {
		row := view.NewAdminRow(a)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.ID, row.Title, row.Slug, row.Language, row.Updated)
	}
	tw.Flush()
}
