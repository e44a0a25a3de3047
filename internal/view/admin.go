package view

import (
	"strings"

	"learning-hub/internal/model"
)

// FilterByTitle keeps the articles whose title contains term, ignoring
// case. An empty term keeps everything.
func FilterByTitle(articles []model.Article, term string) []model.Article {
	term = strings.ToLower(term)
	filtered := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), term) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// AdminRow is one line of the admin article table.
type AdminRow struct {
	ID       string
	Title    string
	Slug     string
	Language string
	Updated  string
}

// NewAdminRow formats an article for the admin table.
func NewAdminRow(a model.Article) AdminRow {
	return AdminRow{
		ID:       a.ID.String(),
		Title:    a.Title,
		Slug:     a.Slug,
		Language: a.Language,
		Updated:  "Updated: " + a.UpdatedAt.Local().Format("Jan 02, 2006"),
	}
}
