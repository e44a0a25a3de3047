package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultColor is the theme applied when an article has no color.
const DefaultColor = "blue"

// Library is a framework or tool referenced by an article. It has no
// identity of its own and is copied and replaced with its parent.
type Library struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// Article is one programming-language learning guide.
type Article struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	Requirements []string  `json:"requirements"`
	UseCases     []string  `json:"useCases"`
	Libraries    []Library `json:"libraries"`
	Language     string    `json:"language"`
	Icon         string    `json:"icon,omitempty"`
	Color        string    `json:"color"`
	CreatedBy    uuid.UUID `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewArticle creates an Article with a fresh ID and the default color.
// Slug and timestamps are assigned when it is saved.
func NewArticle(createdBy uuid.UUID) Article {
	return Article{
		ID:           uuid.New(),
		Color:        DefaultColor,
		CreatedBy:    createdBy,
		Requirements: []string{},
		UseCases:     []string{},
		Libraries:    []Library{},
	}
}

// Clone returns a deep copy so callers can mutate slices freely.
func (a Article) Clone() Article {
	c := a
	c.Requirements = append([]string{}, a.Requirements...)
	c.UseCases = append([]string{}, a.UseCases...)
	c.Libraries = append([]Library{}, a.Libraries...)
	return c
}
