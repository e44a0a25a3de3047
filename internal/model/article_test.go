package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle() Article {
	a := NewArticle(uuid.New())
	a.Title = "Go"
	a.Description = "Simple and fast"
	a.Content = "<p>Go is a language.</p>"
	a.Language = "Go"
	return a
}

func TestNewArticle_Defaults(t *testing.T) {
	admin := uuid.New()
	a := NewArticle(admin)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, DefaultColor, a.Color)
	assert.Equal(t, admin, a.CreatedBy)
	assert.Empty(t, a.Slug, "slug is only assigned on save")
	assert.NotNil(t, a.Requirements)
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	a := NewArticle(uuid.New())
	a.Title = "   "
	a.Libraries = []Library{{Name: "gin"}}

	err := a.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"title", "description", "content", "language", "libraries[0].description"}, verr.Fields)
	assert.Contains(t, err.Error(), "missing title")
}

func TestValidate_LibraryURLOptional(t *testing.T) {
	a := validArticle()
	a.Libraries = []Library{{Name: "cobra", Description: "CLI framework"}}
	assert.NoError(t, a.Validate())
}

func TestFields_Apply(t *testing.T) {
	a := validArticle()

	changed := Fields{Title: String("Go")}.Apply(&a)
	assert.False(t, changed, "same value is not a change")

	changed = Fields{Description: String("Concurrency first")}.Apply(&a)
	assert.True(t, changed)
	assert.Equal(t, "Concurrency first", a.Description)
	assert.Equal(t, "Go", a.Title)

	changed = Fields{Requirements: []string{"basics"}}.Apply(&a)
	assert.True(t, changed)
	assert.Equal(t, []string{"basics"}, a.Requirements)

	changed = Fields{Requirements: []string{}}.Apply(&a)
	assert.True(t, changed, "an empty slice clears the list")
	assert.Empty(t, a.Requirements)
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	a := validArticle()
	a.UseCases = []string{"web"}

	c := a.Clone()
	c.UseCases[0] = "cli"

	assert.Equal(t, "web", a.UseCases[0])
}
