// Package view turns articles into presentation models for the public
// pages and the admin console.
package view

import (
	"html/template"
	"net/url"
	"strings"

	"learning-hub/internal/model"

	"github.com/google/uuid"
)

// ListPath is where the public article list lives.
const ListPath = "/programming-languages"

// FallbackGradient is used for colors missing from Gradients.
const FallbackGradient = "bg-gradient-to-br from-slate-500 to-gray-600"

// Gradients maps article colors to tile themes.
var Gradients = map[string]string{
	"blue":   "bg-gradient-to-br from-blue-500 to-purple-600",
	"red":    "bg-gradient-to-br from-red-500 to-orange-600",
	"green":  "bg-gradient-to-br from-green-500 to-teal-600",
	"yellow": "bg-gradient-to-br from-yellow-500 to-amber-600",
	"purple": "bg-gradient-to-br from-purple-500 to-indigo-600",
	"pink":   "bg-gradient-to-br from-pink-500 to-rose-600",
	"teal":   "bg-gradient-to-br from-teal-500 to-cyan-600",
	"orange": "bg-gradient-to-br from-orange-500 to-amber-600",
	"indigo": "bg-gradient-to-br from-indigo-500 to-blue-600",
	"cyan":   "bg-gradient-to-br from-cyan-500 to-sky-600",
}

// Gradient returns the theme class for color.
func Gradient(color string) string {
	if g, ok := Gradients[color]; ok {
		return g
	}
	return FallbackGradient
}

// DetailPath is the public URL of the article with slug s.
func DetailPath(s string) string {
	return ListPath + "/" + url.PathEscape(s)
}

// Tile is one entry on the list page. Key is the article id, never the slug.
type Tile struct {
	Key         uuid.UUID
	Title       string
	Description string
	Icon        string
	Gradient    string
	Href        string
}

// NewTile creates a tile from an article
func NewTile(a model.Article) Tile {
	return Tile{
		Key:         a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Gradient:    Gradient(a.Color),
		Href:        DetailPath(a.Slug),
	}
}

// NewTiles keeps the order of articles.
func NewTiles(articles []model.Article) []Tile {
	tiles := make([]Tile, len(articles))
	for i, a := range articles {
		tiles[i] = NewTile(a)
	}
	return tiles
}

// Detail is the model behind the article page.
type Detail struct {
	Title        string
	Description  string
	Icon         string
	HeaderClass  string
	Content      template.HTML
	Requirements []string
	UseCases     []string
	Libraries    []model.Library
	BackHref     string
}

// NewDetail builds the page model. Empty sections stay nil so templates
// can skip them with a plain {{if}}.
func NewDetail(a model.Article) Detail {
	d := Detail{
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		HeaderClass: "bg-" + a.Color + "-100",
		Content:     RenderContent(a.Content),
		BackHref:    ListPath,
	}
	if len(a.Requirements) > 0 {
		d.Requirements = a.Requirements
	}
	if len(a.UseCases) > 0 {
		d.UseCases = a.UseCases
	}
	if len(a.Libraries) > 0 {
		d.Libraries = a.Libraries
	}
	return d
}

// RenderContent emits the stored markup as-is with newlines turned into
// line breaks. The content is trusted: it is NOT sanitized.
func RenderContent(content string) template.HTML {
	return template.HTML(strings.ReplaceAll(content, "\n", "<br />"))
}
