package web

import (
	"errors"
	"net/http"

	"learning-hub/internal/store"
	"learning-hub/internal/view"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, view.ListPath, http.StatusFound)
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("Template error", zap.String("page", page), zap.Error(err))
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to list articles", zap.Error(err))
		s.render(w, http.StatusServiceUnavailable, "list", map[string]any{
			"Title":  "Programming Languages",
			"Notice": "Failed to load programming languages",
		})
		return
	}

	s.render(w, http.StatusOK, "list", map[string]any{
		"Title": "Programming Languages",
		"Tiles": view.NewTiles(articles),
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	article, err := s.store.GetBySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		s.render(w, http.StatusNotFound, "notfound", map[string]any{
			"Title":    "Article Not Found",
			"BackHref": view.ListPath,
		})
		return
	} else if err != nil {
		s.logger.Error("Failed to load article", zap.String("slug", slug), zap.Error(err))
		s.render(w, http.StatusServiceUnavailable, "notfound", map[string]any{
			"Title":    "Article Not Found",
			"BackHref": view.ListPath,
			"Notice":   "Failed to load article",
		})
		return
	}

	s.render(w, http.StatusOK, "detail", map[string]any{
		"Title":   article.Title,
		"Article": view.NewDetail(*article),
	})
}
