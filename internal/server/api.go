package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learning-hub/internal/auth"
	"learning-hub/internal/model"
	"learning-hub/internal/store"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type errorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

// writeStoreError maps repository errors onto HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrImportNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		s.logger.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) handleGetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := s.store.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	article, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	var fields model.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	article, err := s.store.Create(r.Context(), sess, fields)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var fields model.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	article, err := s.store.Update(r.Context(), sess, id, fields)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), sess, id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	admin, err := s.admins.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	} else if err != nil {
		s.writeStoreError(w, err)
		return
	}

	sess, err := s.sessions.Issue(r.Context(), admin)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("Admin logged in", zap.String("admin", admin.Username))
	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, Username: sess.Username, ExpiresAt: sess.ExpiresAt})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	if err := s.sessions.Revoke(r.Context(), sess.Token); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importRequest struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	Color    string `json:"color"`
}

func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "a valid http(s) url is required", Fields: []string{"url"}})
		return
	}
	if strings.TrimSpace(req.Language) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "language is required", Fields: []string{"language"}})
		return
	}

	job := model.NewImportJob(req.URL, req.Language, sess.AdminID)
	job.RequestedByName = sess.Username
	job.Color = req.Color
	if err := s.imports.SaveImport(r.Context(), &job); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request, sess auth.Session) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := s.imports.GetImport(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
