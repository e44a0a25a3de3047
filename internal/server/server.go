package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"learning-hub/internal/auth"
	"learning-hub/internal/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Authenticator checks admin credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*auth.Admin, error)
}

// Sessions issues and resolves admin session tokens.
type Sessions interface {
	Issue(ctx context.Context, admin *auth.Admin) (auth.Session, error)
	Resolve(ctx context.Context, token string) (auth.Session, error)
	Revoke(ctx context.Context, token string) error
}

type Server struct {
	store    store.Store
	imports  store.ImportQueue
	admins   Authenticator
	sessions Sessions
	logger   *zap.Logger
	router   *mux.Router
	server   *http.Server
	pages    map[string]*template.Template
}

func NewServer(st store.Store, imports store.ImportQueue, admins Authenticator, sessions Sessions, logger *zap.Logger) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    st,
		imports:  imports,
		admins:   admins,
		sessions: sessions,
		logger:   logger,
		router:   mux.NewRouter(),
		pages:    pages,
	}
	s.routes()
	return s, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"list", "detail", "notfound"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	// Public pages
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/programming-languages", s.handleList).Methods("GET")
	s.router.HandleFunc("/programming-languages/{slug}", s.handleDetail).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/articles", s.handleListArticles).Methods("GET")
	api.HandleFunc("/articles/slug/{slug}", s.handleGetArticleBySlug).Methods("GET")
	api.HandleFunc("/articles/{id}", s.handleGetArticle).Methods("GET")
	api.HandleFunc("/articles", s.admin(s.handleCreateArticle)).Methods("POST")
	api.HandleFunc("/articles/{id}", s.admin(s.handleUpdateArticle)).Methods("PUT")
	api.HandleFunc("/articles/{id}", s.admin(s.handleDeleteArticle)).Methods("DELETE")

	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/logout", s.admin(s.handleLogout)).Methods("POST")

	api.HandleFunc("/imports", s.admin(s.handleCreateImport)).Methods("POST")
	api.HandleFunc("/imports/{id}", s.admin(s.handleGetImport)).Methods("GET")
}

// ServeHTTP lets tests drive the router directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start launches the HTTP server
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("Web server listening", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
