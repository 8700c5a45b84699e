package http

import (
	"encoding/json"
	stdhttp "net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfolio/app/internal/auth"
	"portfolio/app/internal/config"
	"portfolio/app/internal/content"
	"portfolio/app/internal/db"
	"portfolio/app/internal/http/templates"
)

// Options configures the HTTP server wiring.
type Options struct {
	ContentService content.Service
	AuthService    *auth.Service
	Site           config.Site
	CookieSecure   bool
	Database       *gorm.DB
	Logger         *logrus.Logger
	SentryHub      *sentry.Hub
}

// Server wires the HTTP transport layer via chi and templ components.
type Server struct {
	router       chi.Router
	contents     content.Service
	auth         *auth.Service
	site         config.Site
	cookieSecure bool
	database     *gorm.DB
	logger       *logrus.Logger
	sentry       *sentry.Hub
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.ContentService == nil {
		return nil, eris.New("content service is required")
	}
	if opts.AuthService == nil {
		return nil, eris.New("auth service is required")
	}

	srv := &Server{
		router:       chi.NewRouter(),
		contents:     opts.ContentService,
		auth:         opts.AuthService,
		site:         opts.Site,
		cookieSecure: opts.CookieSecure,
		database:     opts.Database,
		logger:       opts.Logger,
		sentry:       opts.SentryHub,
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.router
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) registerMiddlewares() {
	s.router.Use(
		s.requestIDMiddleware,
		s.sentryMiddleware,
		s.recoveryMiddleware,
		s.loggingMiddleware,
		s.sessionMiddleware,
	)
}

func (s *Server) registerRoutes() {
	s.router.Get("/favicon.ico", faviconHandler)
	s.router.Head("/favicon.ico", faviconHandler)
	s.registerStaticRoute()

	s.router.Get("/", s.handleHome)
	s.router.Get("/about", s.handleAbout)
	s.router.Get("/contact", s.handleContact)
	s.router.Get("/projects", s.handleProjects)
	s.router.Get("/blog", s.handleBlog)
	s.router.Get("/blog/{slug}", s.handlePost)
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/auth/login", s.handleLoginForm)
	s.router.Post("/auth/login", s.handleLogin)
	s.router.Get("/auth/logout", s.handleLogout)

	s.router.Route("/admin", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/", s.handleDashboard)

		r.Get("/posts/new", s.handleNewPostForm)
		r.Post("/posts", s.handleCreatePost)
		r.Get("/posts/{id}/edit", s.handleEditPostForm)
		r.Post("/posts/{id}", s.handleUpdatePost)
		r.Post("/posts/{id}/delete", s.handleDeletePost)

		r.Get("/projects/new", s.handleNewProjectForm)
		r.Post("/projects", s.handleCreateProject)
		r.Get("/projects/{id}/edit", s.handleEditProjectForm)
		r.Post("/projects/{id}", s.handleUpdateProject)
		r.Post("/projects/{id}/delete", s.handleDeleteProject)
	})

	s.router.NotFound(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		s.renderErrorPage(w, r, stdhttp.StatusNotFound, "The page you are looking for does not exist.")
	})
}

// pageContext builds the shared view state for the current request.
func (s *Server) pageContext(r *stdhttp.Request) templates.Page {
	return templates.Page{
		SiteName:    s.site.Name,
		Tagline:     s.site.Tagline,
		GitHubURL:   s.site.GitHubURL,
		LinkedInURL: s.site.LinkedInURL,
		Email:       s.site.Email,
		SignedIn:    CurrentUserFromContext(r.Context()) != nil,
	}
}

func (s *Server) handleHealth(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := "healthy"
	dbStatus := "connected"
	code := stdhttp.StatusOK

	if s.database == nil {
		status = "degraded"
		dbStatus = "unavailable"
		code = stdhttp.StatusServiceUnavailable
	} else if sqlDB, err := db.SQLDB(s.database); err != nil {
		s.reportError(r, err, "health check failed to access database")
		status = "degraded"
		dbStatus = "unavailable"
		code = stdhttp.StatusServiceUnavailable
	} else if err := sqlDB.PingContext(r.Context()); err != nil {
		s.reportError(r, err, "health check database ping failed")
		status = "degraded"
		dbStatus = "disconnected"
		code = stdhttp.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":   status,
		"database": dbStatus,
	}); err != nil {
		s.reportError(r, err, "writing health response failed")
	}
}
