package http

import (
	stdhttp "net/http"
	"time"

	"github.com/getsentry/sentry-go"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"portfolio/app/internal/http/templates"
)

const requestIDHeader = "X-Request-ID"

func (s *Server) requestIDMiddleware(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) sentryMiddleware(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if s.sentry == nil {
			next.ServeHTTP(w, r)
			return
		}

		hub := s.sentry.Clone()
		hub.Scope().SetTag("request_id", RequestIDFromContext(r.Context()))
		hub.Scope().SetRequest(r)
		next.ServeHTTP(w, r.WithContext(sentry.SetHubOnContext(r.Context(), hub)))
	})
}

func (s *Server) recoveryMiddleware(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			err, ok := recovered.(error)
			if !ok {
				err = eris.Errorf("panic: %v", recovered)
			}

			s.reportError(r, err, "panic while handling request")
			s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		}()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if s.logger == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(wrapped, r)

		s.logger.WithFields(logrus.Fields{
			"request_id":  RequestIDFromContext(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapped.Status(),
			"bytes":       wrapped.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	})
}

// sessionMiddleware resolves the current user from the session cookie, when
// present, and stores it on the request context. Invalid or expired sessions
// are treated as anonymous.
func (s *Server) sessionMiddleware(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		user := s.auth.CurrentUserOptional(r.Context(), r)
		if user != nil {
			r = r.WithContext(withCurrentUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// requireUser gates admin routes: anonymous requests are redirected to the
// login page.
func (s *Server) requireUser(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if CurrentUserFromContext(r.Context()) == nil {
			stdhttp.Redirect(w, r, "/auth/login", stdhttp.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) renderErrorPage(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, message string) {
	data := templates.ErrorData{
		StatusLabel: stdhttp.StatusText(status),
		Message:     message,
	}
	s.writePage(w, r, status, templates.ErrorPage(s.pageContext(r), data))
}
