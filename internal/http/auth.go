package http

import (
	stdhttp "net/http"

	"portfolio/app/internal/auth"
	"portfolio/app/internal/http/templates"
)

const invalidCredentialsMessage = "Invalid username or password"

func (s *Server) handleLoginForm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if CurrentUserFromContext(r.Context()) != nil {
		stdhttp.Redirect(w, r, "/admin", stdhttp.StatusFound)
		return
	}

	s.writePage(w, r, stdhttp.StatusOK, templates.LoginPage(s.pageContext(r), templates.LoginData{}))
}

func (s *Server) handleLogin(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderErrorPage(w, r, stdhttp.StatusBadRequest, "The login form could not be read.")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := s.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		s.reportError(r, err, "authentication failed")
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}
	if user == nil {
		data := templates.LoginData{Username: username, Error: invalidCredentialsMessage}
		s.writePage(w, r, stdhttp.StatusUnauthorized, templates.LoginPage(s.pageContext(r), data))
		return
	}

	token, err := s.auth.Tokens().Issue(user.Username)
	if err != nil {
		s.reportError(r, err, "issuing session token failed")
		s.renderErrorPage(w, r, stdhttp.StatusInternalServerError, "Something went wrong on our end.")
		return
	}

	auth.SetSessionCookie(w, token, s.auth.Tokens().TTL(), s.cookieSecure)
	stdhttp.Redirect(w, r, "/admin", stdhttp.StatusFound)
}

func (s *Server) handleLogout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	auth.ClearSessionCookie(w, s.cookieSecure)
	stdhttp.Redirect(w, r, "/", stdhttp.StatusFound)
}
