package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "portfolio_session"

// SetSessionCookie delivers the session token to the browser. The cookie is
// HttpOnly and SameSite=Lax, and lives exactly as long as the token it wraps.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie instructs the client to discard the session cookie.
// Logout is stateless: a stolen token stays valid until its natural expiry.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionTokenFromRequest extracts the session token from the request cookie,
// returning an empty string when absent.
func SessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
