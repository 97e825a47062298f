package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the name of the HTTP-only cookie carrying the
// session token.
const SessionCookieName = "access_token"

// SetSessionCookie attaches the session token to the response as an
// HTTP-only, SameSite=Lax cookie whose Max-Age matches the token lifetime.
func SetSessionCookie(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie from the client.
// The token itself stays valid until expiry; there is no server-side
// revocation list.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
