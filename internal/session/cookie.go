package session

import (
	"net/http"
	"time"
)

// CookieName uses the __Host- prefix so browsers refuse the cookie
// unless it is Secure, host-scoped, and Path=/.
const CookieName = "__Host-session"

// CookieOptions defines how session cookies are issued. Cookies are
// always HttpOnly; the session token is never readable from script.
type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
	Domain   string // must stay empty for __Host- cookies
}

func (o CookieOptions) cookie(token string) *http.Cookie {
	if o.Path == "" {
		o.Path = "/" // required for __Host-
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     o.Path,
		Domain:   o.Domain,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
}

// SetCookie issues the session cookie to the client.
func SetCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	c := opts.cookie(token)
	c.Expires = expiresAt
	http.SetCookie(w, c)
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	c := opts.cookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}
