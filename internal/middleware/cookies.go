// Package middleware holds the Echo middleware for the site: the admin
// page guard, API session auth, the public-form rate limiter and the
// Redis response cache.
package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/auth"
)

// Session cookie names.  Both cookies are HttpOnly; the access cookie
// expires with the JWT, the refresh cookie with the refresh token.
const (
	AccessCookie  = "sb-access-token"
	RefreshCookie = "sb-refresh-token"
)

// ReadSessionCookies returns the token pair from the request, empty
// strings for missing cookies.
func ReadSessionCookies(c echo.Context) (access, refresh string) {
	if ck, err := c.Cookie(AccessCookie); err == nil {
		access = ck.Value
	}
	if ck, err := c.Cookie(RefreshCookie); err == nil {
		refresh = ck.Value
	}
	return access, refresh
}

// WriteSessionCookies mirrors a session into the cookie pair.
func WriteSessionCookies(c echo.Context, sess *auth.Session, secure bool, refreshTTL time.Duration) {
	c.SetCookie(sessionCookie(AccessCookie, sess.AccessToken, time.Until(sess.ExpiresAt), secure))
	c.SetCookie(sessionCookie(RefreshCookie, sess.RefreshToken, refreshTTL, secure))
}

// ClearSessionCookies expires both cookies.
func ClearSessionCookies(c echo.Context, secure bool) {
	c.SetCookie(sessionCookie(AccessCookie, "", -time.Hour, secure))
	c.SetCookie(sessionCookie(RefreshCookie, "", -time.Hour, secure))
}

func sessionCookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		ck.MaxAge = -1
	} else {
		ck.MaxAge = int(ttl / time.Second)
	}
	return ck
}
