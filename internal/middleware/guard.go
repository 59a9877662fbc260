package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/auth"
)

// PageGuard protects the /admin HTML pages.  Anything outside /admin,
// the login page itself, static assets (paths containing a dot) and the
// /api tree pass through untouched; everything else needs a live
// session or gets a 302 to the login page with the original path in
// redirectTo.
func PageGuard(svc *auth.Service, secure bool, refreshTTL time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !strings.HasPrefix(path, "/admin") ||
				path == "/admin/login" ||
				strings.HasPrefix(path, "/api/") ||
				strings.Contains(path, ".") {
				return next(c)
			}

			access, refresh := ReadSessionCookies(c)
			sess, err := svc.CurrentSession(c.Request().Context(), access, refresh)
			if err != nil || sess == nil {
				// Auth backend failures deny access the same way a
				// missing session does; the login page is always safe.
				return redirectToLogin(c, path)
			}
			if sess.Rotated {
				WriteSessionCookies(c, sess, secure, refreshTTL)
			}
			c.Set("user_id", sess.UserID)
			c.Set("email", sess.Email)
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, "/admin/login?redirectTo="+url.QueryEscape(path))
}
