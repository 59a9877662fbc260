package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/auth"
)

// SessionAuth protects the /api/admin tree.  Unlike PageGuard it never
// redirects; API clients get JSON errors.  A valid session leaves
// user_id and email in the request context for handlers.
func SessionAuth(svc *auth.Service, secure bool, refreshTTL time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, refresh := ReadSessionCookies(c)
			sess, err := svc.CurrentSession(c.Request().Context(), access, refresh)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An authentication error occurred"})
			}
			if sess == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
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
