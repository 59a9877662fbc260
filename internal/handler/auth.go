package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/auth"
	"github.com/mixtapemassey/site/internal/middleware"
)

// AuthHandler drives the passwordless sign-in flow: request a link,
// redeem it via the callback, refresh, sign out.
type AuthHandler struct {
	Svc        *auth.Service
	Secure     bool
	RefreshTTL time.Duration
}

// Login handles POST /api/auth/login: request a sign-in link for an
// admin email.  The response does not leak whether a link was actually
// sent except for the explicit "no account" case, which the login form
// surfaces.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}

	if err := h.Svc.RequestSignIn(c.Request().Context(), req.Email); err != nil {
		var aerr *auth.Error
		if errors.As(err, &aerr) {
			status := http.StatusBadRequest
			if aerr.Category == auth.CategoryRateLimited {
				status = http.StatusTooManyRequests
			}
			return c.JSON(status, echo.Map{"error": aerr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An authentication error occurred"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Callback handles GET /api/auth/callback: redeem the emailed code,
// set the session cookies and bounce to the admin area.  Failures land
// back on the login page with an error hint, never on a JSON error.
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return h.loginRedirect(c, "missing_code")
	}

	sess, err := h.Svc.ExchangeCode(c.Request().Context(), code)
	if err != nil {
		var aerr *auth.Error
		if errors.As(err, &aerr) && aerr.Category == auth.CategoryInvalidCredentials {
			return h.loginRedirect(c, "invalid_link")
		}
		return h.loginRedirect(c, "auth_failed")
	}

	middleware.WriteSessionCookies(c, sess, h.Secure, h.RefreshTTL)

	next := c.QueryParam("next")
	if !safeRedirect(next) {
		next = "/admin/dashboard"
	}
	return c.Redirect(http.StatusFound, next)
}

// Refresh handles POST /api/auth/refresh: rotate the refresh token and
// rewrite the cookies.
func (h *AuthHandler) Refresh(c echo.Context) error {
	_, refresh := middleware.ReadSessionCookies(c)
	if refresh == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	sess, err := h.Svc.Refresh(c.Request().Context(), refresh)
	if err != nil {
		var aerr *auth.Error
		if errors.As(err, &aerr) && aerr.Category == auth.CategoryInvalidCredentials {
			middleware.ClearSessionCookies(c, h.Secure)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": aerr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An authentication error occurred"})
	}
	middleware.WriteSessionCookies(c, sess, h.Secure, h.RefreshTTL)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "expires_at": sess.ExpiresAt})
}

// Logout handles POST /api/auth/logout.  Cookies are cleared even when
// token revocation fails; the client always ends up signed out.
func (h *AuthHandler) Logout(c echo.Context) error {
	_, refresh := middleware.ReadSessionCookies(c)
	_ = h.Svc.SignOut(c.Request().Context(), refresh)
	middleware.ClearSessionCookies(c, h.Secure)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) loginRedirect(c echo.Context, reason string) error {
	return c.Redirect(http.StatusFound, "/admin/login?error="+url.QueryEscape(reason))
}

// safeRedirect accepts only same-site absolute paths, so the callback
// cannot be abused as an open redirect.
func safeRedirect(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}
