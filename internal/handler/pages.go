package handler

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/auth"
	"github.com/mixtapemassey/site/internal/middleware"
)

// PageHandler serves the minimal HTML shells for the admin area.  The
// shells bootstrap against the JSON API; everything dynamic happens
// client side.
type PageHandler struct {
	Svc *auth.Service
}

var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Admin sign in</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/api/auth/login" data-redirect-to="{{.RedirectTo}}">
<label>Email <input type="email" name="email" required></label>
<button type="submit">Email me a sign-in link</button>
</form>
</body>
</html>`))

var shellPage = template.Must(template.New("shell").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body data-page="{{.Page}}">
<div id="app"></div>
</body>
</html>`))

// Login renders the sign-in page, or bounces straight to the dashboard
// when the visitor already holds a live session.
func (h *PageHandler) Login(c echo.Context) error {
	access, refresh := middleware.ReadSessionCookies(c)
	if sess, err := h.Svc.CurrentSession(c.Request().Context(), access, refresh); err == nil && sess != nil {
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}

	data := struct {
		Error      string
		RedirectTo string
	}{
		Error:      loginErrorMessage(c.QueryParam("error")),
		RedirectTo: c.QueryParam("redirectTo"),
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return loginPage.Execute(c.Response(), data)
}

// Shell renders the generic admin page shell.  PageGuard has already
// verified the session by the time this runs.
func (h *PageHandler) Shell(c echo.Context) error {
	data := struct {
		Title string
		Page  string
	}{
		Title: "Admin",
		Page:  c.Request().URL.Path,
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return shellPage.Execute(c.Response(), data)
}

func loginErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case "missing_code", "invalid_link":
		return "That sign-in link is invalid or has expired. Request a new one."
	}
	return "Sign-in failed. Please try again."
}
