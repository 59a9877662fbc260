// Package router wires the HTTP surface: public site API, the sign-in
// flow, the cookie-authenticated admin API and the admin page shells.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mixtapemassey/site/internal/auth"
	"github.com/mixtapemassey/site/internal/config"
	"github.com/mixtapemassey/site/internal/handler"
	"github.com/mixtapemassey/site/internal/middleware"
)

// RegisterRoutes registers routes that carry no middleware at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the read-only site API plus the two public
// form endpoints.  GET responses flow through the Redis cache; form
// posts through the per-IP rate limiter.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.BookingHandler, s *handler.SongHandler,
	rateCfg config.RateLimitConfig, cacheCfg config.CacheConfig, rdb *redis.Client) {

	cached := e.Group("/api", middleware.NewResponseCache(cacheCfg, rdb))
	cached.GET("/home", p.GetHome)
	cached.GET("/settings", p.GetSettings)
	cached.GET("/mixes", p.GetMixes)
	cached.GET("/mixes/featured", p.GetFeaturedMixes)
	cached.GET("/media", p.GetMedia)
	cached.GET("/media/press", p.GetPressPhotos)
	cached.GET("/events", p.GetEvents)
	cached.GET("/events/search", p.SearchEvents)

	limited := e.Group("/api", middleware.NewRateLimiter(rateCfg, rdb))
	limited.POST("/booking", b.CreateBooking)
	limited.POST("/songs", s.CreateSongRequest)
}

// RegisterAuth registers the passwordless sign-in flow.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login)
	g.GET("/callback", a.Callback)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterAdmin registers the cookie-authenticated admin API and the
// guarded HTML shells.
func RegisterAdmin(e *echo.Echo, svc *auth.Service, ad *handler.AdminHandler, up *handler.UploadHandler,
	pages *handler.PageHandler, secure bool, refreshTTL time.Duration) {

	api := e.Group("/api/admin", middleware.SessionAuth(svc, secure, refreshTTL))
	api.GET("/dashboard", ad.GetDashboard)

	api.GET("/bookings", ad.ListBookings)
	api.PATCH("/bookings/:id", ad.UpdateBooking)

	api.GET("/songs", ad.ListSongs)
	api.PATCH("/songs/:id", ad.ApproveSong)

	api.GET("/mixes", ad.ListMixes)
	api.POST("/mixes", ad.CreateMix)
	api.PUT("/mixes/:id", ad.UpdateMix)
	api.DELETE("/mixes/:id", ad.DeleteMix)
	api.PUT("/mixes/order", ad.ReorderMixes)

	api.GET("/media", ad.ListMedia)
	api.POST("/media", ad.CreateMedia)
	api.PUT("/media/:id", ad.UpdateMedia)
	api.DELETE("/media/:id", ad.DeleteMedia)
	api.PUT("/media/order", ad.ReorderMedia)

	api.GET("/events", ad.ListEvents)
	api.POST("/events", ad.CreateEvent)
	api.PUT("/events/:id", ad.UpdateEvent)
	api.DELETE("/events/:id", ad.DeleteEvent)

	api.GET("/settings", ad.GetSettings)
	api.PUT("/settings", ad.UpdateSettings)

	api.POST("/uploads/:kind", up.Upload)

	// HTML shells.  PageGuard runs as global middleware (see main), so
	// these handlers only render; the guard has already checked the
	// session for everything except /admin/login.
	e.GET("/admin/login", pages.Login)
	e.GET("/admin", pages.Shell)
	e.GET("/admin/*", pages.Shell)
}
