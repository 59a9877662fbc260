package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/repository"
	"github.com/mixtapemassey/site/internal/utils"
)

// PublicHandler serves the read-only site API: settings, mixes, photos
// and events.  Booking and song submissions live in their own handlers.
type PublicHandler struct {
	SettingsRepo *repository.SettingsRepo
	MixRepo      *repository.MixRepo
	MediaRepo    *repository.MediaRepo
	EventRepo    *repository.EventRepo
	Prod         bool
}

// PublicMix is a mix row enriched with the iframe embed URL derived
// from its platform and link.
type PublicMix struct {
	model.Mix
	EmbedURL string `json:"embed_url"`
}

func publicMixes(mixes []model.Mix) []PublicMix {
	out := make([]PublicMix, 0, len(mixes))
	for _, m := range mixes {
		out = append(out, PublicMix{Mix: m, EmbedURL: utils.EmbedURL(m.URL, m.Platform)})
	}
	return out
}

// GetHome aggregates everything the landing page needs in one request:
// site settings, featured mixes, the next public events and press
// photos.
func (h *PublicHandler) GetHome(c echo.Context) error {
	ctx := c.Request().Context()

	settings, err := h.SettingsRepo.Get(ctx)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	featured, err := h.MixRepo.Featured(ctx)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	upcoming, err := h.EventRepo.Upcoming(ctx, 5)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	press, err := h.MediaRepo.Press(ctx)
	if err != nil {
		return writeError(c, err, h.Prod)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"settings":        settings,
		"featured_mixes":  publicMixes(featured),
		"upcoming_events": upcoming,
		"press_photos":    press,
	})
}

// GetSettings returns the CMS settings singleton.
func (h *PublicHandler) GetSettings(c echo.Context) error {
	settings, err := h.SettingsRepo.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, settings)
}

// GetMixes lists all mixes in display order, with embed URLs.
func (h *PublicHandler) GetMixes(c echo.Context) error {
	mixes, err := h.MixRepo.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": publicMixes(mixes)})
}

// GetFeaturedMixes lists only the mixes flagged for the home page.
func (h *PublicHandler) GetFeaturedMixes(c echo.Context) error {
	mixes, err := h.MixRepo.Featured(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": publicMixes(mixes)})
}

// GetMedia lists gallery photos in display order.
func (h *PublicHandler) GetMedia(c echo.Context) error {
	photos, err := h.MediaRepo.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": photos})
}

// GetPressPhotos lists the press-kit subset of the gallery.
func (h *PublicHandler) GetPressPhotos(c echo.Context) error {
	photos, err := h.MediaRepo.Press(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": photos})
}

// GetEvents lists upcoming public events, soonest first.
func (h *PublicHandler) GetEvents(c echo.Context) error {
	events, err := h.EventRepo.Upcoming(c.Request().Context(), 0)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// SearchEvents matches events by title, venue or city.  An empty query
// returns an empty result rather than the full table.
func (h *PublicHandler) SearchEvents(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Event{}})
	}
	events, err := h.EventRepo.Search(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	visible := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.IsPublic {
			visible = append(visible, e)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": visible})
}
