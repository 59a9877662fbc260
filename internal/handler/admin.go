package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/repository"
	"github.com/mixtapemassey/site/internal/utils"
)

// AdminHandler bundles everything behind the cookie-authenticated
// /api/admin tree: content CRUD, request triage and the dashboard.
type AdminHandler struct {
	SettingsRepo *repository.SettingsRepo
	MixRepo      *repository.MixRepo
	MediaRepo    *repository.MediaRepo
	EventRepo    *repository.EventRepo
	BookingRepo  *repository.BookingRepo
	SongRepo     *repository.SongRepo
	Dashboard    *repository.Dashboard
	Prod         bool
}

// GetDashboard returns the headline counts plus the merged
// recent-activity timeline in one response.
func (h *AdminHandler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := h.Dashboard.Stats(ctx)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	n := 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 50 {
		n = v
	}
	activity, err := h.Dashboard.RecentActivity(ctx, n)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats, "recent_activity": activity})
}

// Booking triage.

// ListBookings returns booking requests, newest first.  ?status= narrows
// to one workflow state.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.BookingRepo.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

// UpdateBooking moves a request through the workflow and replaces its
// internal notes.
func (h *AdminHandler) UpdateBooking(c echo.Context) error {
	var req struct {
		Status        string  `json:"status"`
		InternalNotes *string `json:"internal_notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	booking, err := h.BookingRepo.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, req.InternalNotes)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, booking)
}

// Song request triage.

// ListSongs returns song requests, newest first.  ?event_id= narrows to
// one event.
func (h *AdminHandler) ListSongs(c echo.Context) error {
	songs, err := h.SongRepo.List(c.Request().Context(), c.QueryParam("event_id"))
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": songs})
}

// ApproveSong flips the approval flag on a song request.
func (h *AdminHandler) ApproveSong(c echo.Context) error {
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	song, err := h.SongRepo.SetApproval(c.Request().Context(), c.Param("id"), req.Approved)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, song)
}

// Mix CRUD.

func (h *AdminHandler) ListMixes(c echo.Context) error {
	mixes, err := h.MixRepo.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": mixes})
}

func (h *AdminHandler) CreateMix(c echo.Context) error {
	var mix model.Mix
	if err := c.Bind(&mix); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if mix.Platform == "" {
		mix.Platform = utils.PlatformFromURL(mix.URL)
	}
	if err := h.MixRepo.Create(c.Request().Context(), &mix); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusCreated, mix)
}

func (h *AdminHandler) UpdateMix(c echo.Context) error {
	var mix model.Mix
	if err := c.Bind(&mix); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	mix.ID = c.Param("id")
	if err := h.MixRepo.Update(c.Request().Context(), &mix); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, mix)
}

func (h *AdminHandler) DeleteMix(c echo.Context) error {
	if err := h.MixRepo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ReorderMixes applies a batch of display_order updates in one
// transaction; either the whole new ordering lands or none of it.
func (h *AdminHandler) ReorderMixes(c echo.Context) error {
	var req struct {
		Items []repository.OrderUpdate `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no items to reorder"})
	}
	if err := h.MixRepo.Reorder(c.Request().Context(), req.Items); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Media CRUD.

func (h *AdminHandler) ListMedia(c echo.Context) error {
	photos, err := h.MediaRepo.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": photos})
}

func (h *AdminHandler) CreateMedia(c echo.Context) error {
	var photo model.MediaPhoto
	if err := c.Bind(&photo); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.MediaRepo.Create(c.Request().Context(), &photo); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusCreated, photo)
}

func (h *AdminHandler) UpdateMedia(c echo.Context) error {
	var photo model.MediaPhoto
	if err := c.Bind(&photo); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	photo.ID = c.Param("id")
	if err := h.MediaRepo.Update(c.Request().Context(), &photo); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, photo)
}

func (h *AdminHandler) DeleteMedia(c echo.Context) error {
	if err := h.MediaRepo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AdminHandler) ReorderMedia(c echo.Context) error {
	var req struct {
		Items []repository.OrderUpdate `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no items to reorder"})
	}
	if err := h.MediaRepo.Reorder(c.Request().Context(), req.Items); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Event CRUD.

func (h *AdminHandler) ListEvents(c echo.Context) error {
	events, err := h.EventRepo.List(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var event model.Event
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.EventRepo.Create(c.Request().Context(), &event); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	var event model.Event
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	event.ID = c.Param("id")
	if err := h.EventRepo.Update(c.Request().Context(), &event); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	if err := h.EventRepo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Settings.

func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.SettingsRepo.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings rewrites the settings singleton and returns the stored
// row so the admin UI reflects any normalization.
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var settings model.Settings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	updated, err := h.SettingsRepo.Update(c.Request().Context(), &settings)
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusOK, updated)
}
