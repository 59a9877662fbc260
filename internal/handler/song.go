package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/spam"
)

type songCreator interface {
	Create(ctx context.Context, s *model.SongRequest) error
}

// SongHandler accepts public song requests.  New requests always start
// unapproved; only an admin can surface them.
type SongHandler struct {
	Repo songCreator
	Spam *spam.Verifier
	Prod bool
}

// CreateSongRequest handles POST /api/songs.
func (h *SongHandler) CreateSongRequest(c echo.Context) error {
	var req struct {
		RequesterName *string `json:"requester_name"`
		Artist        string  `json:"artist"`
		Track         string  `json:"track"`
		Dedication    *string `json:"dedication"`
		EventID       *string `json:"event_id"`
		SpamToken     string  `json:"spam_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if !h.Spam.Verify(c.Request().Context(), req.SpamToken, c.RealIP()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed spam verification"})
	}

	song := model.SongRequest{
		RequesterName: req.RequesterName,
		Artist:        req.Artist,
		Track:         req.Track,
		Dedication:    req.Dedication,
		EventID:       req.EventID,
	}
	if err := h.Repo.Create(c.Request().Context(), &song); err != nil {
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": song.ID})
}
