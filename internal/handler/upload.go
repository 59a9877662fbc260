package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/storage"
)

// UploadHandler streams multipart uploads into object storage.  A nil
// Store means uploads are not configured on this deployment.
type UploadHandler struct {
	Store *storage.Store
	Prod  bool
}

var uploadKinds = map[string]storage.Kind{
	"press":       storage.KindPress,
	"performance": storage.KindPerformance,
	"logo":        storage.KindLogo,
	"rider":       storage.KindRider,
}

// Upload handles POST /api/admin/uploads/:kind with a multipart "file"
// field and returns the object key plus its public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "uploads are not configured"})
	}
	kind, ok := uploadKinds[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown upload kind"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return writeError(c, err, h.Prod)
	}
	defer src.Close()

	result, err := h.Store.Upload(c.Request().Context(), kind, fh.Filename,
		fh.Header.Get("Content-Type"), fh.Size, src)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file exceeds the upload size limit"})
		}
		return writeError(c, err, h.Prod)
	}
	return c.JSON(http.StatusCreated, result)
}
