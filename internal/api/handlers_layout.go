package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MrToKa/WFC-sub003/internal/layout"
)

// HandleGetLayout returns the project's trusted layout settings (the
// defaults when nothing was ever configured).
func (h *Handler) HandleGetLayout(c echo.Context) error {
	snap, err := h.store.Snapshot(c.Param("id"))
	if err != nil {
		return NewNotFoundError("project", c.Param("id"))
	}
	return c.JSON(http.StatusOK, snap.Layout)
}

// HandleUpdateLayout is the settings-write boundary: the raw payload is
// normalized and validated here, and only the trusted result is stored.
// Violations come back as 400 with the message naming the offending
// field or range.
func (h *Handler) HandleUpdateLayout(c echo.Context) error {
	var raw layout.RawCableLayout
	if err := c.Bind(&raw); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	trusted, err := layout.BuildCableLayout(&raw)
	if err != nil {
		return NewValidationError(err)
	}

	if err := h.store.SetLayout(c.Param("id"), trusted); err != nil {
		return NewNotFoundError("project", c.Param("id"))
	}
	return c.JSON(http.StatusOK, trusted)
}
