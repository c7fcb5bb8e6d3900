package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MrToKa/WFC-sub003/internal/cache"
	"github.com/MrToKa/WFC-sub003/internal/models"
	"github.com/MrToKa/WFC-sub003/internal/store"
)

// Handler handles API requests.
type Handler struct {
	store store.Store
	cache *cache.ResultCache
}

// NewHandler creates a new API handler. The cache may be nil, in which
// case every computation runs from scratch.
func NewHandler(st store.Store, resultCache *cache.ResultCache) *Handler {
	return &Handler{store: st, cache: resultCache}
}

// Register attaches all routes to an echo group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/health", h.HandleHealth)

	g.POST("/projects", h.HandleCreateProject)
	g.GET("/projects", h.HandleListProjects)
	g.GET("/projects/:id", h.HandleGetProject)
	g.PUT("/projects/:id", h.HandleUpdateProject)

	g.POST("/projects/:id/trays", h.HandlePutTray)
	g.DELETE("/projects/:id/trays/:trayId", h.HandleDeleteTray)
	g.POST("/projects/:id/cables", h.HandlePutCable)
	g.DELETE("/projects/:id/cables/:cableId", h.HandleDeleteCable)

	g.GET("/projects/:id/layout", h.HandleGetLayout)
	g.PUT("/projects/:id/layout", h.HandleUpdateLayout)

	g.PUT("/materials/trays", h.HandlePutMaterialTrays)
	g.PUT("/materials/supports", h.HandlePutMaterialSupports)

	g.GET("/projects/:id/freespace", h.HandleFreeSpace)
	g.GET("/projects/:id/trays/:trayId/loads", h.HandleTrayLoads)
	g.POST("/projects/:id/export", h.HandleExport)
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HandleCreateProject stores a new project.
func (h *Handler) HandleCreateProject(c echo.Context) error {
	var p models.Project
	if err := c.Bind(&p); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if p.Name == "" {
		return NewBadRequestError("project name is required", nil)
	}

	created, err := h.store.CreateProject(p)
	if err != nil {
		return NewConflictError(err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

// HandleListProjects returns all projects.
func (h *Handler) HandleListProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListProjects())
}

// HandleGetProject returns a single project.
func (h *Handler) HandleGetProject(c echo.Context) error {
	p, err := h.store.GetProject(c.Param("id"))
	if err != nil {
		return NewNotFoundError("project", c.Param("id"))
	}
	return c.JSON(http.StatusOK, p)
}

// HandleUpdateProject replaces a project's own fields, including support
// defaults and per-tray-type overrides.
func (h *Handler) HandleUpdateProject(c echo.Context) error {
	var p models.Project
	if err := c.Bind(&p); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	p.ID = c.Param("id")

	updated, err := h.store.UpdateProject(p)
	if err != nil {
		return NewNotFoundError("project", p.ID)
	}
	return c.JSON(http.StatusOK, updated)
}

// HandlePutTray inserts or replaces a tray.
func (h *Handler) HandlePutTray(c echo.Context) error {
	var t models.Tray
	if err := c.Bind(&t); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	t.ProjectID = c.Param("id")
	if t.Name == "" {
		return NewBadRequestError("tray name is required", nil)
	}

	saved, err := h.store.PutTray(t)
	if err != nil {
		return NewNotFoundError("project", t.ProjectID)
	}
	return c.JSON(http.StatusCreated, saved)
}

// HandleDeleteTray removes a tray.
func (h *Handler) HandleDeleteTray(c echo.Context) error {
	if err := h.store.DeleteTray(c.Param("id"), c.Param("trayId")); err != nil {
		return NewNotFoundError("tray", c.Param("trayId"))
	}
	return c.NoContent(http.StatusNoContent)
}

// HandlePutCable inserts or replaces a cable.
func (h *Handler) HandlePutCable(c echo.Context) error {
	var cb models.Cable
	if err := c.Bind(&cb); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	cb.ProjectID = c.Param("id")

	saved, err := h.store.PutCable(cb)
	if err != nil {
		return NewNotFoundError("project", cb.ProjectID)
	}
	return c.JSON(http.StatusCreated, saved)
}

// HandleDeleteCable removes a cable.
func (h *Handler) HandleDeleteCable(c echo.Context) error {
	if err := h.store.DeleteCable(c.Param("id"), c.Param("cableId")); err != nil {
		return NewNotFoundError("cable", c.Param("cableId"))
	}
	return c.NoContent(http.StatusNoContent)
}

// HandlePutMaterialTrays replaces the tray catalogue.
func (h *Handler) HandlePutMaterialTrays(c echo.Context) error {
	var trays []models.MaterialTray
	if err := c.Bind(&trays); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	h.store.SetMaterialTrays(trays)
	return c.JSON(http.StatusOK, map[string]int{"count": len(trays)})
}

// HandlePutMaterialSupports replaces the support catalogue.
func (h *Handler) HandlePutMaterialSupports(c echo.Context) error {
	var supports []models.MaterialSupport
	if err := c.Bind(&supports); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	h.store.SetMaterialSupports(supports)
	return c.JSON(http.StatusOK, map[string]int{"count": len(supports)})
}
