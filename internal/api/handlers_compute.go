package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MrToKa/WFC-sub003/internal/cache"
	"github.com/MrToKa/WFC-sub003/internal/engine"
	"github.com/MrToKa/WFC-sub003/internal/models"
	"github.com/MrToKa/WFC-sub003/internal/store"
)

// HandleFreeSpace computes the free cross-section percentage for every
// tray of a project. Trays with insufficient geometry come back as null.
func (h *Handler) HandleFreeSpace(c echo.Context) error {
	snap, err := h.store.Snapshot(c.Param("id"))
	if err != nil {
		return NewNotFoundError("project", c.Param("id"))
	}

	results := engine.ComputeTrayFreeSpaceByTrayID(snap.Trays, snap.Cables, snap.Layout)
	return c.JSON(http.StatusOK, results)
}

// HandleTrayLoads computes the full load picture for one tray: free
// space, support plan and weight loads. A query parameter
// includeGroundingCableId opts a single grounding cable into the sums.
func (h *Handler) HandleTrayLoads(c echo.Context) error {
	snap, err := h.store.Snapshot(c.Param("id"))
	if err != nil {
		return NewNotFoundError("project", c.Param("id"))
	}
	tray := snap.TrayByID(c.Param("trayId"))
	if tray == nil {
		return NewNotFoundError("tray", c.Param("trayId"))
	}

	opts := engine.LoadOptions{IncludeGroundingCableID: c.QueryParam("includeGroundingCableId")}
	result, err := h.computeTrayResult(snap, *tray, opts)
	if err != nil {
		return NewInternalError("computing tray loads", err)
	}
	return c.JSON(http.StatusOK, result)
}

// computeTrayResult runs the engine for one tray, consulting the result
// cache first. The engine is deterministic, so equal fingerprints mean
// an identical result.
func (h *Handler) computeTrayResult(snap *store.Snapshot, tray models.Tray, opts engine.LoadOptions) (engine.TrayLoadResult, error) {
	if h.cache == nil {
		return engine.ComputeTrayResult(tray, &snap.Project, snap.Cables, snap.Layout, snap.MaterialTrays, snap.MaterialSupports, opts), nil
	}

	cablesFP, err := cache.Fingerprint(struct {
		Tray   models.Tray
		Cables []models.Cable
		Opts   engine.LoadOptions
	}{tray, snap.Cables, opts})
	if err != nil {
		return engine.TrayLoadResult{}, err
	}
	settingsFP, err := cache.Fingerprint(struct {
		Project  models.Project
		Layout   interface{}
		Trays    []models.MaterialTray
		Supports []models.MaterialSupport
	}{snap.Project, snap.Layout, snap.MaterialTrays, snap.MaterialSupports})
	if err != nil {
		return engine.TrayLoadResult{}, err
	}

	if cached, ok := h.cache.Get(tray.ID, cablesFP, settingsFP); ok {
		return cached, nil
	}
	result := engine.ComputeTrayResult(tray, &snap.Project, snap.Cables, snap.Layout, snap.MaterialTrays, snap.MaterialSupports, opts)
	h.cache.Put(tray.ID, cablesFP, settingsFP, result)
	return result, nil
}

// exportRequest carries the operator's export-time adjustments: per-tray
// free-space overrides and per-tray grounding cable opt-ins.
type exportRequest struct {
	FreeSpaceOverrides     map[string]float64 `json:"freeSpaceOverrides,omitempty"`
	GroundingCableIDByTray map[string]string  `json:"groundingCableIdByTray,omitempty"`
}

// HandleExport computes results for every tray of a project and applies
// the operator's free-space overrides on top. The override map exists
// only for the duration of the request; computed values are never
// persisted.
func (h *Handler) HandleExport(c echo.Context) error {
	snap, err := h.store.Snapshot(c.Param("id"))
	if err != nil {
		return NewNotFoundError("project", c.Param("id"))
	}

	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	freeSpace := engine.ComputeTrayFreeSpaceByTrayID(snap.Trays, snap.Cables, snap.Layout)
	engine.ApplyFreeSpaceOverrides(freeSpace, req.FreeSpaceOverrides)

	rows := make([]engine.TrayLoadResult, 0, len(snap.Trays))
	for _, tray := range snap.Trays {
		opts := engine.LoadOptions{IncludeGroundingCableID: req.GroundingCableIDByTray[tray.ID]}
		result, err := h.computeTrayResult(snap, tray, opts)
		if err != nil {
			return NewInternalError("computing tray loads", err)
		}
		result.FreeSpacePercent = freeSpace[tray.ID]
		rows = append(rows, result)
	}
	return c.JSON(http.StatusOK, rows)
}
