package engine

import (
	"github.com/MrToKa/WFC-sub003/internal/layout"
	"github.com/MrToKa/WFC-sub003/internal/models"
)

// TrayLoadResult is the complete derived picture for one tray. It is
// recomputed from scratch on every call and never persisted.
type TrayLoadResult struct {
	TrayID           string      `json:"trayId"`
	TrayName         string      `json:"trayName"`
	FreeSpacePercent *float64    `json:"freeSpacePercent"`
	Supports         SupportPlan `json:"supports"`
	Loads            TrayLoads   `json:"loads"`
}

// ComputeTrayResult runs the full pipeline for a single tray: free space
// from the bundling engine, the support plan from the resolved spacing
// distance and piece weight, and the aggregated loads.
func ComputeTrayResult(
	tray models.Tray,
	project *models.Project,
	cables []models.Cable,
	cfg *layout.CableLayout,
	trayCatalogue []models.MaterialTray,
	supportCatalogue []models.MaterialSupport,
	opts LoadOptions,
) TrayLoadResult {
	result := TrayLoadResult{TrayID: tray.ID, TrayName: tray.Name}

	freeSpace := ComputeTrayFreeSpaceByTrayID([]models.Tray{tray}, cables, cfg)
	result.FreeSpacePercent = freeSpace[tray.ID]

	if distance := ResolveSupportDistance(tray.Type, project); distance != nil {
		weight := ResolveSupportWeight(tray.Type, project, supportCatalogue)
		result.Supports = ComputeSupportPlan(tray.LengthMm, *distance, weight)
	}

	result.Loads = ComputeTrayLoads(tray, cables, trayCatalogue, result.Supports, opts)
	return result
}
