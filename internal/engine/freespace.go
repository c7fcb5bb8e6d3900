package engine

import (
	"strings"

	"github.com/MrToKa/WFC-sub003/internal/layout"
	"github.com/MrToKa/WFC-sub003/internal/models"
)

// ComputeTrayFreeSpaceByTrayID computes the free cross-section percentage
// for every tray, keyed by tray ID. A nil entry means the tray geometry
// is insufficient (missing or zero width, or height for non-ladder
// trays). Bundle spacing counts as occupied unless the layout opts it
// into free space. Results are clamped into the configured
// [min,max] percent window when both bounds are set, else into [0,100].
func ComputeTrayFreeSpaceByTrayID(trays []models.Tray, cables []models.Cable, cfg *layout.CableLayout) map[string]*float64 {
	if cfg == nil {
		cfg = layout.DefaultCableLayout()
	}

	out := make(map[string]*float64, len(trays))
	for _, tray := range trays {
		out[tray.ID] = computeTrayFreeSpace(tray, CablesOnTray(cables, tray.Name), cfg)
	}
	return out
}

func computeTrayFreeSpace(tray models.Tray, cables []models.Cable, cfg *layout.CableLayout) *float64 {
	lay := BuildBundles(cables, cfg)

	var occupied, available float64
	if isLadderTray(tray) {
		if tray.WidthMm <= 0 {
			return nil
		}
		available = tray.WidthMm
		occupied = lay.FlatWidthMm
		if !cfg.ConsiderBundleSpacingAsFree {
			occupied += lay.FlatSpacingWidthMm
		}
	} else {
		if tray.WidthMm <= 0 || tray.HeightMm <= 0 {
			return nil
		}
		available = tray.WidthMm * tray.HeightMm
		occupied = lay.BundleAreaMm2
		if !cfg.ConsiderBundleSpacingAsFree {
			occupied += lay.SpacingAreaMm2
		}
	}

	percent := 100 * (1 - occupied/available)
	percent = clampFreeSpace(percent, cfg)
	return &percent
}

// isLadderTray reports whether a tray's cross-section has no meaningful
// height, so occupancy compares widths only.
func isLadderTray(tray models.Tray) bool {
	return strings.Contains(strings.ToLower(tray.Type), "ladder") ||
		strings.Contains(strings.ToLower(tray.Purpose), "ladder")
}

func clampFreeSpace(percent float64, cfg *layout.CableLayout) float64 {
	lo, hi := 0.0, 100.0
	if cfg.MinFreeSpacePercent > 0 && cfg.MaxFreeSpacePercent > 0 {
		lo = float64(cfg.MinFreeSpacePercent)
		hi = float64(cfg.MaxFreeSpacePercent)
	}
	if percent < lo {
		return lo
	}
	if percent > hi {
		return hi
	}
	return percent
}

// ApplyFreeSpaceOverrides folds operator-supplied values over computed
// results. The export pipeline calls this last; the calculator itself
// only ever supplies the default.
func ApplyFreeSpaceOverrides(results map[string]*float64, overrides map[string]float64) {
	for trayID, v := range overrides {
		value := v
		results[trayID] = &value
	}
}
