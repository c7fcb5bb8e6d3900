package engine

import (
	"strings"

	"github.com/MrToKa/WFC-sub003/internal/models"
)

// TrayLoads aggregates tray, support and carried-cable weights for one
// tray. The tray-side figures are all-or-nothing: a missing addend nils
// the combined value. The cable-side sum is best effort: cables without a
// known weight simply do not contribute.
type TrayLoads struct {
	TrayWeightLoadPerMeterKg   *float64 `json:"trayWeightLoadPerMeterKg"`
	TrayTotalOwnWeightKg       *float64 `json:"trayTotalOwnWeightKg"`
	CablesWeightLoadPerMeterKg *float64 `json:"cablesWeightLoadPerMeterKg"`
	CablesTotalWeightKg        *float64 `json:"cablesTotalWeightKg"`
}

// LoadOptions tunes the cable set used for weight sums.
type LoadOptions struct {
	// IncludeGroundingCableID opts a single grounding cable back into the
	// weight sum; grounding cables are excluded otherwise.
	IncludeGroundingCableID string
}

// ResolveTrayWeightPerMeter resolves a tray's own weight per meter: the
// explicit override on the tray, then the material catalogue entry for
// its type (case-insensitive), then nil.
func ResolveTrayWeightPerMeter(tray models.Tray, catalogue []models.MaterialTray) *float64 {
	if tray.WeightPerMeterKg != nil {
		return tray.WeightPerMeterKg
	}
	for _, m := range catalogue {
		if strings.EqualFold(m.Type, tray.Type) {
			w := m.WeightPerMeterKg
			return &w
		}
	}
	return nil
}

// ComputeTrayLoads combines the tray's own weight, the support plan and
// the carried cables into per-meter and total load figures. The cables
// considered are those routed over the tray, excluding grounding cables
// unless one is opted in via opts.
func ComputeTrayLoads(tray models.Tray, cables []models.Cable, catalogue []models.MaterialTray, plan SupportPlan, opts LoadOptions) TrayLoads {
	var loads TrayLoads
	lengthM := tray.LengthMm / 1000

	trayWeight := ResolveTrayWeightPerMeter(tray, catalogue)
	if trayWeight != nil && plan.WeightPerMeterKg != nil {
		combined := *trayWeight + *plan.WeightPerMeterKg
		loads.TrayWeightLoadPerMeterKg = &combined
		if lengthM > 0 {
			total := combined * lengthM
			loads.TrayTotalOwnWeightKg = &total
		}
	}

	included := 0
	var cableSum float64
	for _, c := range CablesOnTray(cables, tray.Name) {
		if strings.EqualFold(c.Purpose, models.PurposeGrounding) && c.ID != opts.IncludeGroundingCableID {
			continue
		}
		included++
		if c.WeightPerMeterKg != nil {
			cableSum += *c.WeightPerMeterKg
		}
	}
	if included > 0 {
		loads.CablesWeightLoadPerMeterKg = &cableSum
		if lengthM > 0 {
			total := cableSum * lengthM
			loads.CablesTotalWeightKg = &total
		}
	}
	return loads
}
