package engine

import (
	"math"
	"strings"

	"github.com/MrToKa/WFC-sub003/internal/models"
)

// Legacy fallback kept from the original tool: one tray type shipped with
// a hardcoded 2 m support distance before per-type overrides existed.
const (
	legacySupportTrayType   = "kl 100.603 f"
	legacySupportDistanceM  = 2.0
	oversizeRemainderFactor = 0.2
)

// SupportPlan is the derived support layout for one tray. All fields are
// nil when the tray length or support distance is unknown; TotalWeightKg
// and WeightPerMeterKg are additionally nil when the piece weight is.
type SupportPlan struct {
	SupportsCount    *int     `json:"supportsCount"`
	TotalWeightKg    *float64 `json:"totalWeightKg"`
	WeightPerMeterKg *float64 `json:"weightPerMeterKg"`
}

// ComputeSupportPlan derives the number of supports along a tray and the
// resulting weight figures. A tray always gets at least its two end
// supports, one more per full spacing segment, and one extra when the
// leftover span exceeds a fifth of the spacing distance. Non-positive
// length or distance means insufficient data, not an error: every output
// is nil.
func ComputeSupportPlan(trayLengthMm, distanceM float64, weightPerPieceKg *float64) SupportPlan {
	if trayLengthMm <= 0 || distanceM <= 0 {
		return SupportPlan{}
	}

	lengthM := trayLengthMm / 1000
	baseSegments := math.Floor(lengthM / distanceM)

	count := int(baseSegments) + 1
	if count < 2 {
		count = 2
	}

	// The tolerance keeps mm-to-m conversions from tripping the
	// comparison on binary rounding.
	remainder := lengthM - baseSegments*distanceM
	if baseSegments >= 1 && remainder > oversizeRemainderFactor*distanceM+1e-9 {
		count++
	}

	plan := SupportPlan{SupportsCount: &count}
	if weightPerPieceKg == nil {
		return plan
	}
	total := float64(count) * *weightPerPieceKg
	perMeter := total / lengthM
	plan.TotalWeightKg = &total
	plan.WeightPerMeterKg = &perMeter
	return plan
}

// ResolveSupportDistance resolves the support spacing for a tray type:
// per-type override, then the project default, then the legacy hardcoded
// fallback, then nil (skip the calculation).
func ResolveSupportDistance(trayType string, project *models.Project) *float64 {
	if project != nil {
		if o := project.SupportOverrideFor(trayType); o != nil && o.DistanceM != nil {
			return o.DistanceM
		}
		if project.DefaultSupportDistanceM != nil {
			return project.DefaultSupportDistanceM
		}
	}
	if strings.EqualFold(strings.TrimSpace(trayType), legacySupportTrayType) {
		d := legacySupportDistanceM
		return &d
	}
	return nil
}

// ResolveSupportWeight resolves the weight of a single support piece for
// a tray type: the overridden support's catalogue weight, then the
// project default weight, then nil.
func ResolveSupportWeight(trayType string, project *models.Project, supports []models.MaterialSupport) *float64 {
	if project == nil {
		return nil
	}
	if o := project.SupportOverrideFor(trayType); o != nil && o.SupportID != nil {
		for _, s := range supports {
			if s.ID == *o.SupportID {
				w := s.WeightKg
				return &w
			}
		}
	}
	return project.DefaultSupportWeightKg
}
