package engine

import (
	"math"
	"testing"

	"github.com/MrToKa/WFC-sub003/internal/models"
)

func TestCableOnTray(t *testing.T) {
	tests := []struct {
		routing  string
		trayName string
		want     bool
	}{
		{"A/Tray-1/B", "Tray-1", true},
		{"A/Tray-1/B", "tray-1", true},
		{"A/Tray-1/B", "Tray-10", false},
		{"A/Tray-1/B", "Tray", false},
		{"Tray-1", "Tray-1", true},
		{"A/Tray-10/B", "Tray-1", false},
		{"", "Tray-1", false},
		{"A/Tray-1/B", "", false},
	}
	for _, tt := range tests {
		cable := models.Cable{Routing: tt.routing}
		if got := CableOnTray(cable, tt.trayName); got != tt.want {
			t.Errorf("CableOnTray(%q, %q) = %v, want %v", tt.routing, tt.trayName, got, tt.want)
		}
	}
}

func TestResolveTrayWeightPerMeter(t *testing.T) {
	catalogue := []models.MaterialTray{{Type: "KL 50.202 E", WeightPerMeterKg: 2.8}}

	override := models.Tray{Type: "KL 50.202 E", WeightPerMeterKg: f64(3.5)}
	if w := ResolveTrayWeightPerMeter(override, catalogue); w == nil || *w != 3.5 {
		t.Errorf("Expected explicit override 3.5, got %v", w)
	}

	fromCatalogue := models.Tray{Type: "kl 50.202 e"}
	if w := ResolveTrayWeightPerMeter(fromCatalogue, catalogue); w == nil || *w != 2.8 {
		t.Errorf("Expected case-insensitive catalogue weight 2.8, got %v", w)
	}

	unknown := models.Tray{Type: "no such type"}
	if w := ResolveTrayWeightPerMeter(unknown, catalogue); w != nil {
		t.Errorf("Expected nil for unknown type, got %v", *w)
	}
}

func TestComputeTrayLoads(t *testing.T) {
	tray := models.Tray{ID: "t1", Name: "TR-1", Type: "KL 50", LengthMm: 10000}
	catalogue := []models.MaterialTray{{Type: "kl 50", WeightPerMeterKg: 5}}
	plan := SupportPlan{WeightPerMeterKg: f64(3)}
	cables := []models.Cable{
		{ID: "c1", Purpose: "power", Routing: "TR-1", WeightPerMeterKg: f64(2)},
		{ID: "c2", Purpose: "power", Routing: "TR-1"}, // weight unknown
		{ID: "c3", Purpose: "Grounding", Routing: "TR-1", WeightPerMeterKg: f64(4)},
		{ID: "c4", Purpose: "power", Routing: "TR-9", WeightPerMeterKg: f64(9)}, // other tray
	}

	loads := ComputeTrayLoads(tray, cables, catalogue, plan, LoadOptions{})
	if loads.TrayWeightLoadPerMeterKg == nil || *loads.TrayWeightLoadPerMeterKg != 8 {
		t.Errorf("Expected tray load 5+3=8 kg/m, got %v", loads.TrayWeightLoadPerMeterKg)
	}
	if loads.TrayTotalOwnWeightKg == nil || *loads.TrayTotalOwnWeightKg != 80 {
		t.Errorf("Expected tray total 80 kg, got %v", loads.TrayTotalOwnWeightKg)
	}
	// Grounding excluded, unknown weight contributes nothing: partial sum.
	if loads.CablesWeightLoadPerMeterKg == nil || *loads.CablesWeightLoadPerMeterKg != 2 {
		t.Errorf("Expected cable load 2 kg/m, got %v", loads.CablesWeightLoadPerMeterKg)
	}
	if loads.CablesTotalWeightKg == nil || *loads.CablesTotalWeightKg != 20 {
		t.Errorf("Expected cable total 20 kg, got %v", loads.CablesTotalWeightKg)
	}
}

func TestComputeTrayLoadsGroundingOptIn(t *testing.T) {
	tray := models.Tray{ID: "t1", Name: "TR-1", LengthMm: 5000}
	cables := []models.Cable{
		{ID: "c1", Purpose: "power", Routing: "TR-1", WeightPerMeterKg: f64(2)},
		{ID: "g1", Purpose: "grounding", Routing: "TR-1", WeightPerMeterKg: f64(4)},
		{ID: "g2", Purpose: "grounding", Routing: "TR-1", WeightPerMeterKg: f64(6)},
	}

	loads := ComputeTrayLoads(tray, cables, nil, SupportPlan{}, LoadOptions{IncludeGroundingCableID: "g1"})
	// g1 opted in, g2 stays excluded.
	if loads.CablesWeightLoadPerMeterKg == nil || *loads.CablesWeightLoadPerMeterKg != 6 {
		t.Errorf("Expected cable load 2+4=6 kg/m, got %v", loads.CablesWeightLoadPerMeterKg)
	}
}

func TestComputeTrayLoadsNilPropagation(t *testing.T) {
	// No support plan weight: the combined tray figure is all-or-nothing.
	tray := models.Tray{ID: "t1", Name: "TR-1", Type: "KL 50", LengthMm: 10000}
	catalogue := []models.MaterialTray{{Type: "KL 50", WeightPerMeterKg: 5}}

	loads := ComputeTrayLoads(tray, nil, catalogue, SupportPlan{}, LoadOptions{})
	if loads.TrayWeightLoadPerMeterKg != nil || loads.TrayTotalOwnWeightKg != nil {
		t.Errorf("Expected nil tray figures without a support plan, got %+v", loads)
	}
	if loads.CablesWeightLoadPerMeterKg != nil {
		t.Errorf("Expected nil cable load for empty set, got %v", *loads.CablesWeightLoadPerMeterKg)
	}

	// Tray weight resolvable but length missing: per-meter only.
	short := models.Tray{ID: "t2", Name: "TR-2", Type: "KL 50"}
	loads = ComputeTrayLoads(short, nil, catalogue, SupportPlan{WeightPerMeterKg: f64(3)}, LoadOptions{})
	if loads.TrayWeightLoadPerMeterKg == nil || *loads.TrayWeightLoadPerMeterKg != 8 {
		t.Errorf("Expected per-meter figure 8, got %v", loads.TrayWeightLoadPerMeterKg)
	}
	if loads.TrayTotalOwnWeightKg != nil {
		t.Errorf("Expected nil total without length, got %v", *loads.TrayTotalOwnWeightKg)
	}
}

func TestComputeTrayResultPipeline(t *testing.T) {
	project := &models.Project{
		DefaultSupportDistanceM: f64(2),
		DefaultSupportWeightKg:  f64(10),
	}
	tray := models.Tray{ID: "t1", Name: "TR-1", Type: "KL 50", WidthMm: 100, HeightMm: 50, LengthMm: 10000}
	catalogue := []models.MaterialTray{{Type: "KL 50", WeightPerMeterKg: 5}}
	cables := []models.Cable{
		{ID: "c1", Purpose: "power", DiameterMm: 10, Routing: "TR-1", WeightPerMeterKg: f64(2)},
	}

	result := ComputeTrayResult(tray, project, cables, nil, catalogue, nil, LoadOptions{})
	if result.Supports.SupportsCount == nil || *result.Supports.SupportsCount != 6 {
		t.Fatalf("Expected 6 supports, got %v", result.Supports.SupportsCount)
	}
	if result.Supports.WeightPerMeterKg == nil || *result.Supports.WeightPerMeterKg != 6 {
		t.Fatalf("Expected support weight 60/10 = 6 kg/m, got %v", result.Supports.WeightPerMeterKg)
	}
	if result.Loads.TrayWeightLoadPerMeterKg == nil || *result.Loads.TrayWeightLoadPerMeterKg != 11 {
		t.Errorf("Expected tray load 5+6=11 kg/m, got %v", result.Loads.TrayWeightLoadPerMeterKg)
	}
	if result.FreeSpacePercent == nil || math.Abs(*result.FreeSpacePercent-98) > 1e-9 {
		t.Errorf("Expected 98%% free space, got %v", result.FreeSpacePercent)
	}
}
