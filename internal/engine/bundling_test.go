package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/MrToKa/WFC-sub003/internal/layout"
	"github.com/MrToKa/WFC-sub003/internal/models"
)

func powerCables(n int, diameter float64) []models.Cable {
	out := make([]models.Cable, n)
	for i := range out {
		out[i] = models.Cable{ID: string(rune('a' + i)), Purpose: "power", DiameterMm: diameter}
	}
	return out
}

func TestBuildBundlesEmpty(t *testing.T) {
	lay := BuildBundles(nil, layout.DefaultCableLayout())
	if len(lay.Blocks) != 0 {
		t.Fatalf("Expected no blocks, got %d", len(lay.Blocks))
	}
	if lay.BundleAreaMm2 != 0 || lay.WidthMm != 0 || lay.HeightMm != 0 {
		t.Errorf("Expected zero footprint, got %+v", lay)
	}
}

func TestBuildBundlesIgnoresUnknownPurposes(t *testing.T) {
	cables := []models.Cable{
		{ID: "g1", Purpose: "grounding", DiameterMm: 12},
		{ID: "x1", Purpose: "instrumentation", DiameterMm: 8},
	}
	lay := BuildBundles(cables, layout.DefaultCableLayout())
	if len(lay.Blocks) != 0 {
		t.Fatalf("Expected unmatched purposes to be excluded, got %d blocks", len(lay.Blocks))
	}
}

func TestBuildBundlesTrefoilGrouping(t *testing.T) {
	cfg := layout.DefaultCableLayout()
	cables := make([]models.Cable, 7)
	for i := range cables {
		cables[i] = models.Cable{ID: string(rune('a' + i)), Purpose: "MV", DiameterMm: 20}
	}

	lay := BuildBundles(cables, cfg)
	if len(lay.Blocks) != 1 || lay.Blocks[0].Category != layout.CategoryMV {
		t.Fatalf("Expected one mv block, got %+v", lay.Blocks)
	}

	bundles := lay.Blocks[0].Bundles
	if len(bundles) != 3 {
		t.Fatalf("Expected 3 bundles (3+3+1), got %d", len(bundles))
	}
	if !bundles[0].Trefoil || !bundles[1].Trefoil || bundles[2].Trefoil {
		t.Errorf("Expected two trefoil bundles and one leftover, got %+v", bundles)
	}
	if len(bundles[2].CableIDs) != 1 {
		t.Errorf("Expected leftover bundle of 1 cable, got %d", len(bundles[2].CableIDs))
	}

	// Trefoil footprint: cables touch, width is the diameter sum, height
	// the triangular stack.
	if bundles[0].WidthMm != 60 {
		t.Errorf("Expected trefoil width 60, got %.3f", bundles[0].WidthMm)
	}
	wantHeight := 20 * (1 + math.Sqrt(3)/2)
	if math.Abs(bundles[0].HeightMm-wantHeight) > 1e-9 {
		t.Errorf("Expected trefoil height %.3f, got %.3f", wantHeight, bundles[0].HeightMm)
	}
	if bundles[2].WidthMm != 20 || bundles[2].HeightMm != 20 {
		t.Errorf("Expected leftover footprint 20x20, got %.1fx%.1f", bundles[2].WidthMm, bundles[2].HeightMm)
	}
}

func TestBuildBundlesSpillOverCapacity(t *testing.T) {
	raw := &layout.RawCableLayout{
		Categories: map[string]*layout.RawCategorySettings{
			"control": {MaxRows: f64(1), MaxColumns: f64(2)},
		},
	}
	cfg, err := layout.BuildCableLayout(raw)
	if err != nil {
		t.Fatalf("BuildCableLayout failed: %v", err)
	}

	cables := make([]models.Cable, 5)
	for i := range cables {
		cables[i] = models.Cable{ID: string(rune('a' + i)), Purpose: "control", DiameterMm: 5}
	}

	lay := BuildBundles(cables, cfg)
	bundles := lay.Blocks[0].Bundles
	if len(bundles) != 3 {
		t.Fatalf("Expected spill into 3 bundles (2+2+1), got %d", len(bundles))
	}
	if len(bundles[0].CableIDs) != 2 || len(bundles[2].CableIDs) != 1 {
		t.Errorf("Expected bundle sizes 2,2,1, got %d,%d,%d",
			len(bundles[0].CableIDs), len(bundles[1].CableIDs), len(bundles[2].CableIDs))
	}

	// Grid of maxColumns=2: rows [b1 b2] and [b3], no spacing configured.
	block := lay.Blocks[0]
	if block.WidthMm != 20 || block.HeightMm != 10 {
		t.Errorf("Expected packed block 20x10, got %.1fx%.1f", block.WidthMm, block.HeightMm)
	}
	if block.BundleAreaMm2 != 125 {
		t.Errorf("Expected bundle area 125, got %.1f", block.BundleAreaMm2)
	}
}

func TestBuildBundlesInterMemberSpacing(t *testing.T) {
	// Default power settings use a one-diameter gap between members.
	lay := BuildBundles(powerCables(3, 10), layout.DefaultCableLayout())
	b := lay.Blocks[0].Bundles[0]
	if b.WidthMm != 50 {
		t.Errorf("Expected width 30 + 2 gaps of 10 = 50, got %.1f", b.WidthMm)
	}
	if b.HeightMm != 10 {
		t.Errorf("Expected height 10, got %.1f", b.HeightMm)
	}
}

func TestBuildBundlesCustomRangeClass(t *testing.T) {
	raw := &layout.RawCableLayout{
		Ranges: map[string][]layout.RawBundleRange{
			"power": {
				{ID: "small", Min: f64(0), Max: f64(12)},
				{ID: "large", Min: f64(12.1), Max: f64(40), MaxRows: f64(1)},
			},
		},
	}
	cfg, err := layout.BuildCableLayout(raw)
	if err != nil {
		t.Fatalf("BuildCableLayout failed: %v", err)
	}

	cables := []models.Cable{
		{ID: "a", Purpose: "power", DiameterMm: 10},
		{ID: "b", Purpose: "power", DiameterMm: 11},
		{ID: "c", Purpose: "power", DiameterMm: 30},
	}
	lay := BuildBundles(cables, cfg)
	bundles := lay.Blocks[0].Bundles
	if len(bundles) != 2 {
		t.Fatalf("Expected 2 bundles (small range, large range), got %d", len(bundles))
	}
	if bundles[0].ClassID != "range:small" || len(bundles[0].CableIDs) != 2 {
		t.Errorf("Expected 2 cables in range:small, got %+v", bundles[0])
	}
	if bundles[1].ClassID != "range:large" || len(bundles[1].CableIDs) != 1 {
		t.Errorf("Expected 1 cable in range:large, got %+v", bundles[1])
	}
}

func TestBuildBundlesCategoryStackingOrder(t *testing.T) {
	cables := []models.Cable{
		{ID: "c1", Purpose: "control", DiameterMm: 5},
		{ID: "p1", Purpose: "power", DiameterMm: 10},
		{ID: "m1", Purpose: "mv", DiameterMm: 30},
	}
	lay := BuildBundles(cables, layout.DefaultCableLayout())

	var got []layout.Category
	for _, b := range lay.Blocks {
		got = append(got, b.Category)
	}
	want := []layout.Category{layout.CategoryMV, layout.CategoryPower, layout.CategoryControl}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected category order %v, got %v", want, got)
	}

	// Blocks stack vertically: total height is the sum of block heights
	// (no cable spacing configured by default).
	wantHeight := lay.Blocks[0].HeightMm + lay.Blocks[1].HeightMm + lay.Blocks[2].HeightMm
	if lay.HeightMm != wantHeight {
		t.Errorf("Expected stacked height %.2f, got %.2f", wantHeight, lay.HeightMm)
	}
}

func TestBuildBundlesDeterministic(t *testing.T) {
	cables := append(powerCables(5, 10), models.Cable{ID: "m", Purpose: "mv", DiameterMm: 25})
	cfg := layout.DefaultCableLayout()

	first := BuildBundles(cables, cfg)
	second := BuildBundles(cables, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical inputs")
	}
}
