package cache

import (
	"fmt"
	"testing"

	"github.com/MrToKa/WFC-sub003/internal/engine"
	"github.com/MrToKa/WFC-sub003/internal/layout"
	"github.com/MrToKa/WFC-sub003/internal/models"
)

func TestFingerprintStable(t *testing.T) {
	cables := []models.Cable{
		{ID: "c1", Purpose: "power", DiameterMm: 10},
		{ID: "c2", Purpose: "mv", DiameterMm: 25},
	}

	a, err := Fingerprint(cables)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	b, err := Fingerprint(cables)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if a != b {
		t.Errorf("Expected identical fingerprints, got %s vs %s", a, b)
	}

	cables[1].DiameterMm = 26
	c, err := Fingerprint(cables)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if a == c {
		t.Error("Expected a changed input to change the fingerprint")
	}
}

func TestFingerprintSortsMapKeys(t *testing.T) {
	// Map iteration order varies; the canonical encoding must not.
	m := map[string]float64{"t1": 94, "t2": 55, "t3": 10, "t4": 70}
	first, err := Fingerprint(m)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Fingerprint(m)
		if err != nil {
			t.Fatalf("Fingerprint failed: %v", err)
		}
		if again != first {
			t.Fatalf("Expected stable map fingerprint, got %s vs %s", again, first)
		}
	}
}

func TestFingerprintLayoutDeterminism(t *testing.T) {
	// The layout carries typed maps (Categories, Ranges); their encoding
	// must be canonical no matter the iteration order.
	cfg := layout.DefaultCableLayout()
	cfg.Ranges[layout.CategoryMV] = []layout.BundleRange{
		{ID: "a", MinMm: 0.5, MaxMm: 12},
		{ID: "b", MinMm: 12.1, MaxMm: 30},
	}

	first, err := Fingerprint(cfg)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	for i := 0; i < 200; i++ {
		again, err := Fingerprint(cfg)
		if err != nil {
			t.Fatalf("Fingerprint failed: %v", err)
		}
		if again != first {
			t.Fatalf("Expected stable layout fingerprint on iteration %d, got %s vs %s", i, again, first)
		}
	}

	cfg.CableSpacingMm = 5
	changed, err := Fingerprint(cfg)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if changed == first {
		t.Error("Expected a changed layout to change the fingerprint")
	}
}

func TestResultCache(t *testing.T) {
	c := NewResultCache()

	if _, ok := c.Get("t1", "cfp", "sfp"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	count := 6
	c.Put("t1", "cfp", "sfp", engine.TrayLoadResult{
		TrayID:   "t1",
		Supports: engine.SupportPlan{SupportsCount: &count},
	})

	got, ok := c.Get("t1", "cfp", "sfp")
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if got.Supports.SupportsCount == nil || *got.Supports.SupportsCount != 6 {
		t.Errorf("Expected cached result with 6 supports, got %+v", got)
	}

	// A different fingerprint is a different key.
	if _, ok := c.Get("t1", "cfp2", "sfp"); ok {
		t.Error("Expected miss for changed cable fingerprint")
	}
	if _, ok := c.Get("t1", "cfp", "sfp2"); ok {
		t.Error("Expected miss for changed settings fingerprint")
	}
}

func TestResultCacheEviction(t *testing.T) {
	c := NewResultCache()
	for i := 0; i < MaxEntries+10; i++ {
		c.Put(fmt.Sprintf("t%d", i), "cfp", "sfp", engine.TrayLoadResult{})
	}
	if c.Len() > MaxEntries {
		t.Errorf("Expected at most %d entries, got %d", MaxEntries, c.Len())
	}
}

func TestResultCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewResultCache()
	for i := 0; i < MaxEntries; i++ {
		c.Put(fmt.Sprintf("t%d", i), "cfp", "sfp", engine.TrayLoadResult{})
	}

	count := 7
	c.Put("t0", "cfp", "sfp", engine.TrayLoadResult{Supports: engine.SupportPlan{SupportsCount: &count}})

	if c.Len() != MaxEntries {
		t.Errorf("Expected overwrite to keep %d entries, got %d", MaxEntries, c.Len())
	}
	got, ok := c.Get("t0", "cfp", "sfp")
	if !ok {
		t.Fatal("Expected overwritten entry to be present")
	}
	if got.Supports.SupportsCount == nil || *got.Supports.SupportsCount != 7 {
		t.Errorf("Expected the overwritten result, got %+v", got)
	}
	for i := 1; i < MaxEntries; i++ {
		if _, ok := c.Get(fmt.Sprintf("t%d", i), "cfp", "sfp"); !ok {
			t.Fatalf("Expected entry t%d to survive an overwrite", i)
		}
	}
}
