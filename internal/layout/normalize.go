package layout

import (
	"fmt"
	"math"
	"sort"
)

// RawCategorySettings is the untrusted per-category payload as it arrives
// from the settings-write endpoint. Absent fields stay nil.
type RawCategorySettings struct {
	MaxRows                      *float64 `json:"maxRows,omitempty"`
	MaxColumns                   *float64 `json:"maxColumns,omitempty"`
	BundleSpacing                *string  `json:"bundleSpacing,omitempty"`
	Trefoil                      *bool    `json:"trefoil,omitempty"`
	TrefoilSpacingBetweenBundles *bool    `json:"trefoilSpacingBetweenBundles,omitempty"`
	ApplyPhaseRotation           *bool    `json:"applyPhaseRotation,omitempty"`
}

func (r *RawCategorySettings) empty() bool {
	return r == nil ||
		(r.MaxRows == nil && r.MaxColumns == nil && r.BundleSpacing == nil &&
			r.Trefoil == nil && r.TrefoilSpacingBetweenBundles == nil && r.ApplyPhaseRotation == nil)
}

// RawBundleRange is an untrusted custom diameter range.
type RawBundleRange struct {
	ID      string   `json:"id"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	MaxRows *float64 `json:"maxRows,omitempty"`
}

// RawCableLayout is the untrusted project layout payload.
type RawCableLayout struct {
	CableSpacing                *float64                        `json:"cableSpacing,omitempty"`
	ConsiderBundleSpacingAsFree *bool                           `json:"considerBundleSpacingAsFree,omitempty"`
	MinFreeSpacePercent         *float64                        `json:"minFreeSpacePercent,omitempty"`
	MaxFreeSpacePercent         *float64                        `json:"maxFreeSpacePercent,omitempty"`
	Categories                  map[string]*RawCategorySettings `json:"categories,omitempty"`
	Ranges                      map[string][]RawBundleRange     `json:"ranges,omitempty"`
}

func isInteger(v float64) bool {
	return v == math.Trunc(v)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ValidateBundleRanges checks a category's custom diameter ranges and
// returns the first violation, or nil. Ranges must have positive bounds,
// min < max, integer maxRows in [1,1000] when present, and at least
// MinRangeGapMm between consecutive ranges once sorted by min.
func ValidateBundleRanges(ranges []RawBundleRange) error {
	for _, r := range ranges {
		if r.Min == nil || r.Max == nil {
			return fmt.Errorf("bundle range %q: min and max are required", r.ID)
		}
		if *r.Min < 0 || *r.Max < 0 {
			return fmt.Errorf("bundle range %q: min and max must be positive", r.ID)
		}
		if *r.Min >= *r.Max {
			return fmt.Errorf("bundle range %q: min must be less than max; the next range should start at min+%.1f or higher", r.ID, MinRangeGapMm)
		}
		if r.MaxRows != nil {
			if !isInteger(*r.MaxRows) || *r.MaxRows < MinGridDimension || *r.MaxRows > MaxGridDimension {
				return fmt.Errorf("bundle range %q: maxRows must be an integer between %d and %d", r.ID, MinGridDimension, MaxGridDimension)
			}
		}
	}

	sorted := make([]RawBundleRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool { return *sorted[i].Min < *sorted[j].Min })

	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		// Touching counts as overlap; a gap below MinRangeGapMm is also
		// rejected so adjacent ranges stay unambiguous.
		if *next.Min-*cur.Max < MinRangeGapMm-1e-9 {
			return fmt.Errorf("bundle ranges %q and %q overlap or touch: the next range should start at %.1f or higher",
				cur.ID, next.ID, *cur.Max+MinRangeGapMm)
		}
	}
	return nil
}

// NormalizeCategorySettings validates an untrusted category payload and
// applies it on top of the category defaults. It returns (nil, nil) when
// every field is absent, signalling "no override".
func NormalizeCategorySettings(cat Category, raw *RawCategorySettings) (*CategorySettings, error) {
	if raw.empty() {
		return nil, nil
	}

	s := DefaultCategorySettings(cat)
	traits := cat.Traits()

	if raw.MaxRows != nil {
		if !isInteger(*raw.MaxRows) || *raw.MaxRows < MinGridDimension || *raw.MaxRows > MaxGridDimension {
			return nil, fmt.Errorf("category %s: maxRows must be an integer between %d and %d", cat, MinGridDimension, MaxGridDimension)
		}
		s.MaxRows = int(*raw.MaxRows)
	}
	if raw.MaxColumns != nil {
		if !isInteger(*raw.MaxColumns) || *raw.MaxColumns < MinGridDimension || *raw.MaxColumns > MaxGridDimension {
			return nil, fmt.Errorf("category %s: maxColumns must be an integer between %d and %d", cat, MinGridDimension, MaxGridDimension)
		}
		s.MaxColumns = int(*raw.MaxColumns)
	}
	if raw.BundleSpacing != nil {
		sp, ok := ParseSpacing(*raw.BundleSpacing)
		if !ok {
			return nil, fmt.Errorf("category %s: bundleSpacing must be one of 0, 1D, 2D", cat)
		}
		s.BundleSpacing = sp
	}
	if raw.Trefoil != nil {
		if *raw.Trefoil && !traits.AllowTrefoil {
			return nil, fmt.Errorf("category %s: trefoil bundling is not available", cat)
		}
		s.Trefoil = *raw.Trefoil
	}
	if raw.TrefoilSpacingBetweenBundles != nil {
		s.TrefoilSpacingBetweenBundles = *raw.TrefoilSpacingBetweenBundles
	}
	if raw.ApplyPhaseRotation != nil {
		if *raw.ApplyPhaseRotation && !traits.AllowPhaseRotation {
			return nil, fmt.Errorf("category %s: phase rotation is not available", cat)
		}
		s.ApplyPhaseRotation = *raw.ApplyPhaseRotation
	}

	// Flags that only qualify trefoil mean nothing without it.
	if !s.Trefoil {
		s.TrefoilSpacingBetweenBundles = false
	}
	return &s, nil
}

// NormalizeCableLayout validates and normalizes an untrusted layout
// payload: cableSpacing is rounded to 3 decimals, percentages to integers
// clamped into [1,100], category settings and bundle ranges are checked.
// It returns (nil, nil) when nothing recognized was present. Applying it
// to its own output changes nothing.
func NormalizeCableLayout(raw *RawCableLayout) (*RawCableLayout, error) {
	if raw == nil {
		return nil, nil
	}

	out := &RawCableLayout{}
	present := false

	if raw.CableSpacing != nil {
		v := round3(*raw.CableSpacing)
		if v < 0 {
			v = 0
		}
		out.CableSpacing = &v
		present = true
	}
	if raw.ConsiderBundleSpacingAsFree != nil {
		v := *raw.ConsiderBundleSpacingAsFree
		out.ConsiderBundleSpacingAsFree = &v
		present = true
	}
	if raw.MinFreeSpacePercent != nil {
		v := clampPercent(*raw.MinFreeSpacePercent)
		out.MinFreeSpacePercent = &v
		present = true
	}
	if raw.MaxFreeSpacePercent != nil {
		v := clampPercent(*raw.MaxFreeSpacePercent)
		out.MaxFreeSpacePercent = &v
		present = true
	}
	if out.MinFreeSpacePercent != nil && out.MaxFreeSpacePercent != nil &&
		*out.MinFreeSpacePercent > *out.MaxFreeSpacePercent {
		return nil, fmt.Errorf("minFreeSpacePercent (%v) must not exceed maxFreeSpacePercent (%v)",
			*out.MinFreeSpacePercent, *out.MaxFreeSpacePercent)
	}

	for name, rawCat := range raw.Categories {
		cat, ok := ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown cable category %q", name)
		}
		settings, err := NormalizeCategorySettings(cat, rawCat)
		if err != nil {
			return nil, err
		}
		if settings == nil {
			continue
		}
		if out.Categories == nil {
			out.Categories = make(map[string]*RawCategorySettings)
		}
		out.Categories[string(cat)] = rawCategorySettings(*settings)
		present = true
	}

	for name, ranges := range raw.Ranges {
		cat, ok := ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown cable category %q", name)
		}
		if len(ranges) == 0 {
			continue
		}
		if err := ValidateBundleRanges(ranges); err != nil {
			return nil, err
		}
		normalized := make([]RawBundleRange, len(ranges))
		copy(normalized, ranges)
		sort.SliceStable(normalized, func(i, j int) bool { return *normalized[i].Min < *normalized[j].Min })
		for i := range normalized {
			minV := round3(*normalized[i].Min)
			maxV := round3(*normalized[i].Max)
			normalized[i].Min = &minV
			normalized[i].Max = &maxV
		}
		if out.Ranges == nil {
			out.Ranges = make(map[string][]RawBundleRange)
		}
		out.Ranges[string(cat)] = normalized
		present = true
	}

	if !present {
		return nil, nil
	}
	return out, nil
}

func clampPercent(v float64) float64 {
	p := math.Round(v)
	if p < 1 {
		p = 1
	}
	if p > 100 {
		p = 100
	}
	return p
}

// rawCategorySettings converts a trusted settings value back into the raw
// shape, with every field explicit. Re-normalizing the result is a no-op.
func rawCategorySettings(s CategorySettings) *RawCategorySettings {
	rows := float64(s.MaxRows)
	cols := float64(s.MaxColumns)
	spacing := string(s.BundleSpacing)
	trefoil := s.Trefoil
	trefoilSpacing := s.TrefoilSpacingBetweenBundles
	rotation := s.ApplyPhaseRotation
	return &RawCategorySettings{
		MaxRows:                      &rows,
		MaxColumns:                   &cols,
		BundleSpacing:                &spacing,
		Trefoil:                      &trefoil,
		TrefoilSpacingBetweenBundles: &trefoilSpacing,
		ApplyPhaseRotation:           &rotation,
	}
}

// BuildCableLayout converts an untrusted payload into the trusted layout
// consumed by the calculators, filling every category from the defaults.
// A nil or empty payload yields the default layout.
func BuildCableLayout(raw *RawCableLayout) (*CableLayout, error) {
	normalized, err := NormalizeCableLayout(raw)
	if err != nil {
		return nil, err
	}

	out := DefaultCableLayout()
	if normalized == nil {
		return out, nil
	}

	if normalized.CableSpacing != nil {
		out.CableSpacingMm = *normalized.CableSpacing
	}
	if normalized.ConsiderBundleSpacingAsFree != nil {
		out.ConsiderBundleSpacingAsFree = *normalized.ConsiderBundleSpacingAsFree
	}
	if normalized.MinFreeSpacePercent != nil {
		out.MinFreeSpacePercent = int(*normalized.MinFreeSpacePercent)
	}
	if normalized.MaxFreeSpacePercent != nil {
		out.MaxFreeSpacePercent = int(*normalized.MaxFreeSpacePercent)
	}

	for name, rawCat := range normalized.Categories {
		cat, _ := ParseCategory(name)
		settings, err := NormalizeCategorySettings(cat, rawCat)
		if err != nil {
			return nil, err
		}
		if settings != nil {
			out.Categories[cat] = *settings
		}
	}

	for name, ranges := range normalized.Ranges {
		cat, _ := ParseCategory(name)
		trusted := make([]BundleRange, 0, len(ranges))
		for _, r := range ranges {
			br := BundleRange{ID: r.ID, MinMm: *r.Min, MaxMm: *r.Max}
			if r.MaxRows != nil {
				br.MaxRows = int(*r.MaxRows)
			}
			trusted = append(trusted, br)
		}
		out.Ranges[cat] = trusted
	}
	return out, nil
}
