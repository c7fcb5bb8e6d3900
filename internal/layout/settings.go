package layout

// Caps on row/column counts; anything outside is a configuration error.
const (
	MinGridDimension = 1
	MaxGridDimension = 1000
)

// MinRangeGapMm is the smallest allowed gap between consecutive custom
// bundle ranges of one category.
const MinRangeGapMm = 0.1

// CategorySettings is the trusted per-category layout configuration.
// Values are validated before construction; calculators never re-check.
type CategorySettings struct {
	MaxRows                      int     `json:"maxRows"`
	MaxColumns                   int     `json:"maxColumns"`
	BundleSpacing                Spacing `json:"bundleSpacing"`
	Trefoil                      bool    `json:"trefoil"`
	TrefoilSpacingBetweenBundles bool    `json:"trefoilSpacingBetweenBundles"`
	ApplyPhaseRotation           bool    `json:"applyPhaseRotation"`
}

// BundleRange is a trusted custom diameter range. Ranges of one category
// are sorted, pairwise disjoint and separated by at least MinRangeGapMm.
// MaxRows, when non-zero, overrides the category MaxRows for bundles of
// this range.
type BundleRange struct {
	ID      string  `json:"id"`
	MinMm   float64 `json:"minMm"`
	MaxMm   float64 `json:"maxMm"`
	MaxRows int     `json:"maxRows,omitempty"`
}

// CableLayout is the trusted project-wide layout configuration consumed by
// the bundling and free-space calculators. Every category has an entry.
type CableLayout struct {
	CableSpacingMm              float64 `json:"cableSpacingMm"`
	ConsiderBundleSpacingAsFree bool    `json:"considerBundleSpacingAsFree"`

	// Free-space clamp bounds, 1..100. Zero means not configured; the
	// clamp only applies when both are set.
	MinFreeSpacePercent int `json:"minFreeSpacePercent,omitempty"`
	MaxFreeSpacePercent int `json:"maxFreeSpacePercent,omitempty"`

	Categories map[Category]CategorySettings `json:"categories"`
	Ranges     map[Category][]BundleRange    `json:"ranges,omitempty"`
}

// DefaultCategorySettings returns the built-in settings used when a
// project has no override for the category.
func DefaultCategorySettings(cat Category) CategorySettings {
	switch cat {
	case CategoryMV:
		return CategorySettings{
			MaxRows:                      1,
			MaxColumns:                   50,
			BundleSpacing:                SpacingTwoDiameters,
			Trefoil:                      true,
			TrefoilSpacingBetweenBundles: true,
		}
	case CategoryPower:
		return CategorySettings{
			MaxRows:       2,
			MaxColumns:    50,
			BundleSpacing: SpacingOneDiameter,
		}
	case CategoryVFD:
		return CategorySettings{
			MaxRows:       2,
			MaxColumns:    50,
			BundleSpacing: SpacingOneDiameter,
		}
	default:
		return CategorySettings{
			MaxRows:       5,
			MaxColumns:    50,
			BundleSpacing: SpacingNone,
		}
	}
}

// DefaultCableLayout returns a trusted layout with built-in settings for
// all categories and no custom ranges.
func DefaultCableLayout() *CableLayout {
	cats := make(map[Category]CategorySettings, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		cats[cat] = DefaultCategorySettings(cat)
	}
	return &CableLayout{
		Categories: cats,
		Ranges:     make(map[Category][]BundleRange),
	}
}

// SettingsFor returns the settings for a category, falling back to the
// built-in defaults if the map entry is missing.
func (l *CableLayout) SettingsFor(cat Category) CategorySettings {
	if l != nil {
		if s, ok := l.Categories[cat]; ok {
			return s
		}
	}
	return DefaultCategorySettings(cat)
}

// RangesFor returns the custom diameter ranges for a category.
func (l *CableLayout) RangesFor(cat Category) []BundleRange {
	if l == nil {
		return nil
	}
	return l.Ranges[cat]
}
