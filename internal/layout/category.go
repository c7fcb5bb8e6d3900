package layout

import "strings"

// Category classifies cable purpose for layout rules.
type Category string

const (
	CategoryMV      Category = "mv"
	CategoryPower   Category = "power"
	CategoryVFD     Category = "vfd"
	CategoryControl Category = "control"
)

// CategoryOrder is the vertical stacking order inside a tray cross-section.
var CategoryOrder = []Category{CategoryMV, CategoryPower, CategoryVFD, CategoryControl}

// categoryTraits lists what each category is allowed to configure.
// Trefoil bundling only makes sense for three-phase power wiring; phase
// rotation only for medium voltage.
type categoryTraits struct {
	AllowTrefoil       bool
	AllowPhaseRotation bool
}

var traitsByCategory = map[Category]categoryTraits{
	CategoryMV:      {AllowTrefoil: true, AllowPhaseRotation: true},
	CategoryPower:   {AllowTrefoil: true},
	CategoryVFD:     {AllowTrefoil: true},
	CategoryControl: {},
}

// Traits returns the capability flags for a category.
func (c Category) Traits() categoryTraits {
	return traitsByCategory[c]
}

// ParseCategory matches a cable purpose tag against the known categories,
// case-insensitively. Unmatched purposes (e.g. "grounding") return false.
func ParseCategory(purpose string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case string(CategoryMV):
		return CategoryMV, true
	case string(CategoryPower):
		return CategoryPower, true
	case string(CategoryVFD):
		return CategoryVFD, true
	case string(CategoryControl):
		return CategoryControl, true
	}
	return "", false
}

// Spacing is the gap left between cables inside a bundle, expressed in
// multiples of the largest member diameter.
type Spacing string

const (
	SpacingNone         Spacing = "0"
	SpacingOneDiameter  Spacing = "1D"
	SpacingTwoDiameters Spacing = "2D"
)

// Factor converts a spacing setting to a diameter multiplier.
func (s Spacing) Factor() float64 {
	switch s {
	case SpacingOneDiameter:
		return 1
	case SpacingTwoDiameters:
		return 2
	}
	return 0
}

// ParseSpacing accepts "0", "1D" and "2D" (case-insensitive).
func ParseSpacing(v string) (Spacing, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "0", "":
		return SpacingNone, v != ""
	case "1D":
		return SpacingOneDiameter, true
	case "2D":
		return SpacingTwoDiameters, true
	}
	return SpacingNone, false
}
