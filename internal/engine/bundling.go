package engine

import (
	"fmt"
	"math"

	"github.com/MrToKa/WFC-sub003/internal/layout"
	"github.com/MrToKa/WFC-sub003/internal/models"
)

// trefoilHeightFactor approximates a triangular three-cable stack:
// two cables side by side with one nested on top, d * (1 + sqrt(3)/2).
var trefoilHeightFactor = 1 + math.Sqrt(3)/2

// defaultDiameterBands buckets cables that match no custom range. The
// bounds keep the same 0.1 mm separation convention as custom ranges.
var defaultDiameterBands = []struct{ MinMm, MaxMm float64 }{
	{0.1, 10},
	{10.1, 20},
	{20.1, 40},
	{40.1, 1000},
}

// Bundle is a group of same-class cables placed and spaced as one unit.
type Bundle struct {
	Category      layout.Category `json:"category"`
	ClassID       string          `json:"classId"`
	CableIDs      []string        `json:"cableIds"`
	Trefoil       bool            `json:"trefoil"`
	WidthMm       float64         `json:"widthMm"`
	HeightMm      float64         `json:"heightMm"`
	MaxDiameterMm float64         `json:"maxDiameterMm"`
}

// CategoryBlock is one category's bundles packed into its row/column grid.
type CategoryBlock struct {
	Category       layout.Category `json:"category"`
	Bundles        []Bundle        `json:"bundles"`
	WidthMm        float64         `json:"widthMm"`
	HeightMm       float64         `json:"heightMm"`
	BundleAreaMm2  float64         `json:"bundleAreaMm2"`
	SpacingAreaMm2 float64         `json:"spacingAreaMm2"`
}

// BundleLayout is the packed cross-section footprint of one tray's
// cables. Category blocks stack vertically in CategoryOrder. Spacing
// contributions are tracked apart from bundle area so the free-space
// calculator can attribute them to either side.
type BundleLayout struct {
	Blocks         []CategoryBlock `json:"blocks"`
	WidthMm        float64         `json:"widthMm"`
	HeightMm       float64         `json:"heightMm"`
	BundleAreaMm2  float64         `json:"bundleAreaMm2"`
	SpacingAreaMm2 float64         `json:"spacingAreaMm2"`

	// Width-only occupancy figures for ladder trays, with every bundle
	// laid out in a single line.
	FlatWidthMm        float64 `json:"flatWidthMm"`
	FlatSpacingWidthMm float64 `json:"flatSpacingWidthMm"`
}

// BuildBundles partitions a tray's cables into bundles per category and
// packs them into the configured grids. Cables whose purpose matches no
// category are excluded. An empty cable list yields a zero footprint.
func BuildBundles(cables []models.Cable, cfg *layout.CableLayout) *BundleLayout {
	if cfg == nil {
		cfg = layout.DefaultCableLayout()
	}

	byCategory := make(map[layout.Category][]models.Cable)
	for _, c := range cables {
		cat, ok := layout.ParseCategory(c.Purpose)
		if !ok {
			continue
		}
		byCategory[cat] = append(byCategory[cat], c)
	}

	out := &BundleLayout{}
	var prevBlockWidth float64
	var flatPrev *Bundle
	var flatPrevSettings layout.CategorySettings

	for _, cat := range layout.CategoryOrder {
		members := byCategory[cat]
		if len(members) == 0 {
			continue
		}
		settings := cfg.SettingsFor(cat)
		bundles := buildCategoryBundles(cat, members, settings, cfg.RangesFor(cat))
		block := packCategoryBlock(cat, bundles, settings, cfg)

		if len(out.Blocks) > 0 {
			// Vertical gap between category blocks.
			gapWidth := math.Max(prevBlockWidth, block.WidthMm)
			out.SpacingAreaMm2 += cfg.CableSpacingMm * gapWidth
			out.HeightMm += cfg.CableSpacingMm
		}
		out.Blocks = append(out.Blocks, block)
		out.WidthMm = math.Max(out.WidthMm, block.WidthMm)
		out.HeightMm += block.HeightMm
		out.BundleAreaMm2 += block.BundleAreaMm2
		out.SpacingAreaMm2 += block.SpacingAreaMm2
		prevBlockWidth = block.WidthMm

		// Single-line occupancy for ladder trays.
		for i := range block.Bundles {
			b := &block.Bundles[i]
			if flatPrev != nil {
				gap := cfg.CableSpacingMm
				if flatPrev.Category == b.Category {
					gap = bundleGap(*flatPrev, *b, flatPrevSettings, cfg)
				}
				out.FlatSpacingWidthMm += gap
			}
			out.FlatWidthMm += b.WidthMm
			flatPrev = b
			flatPrevSettings = settings
		}
	}
	return out
}

// classifyCable resolves a cable's diameter class within its category:
// the first matching custom range, then a built-in band, then a singleton
// class of its own. The second return value is a maxRows override carried
// by a custom range, 0 when none applies.
func classifyCable(c models.Cable, ranges []layout.BundleRange) (string, int) {
	d := c.DiameterMm
	for _, r := range ranges {
		if d >= r.MinMm && d <= r.MaxMm {
			return "range:" + r.ID, r.MaxRows
		}
	}
	for i, band := range defaultDiameterBands {
		if d >= band.MinMm && d <= band.MaxMm {
			return fmt.Sprintf("band:%d", i), 0
		}
	}
	return "cable:" + c.ID, 0
}

// buildCategoryBundles groups one category's cables by diameter class and
// splits each class into bundles: groups of exactly three under trefoil
// (the 1-2 leftover cables form a plain bundle), otherwise one bundle per
// class spilling when the cable count exceeds the grid capacity.
func buildCategoryBundles(cat layout.Category, cables []models.Cable, settings layout.CategorySettings, ranges []layout.BundleRange) []Bundle {
	type class struct {
		id      string
		maxRows int
		members []models.Cable
	}
	var order []string
	classes := make(map[string]*class)
	for _, c := range cables {
		id, maxRows := classifyCable(c, ranges)
		cl, ok := classes[id]
		if !ok {
			cl = &class{id: id, maxRows: maxRows}
			classes[id] = cl
			order = append(order, id)
		}
		cl.members = append(cl.members, c)
	}

	var bundles []Bundle
	for _, id := range order {
		cl := classes[id]
		if settings.Trefoil {
			for start := 0; start < len(cl.members); start += 3 {
				end := start + 3
				if end > len(cl.members) {
					end = len(cl.members)
				}
				group := cl.members[start:end]
				bundles = append(bundles, newBundle(cat, cl.id, group, len(group) == 3, settings.BundleSpacing))
			}
			continue
		}

		capacity := settings.MaxRows * settings.MaxColumns
		if cl.maxRows > 0 {
			capacity = cl.maxRows * settings.MaxColumns
		}
		for start := 0; start < len(cl.members); start += capacity {
			end := start + capacity
			if end > len(cl.members) {
				end = len(cl.members)
			}
			bundles = append(bundles, newBundle(cat, cl.id, cl.members[start:end], false, settings.BundleSpacing))
		}
	}
	return bundles
}

// newBundle computes a bundle's footprint: width is the sum of member
// diameters plus the configured inter-member gaps (none inside a trefoil,
// where the cables touch); height is the largest member diameter, or the
// triangular stack height for a trefoil.
func newBundle(cat layout.Category, classID string, members []models.Cable, trefoil bool, spacing layout.Spacing) Bundle {
	b := Bundle{Category: cat, ClassID: classID, Trefoil: trefoil}
	var sum float64
	for _, m := range members {
		b.CableIDs = append(b.CableIDs, m.ID)
		if m.DiameterMm > 0 {
			sum += m.DiameterMm
			b.MaxDiameterMm = math.Max(b.MaxDiameterMm, m.DiameterMm)
		}
	}
	if trefoil {
		b.WidthMm = sum
		b.HeightMm = b.MaxDiameterMm * trefoilHeightFactor
		return b
	}
	b.WidthMm = sum + spacing.Factor()*b.MaxDiameterMm*float64(len(members)-1)
	b.HeightMm = b.MaxDiameterMm
	return b
}

// bundleGap is the horizontal gap between two adjacent bundles: the
// global cable spacing, widened by the category spacing factor between
// trefoil bundles when trefoilSpacingBetweenBundles is set.
func bundleGap(a, b Bundle, settings layout.CategorySettings, cfg *layout.CableLayout) float64 {
	gap := cfg.CableSpacingMm
	if a.Trefoil && b.Trefoil && settings.TrefoilSpacingBetweenBundles {
		gap += settings.BundleSpacing.Factor() * math.Max(a.MaxDiameterMm, b.MaxDiameterMm)
	}
	return gap
}

// packCategoryBlock packs bundles left-to-right, top-to-bottom, at most
// maxColumns bundles per row. Overflow past maxRows still gets a row: the
// tray simply reads fuller, cables are never dropped.
func packCategoryBlock(cat layout.Category, bundles []Bundle, settings layout.CategorySettings, cfg *layout.CableLayout) CategoryBlock {
	block := CategoryBlock{Category: cat, Bundles: bundles}

	rows := 0
	for start := 0; start < len(bundles); start += settings.MaxColumns {
		end := start + settings.MaxColumns
		if end > len(bundles) {
			end = len(bundles)
		}
		row := bundles[start:end]

		var rowWidth, rowHeight, rowGaps float64
		for i, b := range row {
			if i > 0 {
				rowGaps += bundleGap(row[i-1], b, settings, cfg)
			}
			rowWidth += b.WidthMm
			rowHeight = math.Max(rowHeight, b.HeightMm)
		}
		rowWidth += rowGaps

		if rows > 0 {
			// Vertical gap between rows of this category.
			block.SpacingAreaMm2 += cfg.CableSpacingMm * math.Max(block.WidthMm, rowWidth)
			block.HeightMm += cfg.CableSpacingMm
		}
		block.SpacingAreaMm2 += rowGaps * rowHeight
		block.WidthMm = math.Max(block.WidthMm, rowWidth)
		block.HeightMm += rowHeight
		rows++
	}

	for _, b := range bundles {
		block.BundleAreaMm2 += b.WidthMm * b.HeightMm
	}
	return block
}
