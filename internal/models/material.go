package models

// MaterialTray is a tray catalogue entry, keyed by Type (case-insensitive).
type MaterialTray struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	WidthMm          float64 `json:"widthMm"`
	HeightMm         float64 `json:"heightMm"`
	WeightPerMeterKg float64 `json:"weightPerMeterKg"`
}

// MaterialSupport is a support catalogue entry, keyed by Type
// (case-insensitive). WeightKg is the weight of a single support piece.
type MaterialSupport struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	WidthMm  float64 `json:"widthMm"`
	HeightMm float64 `json:"heightMm"`
	WeightKg float64 `json:"weightKg"`
}
