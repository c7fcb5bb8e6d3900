package models

// Tray represents a physical cable tray in a project.
// Dimensions are millimeters; weights are kilograms.
type Tray struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Type      string `json:"type"`    // Catalogue type key, matched case-insensitively
	Purpose   string `json:"purpose"` // e.g. "power", "control", "ladder"
	WidthMm   float64 `json:"widthMm"`
	HeightMm  float64 `json:"heightMm"`
	LengthMm  float64 `json:"lengthMm"`

	// WeightPerMeterKg overrides the material catalogue entry when set.
	WeightPerMeterKg *float64 `json:"weightPerMeterKg,omitempty"`
}
