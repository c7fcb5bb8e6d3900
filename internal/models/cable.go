package models

// PurposeGrounding marks cables excluded from tray weight sums unless a
// caller opts a single one back in at export time.
const PurposeGrounding = "grounding"

// Cable represents one cable assigned to a project.
// Routing is a slash-delimited path of tray names, e.g. "TR-01/TR-02/MCC-1".
type Cable struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"projectId"`
	Tag        string  `json:"tag"`
	DiameterMm float64 `json:"diameterMm"`
	Routing    string  `json:"routing"`
	Purpose    string  `json:"purpose"` // Category tag: mv/power/vfd/control, or e.g. "grounding"

	// WeightPerMeterKg is nil when the cable type has no catalogue weight.
	WeightPerMeterKg *float64 `json:"weightPerMeterKg,omitempty"`
}
