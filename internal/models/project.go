package models

import "strings"

// SupportOverride pins the support spacing and/or support type for one
// tray type. Either field may be nil; a nil field falls through to the
// project default.
type SupportOverride struct {
	TrayType  string   `json:"trayType"`
	DistanceM *float64 `json:"distanceM,omitempty"`
	SupportID *string  `json:"supportId,omitempty"`
}

// Project groups trays, cables and the defaults used when a tray type has
// no explicit support override.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`

	DefaultSupportDistanceM *float64 `json:"defaultSupportDistanceM,omitempty"`
	DefaultSupportWeightKg  *float64 `json:"defaultSupportWeightKg,omitempty"`

	SupportOverrides []SupportOverride `json:"supportOverrides,omitempty"`
}

// SupportOverrideFor returns the override for a tray type, or nil.
// Tray types are matched case-insensitively.
func (p *Project) SupportOverrideFor(trayType string) *SupportOverride {
	if p == nil {
		return nil
	}
	for i := range p.SupportOverrides {
		if strings.EqualFold(p.SupportOverrides[i].TrayType, trayType) {
			return &p.SupportOverrides[i]
		}
	}
	return nil
}
