package engine

import (
	"strings"

	"github.com/MrToKa/WFC-sub003/internal/models"
)

// CableOnTray reports whether a cable's routing passes over the named
// tray. The routing string is a slash-delimited path of tray names; a
// cable belongs to a tray when one segment equals the tray name exactly,
// case-insensitively. "A/Tray-1/B" matches "Tray-1" but not "Tray-10".
func CableOnTray(cable models.Cable, trayName string) bool {
	if trayName == "" {
		return false
	}
	for _, segment := range strings.Split(cable.Routing, "/") {
		if strings.EqualFold(strings.TrimSpace(segment), trayName) {
			return true
		}
	}
	return false
}

// CablesOnTray filters a project's cables down to those routed over the
// named tray, preserving input order.
func CablesOnTray(cables []models.Cable, trayName string) []models.Cable {
	var out []models.Cable
	for _, c := range cables {
		if CableOnTray(c, trayName) {
			out = append(out, c)
		}
	}
	return out
}
