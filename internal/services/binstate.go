package services

import "swms-backend/internal/models"

// Fill-level thresholds at which a bin's status escalates.
const (
	FillThresholdFull     = 80
	FillThresholdOverflow = 95
)

// StatusForFillLevel derives a bin's status category from its fill level.
// Status is a pure function of fill level and is re-derived on every write;
// it must never be set independently.
func StatusForFillLevel(level int) string {
	switch {
	case level >= FillThresholdOverflow:
		return models.BinStatusOverflow
	case level >= FillThresholdFull:
		return models.BinStatusFull
	default:
		return models.BinStatusNormal
	}
}

// AlertMode selects when a bin:alert event fires during sensor reports.
type AlertMode string

const (
	// AlertModeLevel re-emits the alert on every report while the fill
	// level stays at or above the full threshold.
	AlertModeLevel AlertMode = "level"
	// AlertModeEdge emits the alert only on the upward crossing from
	// normal into full/overflow.
	AlertModeEdge AlertMode = "edge"
)

// ParseAlertMode maps a config string to an AlertMode, defaulting to
// level-triggered (the historical behavior).
func ParseAlertMode(s string) AlertMode {
	if s == string(AlertModeEdge) {
		return AlertModeEdge
	}
	return AlertModeLevel
}

// ShouldAlert reports whether a sensor report with the given new fill level
// warrants a bin:alert event, given the bin's status before the update.
func ShouldAlert(mode AlertMode, prevStatus string, level int) bool {
	if level < FillThresholdFull {
		return false
	}
	if mode == AlertModeEdge {
		return prevStatus == models.BinStatusNormal
	}
	return true
}
