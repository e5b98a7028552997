package services

import (
	"testing"

	"swms-backend/internal/models"
)

func TestStatusForFillLevel(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{0, models.BinStatusNormal},
		{79, models.BinStatusNormal},
		{80, models.BinStatusFull},
		{94, models.BinStatusFull},
		{95, models.BinStatusOverflow},
		{100, models.BinStatusOverflow},
	}
	for _, c := range cases {
		if got := StatusForFillLevel(c.level); got != c.want {
			t.Fatalf("StatusForFillLevel(%d) = %q, want %q", c.level, got, c.want)
		}
	}
}

func TestParseAlertMode(t *testing.T) {
	if got := ParseAlertMode("edge"); got != AlertModeEdge {
		t.Fatalf("ParseAlertMode(edge) = %q", got)
	}
	if got := ParseAlertMode("level"); got != AlertModeLevel {
		t.Fatalf("ParseAlertMode(level) = %q", got)
	}
	// Anything unrecognized falls back to the historical level-triggered mode.
	if got := ParseAlertMode(""); got != AlertModeLevel {
		t.Fatalf("ParseAlertMode(\"\") = %q, want level", got)
	}
}

func TestShouldAlert_LevelTriggered(t *testing.T) {
	// Below threshold never alerts.
	if ShouldAlert(AlertModeLevel, models.BinStatusNormal, 79) {
		t.Fatalf("level 79 must not alert")
	}
	// At or above threshold alerts on every report, regardless of the
	// previous status.
	if !ShouldAlert(AlertModeLevel, models.BinStatusNormal, 80) {
		t.Fatalf("level 80 from normal must alert")
	}
	if !ShouldAlert(AlertModeLevel, models.BinStatusFull, 85) {
		t.Fatalf("repeated report at 85 must re-alert in level mode")
	}
	if !ShouldAlert(AlertModeLevel, models.BinStatusOverflow, 96) {
		t.Fatalf("repeated report at 96 must re-alert in level mode")
	}
}

func TestShouldAlert_EdgeTriggered(t *testing.T) {
	if !ShouldAlert(AlertModeEdge, models.BinStatusNormal, 85) {
		t.Fatalf("upward crossing must alert in edge mode")
	}
	if ShouldAlert(AlertModeEdge, models.BinStatusFull, 85) {
		t.Fatalf("repeated report while full must not re-alert in edge mode")
	}
	if ShouldAlert(AlertModeEdge, models.BinStatusOverflow, 96) {
		t.Fatalf("repeated report while overflowing must not re-alert in edge mode")
	}
	if ShouldAlert(AlertModeEdge, models.BinStatusNormal, 50) {
		t.Fatalf("below-threshold report must never alert")
	}
}
