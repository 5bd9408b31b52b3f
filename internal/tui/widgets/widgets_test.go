// ABOUTME: Tests for badge and completion bar widgets
// ABOUTME: Checks thresholds, clamping and rendered widths

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestProgressBarLevel(t *testing.T) {
	cfg := DefaultProgressBarConfig()
	tests := []struct {
		percent float64
		want    StatusLevel
	}{
		{0, StatusCritical},
		{39, StatusCritical},
		{40, StatusWarning},
		{79, StatusWarning},
		{80, StatusOK},
		{100, StatusOK},
	}
	for _, tc := range tests {
		if got := cfg.Level(tc.percent); got != tc.want {
			t.Errorf("Level(%v) = %d, want %d", tc.percent, got, tc.want)
		}
	}
}

func TestProgressBarWidth(t *testing.T) {
	cfg := DefaultProgressBarConfig()
	cfg.Width = 10

	for _, percent := range []float64{-5, 0, 50, 100, 150} {
		bar := ProgressBar(percent, cfg)
		if w := lipgloss.Width(bar); w != 12 {
			t.Errorf("ProgressBar(%v) width = %d, want 12", percent, w)
		}
	}
}

func TestProgressBarWithLabel(t *testing.T) {
	got := ProgressBarWithLabel(250, DefaultProgressBarConfig())
	if !strings.Contains(got, "100%") {
		t.Errorf("expected clamped label, got %q", got)
	}
}

func TestStatusText(t *testing.T) {
	got := StatusText("Saved", StatusOK)
	if !strings.Contains(got, "Saved") {
		t.Errorf("expected text in %q", got)
	}
	if Badge("Pending", StatusWarning) == "" {
		t.Error("expected badge output")
	}
}
