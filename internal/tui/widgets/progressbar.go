// ABOUTME: Completion bar that colors by how far along a value is
// ABOUTME: Low values read as warnings, so sparse profiles stand out

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width      int
	CritBelow  float64 // under this the bar is drawn in CritColor
	WarnBelow  float64 // under this (and not critical) WarnColor
	OKColor    lipgloss.Color
	WarnColor  lipgloss.Color
	CritColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:      20,
		CritBelow:  40,
		WarnBelow:  80,
		OKColor:    lipgloss.Color("#10B981"),
		WarnColor:  lipgloss.Color("#F59E0B"),
		CritColor:  lipgloss.Color("#EF4444"),
		EmptyColor: lipgloss.Color("#374151"),
	}
}

// Level classifies percent against the config thresholds.
func (c ProgressBarConfig) Level(percent float64) StatusLevel {
	switch {
	case percent < c.CritBelow:
		return StatusCritical
	case percent < c.WarnBelow:
		return StatusWarning
	default:
		return StatusOK
	}
}

func (c ProgressBarConfig) color(level StatusLevel) lipgloss.Color {
	switch level {
	case StatusCritical:
		return c.CritColor
	case StatusWarning:
		return c.WarnColor
	default:
		return c.OKColor
	}
}

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// ProgressBar renders "[████░░░░]" with the filled part colored by level
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	percent = clampPercent(percent)
	filled := int(percent / 100.0 * float64(config.Width))

	fill := lipgloss.NewStyle().Foreground(config.color(config.Level(percent)))
	empty := lipgloss.NewStyle().Foreground(config.EmptyColor)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(fill.Render(strings.Repeat("█", filled)))
	bar.WriteString(empty.Render(strings.Repeat("░", config.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by the percentage
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	percent = clampPercent(percent)
	style := lipgloss.NewStyle().Foreground(config.color(config.Level(percent)))
	return fmt.Sprintf("%s %s", ProgressBar(percent, config), style.Render(fmt.Sprintf("%3.0f%%", percent)))
}
