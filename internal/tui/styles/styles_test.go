// ABOUTME: Tests for theme palette selection
// ABOUTME: Checks explicit themes win and system follows the terminal

package styles

import (
	"testing"

	"github.com/careervista/careervista-cli/internal/session"
)

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		theme session.Theme
		dark  bool
		want  string
	}{
		{session.ThemeLight, true, "light"},
		{session.ThemeDark, false, "dark"},
		{session.ThemeSystem, true, "dark"},
		{session.ThemeSystem, false, "light"},
		{session.Theme("sepia"), true, "dark"},
	}

	for _, tc := range tests {
		t.Run(string(tc.theme), func(t *testing.T) {
			if got := PaletteFor(tc.theme, tc.dark).Name; got != tc.want {
				t.Errorf("PaletteFor(%q, %v) = %q, want %q", tc.theme, tc.dark, got, tc.want)
			}
		})
	}
}

func TestNewUsesPaletteColors(t *testing.T) {
	s := New(Light)
	if s.Title.GetForeground() != Light.Primary {
		t.Errorf("expected title in primary color, got %v", s.Title.GetForeground())
	}
	if s.Huh() == nil {
		t.Error("expected a huh theme")
	}
}
