// ABOUTME: Tests for Nerd Font detection
// ABOUTME: The explicit override wins over terminal sniffing

package icons

import "testing"

func TestDetectNerdFontsOverride(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "iTerm.app")
	t.Setenv(EnvNerdFonts, "0")
	if detectNerdFonts() {
		t.Error("expected override to disable Nerd Fonts")
	}

	t.Setenv(EnvNerdFonts, "TRUE")
	t.Setenv("TERM_PROGRAM", "")
	if !detectNerdFonts() {
		t.Error("expected override to enable Nerd Fonts")
	}
}

func TestDetectNerdFontsFromTerminal(t *testing.T) {
	t.Setenv(EnvNerdFonts, "")
	t.Setenv("NERD_FONTS", "")
	t.Setenv("TERM", "xterm-kitty")
	t.Setenv("TERM_PROGRAM", "")
	if !detectNerdFonts() {
		t.Error("expected kitty to be detected")
	}

	t.Setenv("TERM", "xterm-256color")
	if detectNerdFonts() {
		t.Error("expected plain xterm to use fallbacks")
	}
}
