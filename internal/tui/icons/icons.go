// ABOUTME: Icon set with Nerd Font detection and Unicode fallback
// ABOUTME: Lets screens use richer glyphs where the terminal supports them

package icons

import (
	"os"
	"strings"
	"sync"
)

// EnvNerdFonts forces Nerd Font glyphs on ("1"/"true") or off.
const EnvNerdFonts = "CAREERVISTA_NERD_FONTS"

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

func detectNerdFonts() bool {
	if env := os.Getenv(EnvNerdFonts); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	App = Icon{"󰃀", "◈"} // nf-md-bookmark_box

	// Screens
	User      = Icon{"󰀄", "◉"} // nf-md-account
	Lock      = Icon{"󰌾", "▣"} // nf-md-lock
	Key       = Icon{"󰌆", "⚿"} // nf-md-key
	Mail      = Icon{"󰇮", "✉"} // nf-md-email
	Briefcase = Icon{"󰃖", "▤"} // nf-md-briefcase
	Resume    = Icon{"󰈦", "▧"} // nf-md-file_pdf_box

	// Status
	CheckOK  = Icon{"", "✓"}
	Critical = Icon{"", "✗"}
	Info     = Icon{"", "ℹ"}
	Pending  = Icon{"󰔟", "◷"} // nf-md-timer_sand

	// Actions
	Theme    = Icon{"󰏘", "◐"} // nf-md-palette
	Logout   = Icon{"󰍃", "⏏"} // nf-md-logout
	Edit     = Icon{"󰏫", "✎"} // nf-md-pencil
	Eye      = Icon{"󰈈", "◎"} // nf-md-eye
	EyeOff   = Icon{"󰈉", "◌"} // nf-md-eye_off
	Back     = Icon{"󰁍", "←"}
	Quit     = Icon{"󰗼", "×"}
	Expand   = Icon{"󰅀", "▾"} // nf-md-chevron_down
	Collapse = Icon{"󰅂", "▸"} // nf-md-chevron_right
)
