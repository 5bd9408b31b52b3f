// ABOUTME: Theme preference stored alongside the session
// ABOUTME: Cycles light, dark and system; unknown values render as system

package session

import "github.com/samber/oops"

// Theme is a display preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var themeCycle = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	for _, c := range themeCycle {
		if t == c {
			return true
		}
	}
	return false
}

// Next returns the following theme in the cycle. Unknown themes restart
// the cycle at light.
func (t Theme) Next() Theme {
	for i, c := range themeCycle {
		if t == c {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return ThemeLight
}

// ParseTheme validates a user-supplied theme name.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", oops.Code("SESSION_BAD_THEME").With("theme", s).Errorf("unknown theme %q (want light, dark or system)", s)
	}
	return t, nil
}

// StoredTheme returns the raw stored value verbatim.
func (s *Session) StoredTheme() (string, bool) {
	return s.store.Get(KeyTheme)
}

// Theme returns the effective theme: the stored one when known, otherwise
// system.
func (s *Session) Theme() Theme {
	raw, ok := s.store.Get(KeyTheme)
	if !ok || !Theme(raw).Valid() {
		return ThemeSystem
	}
	return Theme(raw)
}

func (s *Session) SetTheme(t Theme) error {
	if err := s.store.Set(KeyTheme, string(t)); err != nil {
		return oops.Code("SESSION_WRITE").Wrapf(err, "storing theme")
	}
	return nil
}

// CycleTheme advances the stored theme and returns the new value.
func (s *Session) CycleTheme() (Theme, error) {
	raw, _ := s.store.Get(KeyTheme)
	next := Theme(raw).Next()
	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
