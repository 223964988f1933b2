package keys

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

var (
	ErrUnknownKey = errors.New("unknown key name")
	// ErrShiftedRune rejects names like "shift+w". Terminals report the
	// shifted character instead, and matching ignores case.
	ErrShiftedRune = fmt.Errorf("shift cannot be combined with a character key: %w", ErrUnknownKey)
)

var keyCodeByName = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"esc":       tcell.KeyEscape,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var keyNameByCode = func() map[tcell.Key]string {
	m := make(map[tcell.Key]string, len(keyCodeByName))
	for name, code := range keyCodeByName {
		m[code] = name
	}
	return m
}()

var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
}

var modifierByName = map[string]tcell.ModMask{
	"ctrl":  tcell.ModCtrl,
	"alt":   tcell.ModAlt,
	"meta":  tcell.ModMeta,
	"shift": tcell.ModShift,
}

// ParseBinding parses names such as "w", "up", "space", "ctrl+r" and
// "shift+left". Matching is case-insensitive.
func ParseBinding(s string) (Binding, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return None, fmt.Errorf("%w: empty", ErrUnknownKey)
	}

	parts := strings.Split(name, "+")
	var mods tcell.ModMask
	for _, m := range parts[:len(parts)-1] {
		mod, ok := modifierByName[m]
		if !ok {
			return None, fmt.Errorf("%w: modifier %q in %q", ErrUnknownKey, m, s)
		}
		mods |= mod
	}
	base := parts[len(parts)-1]

	if r, ok := runeAliases[base]; ok {
		if mods&tcell.ModShift != 0 {
			return None, fmt.Errorf("%w: %q", ErrShiftedRune, s)
		}
		return RuneBinding(r, mods), nil
	}
	if code, ok := keyCodeByName[base]; ok {
		return KeyBinding(code, mods), nil
	}
	if utf8.RuneCountInString(base) == 1 {
		r, _ := utf8.DecodeRuneInString(base)
		// Terminals deliver ctrl+letter as a dedicated key code.
		if mods&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			return KeyBinding(tcell.KeyCtrlA+tcell.Key(r-'a'), mods), nil
		}
		if mods&tcell.ModShift != 0 {
			return None, fmt.Errorf("%w: %q", ErrShiftedRune, s)
		}
		return RuneBinding(r, mods), nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}
