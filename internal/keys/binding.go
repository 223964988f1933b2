package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Binding is a resolved (key, modifiers) pair. Printable keys are stored as
// tcell.KeyRune plus the lower-cased rune.
type Binding struct {
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask

	valid bool
}

// None never matches any key event. It is returned for unbound controls.
var None = Binding{}

func RuneBinding(r rune, mods tcell.ModMask) Binding {
	key, r, mods := normalize(tcell.KeyRune, r, mods)
	return Binding{Key: key, Rune: r, Mods: mods, valid: true}
}

func KeyBinding(key tcell.Key, mods tcell.ModMask) Binding {
	key, _, mods = normalize(key, 0, mods)
	return Binding{Key: key, Mods: mods, valid: true}
}

func (b Binding) Valid() bool {
	return b.valid
}

// Match reports whether a key event equals this binding.
func (b Binding) Match(key tcell.Key, r rune, mods tcell.ModMask) bool {
	if !b.valid {
		return false
	}
	key, r, mods = normalize(key, r, mods)
	return b.Key == key && b.Rune == r && b.Mods == mods
}

func (b Binding) MatchEvent(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	return b.Match(ev.Key(), ev.Rune(), ev.Modifiers())
}

func (b Binding) String() string {
	if !b.valid {
		return "<none>"
	}
	name, named := keyNameByCode[b.Key]
	mods := b.Mods
	if named && isCtrlCode(b.Key) {
		mods &^= tcell.ModCtrl
	}

	var parts []string
	if mods&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if mods&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if mods&tcell.ModMeta != 0 {
		parts = append(parts, "meta")
	}
	if mods&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}
	switch {
	case b.Key == tcell.KeyRune && b.Rune == ' ':
		parts = append(parts, "space")
	case b.Key == tcell.KeyRune:
		parts = append(parts, string(b.Rune))
	case named:
		parts = append(parts, name)
	case isCtrlCode(b.Key):
		parts = append(parts, string(rune('a'+b.Key-tcell.KeyCtrlA)))
	default:
		parts = append(parts, fmt.Sprintf("key%d", b.Key))
	}
	return strings.Join(parts, "+")
}

// normalize folds the different ways terminals report the same physical key
// into one form: rune case carries shift, and the Ctrl-letter key codes imply
// ModCtrl.
func normalize(key tcell.Key, r rune, mods tcell.ModMask) (tcell.Key, rune, tcell.ModMask) {
	switch {
	case key == tcell.KeyRune:
		return key, unicode.ToLower(r), mods &^ tcell.ModShift
	case isCtrlCode(key):
		return key, 0, mods | tcell.ModCtrl
	default:
		return key, 0, mods
	}
}

func isCtrlCode(key tcell.Key) bool {
	return key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ
}
