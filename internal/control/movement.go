package control

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Versifine/cellstage/internal/keys"
	"github.com/Versifine/cellstage/internal/vmath"
)

type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	directionCount
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Unit vectors in gameplay space, where -Z is forward.
var directionVectors = [directionCount]vmath.Vec3{
	Forward:  {X: 0, Y: 0, Z: -1},
	Backward: {X: 0, Y: 0, Z: 1},
	Left:     {X: -1, Y: 0, Z: 0},
	Right:    {X: 1, Y: 0, Z: 0},
}

func (d Direction) Vector() vmath.Vec3 {
	if d < 0 || d >= directionCount {
		return vmath.Vec3{}
	}
	return directionVectors[d]
}

type movementKey struct {
	binding   keys.Binding
	direction Direction
}

// MovementState tracks which movement keys are held and the running sum of
// their direction vectors. The sum is only changed by paired add/subtract
// transitions, so opposite keys held together cancel out.
type MovementState struct {
	table  []movementKey
	active [directionCount]bool
	vector vmath.Vec3
}

// NewMovementState builds the dispatch table. Bindings are checked in the
// order forward, backward, left, right and the first match wins.
func NewMovementState(forward, backward, left, right keys.Binding) *MovementState {
	return &MovementState{
		table: []movementKey{
			{binding: forward, direction: Forward},
			{binding: backward, direction: Backward},
			{binding: left, direction: Left},
			{binding: right, direction: Right},
		},
	}
}

// Handle applies a key event and reports whether a movement binding matched.
// A match with no state change (key repeat, release of an unheld key) still
// reports true.
func (m *MovementState) Handle(key tcell.Key, r rune, mods tcell.ModMask, down bool) bool {
	d, ok := m.DirectionFor(key, r, mods)
	if !ok {
		return false
	}
	if down {
		m.press(d)
	} else {
		m.release(d)
	}
	return true
}

// DirectionFor returns the direction of the first binding matching the key.
func (m *MovementState) DirectionFor(key tcell.Key, r rune, mods tcell.ModMask) (Direction, bool) {
	for _, entry := range m.table {
		if entry.binding.Match(key, r, mods) {
			return entry.direction, true
		}
	}
	return 0, false
}

func (m *MovementState) press(d Direction) {
	if m.active[d] {
		return
	}
	m.active[d] = true
	m.vector = m.vector.Add(d.Vector())
}

func (m *MovementState) release(d Direction) {
	if !m.active[d] {
		return
	}
	m.active[d] = false
	m.vector = m.vector.Sub(d.Vector())
}

func (m *MovementState) Vector() vmath.Vec3 {
	return m.vector
}

func (m *MovementState) Active(d Direction) bool {
	if d < 0 || d >= directionCount {
		return false
	}
	return m.active[d]
}

// HeldKeys is a read-only view of the four movement flags.
type HeldKeys struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

func (m *MovementState) Held() HeldKeys {
	return HeldKeys{
		Forward:  m.active[Forward],
		Backward: m.active[Backward],
		Left:     m.active[Left],
		Right:    m.active[Right],
	}
}
