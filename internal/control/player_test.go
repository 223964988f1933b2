package control

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/event"
	"github.com/Versifine/cellstage/internal/keys"
	"github.com/Versifine/cellstage/internal/vmath"
)

type mockCreatureSource struct {
	entity ecs.Entity
	ok     bool
}

func (m *mockCreatureSource) ActiveCreature() (ecs.Entity, bool) {
	return m.entity, m.ok
}

func newTestControl(t *testing.T, overrides map[string][]string, opts ...Option) (*PlayerMicrobeControl, *[]event.EditorRequest) {
	t.Helper()
	cfg, err := keys.NewConfiguration(overrides)
	if err != nil {
		t.Fatalf("NewConfiguration() error = %v", err)
	}
	bus := event.NewBus()
	fired := &[]event.EditorRequest{}
	bus.Subscribe(event.EventPlayerReadyToEnterEditor, func(raw any) {
		*fired = append(*fired, raw.(event.EditorRequest))
	})
	return NewPlayerMicrobeControl(cfg, bus, opts...), fired
}

func runeDown(p *PlayerMicrobeControl, r rune) bool {
	return p.ReceiveInput(tcell.KeyRune, r, tcell.ModNone, true)
}

func runeUp(p *PlayerMicrobeControl, r rune) bool {
	return p.ReceiveInput(tcell.KeyRune, r, tcell.ModNone, false)
}

func TestReceiveInput_MovementConsumption(t *testing.T) {
	p, _ := newTestControl(t, nil)

	if !runeDown(p, 'w') {
		t.Fatal("movement key-down should be consumed")
	}
	if !runeDown(p, 'w') {
		t.Fatal("repeated movement key-down should still be consumed")
	}
	if got := p.Movement(); got != (vmath.Vec3{Z: -1}) {
		t.Fatalf("movement = %+v, want (0,0,-1)", got)
	}
	if runeUp(p, 'w') {
		t.Fatal("movement key-up should fall through")
	}
	if got := p.Movement(); got != (vmath.Vec3{}) {
		t.Fatalf("movement after release = %+v, want zero", got)
	}
}

func TestReceiveInput_SecondaryBindingIgnored(t *testing.T) {
	p, _ := newTestControl(t, nil)

	// Only the first binding of a control is resolved.
	if p.ReceiveInput(tcell.KeyUp, 0, tcell.ModNone, true) {
		t.Fatal("up arrow is the second MoveForward binding and should not be consumed")
	}
	if got := p.Movement(); got != (vmath.Vec3{}) {
		t.Fatalf("movement = %+v, want zero", got)
	}
}

func TestReceiveInput_UnmatchedKey(t *testing.T) {
	p, fired := newTestControl(t, nil)

	if runeDown(p, 'z') {
		t.Fatal("unbound key-down should not be consumed")
	}
	if runeUp(p, 'z') {
		t.Fatal("unbound key-up should not be consumed")
	}
	if len(*fired) != 0 {
		t.Fatalf("cheat fired %d times, want 0", len(*fired))
	}
}

func TestReproduceCheat_FiresOncePerKeyDown(t *testing.T) {
	src := &mockCreatureSource{entity: ecs.Entity{}, ok: true}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p, fired := newTestControl(t, nil,
		WithCreatureSource(src),
		WithSession("run-1"),
		withClock(func() time.Time { return at }),
	)

	if !runeDown(p, 'p') {
		t.Fatal("cheat key-down should be consumed")
	}
	if runeUp(p, 'p') {
		t.Fatal("cheat key-up should not be consumed")
	}
	if len(*fired) != 1 {
		t.Fatalf("cheat fired %d times, want 1", len(*fired))
	}
	req := (*fired)[0]
	if req.Session != "run-1" || !req.At.Equal(at) {
		t.Fatalf("request = %+v", req)
	}

	runeDown(p, 'p')
	if len(*fired) != 2 {
		t.Fatalf("second press: cheat fired %d times, want 2", len(*fired))
	}
}

func TestReproduceCheat_NotFiredForMovementKey(t *testing.T) {
	// 作弊键与移动键冲突时，移动键优先
	p, fired := newTestControl(t, map[string][]string{keys.ControlReproduceCheat: {"w"}})

	runeDown(p, 'w')
	runeUp(p, 'w')

	if len(*fired) != 0 {
		t.Fatalf("cheat fired %d times, want 0", len(*fired))
	}
	if got := p.Movement(); got != (vmath.Vec3{}) {
		t.Fatalf("movement = %+v, want zero", got)
	}
}

func TestReproduceCheat_Unbound(t *testing.T) {
	p, fired := newTestControl(t, map[string][]string{keys.ControlReproduceCheat: {}})

	if runeDown(p, 'p') {
		t.Fatal("unbound cheat should not consume p")
	}
	if len(*fired) != 0 {
		t.Fatalf("cheat fired %d times, want 0", len(*fired))
	}
}

func TestReceiveInput_Disabled(t *testing.T) {
	p, fired := newTestControl(t, nil)
	runeDown(p, 'd')

	p.SetEnabled(false)
	if p.Enabled() {
		t.Fatal("Enabled() should be false")
	}

	if runeDown(p, 'd') {
		t.Fatal("key-down while disabled should not be consumed")
	}
	if runeDown(p, 'p') {
		t.Fatal("cheat while disabled should not be consumed")
	}
	if len(*fired) != 0 {
		t.Fatal("cheat should not fire while disabled")
	}
	// 禁用期间按下被当作释放处理
	if got := p.Movement(); got != (vmath.Vec3{}) {
		t.Fatalf("movement = %+v, want zero", got)
	}

	p.SetEnabled(true)
	if !runeDown(p, 'a') {
		t.Fatal("key-down after re-enable should be consumed")
	}
	if got := p.Movement(); got != (vmath.Vec3{X: -1}) {
		t.Fatalf("movement = %+v, want (-1,0,0)", got)
	}
}

func TestReceiveBlockedInput_ForcesRelease(t *testing.T) {
	p, fired := newTestControl(t, nil)
	runeDown(p, 'w')
	runeDown(p, 'a')

	p.ReceiveBlockedInput(tcell.KeyRune, 'w', tcell.ModNone, true)
	if got := p.Movement(); got != (vmath.Vec3{X: -1}) {
		t.Fatalf("movement = %+v, want (-1,0,0)", got)
	}
	held := p.Held()
	if held.Forward || !held.Left {
		t.Fatalf("held = %+v", held)
	}

	p.ReceiveBlockedInput(tcell.KeyRune, 's', tcell.ModNone, false)
	p.ReceiveBlockedInput(tcell.KeyRune, 'p', tcell.ModNone, true)
	if got := p.Movement(); got != (vmath.Vec3{X: -1}) {
		t.Fatalf("movement = %+v, want (-1,0,0)", got)
	}
	if len(*fired) != 0 {
		t.Fatal("blocked input must never fire the cheat")
	}
}

func TestOnMouseMoveNotConsumed(t *testing.T) {
	p, _ := newTestControl(t, nil)
	if p.OnMouseMove(3, -2) {
		t.Fatal("mouse motion should not be consumed")
	}
}

func TestMovementDirection(t *testing.T) {
	p, _ := newTestControl(t, nil)

	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		want   Direction
		wantOK bool
	}{
		{"forward", tcell.KeyRune, 'w', Forward, true},
		{"right upper case", tcell.KeyRune, 'D', Right, true},
		{"cheat", tcell.KeyRune, 'p', 0, false},
		{"secondary arrow", tcell.KeyUp, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.MovementDirection(tt.key, tt.r, tcell.ModNone)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("MovementDirection(%v, %q) = %v, %t, want %v, %t", tt.key, tt.r, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
