package control

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/event"
	"github.com/Versifine/cellstage/internal/keys"
	"github.com/Versifine/cellstage/internal/vmath"
)

// CreatureSource reports the entity the player is currently controlling.
type CreatureSource interface {
	ActiveCreature() (ecs.Entity, bool)
}

// PlayerMicrobeControl turns key events into a movement vector and the
// reproduce cheat. All methods must be called from the input goroutine.
type PlayerMicrobeControl struct {
	movement       *MovementState
	reproduceCheat keys.Binding
	bus            *event.Bus
	creatures      CreatureSource
	session        string
	enabled        bool
	now            func() time.Time
}

type Option func(*PlayerMicrobeControl)

func WithCreatureSource(src CreatureSource) Option {
	return func(p *PlayerMicrobeControl) { p.creatures = src }
}

func WithSession(id string) Option {
	return func(p *PlayerMicrobeControl) { p.session = id }
}

func withClock(now func() time.Time) Option {
	return func(p *PlayerMicrobeControl) { p.now = now }
}

// NewPlayerMicrobeControl resolves all bindings once from cfg.
func NewPlayerMicrobeControl(cfg *keys.Configuration, bus *event.Bus, opts ...Option) *PlayerMicrobeControl {
	p := &PlayerMicrobeControl{
		movement: NewMovementState(
			cfg.ResolveControlNameToFirstKey(keys.ControlMoveForward),
			cfg.ResolveControlNameToFirstKey(keys.ControlMoveBackwards),
			cfg.ResolveControlNameToFirstKey(keys.ControlMoveLeft),
			cfg.ResolveControlNameToFirstKey(keys.ControlMoveRight),
		),
		reproduceCheat: cfg.ResolveControlNameToFirstKey(keys.ControlReproduceCheat),
		bus:            bus,
		enabled:        true,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReceiveInput handles a key event and reports whether it was consumed.
// Movement key-downs are consumed; movement key-ups are applied but left
// unconsumed so other handlers also see the release.
func (p *PlayerMicrobeControl) ReceiveInput(key tcell.Key, r rune, mods tcell.ModMask, down bool) bool {
	active := down && p.enabled

	if p.movement.Handle(key, r, mods, active) {
		return active
	}

	if !active {
		return false
	}

	slog.Info("PMC key pressed", "key", key, "rune", string(r), "mods", mods)

	if p.reproduceCheat.Match(key, r, mods) {
		slog.Info("Reproduce cheat pressed")
		p.bus.Publish(event.EventPlayerReadyToEnterEditor, p.editorRequest())
		return true
	}

	return false
}

// ReceiveBlockedInput is called when another handler has consumed the key.
// Movement keys are always treated as released.
func (p *PlayerMicrobeControl) ReceiveBlockedInput(key tcell.Key, r rune, mods tcell.ModMask, down bool) {
	p.movement.Handle(key, r, mods, false)
}

// MovementDirection reports which movement control the key is bound to.
func (p *PlayerMicrobeControl) MovementDirection(key tcell.Key, r rune, mods tcell.ModMask) (Direction, bool) {
	return p.movement.DirectionFor(key, r, mods)
}

func (p *PlayerMicrobeControl) OnMouseMove(dx, dy int) bool {
	return false
}

func (p *PlayerMicrobeControl) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *PlayerMicrobeControl) Enabled() bool {
	return p.enabled
}

// Movement returns the accumulated, unnormalized movement vector.
func (p *PlayerMicrobeControl) Movement() vmath.Vec3 {
	return p.movement.Vector()
}

func (p *PlayerMicrobeControl) Held() HeldKeys {
	return p.movement.Held()
}

func (p *PlayerMicrobeControl) editorRequest() event.EditorRequest {
	req := event.EditorRequest{Session: p.session, At: p.now()}
	if p.creatures != nil {
		if e, ok := p.creatures.ActiveCreature(); ok {
			req.Entity = e
		}
	}
	return req
}
