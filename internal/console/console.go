package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/Versifine/cellstage/internal/control"
	"github.com/Versifine/cellstage/internal/system"
	"github.com/Versifine/cellstage/internal/world"
)

const (
	defaultTickInterval = 50 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	eventBuffer         = 64
)

// Options tunes the console loop. Zero values fall back to the defaults.
type Options struct {
	TickInterval time.Duration
	MovePulse    time.Duration
	Session      string
}

// pulse is a key-down waiting for its synthetic key-up.
type pulse struct {
	key   tcell.Key
	r     rune
	mods  tcell.ModMask
	until time.Time
}

// keyID identifies a physical key regardless of how the terminal reported
// its case.
type keyID struct {
	key  tcell.Key
	r    rune
	mods tcell.ModMask
}

func newKeyID(key tcell.Key, r rune, mods tcell.ModMask) keyID {
	if key == tcell.KeyRune {
		return keyID{key: key, r: unicode.ToLower(r), mods: mods &^ tcell.ModShift}
	}
	return keyID{key: key, mods: mods}
}

type mousePos struct {
	x, y int
	ok   bool
}

// Console drives the microbe stage from a terminal. Input, ticks and drawing
// all run on the goroutine that called Run.
type Console struct {
	screen tcell.Screen
	pmc    *control.PlayerMicrobeControl
	system *system.PlayerMicrobeControlSystem
	world  *world.World
	player *world.PlayerData
	cursor *Cursor

	tickInterval time.Duration
	movePulse    time.Duration
	session      string

	pulses map[control.Direction]pulse
	// holds tracks consumed non-movement keys, so auto-repeat of a held key
	// is not delivered as new key-downs.
	holds map[keyID]pulse
	mouse mousePos
	now   func() time.Time
}

func New(screen tcell.Screen, pmc *control.PlayerMicrobeControl, sys *system.PlayerMicrobeControlSystem, w *world.World, player *world.PlayerData, cursor *Cursor, opts Options) *Console {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.MovePulse <= 0 {
		opts.MovePulse = defaultMovePulse
	}
	if cursor == nil {
		cursor = &Cursor{}
	}
	return &Console{
		screen:       screen,
		pmc:          pmc,
		system:       sys,
		world:        w,
		player:       player,
		cursor:       cursor,
		tickInterval: opts.TickInterval,
		movePulse:    opts.MovePulse,
		session:      opts.Session,
		pulses:       make(map[control.Direction]pulse),
		holds:        make(map[keyID]pulse),
		now:          time.Now,
	}
}

// Run blocks until ctx is done, the user quits, or a tick fails fatally. The
// caller owns the screen and must Fini it after Run returns.
func (c *Console) Run(ctx context.Context) error {
	if c == nil || c.screen == nil {
		return errors.New("console screen is nil")
	}
	if c.pmc == nil || c.system == nil || c.world == nil {
		return errors.New("console is not fully wired")
	}

	c.screen.EnableMouse()
	c.resize(c.screen.Size())

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	slog.Info("Console started", "tick", c.tickInterval, "move_pulse", c.movePulse)
	c.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !c.HandleEvent(ev) {
				slog.Info("Console quit requested")
				return nil
			}
		case <-ticker.C:
			if err := c.Tick(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (c *Console) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		var dx, dy int
		if c.mouse.ok {
			dx, dy = x-c.mouse.x, y-c.mouse.y
		}
		c.mouse = mousePos{x: x, y: y, ok: true}
		if c.pmc.OnMouseMove(dx, dy) {
			return true
		}
		w, h := c.screen.Size()
		c.cursor.Move(x, y, w, h)
	case *tcell.EventResize:
		c.resize(ev.Size())
		c.screen.Sync()
	}
	return true
}

func (c *Console) handleKey(ev *tcell.EventKey) bool {
	key, r, mods := ev.Key(), ev.Rune(), ev.Modifiers()
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		c.toggleEnabled()
		return true
	}

	now := c.now()
	id := newKeyID(key, r, mods)
	if held, ok := c.holds[id]; ok && now.Before(held.until) {
		held.until = now.Add(c.movePulse)
		c.holds[id] = held
		return true
	}
	delete(c.holds, id)

	if !c.pmc.ReceiveInput(key, r, mods, true) {
		return true
	}
	// Terminals never report key-up, so a held key is kept alive by
	// auto-repeat refreshing its deadline.
	p := pulse{key: key, r: r, mods: mods, until: now.Add(c.movePulse)}
	if d, ok := c.pmc.MovementDirection(key, r, mods); ok {
		c.pulses[d] = p
	} else {
		c.holds[id] = p
	}
	return true
}

func (c *Console) toggleEnabled() {
	if !c.pmc.Enabled() {
		c.pmc.SetEnabled(true)
		slog.Info("Player control enabled")
		return
	}
	for d, p := range c.pulses {
		c.pmc.ReceiveBlockedInput(p.key, p.r, p.mods, false)
		delete(c.pulses, d)
	}
	clear(c.holds)
	c.pmc.SetEnabled(false)
	slog.Info("Player control disabled")
}

// expirePulses sends the key-up for every pulse whose deadline has passed.
func (c *Console) expirePulses(now time.Time) {
	for d, p := range c.pulses {
		if now.Before(p.until) {
			continue
		}
		c.pmc.ReceiveInput(p.key, p.r, p.mods, false)
		delete(c.pulses, d)
	}
	for id, p := range c.holds {
		if now.Before(p.until) {
			continue
		}
		c.pmc.ReceiveInput(p.key, p.r, p.mods, false)
		delete(c.holds, id)
	}
}

// Tick advances the world by one step and redraws the status display.
func (c *Console) Tick() error {
	c.expirePulses(c.now())
	tick := c.world.Advance()
	if err := c.system.Run(c.world); err != nil {
		return fmt.Errorf("tick %d: %w", tick, err)
	}
	c.draw()
	return nil
}

func (c *Console) resize(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	cam := c.world.Camera()
	if cam == nil {
		return
	}
	// Terminal cells are about twice as tall as they are wide.
	cam.SetAspect(float64(width) / float64(2*height))
}
