package world

import (
	"fmt"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/camera"
	"github.com/Versifine/cellstage/internal/organelle"
	"github.com/Versifine/cellstage/internal/vmath"
)

type Microbe struct {
	Name string
}

type Position struct {
	X float64
	Y float64
	Z float64
}

func (p Position) Vec3() vmath.Vec3 {
	return vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// MicrobeControl is the movement intent the control script writes for a
// microbe each tick.
type MicrobeControl struct {
	Movement vmath.Vec3
	LookAt   vmath.Vec3
	Tick     uint64
}

// World wraps the ECS world of the microbe stage together with its active
// camera. It is not safe for concurrent use.
type World struct {
	ecs        ecs.World
	camera     *camera.Camera
	tick       uint64
	spawner    *ecs.Map4[Microbe, Position, MicrobeControl, organelle.Container]
	hexes      *ecs.Map[organelle.Hex]
	microbes   *ecs.Map[Microbe]
	positions  *ecs.Map[Position]
	controls   *ecs.Map[MicrobeControl]
	containers *ecs.Map[organelle.Container]
	organelles *organelle.Collector
	filter     *ecs.Filter1[Microbe]
	player     PlayerData
}

func New() *World {
	w := &World{ecs: ecs.NewWorld()}
	w.spawner = ecs.NewMap4[Microbe, Position, MicrobeControl, organelle.Container](&w.ecs)
	w.hexes = ecs.NewMap[organelle.Hex](&w.ecs)
	w.microbes = ecs.NewMap[Microbe](&w.ecs)
	w.positions = ecs.NewMap[Position](&w.ecs)
	w.controls = ecs.NewMap[MicrobeControl](&w.ecs)
	w.containers = ecs.NewMap[organelle.Container](&w.ecs)
	w.organelles = organelle.NewCollector(&w.ecs)
	w.filter = ecs.NewFilter1[Microbe](&w.ecs)
	return w
}

// Player returns the player's record. Removing the active creature clears it.
func (w *World) Player() *PlayerData {
	return &w.player
}

func (w *World) SetCamera(c *camera.Camera) {
	w.camera = c
}

func (w *World) Camera() *camera.Camera {
	return w.camera
}

// CastRayFromCamera implements camera.RayCaster.
func (w *World) CastRayFromCamera(nx, ny float64) (vmath.Ray, error) {
	if w == nil || w.camera == nil {
		return vmath.Ray{}, camera.ErrNoActiveCamera
	}
	return w.camera.RayThrough(nx, ny), nil
}

// SpawnMicrobe creates a microbe and one child entity per organelle hex.
func (w *World) SpawnMicrobe(name string, pos Position, hexes []organelle.Hex) ecs.Entity {
	children := make([]ecs.Entity, 0, len(hexes))
	for i := range hexes {
		hex := hexes[i]
		children = append(children, w.hexes.NewEntity(&hex))
	}
	return w.spawner.NewEntity(
		&Microbe{Name: name},
		&pos,
		&MicrobeControl{},
		&organelle.Container{Children: children},
	)
}

// RemoveMicrobe removes a microbe and its organelles.
func (w *World) RemoveMicrobe(e ecs.Entity) {
	if !w.isMicrobe(e) {
		return
	}
	children := append([]ecs.Entity(nil), w.containers.Get(e).Children...)
	for _, child := range children {
		if w.ecs.Alive(child) {
			w.ecs.RemoveEntity(child)
		}
	}
	w.ecs.RemoveEntity(e)
	if active, ok := w.player.ActiveCreature(); ok && active == e {
		w.player.ClearActiveCreature()
	}
}

func (w *World) Alive(e ecs.Entity) bool {
	return !e.IsZero() && w.ecs.Alive(e)
}

func (w *World) isMicrobe(e ecs.Entity) bool {
	return w.Alive(e) && w.microbes.Has(e)
}

// SetControl stores the intent computed by the control script.
func (w *World) SetControl(e ecs.Entity, movement, look vmath.Vec3) error {
	if !w.isMicrobe(e) {
		return fmt.Errorf("entity %v is not a live microbe", e)
	}
	ctrl := w.controls.Get(e)
	ctrl.Movement = movement
	ctrl.LookAt = look
	ctrl.Tick = w.tick
	return nil
}

func (w *World) Control(e ecs.Entity) (MicrobeControl, bool) {
	if !w.isMicrobe(e) {
		return MicrobeControl{}, false
	}
	return *w.controls.Get(e), true
}

func (w *World) OrganellePoints(e ecs.Entity) []vmath.Vec2 {
	return w.organelles.Points(e)
}

// Advance moves the world to the next tick number.
func (w *World) Advance() uint64 {
	w.tick++
	return w.tick
}

func (w *World) Tick() uint64 {
	return w.tick
}

type MicrobeSnapshot struct {
	Entity     ecs.Entity
	Name       string
	Position   Position
	Control    MicrobeControl
	Organelles int
}

func (s MicrobeSnapshot) String() string {
	return fmt.Sprintf(
		"%s (%.1f, %.1f, %.1f) organelles:%d move:(%.2f, %.2f, %.2f) look:(%.1f, %.1f, %.1f)",
		s.Name,
		s.Position.X, s.Position.Y, s.Position.Z,
		s.Organelles,
		s.Control.Movement.X, s.Control.Movement.Y, s.Control.Movement.Z,
		s.Control.LookAt.X, s.Control.LookAt.Y, s.Control.LookAt.Z,
	)
}

// Microbes lists every microbe in the world.
func (w *World) Microbes() []MicrobeSnapshot {
	var out []MicrobeSnapshot
	query := w.filter.Query()
	for query.Next() {
		e := query.Entity()
		m := query.Get()
		out = append(out, MicrobeSnapshot{
			Entity:     e,
			Name:       m.Name,
			Position:   *w.positions.Get(e),
			Control:    *w.controls.Get(e),
			Organelles: len(w.organelles.Snapshot(e)),
		})
	}
	return out
}

func (w *World) String() string {
	microbes := w.Microbes()
	infos := make([]string, 0, len(microbes))
	for _, m := range microbes {
		infos = append(infos, m.String())
	}
	return fmt.Sprintf("World [Tick: %d] | [Camera: %t] | [Microbes(%d): %s]",
		w.tick, w.camera != nil, len(microbes), strings.Join(infos, ", "))
}
