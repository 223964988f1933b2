package system

import (
	"errors"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/camera"
	"github.com/Versifine/cellstage/internal/script"
	"github.com/Versifine/cellstage/internal/vmath"
)

const ApplyCellMovementControl = "applyCellMovementControl"

var ErrScriptsNotLoaded = errors.New("microbe scripts aren't loaded")

type CreatureSource interface {
	ActiveCreature() (ecs.Entity, bool)
}

type MovementSource interface {
	Movement() vmath.Vec3
}

// Cursor reports the mouse position in normalized device coordinates.
type Cursor interface {
	NormalizedCursor() (nx, ny float64)
}

// World is what the system needs from the game world: a camera to cast the
// cursor ray from, and the script-facing host API.
type World interface {
	camera.RayCaster
	script.Host
}

type RunStats struct {
	Dispatched uint64
	Skipped    uint64
	Failed     uint64
}

// PlayerMicrobeControlSystem forwards the player's movement and look point to
// the control script once per tick.
type PlayerMicrobeControlSystem struct {
	player   CreatureSource
	movement MovementSource
	cursor   Cursor
	scripts  script.Module
	stats    RunStats
	look     vmath.Vec3
	hasLook  bool
}

func NewPlayerMicrobeControlSystem(player CreatureSource, movement MovementSource, cursor Cursor, scripts script.Module) *PlayerMicrobeControlSystem {
	return &PlayerMicrobeControlSystem{
		player:   player,
		movement: movement,
		cursor:   cursor,
		scripts:  scripts,
	}
}

// Run performs one tick. A missing camera skips the tick; only a missing
// script module is returned as an error.
func (s *PlayerMicrobeControlSystem) Run(world World) error {
	controlled, ok := s.player.ActiveCreature()
	if !ok {
		return nil
	}

	lookPoint, err := s.targetPoint(world)
	if err != nil {
		s.stats.Skipped++
		s.hasLook = false
		slog.Error("PlayerMicrobeControlSystem: cannot run because world has no active camera",
			"entity", controlled, "error", err)
		return nil
	}
	s.look, s.hasLook = lookPoint, true

	if s.scripts == nil {
		slog.Error("PlayerMicrobeControlSystem: microbe scripts aren't loaded")
		return ErrScriptsNotLoaded
	}

	movement := s.movement.Movement().Normalize()
	result := s.scripts.Execute(ApplyCellMovementControl, world, controlled, movement, lookPoint)
	if result != script.Success {
		s.stats.Failed++
		slog.Warn("PlayerMicrobeControlSystem: failed to run script "+ApplyCellMovementControl,
			"entity", controlled, "result", result)
		return nil
	}
	s.stats.Dispatched++
	return nil
}

func (s *PlayerMicrobeControlSystem) targetPoint(world World) (vmath.Vec3, error) {
	var nx, ny float64
	if s.cursor != nil {
		nx, ny = s.cursor.NormalizedCursor()
	}
	return camera.TargetPoint(world, nx, ny)
}

func (s *PlayerMicrobeControlSystem) Stats() RunStats {
	return s.stats
}

// LastLookPoint returns the look point of the latest tick that had one.
func (s *PlayerMicrobeControlSystem) LastLookPoint() (vmath.Vec3, bool) {
	return s.look, s.hasLook
}
