package world

import "github.com/mlange-42/ark/ecs"

// PlayerData records which creature the player currently controls.
type PlayerData struct {
	activeCreature ecs.Entity
}

func (p *PlayerData) SetActiveCreature(e ecs.Entity) {
	p.activeCreature = e
}

func (p *PlayerData) ClearActiveCreature() {
	p.activeCreature = ecs.Entity{}
}

// ActiveCreature returns false when no creature is controlled.
func (p *PlayerData) ActiveCreature() (ecs.Entity, bool) {
	if p == nil || p.activeCreature.IsZero() {
		return ecs.Entity{}, false
	}
	return p.activeCreature, true
}
