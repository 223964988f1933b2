package event

import (
	"time"

	"github.com/mlange-42/ark/ecs"
)

const (
	EventPlayerReadyToEnterEditor = "PlayerReadyToEnterEditor"
)

// EditorRequest is published when the player asks to leave the microbe
// stage for the editor.
type EditorRequest struct {
	Session string
	Entity  ecs.Entity
	At      time.Time
}
