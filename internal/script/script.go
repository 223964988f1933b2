// Package script runs gameplay functions that live in an external script
// module and are invoked by name.
package script

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/vmath"
)

type Result int

const (
	Success Result = iota
	NotFound
	Failed
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Module executes a named function with positional arguments.
type Module interface {
	Execute(name string, args ...any) Result
}

// Host is the world-side API exposed to scripts.
type Host interface {
	SetControl(e ecs.Entity, movement, look vmath.Vec3) error
}
