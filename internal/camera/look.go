package camera

import (
	"errors"
	"fmt"

	"github.com/Versifine/cellstage/internal/vmath"
)

var (
	// ErrInvalidState is the parent of all errors that make a look point
	// unavailable for the current tick.
	ErrInvalidState   = errors.New("invalid state")
	ErrNoActiveCamera = fmt.Errorf("world has no active camera: %w", ErrInvalidState)
	ErrNoIntersection = fmt.Errorf("cursor ray does not hit the ground plane: %w", ErrInvalidState)
)

// RayCaster casts rays from the active camera of a world.
type RayCaster interface {
	CastRayFromCamera(nx, ny float64) (vmath.Ray, error)
}

// TargetPoint projects the cursor onto the ground plane.
func TargetPoint(caster RayCaster, nx, ny float64) (vmath.Vec3, error) {
	if caster == nil {
		return vmath.Vec3{}, ErrNoActiveCamera
	}
	ray, err := caster.CastRayFromCamera(nx, ny)
	if err != nil {
		return vmath.Vec3{}, fmt.Errorf("cast ray from camera: %w", err)
	}
	distance, ok := ray.IntersectPlane(vmath.GroundPlane)
	if !ok {
		return vmath.Vec3{}, ErrNoIntersection
	}
	return ray.Point(distance), nil
}
