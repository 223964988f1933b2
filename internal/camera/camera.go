package camera

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/cellstage/internal/vmath"
)

var ErrDegenerateCamera = errors.New("camera view direction is degenerate")

const (
	defaultFOVY   = 60
	defaultAspect = 2

	// Clip planes only bound the projection matrix. Ray directions do not
	// depend on them.
	clipNear = 0.1
	clipFar  = 1000
)

// Camera is a perspective camera. Forward, Right and Up form an orthonormal
// basis derived from the look-at target at construction.
type Camera struct {
	Position vmath.Vec3
	Forward  vmath.Vec3
	Right    vmath.Vec3
	Up       vmath.Vec3
	FOVY     float64 // vertical field of view, degrees
	Aspect   float64 // viewport width / height
}

func NewCamera(position, lookAt, up vmath.Vec3, fovY, aspect float64) (*Camera, error) {
	forward := lookAt.Sub(position).Normalize()
	if forward.IsZero() {
		return nil, ErrDegenerateCamera
	}
	right := forward.Cross(up).Normalize()
	if right.IsZero() {
		return nil, ErrDegenerateCamera
	}
	if fovY <= 0 || fovY >= 180 {
		fovY = defaultFOVY
	}
	if aspect <= 0 {
		aspect = defaultAspect
	}
	return &Camera{
		Position: position,
		Forward:  forward,
		Right:    right,
		Up:       right.Cross(forward),
		FOVY:     fovY,
		Aspect:   aspect,
	}, nil
}

// DefaultCamera looks straight down at the origin from 30 units up, with
// screen-up pointing along -Z.
func DefaultCamera() *Camera {
	c, _ := NewCamera(
		vmath.Vec3{Y: 30},
		vmath.Vec3{},
		vmath.Vec3{Z: -1},
		defaultFOVY,
		defaultAspect,
	)
	return c
}

// View is the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	eye := c.Position.Mgl()
	return mgl64.LookAtV(eye, eye.Add(c.Forward.Mgl()), c.Up.Mgl())
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOVY), c.Aspect, clipNear, clipFar)
}

// RayThrough returns the world-space ray from the camera through a point in
// normalized device coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) RayThrough(nx, ny float64) vmath.Ray {
	proj := c.Projection()
	// Undo the lens scale to get a view-space direction, then rotate it back
	// to world space with the transpose of the view rotation.
	dirView := mgl64.Vec3{nx / proj.At(0, 0), ny / proj.At(1, 1), -1}
	dir := c.View().Mat3().Transpose().Mul3x1(dirView)
	return vmath.Ray{Origin: c.Position, Direction: vmath.FromMgl(dir).Normalize()}
}

// SetAspect updates the aspect ratio, for example after a terminal resize.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// ScreenToNDC maps a screen cell to normalized device coordinates using the
// cell center. Screen y grows downward, NDC y grows upward.
func ScreenToNDC(x, y, width, height int) (nx, ny float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx = (float64(x)+0.5)/float64(width)*2 - 1
	ny = 1 - (float64(y)+0.5)/float64(height)*2
	return clampUnit(nx), clampUnit(ny)
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
