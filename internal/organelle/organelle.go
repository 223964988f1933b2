// Package organelle collects the shape points of the organelles attached to
// a microbe.
package organelle

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/vmath"
)

// Shape is anything that exposes an ordered 2D outline.
type Shape interface {
	Points() []vmath.Vec2
}

// Container lists the organelle entities owned by a microbe, in placement
// order.
type Container struct {
	Children []ecs.Entity
}

// Hex is an organelle occupying one hex tile at axial coordinates (Q, R).
type Hex struct {
	Q       int
	R       int
	Corners []vmath.Vec2
}

func (h Hex) Points() []vmath.Vec2 {
	return h.Corners
}

// CollectPoints concatenates the point sets of children in order, keeping
// each child's own point order.
func CollectPoints(children []Shape) []vmath.Vec2 {
	total := 0
	for _, c := range children {
		total += len(c.Points())
	}
	result := make([]vmath.Vec2, 0, total)
	for _, c := range children {
		result = append(result, c.Points()...)
	}
	return result
}

// HexPoints returns the six corners of a flat-top hex of the given radius
// centered on the axial coordinate (q, r), counter-clockwise from +X.
func HexPoints(q, r int, radius float64) []vmath.Vec2 {
	cx := radius * 1.5 * float64(q)
	cy := radius * math.Sqrt(3) * (float64(r) + float64(q)/2)
	points := make([]vmath.Vec2, 6)
	for i := range points {
		angle := math.Pi / 3 * float64(i)
		points[i] = vmath.Vec2{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return points
}

func NewHex(q, r int, radius float64) Hex {
	return Hex{Q: q, R: r, Corners: HexPoints(q, r, radius)}
}
