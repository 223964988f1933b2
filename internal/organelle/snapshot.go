package organelle

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/Versifine/cellstage/internal/vmath"
)

// Collector reads organelle containers out of an ECS world.
type Collector struct {
	world      *ecs.World
	containers *ecs.Map[Container]
	hexes      *ecs.Map[Hex]
}

func NewCollector(w *ecs.World) *Collector {
	return &Collector{
		world:      w,
		containers: ecs.NewMap[Container](w),
		hexes:      ecs.NewMap[Hex](w),
	}
}

// Snapshot copies the shapes of a container's children in child order.
// Children that are gone or carry no shape are skipped.
func (c *Collector) Snapshot(container ecs.Entity) []Shape {
	if !c.world.Alive(container) || !c.containers.Has(container) {
		return nil
	}
	children := c.containers.Get(container).Children
	shapes := make([]Shape, 0, len(children))
	for _, child := range children {
		if !c.world.Alive(child) || !c.hexes.Has(child) {
			continue
		}
		hex := *c.hexes.Get(child)
		hex.Corners = append([]vmath.Vec2(nil), hex.Corners...)
		shapes = append(shapes, hex)
	}
	return shapes
}

// Points returns every organelle point of the container.
func (c *Collector) Points(container ecs.Entity) []vmath.Vec2 {
	return CollectPoints(c.Snapshot(container))
}
