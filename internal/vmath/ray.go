package vmath

type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Plane is the set of points p where Normal·p = Offset.
type Plane struct {
	Normal Vec3
	Offset float64
}

// GroundPlane is the horizontal plane through the origin that cursor
// positions are projected onto.
var GroundPlane = Plane{Normal: Vec3{X: 0, Y: 1, Z: 0}, Offset: 0}

func (r Ray) Point(distance float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(distance))
}

// IntersectPlane returns the distance along the ray to the plane.
// ok is false when the ray runs parallel to the plane or the plane lies
// behind the ray origin.
func (r Ray) IntersectPlane(p Plane) (distance float64, ok bool) {
	denom := p.Normal.Dot(r.Direction)
	if nearlyZero(denom) {
		return 0, false
	}
	distance = (p.Offset - p.Normal.Dot(r.Origin)) / denom
	return distance, distance >= 0
}
