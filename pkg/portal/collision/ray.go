// Package collision implements the ray queries used to look and aim through
// portal surfaces.
package collision

import "github.com/go-gl/mathgl/mgl32"

const mollerTrumboreEpsilon = float32(0.0000001)

// RayCastResult is the outcome of a ray query. T is the ray parameter of the
// hit, measured in multiples of the direction vector.
type RayCastResult struct {
	T     float32
	Hit   bool
	Point mgl32.Vec3
}

// RayIntersectsTriangle determines if a ray intersects a triangle using https://en.wikipedia.org/wiki/M%C3%B6ller%E2%80%93Trumbore_intersection_algorithm
// Both faces of the triangle count.
func RayIntersectsTriangle(origin, direction mgl32.Vec3, tri [3]mgl32.Vec3) (r RayCastResult) {
	edge1 := tri[1].Sub(tri[0])
	edge2 := tri[2].Sub(tri[0])
	h := direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -mollerTrumboreEpsilon && a < mollerTrumboreEpsilon {
		return r // parallel
	}

	f := 1 / a
	s := origin.Sub(tri[0])
	u := f * s.Dot(h)

	if u < 0 || u > 1 {
		return r
	}

	q := s.Cross(edge1)
	v := f * direction.Dot(q)

	if v < 0 || u+v > 1 {
		return r
	}

	t := f * edge2.Dot(q)
	if t <= mollerTrumboreEpsilon {
		// line hit behind the ray origin
		return r
	}

	r.Hit = true
	r.T = t
	r.Point = origin.Add(direction.Mul(t))

	return r
}

// Rectangle is a flat quad centred on Center spanning ±HalfWidth along Right
// and ±HalfHeight along Up. Right and Up are unit length.
type Rectangle struct {
	Center     mgl32.Vec3
	Right      mgl32.Vec3
	Up         mgl32.Vec3
	HalfWidth  float32
	HalfHeight float32
}

// Triangles splits the rectangle along its diagonal.
func (q Rectangle) Triangles() [2][3]mgl32.Vec3 {
	x := q.Right.Mul(q.HalfWidth)
	y := q.Up.Mul(q.HalfHeight)

	a := q.Center.Sub(x).Sub(y)
	b := q.Center.Add(x).Sub(y)
	c := q.Center.Add(x).Add(y)
	d := q.Center.Sub(x).Add(y)

	return [2][3]mgl32.Vec3{{a, b, c}, {a, c, d}}
}

// RayIntersectsRectangle returns the nearest hit of the ray on either
// triangle of q.
func RayIntersectsRectangle(origin, direction mgl32.Vec3, q Rectangle) (r RayCastResult) {
	for _, tri := range q.Triangles() {
		res := RayIntersectsTriangle(origin, direction, tri)
		if res.Hit && (!r.Hit || res.T < r.T) {
			r = res
		}
	}

	return r
}
