package portal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// behindPlaneEpsilon is how far behind the clip plane a camera must be for
// the oblique near plane to be well defined.
const behindPlaneEpsilon = float32(1e-5)

// Plane is n·x = Distance with a unit Normal.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// ClipPlane returns the world-space plane of the exit surface. Geometry on
// the side the surface faces is kept.
func ClipPlane(exit Frame) (Plane, error) {
	if err := exit.Validate(); err != nil {
		return Plane{}, errors.Wrap(err, "exit surface")
	}

	normal := exit.Forward().Normalize()

	return Plane{Normal: normal, Distance: exit.Position.Dot(normal)}, nil
}

// Dist is the signed distance of point from the plane.
func (p Plane) Dist(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) - p.Distance
}

// Vec4 returns the homogeneous plane (n, -d).
func (p Plane) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{p.Normal[0], p.Normal[1], p.Normal[2], -p.Distance}
}

// ViewSpace transforms the plane by the inverse transpose of the camera's
// world-to-local matrix.
func (p Plane) ViewSpace(view mgl32.Mat4) mgl32.Vec4 {
	return view.Inv().Transpose().Mul4x1(p.Vec4())
}

// Oblique replaces the near plane of a perspective projection with the
// view-space plane c (Lengyel, "Oblique View Frustum Depth Projection and
// Clipping"). The camera must be on the negative side of c.
func Oblique(projection mgl32.Mat4, c mgl32.Vec4) mgl32.Mat4 {
	corner := projection.Inv().Mul4x1(mgl32.Vec4{sign(c[0]), sign(c[1]), 1, 1})
	scaled := c.Mul(2 / c.Dot(corner))

	out := projection
	out.SetRow(2, scaled.Sub(projection.Row(3)))

	return out
}

// ShouldSuppressClip reports whether the oblique projection must be replaced
// by the symmetric one this frame. Close to the surface the observer's own
// near plane straddles the portal plane and the oblique frustum shows a seam.
func ShouldSuppressClip(observerNearPortal bool) bool {
	return observerNearPortal
}

// ClipProjection returns the projection for a destination camera with view
// matrix view, clipped at the exit surface. base is returned unchanged when
// suppress is set or the camera is not behind the exit plane.
func ClipProjection(exit Frame, base, view mgl32.Mat4, suppress bool) (mgl32.Mat4, error) {
	if ShouldSuppressClip(suppress) {
		return base, nil
	}

	plane, err := ClipPlane(exit)
	if err != nil {
		return base, err
	}

	c := plane.ViewSpace(view)
	if c[3] > -behindPlaneEpsilon {
		return base, nil
	}

	return Oblique(base, c), nil
}

func sign(f float32) float32 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
