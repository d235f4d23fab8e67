// Package portal implements see-through portals and teleportation between
// pairs of planar portal surfaces on top of github.com/go-gl/mathgl.
package portal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	// unitTolerance is how far a rotation's norm may drift from 1.
	unitTolerance = float32(1e-3)
	// minBasisLength is the shortest vector accepted as a frame axis.
	minBasisLength = float32(1e-6)
)

var (
	axisRight   = mgl32.Vec3{1, 0, 0}
	axisUp      = mgl32.Vec3{0, 1, 0}
	axisForward = mgl32.Vec3{0, 0, -1}
)

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// PoseAt returns an unrotated pose at position.
func PoseAt(position mgl32.Vec3) Pose {
	return Pose{Position: position, Rotation: mgl32.QuatIdent()}
}

// Forward returns the direction the pose is facing.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Rotation.Rotate(axisForward)
}

func (p Pose) validate() error {
	if !isUnit(p.Rotation) || !finite(p.Position) {
		return errors.Wrapf(ErrDegeneratePose, "rotation norm %v", p.Rotation.Len())
	}

	return nil
}

// Frame is the oriented coordinate system of a portal surface. The surface
// spans Right and Up and faces Forward, which is local -Z.
type Frame struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewFrame returns a frame for an existing rotation, which must be a unit
// quaternion.
func NewFrame(position mgl32.Vec3, rotation mgl32.Quat) (Frame, error) {
	f := Frame{Position: position, Rotation: rotation}
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}

	f.Rotation = rotation.Normalize()

	return f, nil
}

// LookFrame returns a frame at position facing forward, with up as the
// vertical hint. forward is renormalized; a near-zero forward, or one
// parallel to up, is rejected.
func LookFrame(position, forward, up mgl32.Vec3) (Frame, error) {
	if forward.Len() < minBasisLength {
		return Frame{}, errors.Wrap(ErrDegenerateFrame, "zero-length forward")
	}

	back := forward.Mul(-1).Normalize()

	right := up.Cross(back)
	if right.Len() < minBasisLength {
		return Frame{}, errors.Wrapf(ErrDegenerateFrame, "forward %v parallel to up %v", forward, up)
	}

	right = right.Normalize()
	trueUp := back.Cross(right)

	rot := mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, trueUp, back).Mat4())

	return NewFrame(position, rot.Normalize())
}

// Validate reports whether the frame can be used as a portal surface.
func (f Frame) Validate() error {
	if !isUnit(f.Rotation) {
		return errors.Wrapf(ErrDegenerateFrame, "rotation norm %v", f.Rotation.Len())
	}

	if !finite(f.Position) {
		return errors.Wrapf(ErrDegenerateFrame, "position %v", f.Position)
	}

	return nil
}

func (f Frame) Forward() mgl32.Vec3 { return f.Rotation.Rotate(axisForward) }
func (f Frame) Right() mgl32.Vec3   { return f.Rotation.Rotate(axisRight) }
func (f Frame) Up() mgl32.Vec3      { return f.Rotation.Rotate(axisUp) }

// TransformPoint maps a point from frame-local to world space.
func (f Frame) TransformPoint(local mgl32.Vec3) mgl32.Vec3 {
	return f.Position.Add(f.Rotation.Rotate(local))
}

// InverseTransformPoint maps a world-space point into frame-local space.
func (f Frame) InverseTransformPoint(world mgl32.Vec3) mgl32.Vec3 {
	return f.Rotation.Conjugate().Rotate(world.Sub(f.Position))
}

// Matrix returns the local-to-world matrix.
func (f Frame) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(f.Position[0], f.Position[1], f.Position[2]).Mul4(f.Rotation.Mat4())
}

// ApproxEqual reports whether two frames describe the same surface.
func (f Frame) ApproxEqual(other Frame) bool {
	return nearVec3(f.Position, other.Position, 1e-4) &&
		sameRotation(f.Rotation, other.Rotation, 1e-5)
}

// nearVec3 compares componentwise with an absolute tolerance.
func nearVec3(a, b mgl32.Vec3, tolerance float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(tolerance) {
			return false
		}
	}

	return true
}

func isUnit(q mgl32.Quat) bool {
	l := q.Len()
	return !math.IsNaN(float64(l)) && math.Abs(float64(l-1)) <= float64(unitTolerance)
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}

	return true
}

// q and -q encode the same rotation.
func sameRotation(a, b mgl32.Quat, threshold float32) bool {
	return 1-float32(math.Abs(float64(a.Dot(b)))) <= threshold
}
