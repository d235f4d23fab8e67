package portal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// halfTurn is a 180° rotation about local up.
var halfTurn = mgl32.Quat{W: 0, V: axisUp}

// Mirror maps pose, as seen in front of entry, to the pose that sees the same
// view out of exit. Position and orientation are turned half way around the
// portal's up axis: in-plane left/right and front/back swap, vertical does not.
func Mirror(pose Pose, entry, exit Frame) (Pose, error) {
	if err := entry.Validate(); err != nil {
		return Pose{}, errors.Wrap(err, "entry frame")
	}

	if err := exit.Validate(); err != nil {
		return Pose{}, errors.Wrap(err, "exit frame")
	}

	if err := pose.validate(); err != nil {
		return Pose{}, err
	}

	relative := entry.Rotation.Conjugate().Mul(pose.Rotation)
	relative = halfTurn.Mul(relative)

	return Pose{
		Position: MirrorPoint(pose.Position, entry, exit),
		Rotation: exit.Rotation.Mul(relative).Normalize(),
	}, nil
}

// MirrorPoint maps a world-space point through the portal. Frames are
// assumed valid.
func MirrorPoint(p mgl32.Vec3, entry, exit Frame) mgl32.Vec3 {
	return exit.TransformPoint(flip(entry.InverseTransformPoint(p)))
}

// MirrorDirection maps a free vector, such as a velocity or ray direction,
// through the portal. Frames are assumed valid.
func MirrorDirection(v mgl32.Vec3, entry, exit Frame) mgl32.Vec3 {
	return exit.Rotation.Rotate(flip(entry.Rotation.Conjugate().Rotate(v)))
}

func flip(local mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-local[0], local[1], -local[2]}
}
