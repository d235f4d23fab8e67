package portal

import "github.com/go-gl/mathgl/mgl32"

// DefaultProjection is a 60° vertical field of view, 16:9 perspective.
func DefaultProjection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.01, 1000)
}

// Camera is a viewpoint with a symmetric base projection and the projection
// currently in use, which may be oblique. It looks along local -Z.
type Camera struct {
	pose       Pose
	base       mgl32.Mat4
	projection mgl32.Mat4
}

func NewCamera(pose Pose, base mgl32.Mat4) *Camera {
	return &Camera{pose: pose, base: base, projection: base}
}

func (c *Camera) Pose() Pose { return c.pose }

// View returns the world-to-local matrix.
func (c *Camera) View() mgl32.Mat4 {
	return viewMatrix(c.pose)
}

func viewMatrix(pose Pose) mgl32.Mat4 {
	p := pose.Position
	return pose.Rotation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

func (c *Camera) BaseProjection() mgl32.Mat4 { return c.base }
func (c *Camera) Projection() mgl32.Mat4     { return c.projection }

// SetBaseProjection replaces the base projection and resets to it.
func (c *Camera) SetBaseProjection(m mgl32.Mat4) {
	c.base = m
	c.projection = m
}

// ResetProjection drops any oblique adjustment.
func (c *Camera) ResetProjection() {
	c.projection = c.base
}
