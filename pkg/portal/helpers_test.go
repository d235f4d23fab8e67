package portal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

const posTolerance = float32(1e-4)

func lookFrame(t *testing.T, position, forward mgl32.Vec3) Frame {
	t.Helper()

	f, err := LookFrame(position, forward, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)

	return f
}

// testPair is A at the origin facing +Z and B at (10, 0, 0) facing +X.
func testPair(t *testing.T) *Pair {
	t.Helper()

	pair, err := NewPair(
		"a", lookFrame(t, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}),
		"b", lookFrame(t, mgl32.Vec3{10, 0, 0}, mgl32.Vec3{1, 0, 0}),
		DefaultThresholds,
	)
	require.NoError(t, err)

	return pair
}

func facing(t *testing.T, position, forward mgl32.Vec3) Pose {
	t.Helper()

	f := lookFrame(t, position, forward)

	return Pose{Position: f.Position, Rotation: f.Rotation}
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()

	if !nearVec3(want, got, posTolerance) {
		require.Failf(t, "vectors differ", "want %v, got %v", want, got)
	}
}
