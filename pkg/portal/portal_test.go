package portal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewPair(t *testing.T) {
	t.Parallel()

	pair := testPair(t)

	assert.Same(t, pair.B, pair.A.Pair())
	assert.Same(t, pair.A, pair.B.Pair())
	assert.Equal(t, "a", pair.A.Name)
	assert.NotNil(t, pair.A.Camera())
	assert.False(t, pair.A.NearObserver())
	assert.Equal(t, DefaultProjection(), pair.A.Camera().Projection())
}

func TestNewPair_Invalid(t *testing.T) {
	t.Parallel()

	a := lookFrame(t, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	b := lookFrame(t, mgl32.Vec3{10, 0, 0}, mgl32.Vec3{1, 0, 0})

	_, err := NewPair("a", a, "a2", a, DefaultThresholds)
	assert.True(t, errors.Is(err, ErrSamePortal))

	_, err = NewPair("a", a, "b", b, Thresholds{Depth: 0.001, Width: 0, Height: 1})
	assert.True(t, errors.Is(err, ErrInvalidThresholds))

	_, err = NewPair("a", Frame{}, "b", b, DefaultThresholds)
	assert.True(t, errors.Is(err, ErrDegenerateFrame))
}

func TestPair_TransferRay(t *testing.T) {
	t.Parallel()

	pair := testPair(t)

	tests := []struct {
		name        string
		ray         Ray
		wantOK      bool
		wantEntered *Portal
		wantOut     Ray
	}{
		{
			name:        "into A, out of B",
			ray:         Ray{Origin: mgl32.Vec3{0.1, 0.2, 2}, Direction: mgl32.Vec3{0, 0, -1}},
			wantOK:      true,
			wantEntered: pair.A,
			wantOut:     Ray{Origin: mgl32.Vec3{10, 0.2, 0.1}, Direction: mgl32.Vec3{1, 0, 0}},
		},
		{
			name:        "into B, out of A",
			ray:         Ray{Origin: mgl32.Vec3{12, -0.5, 0}, Direction: mgl32.Vec3{-1, 0, 0}},
			wantOK:      true,
			wantEntered: pair.B,
			wantOut:     Ray{Origin: mgl32.Vec3{0, -0.5, 0}, Direction: mgl32.Vec3{0, 0, 1}},
		},
		{
			name: "back face of A",
			ray:  Ray{Origin: mgl32.Vec3{0.1, 0.2, -2}, Direction: mgl32.Vec3{0, 0, 1}},
		},
		{
			name: "beside A",
			ray:  Ray{Origin: mgl32.Vec3{5, 0, 2}, Direction: mgl32.Vec3{0, 0, -1}},
		},
		{
			name: "pointing away",
			ray:  Ray{Origin: mgl32.Vec3{0, 0, 2}, Direction: mgl32.Vec3{0, 0, 1}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, entered, ok := pair.TransferRay(tt.ray)
			assert.Equal(t, tt.wantOK, ok)

			if !tt.wantOK {
				assert.Nil(t, entered)
				return
			}

			assert.Same(t, tt.wantEntered, entered)
			assertVec3(t, tt.wantOut.Origin, out.Origin)
			assertVec3(t, tt.wantOut.Direction, out.Direction)
		})
	}
}
