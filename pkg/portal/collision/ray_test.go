package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRayIntersectsTriangle(t *testing.T) {
	t.Parallel()

	tri := [3]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	tests := []struct {
		name      string
		origin    mgl32.Vec3
		direction mgl32.Vec3
		wantHit   bool
		wantT     float32
		wantPoint mgl32.Vec3
	}{
		{
			name:      "straight down",
			origin:    mgl32.Vec3{0.25, 0.25, 2},
			direction: mgl32.Vec3{0, 0, -1},
			wantHit:   true,
			wantT:     2,
			wantPoint: mgl32.Vec3{0.25, 0.25, 0},
		},
		{
			name:      "from behind",
			origin:    mgl32.Vec3{0.25, 0.25, -1},
			direction: mgl32.Vec3{0, 0, 2},
			wantHit:   true,
			wantT:     0.5,
			wantPoint: mgl32.Vec3{0.25, 0.25, 0},
		},
		{
			name:      "outside",
			origin:    mgl32.Vec3{0.8, 0.8, 2},
			direction: mgl32.Vec3{0, 0, -1},
		},
		{
			name:      "parallel",
			origin:    mgl32.Vec3{0.25, 0.25, 1},
			direction: mgl32.Vec3{1, 0, 0},
		},
		{
			name:      "pointing away",
			origin:    mgl32.Vec3{0.25, 0.25, 2},
			direction: mgl32.Vec3{0, 0, 1},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := RayIntersectsTriangle(tt.origin, tt.direction, tri)

			assert.Equal(t, tt.wantHit, r.Hit)

			if tt.wantHit {
				assert.InDelta(t, tt.wantT, r.T, 1e-5)
				assert.InDeltaSlice(t, tt.wantPoint[:], r.Point[:], 1e-5)
			}
		})
	}
}

func TestRayIntersectsRectangle(t *testing.T) {
	t.Parallel()

	q := Rectangle{
		Center:     mgl32.Vec3{10, 0, 0},
		Right:      mgl32.Vec3{0, 0, 1},
		Up:         mgl32.Vec3{0, 1, 0},
		HalfWidth:  0.6,
		HalfHeight: 1.2,
	}

	for _, p := range []mgl32.Vec3{{10, 1.1, 0.5}, {10, -1.1, -0.5}, {10, 0.3, -0.2}} {
		r := RayIntersectsRectangle(mgl32.Vec3{12, p[1], p[2]}, mgl32.Vec3{-1, 0, 0}, q)

		assert.True(t, r.Hit, "%v", p)
		assert.InDelta(t, 2, r.T, 1e-5)
		assert.InDeltaSlice(t, p[:], r.Point[:], 1e-5)
	}

	for _, p := range []mgl32.Vec3{{10, 1.3, 0}, {10, 0, 0.7}, {10, -1.25, -0.65}} {
		r := RayIntersectsRectangle(mgl32.Vec3{12, p[1], p[2]}, mgl32.Vec3{-1, 0, 0}, q)

		assert.False(t, r.Hit, "%v", p)
	}
}
