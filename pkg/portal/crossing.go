package portal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Thresholds bound the region in which a portal crossing counts. Width and
// Height are half extents of the surface; Depth is the hysteresis band around
// the plane.
type Thresholds struct {
	Depth  float32 `json:"depth" yaml:"depth"`
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`
}

// DefaultThresholds fit a door-sized portal.
var DefaultThresholds = Thresholds{Depth: 0.001, Width: 0.6, Height: 1.2}

// Validate rejects non-positive thresholds.
func (t Thresholds) Validate() error {
	if !(t.Depth > 0) || !(t.Width > 0) || !(t.Height > 0) {
		return errors.Wrapf(ErrInvalidThresholds, "depth=%v width=%v height=%v", t.Depth, t.Width, t.Height)
	}

	return nil
}

// Crossing holds a sample pair projected onto a portal frame.
type Crossing struct {
	FrontDst         float32
	PreviousFrontDst float32
	SideDst          float32
	HeightDst        float32
}

// Measure projects the current and previous samples onto entry's axes.
// entry must be a valid frame; see CheckCrossing.
func Measure(current, previous mgl32.Vec3, entry Frame) Crossing {
	toCurrent := current.Sub(entry.Position)
	toPrevious := previous.Sub(entry.Position)
	forward := entry.Forward()

	return Crossing{
		FrontDst:         forward.Dot(toCurrent),
		PreviousFrontDst: forward.Dot(toPrevious),
		SideDst:          entry.Right().Dot(toCurrent),
		HeightDst:        entry.Up().Dot(toCurrent),
	}
}

// Crossed reports a front-to-back transition inside the portal rectangle.
// The previous sample must not already be behind the band, so an agent
// lingering behind the surface does not retrigger.
func (c Crossing) Crossed(t Thresholds) bool {
	return c.FrontDst < t.Depth &&
		c.PreviousFrontDst >= -t.Depth &&
		abs(c.SideDst) <= t.Width &&
		abs(c.HeightDst) <= t.Height
}

// DidCross reports whether the move from previous to current crossed the
// surface of entry. Only the two endpoint samples are examined. entry and t
// are not checked; frames and thresholds held by a Pair already are.
func DidCross(current, previous mgl32.Vec3, entry Frame, t Thresholds) bool {
	return Measure(current, previous, entry).Crossed(t)
}

// CheckCrossing is DidCross for an unchecked frame and thresholds.
func CheckCrossing(current, previous mgl32.Vec3, entry Frame, t Thresholds) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}

	if err := t.Validate(); err != nil {
		return false, err
	}

	return DidCross(current, previous, entry, t), nil
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
