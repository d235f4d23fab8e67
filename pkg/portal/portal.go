package portal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/bsp-portals/pkg/portal/collision"
)

// Portal is one surface of a Pair.
type Portal struct {
	Name string

	frame  Frame
	pair   *Portal
	camera *Camera

	// set by trigger-volume events, read every render tick
	nearObserver bool
}

func (p *Portal) Frame() Frame { return p.frame }

// Pair returns the portal this one leads to.
func (p *Portal) Pair() *Portal { return p.pair }

// Camera returns the destination camera that renders the view through p.
// It sits at the paired surface.
func (p *Portal) Camera() *Camera { return p.camera }

// NearObserver reports whether the observer is inside p's proximity volume.
func (p *Portal) NearObserver() bool { return p.nearObserver }

// Rectangle returns the crossing region of p as a quad.
func (p *Portal) Rectangle(t Thresholds) collision.Rectangle {
	return collision.Rectangle{
		Center:     p.frame.Position,
		Right:      p.frame.Right(),
		Up:         p.frame.Up(),
		HalfWidth:  t.Width,
		HalfHeight: t.Height,
	}
}

// Pair links two portals symmetrically: walking into A leaves through B and
// walking into B leaves through A.
type Pair struct {
	A, B       *Portal
	Thresholds Thresholds
}

// NewPair validates both frames and the thresholds and links the portals.
func NewPair(nameA string, a Frame, nameB string, b Frame, t Thresholds) (*Pair, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrapf(err, "portal %q", nameA)
	}

	if err := b.Validate(); err != nil {
		return nil, errors.Wrapf(err, "portal %q", nameB)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if a.ApproxEqual(b) {
		return nil, errors.Wrapf(ErrSamePortal, "%q and %q", nameA, nameB)
	}

	pa := &Portal{Name: nameA, frame: a}
	pb := &Portal{Name: nameB, frame: b}
	pa.pair, pb.pair = pb, pa

	proj := DefaultProjection()
	pa.camera = NewCamera(Pose{Position: b.Position, Rotation: b.Rotation}, proj)
	pb.camera = NewCamera(Pose{Position: a.Position, Rotation: a.Rotation}, proj)

	return &Pair{A: pa, B: pb, Thresholds: t}, nil
}

// Portals returns both ends, A first.
func (p *Pair) Portals() [2]*Portal {
	return [2]*Portal{p.A, p.B}
}

// Ray is a half line.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// TransferRay finds the first portal whose front face the ray hits and
// returns the continuation of the ray out of the paired portal, along with
// the portal that was entered.
func (p *Pair) TransferRay(r Ray) (Ray, *Portal, bool) {
	var (
		best    collision.RayCastResult
		entered *Portal
	)

	for _, entry := range p.Portals() {
		if r.Direction.Dot(entry.frame.Forward()) >= 0 {
			continue // back face
		}

		res := collision.RayIntersectsRectangle(r.Origin, r.Direction, entry.Rectangle(p.Thresholds))
		if res.Hit && (entered == nil || res.T < best.T) {
			best, entered = res, entry
		}
	}

	if entered == nil {
		return Ray{}, nil, false
	}

	exit := entered.pair.frame

	return Ray{
		Origin:    MirrorPoint(best.Point, entered.frame, exit),
		Direction: MirrorDirection(r.Direction, entered.frame, exit),
	}, entered, true
}
