package portal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Body is the locomotion system's handle on something that can walk through
// portals.
type Body interface {
	Pose() Pose
	SetPose(Pose)
}

// VelocityBody is a Body whose velocity is turned along with it.
type VelocityBody interface {
	Body
	Velocity() mgl32.Vec3
	SetVelocity(mgl32.Vec3)
}

// History keeps the last two movement samples of an agent.
type History struct {
	Previous Pose
	Current  Pose
}

// Advance shifts Current into Previous and stores the new sample.
func (h *History) Advance(p Pose) {
	h.Previous = h.Current
	h.Current = p
}

// Agent is an observed body together with its own sample history.
type Agent struct {
	ID uuid.UUID

	body    Body
	history History

	// portal the agent last came out of, until it leaves its depth band
	arrived *Portal
}

// NewAgent samples body once so the first crossing check compares the spawn
// pose with itself.
func NewAgent(body Body) *Agent {
	p := body.Pose()

	return &Agent{
		ID:      uuid.New(),
		body:    body,
		history: History{Previous: p, Current: p},
	}
}

func (a *Agent) Body() Body       { return a.body }
func (a *Agent) History() History { return a.history }

// teleport moves the agent from entry to its pair. Everything is computed
// before anything is written, so a failure leaves the agent untouched.
func (a *Agent) teleport(entry *Portal) (Pose, error) {
	exit := entry.pair.frame

	current, err := Mirror(a.history.Current, entry.frame, exit)
	if err != nil {
		return Pose{}, err
	}

	previous, err := Mirror(a.history.Previous, entry.frame, exit)
	if err != nil {
		return Pose{}, err
	}

	a.body.SetPose(current)

	if vb, ok := a.body.(VelocityBody); ok {
		vb.SetVelocity(MirrorDirection(vb.Velocity(), entry.frame, exit))
	}

	// both samples move so the pair stays a valid step on the exit side
	a.history = History{Previous: previous, Current: current}
	a.arrived = entry.pair

	return current, nil
}

// settle releases the arrival guard once the agent has left the depth band
// of the portal it came out of.
func (a *Agent) settle(t Thresholds) {
	if a.arrived == nil {
		return
	}

	if a.arrived.frame.Forward().Dot(a.history.Current.Position.Sub(a.arrived.frame.Position)) >= t.Depth {
		a.arrived = nil
	}
}

// crossed runs the crossing test of entry against the agent's history. A
// mirrored pose lands inside the exit portal's depth band, so until settle
// releases it the exit portal only triggers on movement towards its back.
func (a *Agent) crossed(entry *Portal, t Thresholds) bool {
	m := Measure(a.history.Current.Position, a.history.Previous.Position, entry.frame)

	if a.arrived == entry && m.FrontDst >= m.PreviousFrontDst {
		return false
	}

	return m.Crossed(t)
}
