package portal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Eye is the observer's own camera.
type Eye interface {
	Pose() Pose
}

// Gate tells whether movement input is currently live.
type Gate interface {
	Active() bool
}

// GateFunc adapts a function to Gate.
type GateFunc func() bool

func (f GateFunc) Active() bool { return f() }

// Teleport describes one agent passing through a portal.
type Teleport struct {
	Agent *Agent
	Entry *Portal
	From  Pose
	To    Pose
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithGate makes movement ticks a no-op while g is inactive.
func WithGate(g Gate) Option {
	return func(c *Controller) { c.gate = g }
}

// WithBaseProjection sets the symmetric projection of both destination
// cameras.
func WithBaseProjection(m mgl32.Mat4) Option {
	return func(c *Controller) {
		for _, p := range c.pair.Portals() {
			p.camera.SetBaseProjection(m)
		}
	}
}

// Controller drives one portal pair: it teleports agents that cross either
// surface and keeps both destination cameras in sync with the observer.
// It is not safe for concurrent use.
type Controller struct {
	pair   *Pair
	eye    Eye
	gate   Gate
	logger *zap.Logger
	agents []*Agent
}

func NewController(pair *Pair, eye Eye, opts ...Option) (*Controller, error) {
	if pair == nil || pair.A == nil || pair.B == nil {
		return nil, errors.New("portal pair is required")
	}

	if eye == nil {
		return nil, errors.New("observer eye is required")
	}

	c := &Controller{
		pair:   pair,
		eye:    eye,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Controller) Pair() *Pair { return c.pair }

// AddAgent starts observing body.
func (c *Controller) AddAgent(body Body) *Agent {
	a := NewAgent(body)
	c.agents = append(c.agents, a)

	c.logger.Debug("agent added", zap.String("agent", a.ID.String()))

	return a
}

func (c *Controller) Agents() []*Agent { return c.agents }

// EnterProximity records that the observer entered p's proximity volume.
// Portals of other pairs are ignored.
func (c *Controller) EnterProximity(p *Portal) { c.setNearObserver(p, true) }

// ExitProximity records that the observer left p's proximity volume.
func (c *Controller) ExitProximity(p *Portal) { c.setNearObserver(p, false) }

func (c *Controller) setNearObserver(p *Portal, near bool) {
	if p == nil || (p != c.pair.A && p != c.pair.B) {
		c.logger.Debug("proximity event for foreign portal ignored")
		return
	}

	p.nearObserver = near
}

// MovementTick samples every agent once and teleports those that crossed
// a surface since the previous tick. Both surfaces are checked.
func (c *Controller) MovementTick() ([]Teleport, error) {
	if c.gate != nil && !c.gate.Active() {
		return nil, nil
	}

	var (
		teleports []Teleport
		errs      error
	)

	for _, a := range c.agents {
		a.history.Advance(a.body.Pose())
		a.settle(c.pair.Thresholds)

		for _, entry := range c.pair.Portals() {
			h := a.history
			if !a.crossed(entry, c.pair.Thresholds) {
				continue
			}

			to, err := a.teleport(entry)
			if err != nil {
				c.logger.Warn("teleport rejected",
					zap.String("agent", a.ID.String()),
					zap.String("entry", entry.Name),
					zap.Error(err))
				errs = multierr.Append(errs, errors.Wrapf(err, "agent %s through %q", a.ID, entry.Name))

				break
			}

			c.logger.Info("teleported",
				zap.String("agent", a.ID.String()),
				zap.String("entry", entry.Name),
				zap.String("exit", entry.pair.Name),
				zap.Float32s("position", to.Position[:]))

			teleports = append(teleports, Teleport{Agent: a, Entry: entry, From: h.Current, To: to})

			break
		}
	}

	return teleports, errs
}

// RenderTick places each portal's destination camera at the mirror of eye
// and refreshes its clip projection. A rejected transform keeps the camera's
// previous pose and projection.
func (c *Controller) RenderTick(eye Pose) error {
	var errs error

	for _, p := range c.pair.Portals() {
		exit := p.pair.frame

		pose, err := Mirror(eye, p.frame, exit)
		if err != nil {
			c.logger.Warn("camera sync rejected", zap.String("portal", p.Name), zap.Error(err))
			errs = multierr.Append(errs, errors.Wrapf(err, "portal %q", p.Name))

			continue
		}

		proj, err := ClipProjection(exit, p.camera.base, viewMatrix(pose), p.nearObserver)
		if err != nil {
			c.logger.Warn("clip update rejected", zap.String("portal", p.Name), zap.Error(err))
			errs = multierr.Append(errs, errors.Wrapf(err, "portal %q", p.Name))

			continue
		}

		p.camera.pose = pose
		p.camera.projection = proj
	}

	return errs
}

// Tick runs one movement tick followed by one render tick. The render uses
// the observer pose sampled before any teleport of this tick.
func (c *Controller) Tick() ([]Teleport, error) {
	eye := c.eye.Pose()

	teleports, err := c.MovementTick()

	return teleports, multierr.Append(err, c.RenderTick(eye))
}
