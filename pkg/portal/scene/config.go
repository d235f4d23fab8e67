// Package scene builds portal pairs from scene descriptions: YAML or JSON
// configuration files and the entity lump of Source BSP maps.
package scene

import (
	"encoding/json"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saiko-tech/bsp-portals/pkg/portal"
)

// Config describes every portal pair of a scene.
type Config struct {
	Pairs []PairConfig `json:"pairs" yaml:"pairs"`
}

// PairConfig describes two linked portals. Thresholds default to
// portal.DefaultThresholds when omitted.
type PairConfig struct {
	Name       string             `json:"name" yaml:"name"`
	A          FrameConfig        `json:"a" yaml:"a"`
	B          FrameConfig        `json:"b" yaml:"b"`
	Thresholds *portal.Thresholds `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
}

// FrameConfig places one portal surface. Up defaults to +Y.
type FrameConfig struct {
	Name     string      `json:"name" yaml:"name"`
	Position [3]float32  `json:"position" yaml:"position"`
	Forward  [3]float32  `json:"forward" yaml:"forward"`
	Up       *[3]float32 `json:"up,omitempty" yaml:"up,omitempty"`
}

// LoadJSON loads config from JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene json")
	}

	return &c, nil
}

// LoadYAML loads config from YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene yaml")
	}

	return &c, nil
}

// Frame converts the configuration to a portal frame.
func (f FrameConfig) Frame() (portal.Frame, error) {
	up := mgl32.Vec3{0, 1, 0}
	if f.Up != nil {
		up = mgl32.Vec3(*f.Up)
	}

	return portal.LookFrame(mgl32.Vec3(f.Position), mgl32.Vec3(f.Forward), up)
}

// Build validates every pair and links its portals.
func (c *Config) Build() ([]*portal.Pair, error) {
	pairs := make([]*portal.Pair, 0, len(c.Pairs))

	for i, pc := range c.Pairs {
		pair, err := pc.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "pair %d (%q)", i, pc.Name)
		}

		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// Build validates the pair and links its portals.
func (pc PairConfig) Build() (*portal.Pair, error) {
	a, err := pc.A.Frame()
	if err != nil {
		return nil, errors.Wrap(err, "portal a")
	}

	b, err := pc.B.Frame()
	if err != nil {
		return nil, errors.Wrap(err, "portal b")
	}

	t := portal.DefaultThresholds
	if pc.Thresholds != nil {
		t = *pc.Thresholds
	}

	return portal.NewPair(nameOr(pc.A.Name, pc.Name+"/a"), a, nameOr(pc.B.Name, pc.Name+"/b"), b, t)
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}

	return fallback
}
