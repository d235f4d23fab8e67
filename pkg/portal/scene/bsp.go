package scene

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/galaco/bsp"
	"github.com/galaco/bsp/lumps"
	vpk "github.com/galaco/vpk2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/saiko-tech/bsp-portals/pkg/portal"
)

const (
	portalDoorClass = "linked_portal_door"

	// metres per Hammer unit
	defaultUnitScale = float32(0.0254)

	defaultDoorSize = float32(128)
)

// UnpairedPortalsError lists portal doors whose partner could not be found.
// The pairs that could be built are still returned alongside it.
type UnpairedPortalsError struct {
	unpaired []string
}

func (e UnpairedPortalsError) Error() string {
	return fmt.Sprintf(`unpaired portals: ("%s")`, strings.Join(e.unpaired, `", "`))
}

// Unpaired returns the targetnames of the unpaired doors.
func (e UnpairedPortalsError) Unpaired() []string {
	return e.unpaired
}

type bspOptions struct {
	unitScale float32
	depth     float32
}

// BSPOption configures how map entities are converted.
type BSPOption func(*bspOptions)

// WithUnitScale sets the number of metres per map unit.
func WithUnitScale(scale float32) BSPOption {
	return func(o *bspOptions) { o.unitScale = scale }
}

// WithDepthThreshold sets the crossing depth band of every loaded pair.
func WithDepthThreshold(depth float32) BSPOption {
	return func(o *bspOptions) { o.depth = depth }
}

// LoadBSP reads the linked_portal_door entities of a Source BSP map and
// links them into pairs by targetname/partnername.
func LoadBSP(path string, opts ...BSPOption) ([]*portal.Pair, error) {
	bspfile, err := bsp.ReadFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read bsp %q", path)
	}

	return pairsFromBSP(bspfile, opts...)
}

// LoadBSPFromVPK is LoadBSP for a map packed in a multi-part VPK archive.
// vpkPath is the archive's base path, e.g. "csgo/pak01".
func LoadBSPFromVPK(vpkPath, mapPath string, opts ...BSPOption) ([]*portal.Pair, error) {
	archive, err := vpk.Open(vpk.MultiVPK(vpkPath))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open vpk %q", vpkPath)
	}

	return LoadBSPFromArchive(archive, mapPath, opts...)
}

// LoadBSPFromArchive reads mapPath out of an already opened VPK archive.
func LoadBSPFromArchive(archive *vpk.VPK, mapPath string, opts ...BSPOption) ([]*portal.Pair, error) {
	if archive == nil {
		return nil, errors.Errorf("no archive to read %q from", mapPath)
	}

	f, err := archive.Open(mapPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q in vpk", mapPath)
	}
	defer f.Close()

	return LoadBSPFromStream(f, opts...)
}

// LoadBSPFromStream is LoadBSP for a map that is not on disk.
func LoadBSPFromStream(r io.Reader, opts ...BSPOption) ([]*portal.Pair, error) {
	bspfile, err := bsp.ReadFromStream(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bsp")
	}

	return pairsFromBSP(bspfile, opts...)
}

func pairsFromBSP(bspfile *bsp.Bsp, opts ...BSPOption) ([]*portal.Pair, error) {
	entData := bspfile.Lump(bsp.LumpEntities).(*lumps.EntData).GetData()

	return PairsFromEntities(entData, opts...)
}

type door struct {
	name, partner string
	frame         portal.Frame
	width, height float32
}

// PairsFromEntities builds portal pairs from the text of an entity lump.
func PairsFromEntities(entData string, opts ...BSPOption) ([]*portal.Pair, error) {
	o := bspOptions{unitScale: defaultUnitScale, depth: portal.DefaultThresholds.Depth}
	for _, opt := range opts {
		opt(&o)
	}

	var doors []door

	for _, ent := range parseEntities(entData) {
		if ent["classname"] != portalDoorClass {
			continue
		}

		d, err := parseDoor(ent, o.unitScale)
		if err != nil {
			return nil, errors.Wrapf(err, "portal door %q", ent["targetname"])
		}

		doors = append(doors, d)
	}

	byName := make(map[string]int, len(doors))
	for i, d := range doors {
		byName[d.name] = i
	}

	var (
		pairs    []*portal.Pair
		unpaired []string
		linked   = make(map[int]bool, len(doors))
	)

	for i, d := range doors {
		if linked[i] {
			continue
		}

		j, ok := byName[d.partner]
		if !ok || j == i || linked[j] {
			unpaired = append(unpaired, d.name)
			continue
		}

		t := portal.Thresholds{Depth: o.depth, Width: d.width / 2, Height: d.height / 2}

		pair, err := portal.NewPair(d.name, d.frame, doors[j].name, doors[j].frame, t)
		if err != nil {
			return nil, err
		}

		linked[i], linked[j] = true, true
		pairs = append(pairs, pair)
	}

	if len(unpaired) > 0 {
		return pairs, UnpairedPortalsError{unpaired: unpaired}
	}

	return pairs, nil
}

func parseDoor(ent map[string]string, scale float32) (door, error) {
	origin, err := parseVec3(ent["origin"])
	if err != nil {
		return door{}, errors.Wrap(err, "origin")
	}

	var angles mgl32.Vec3
	if s, ok := ent["angles"]; ok {
		if angles, err = parseVec3(s); err != nil {
			return door{}, errors.Wrap(err, "angles")
		}
	}

	width, err := parseFloat(ent, "width", defaultDoorSize)
	if err != nil {
		return door{}, err
	}

	height, err := parseFloat(ent, "height", defaultDoorSize)
	if err != nil {
		return door{}, err
	}

	forward, up := angleVectors(angles)

	frame, err := portal.LookFrame(fromSource(origin).Mul(scale), fromSource(forward), fromSource(up))
	if err != nil {
		return door{}, err
	}

	return door{
		name:    ent["targetname"],
		partner: ent["partnername"],
		frame:   frame,
		width:   width * scale,
		height:  height * scale,
	}, nil
}

// fromSource converts a Z-up map vector to the Y-up frame used by portal.
func fromSource(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], -v[1]}
}

// angleVectors returns the forward and up vectors of pitch/yaw/roll angles
// given in degrees, in map space.
func angleVectors(angles mgl32.Vec3) (forward, up mgl32.Vec3) {
	sp, cp := math.Sincos(float64(mgl32.DegToRad(angles[0])))
	sy, cy := math.Sincos(float64(mgl32.DegToRad(angles[1])))
	sr, cr := math.Sincos(float64(mgl32.DegToRad(angles[2])))

	forward = mgl32.Vec3{float32(cp * cy), float32(cp * sy), float32(-sp)}
	up = mgl32.Vec3{
		float32(cr*sp*cy + sr*sy),
		float32(cr*sp*sy - sr*cy),
		float32(cr * cp),
	}

	return forward, up
}

func parseVec3(s string) (v mgl32.Vec3, err error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return v, errors.Errorf("expected 3 components, got %q", s)
	}

	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return v, errors.Wrapf(err, "component %d", i)
		}

		v[i] = float32(x)
	}

	return v, nil
}

func parseFloat(ent map[string]string, key string, def float32) (float32, error) {
	s, ok := ent[key]
	if !ok {
		return def, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}

	return float32(f), nil
}
