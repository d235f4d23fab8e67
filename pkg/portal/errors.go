package portal

import "github.com/pkg/errors"

var (
	// ErrDegenerateFrame is returned for frames with a zero-length basis or a
	// non-unit rotation.
	ErrDegenerateFrame = errors.New("degenerate portal frame")
	// ErrDegeneratePose is returned when a pose rotation is not a unit quaternion.
	ErrDegeneratePose = errors.New("degenerate pose")
	// ErrInvalidThresholds is returned when a crossing threshold is not positive.
	ErrInvalidThresholds = errors.New("invalid crossing thresholds")
	// ErrSamePortal is returned when both ends of a pair share one surface.
	ErrSamePortal = errors.New("entry and exit refer to the same portal")
)
