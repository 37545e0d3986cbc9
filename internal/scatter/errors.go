package scatter

import "errors"

// Scatter errors. Callers match with errors.Is; the wrapped message carries
// the object names involved.
var (
	// ErrInvalidSelection means the selection did not hold exactly two objects.
	ErrInvalidSelection = errors.New("select exactly two objects")
	// ErrInvalidMesh means the source is not a placeable transform or the
	// target does not resolve to mesh data.
	ErrInvalidMesh = errors.New("invalid mesh")
	// ErrAlignmentDegenerate means the adjacent face normals of a vertex
	// cancel out, leaving no direction to align to.
	ErrAlignmentDegenerate = errors.New("degenerate surface normal")
	// ErrInvalidConfig means a min/max range is inverted or not a number.
	ErrInvalidConfig = errors.New("invalid scatter config")
	// ErrBusy means a run was started while another was in progress.
	ErrBusy = errors.New("scatter already running")
)
