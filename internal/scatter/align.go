package scatter

import (
	"fmt"

	"github.com/Faultbox/vertex-scatter/pkg/host"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// Up is the world reference the tangent frame is built against.
var Up = math.YAxis

// fallbackRef replaces Up when the normal is parallel to it. Chosen so a
// +Y normal produces the identity basis.
var fallbackRef = math.Vec3{X: -1}

const (
	// Minimum length of a summed normal before it counts as a direction.
	degenerateLength = 1e-9
	// Minimum |n x Up| for Up to be a usable reference.
	parallelLength = 1e-6
)

// Frame is the orthonormal basis of a surface point.
type Frame struct {
	Normal    math.Vec3
	Tangent   math.Vec3 // normal x up
	Bitangent math.Vec3 // normal x tangent
}

// AverageNormal returns the normalized, count-weighted average of the
// given face normals. Each normal contributes as a unit vector.
func AverageNormal(normals []math.Vec3) (math.Vec3, error) {
	var sum math.Vec3
	for _, n := range normals {
		sum = sum.Add(n.Normalize())
	}
	if sum.Length() < degenerateLength {
		return math.Vec3{}, fmt.Errorf("%w: %d face normals sum to zero", ErrAlignmentDegenerate, len(normals))
	}
	return sum.Normalize(), nil
}

// NewFrame derives a tangent frame from a surface normal.
func NewFrame(normal math.Vec3) (Frame, error) {
	n := normal.Normalize()
	if n.Length() < degenerateLength {
		return Frame{}, fmt.Errorf("%w: zero normal", ErrAlignmentDegenerate)
	}

	t := n.Cross(Up)
	if t.Length() < parallelLength {
		t = n.Cross(fallbackRef)
	}
	t = t.Normalize()

	return Frame{
		Normal:    n,
		Tangent:   t,
		Bitangent: n.Cross(t).Normalize(),
	}, nil
}

// Matrix returns the world matrix placing the frame at pos. Rows are
// bitangent, normal, tangent, pos, so the object's Y axis follows the normal.
func (f Frame) Matrix(pos math.Vec3) math.Mat4 {
	return math.FromRows(f.Bitangent, f.Normal, f.Tangent, pos)
}

// SurfaceFrame computes the frame at a vertex from its adjacent faces.
func SurfaceFrame(q host.MeshQuery, fn host.FaceNormals, v host.VertexID) (Frame, error) {
	faces, err := q.AdjacentFaces(v)
	if err != nil {
		return Frame{}, fmt.Errorf("faces of %s: %w", v, err)
	}

	normals := make([]math.Vec3, 0, len(faces))
	for _, f := range faces {
		n, err := fn.FaceNormal(f)
		if err != nil {
			return Frame{}, fmt.Errorf("normal of %s: %w", f, err)
		}
		normals = append(normals, n)
	}

	avg, err := AverageNormal(normals)
	if err != nil {
		return Frame{}, fmt.Errorf("%s: %w", v, err)
	}
	return NewFrame(avg)
}
