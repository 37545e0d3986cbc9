package scatter

import (
	"fmt"
	"iter"

	"github.com/Faultbox/vertex-scatter/pkg/host"
)

// Vertices resolves the target's vertex list once and returns it as a
// sequence. The order is the host's and stays fixed for the returned value.
func Vertices(q host.MeshQuery, target host.ObjectID) (iter.Seq[host.VertexID], int, error) {
	if kind := q.Kind(target); kind != host.KindTransform {
		return nil, 0, fmt.Errorf("%w: target %s is %s", ErrInvalidMesh, target, kind)
	}
	verts, err := q.Vertices(target)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: target %s: %w", ErrInvalidMesh, target, err)
	}

	seq := func(yield func(host.VertexID) bool) {
		for _, v := range verts {
			if !yield(v) {
				return
			}
		}
	}
	return seq, len(verts), nil
}
