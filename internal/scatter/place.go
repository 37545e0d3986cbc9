package scatter

import (
	"fmt"

	"github.com/Faultbox/vertex-scatter/pkg/host"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// Place instances source and moves the instance to the vertex's world
// position. When the instance is created but cannot be moved, its id is
// still returned so the caller can clean it up.
func Place(m host.Mutator, q host.MeshQuery, source host.ObjectID, v host.VertexID) (host.ObjectID, math.Vec3, error) {
	pos, err := q.VertexPosition(v)
	if err != nil {
		return "", math.Vec3{}, fmt.Errorf("position of %s: %w", v, err)
	}

	inst, err := m.Instance(source)
	if err != nil {
		return "", math.Vec3{}, fmt.Errorf("instancing %s: %w", source, err)
	}
	if err := m.SetWorldPosition(inst, pos); err != nil {
		return inst, math.Vec3{}, fmt.Errorf("moving %s to %s: %w", inst, v, err)
	}
	return inst, pos, nil
}
