// Package host defines the contracts the scatter core needs from a 3D host
// application: reading the selection, querying mesh data and mutating the
// scene graph. The core never reaches for host state any other way.
package host

import (
	"fmt"

	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// ObjectID identifies a node in the host scene (e.g. "pCube1").
type ObjectID string

// ObjectKind is the closed set of answers a host gives about an object.
type ObjectKind int

const (
	KindUnresolvable ObjectKind = iota // No such object
	KindTransform                      // Placeable transform node
	KindNonTransform                   // Exists but cannot be instanced (shape, light, set...)
)

// String returns a human-readable kind name.
func (k ObjectKind) String() string {
	switch k {
	case KindUnresolvable:
		return "Unresolvable"
	case KindTransform:
		return "Transform"
	case KindNonTransform:
		return "NonTransform"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// VertexID addresses one vertex of a mesh.
type VertexID struct {
	Mesh  ObjectID
	Index int
}

// String formats the vertex the way hosts name components.
func (v VertexID) String() string {
	return fmt.Sprintf("%s.vtx[%d]", v.Mesh, v.Index)
}

// FaceID addresses one face of a mesh.
type FaceID struct {
	Mesh  ObjectID
	Index int
}

// String formats the face the way hosts name components.
func (f FaceID) String() string {
	return fmt.Sprintf("%s.f[%d]", f.Mesh, f.Index)
}

// Selection returns the currently selected objects in selection order.
type Selection interface {
	Selected() ([]ObjectID, error)
}

// MeshQuery answers questions about objects and their mesh data.
// Positions are in world space.
type MeshQuery interface {
	Kind(id ObjectID) ObjectKind
	Vertices(id ObjectID) ([]VertexID, error)
	VertexPosition(v VertexID) (math.Vec3, error)
	AdjacentFaces(v VertexID) ([]FaceID, error)
}

// FaceNormals returns world-space face normals.
type FaceNormals interface {
	FaceNormal(f FaceID) (math.Vec3, error)
}

// Mutator creates, transforms and deletes scene objects.
type Mutator interface {
	// Instance creates a new instance sharing the geometry of id.
	Instance(id ObjectID) (ObjectID, error)
	// SetWorldPosition moves the object to an absolute world position.
	SetWorldPosition(id ObjectID, pos math.Vec3) error
	// SetWorldMatrix replaces the object's world transform.
	SetWorldMatrix(id ObjectID, m math.Mat4) error
	// RotateRelative adds an XYZ rotation, in degrees, in object space.
	RotateRelative(id ObjectID, degrees math.Vec3) error
	// ScaleRelative multiplies the object's scale uniformly on all axes.
	ScaleRelative(id ObjectID, factor float64) error
	Delete(id ObjectID) error
}

// Scene bundles every contract; most hosts implement all of them on one type.
type Scene interface {
	Selection
	MeshQuery
	FaceNormals
	Mutator
}
