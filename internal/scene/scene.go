// Package scene provides an in-memory scene graph implementing the host
// contracts. Instances share their source's mesh; transforms are stored as
// world matrices alongside the accumulated relative rotation and scale.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Faultbox/vertex-scatter/pkg/host"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// Scene errors.
var (
	ErrNotFound       = errors.New("object not found")
	ErrNotMesh        = errors.New("object has no mesh shape")
	ErrNotTransform   = errors.New("object is not a transform")
	ErrDuplicateName  = errors.New("object name already in use")
	ErrComponentRange = errors.New("component index out of range")
)

// Mesh is polygon data in object space. Faces list vertex indices
// counter-clockwise when seen from the front.
type Mesh struct {
	Vertices []math.Vec3
	Faces    [][]int
}

// Node is one object in the scene.
type Node struct {
	Name       host.ObjectID
	UUID       uuid.UUID
	Kind       host.ObjectKind
	Matrix     math.Mat4 // world transform
	Mesh       *Mesh     // nil for transforms without a shape
	InstanceOf host.ObjectID

	// Accumulated relative jitter, for inspection.
	Rotation math.Vec3 // degrees
	Scale    float64
}

// Scene is a flat, single-threaded scene graph.
type Scene struct {
	nodes     map[host.ObjectID]*Node
	order     []host.ObjectID
	selection []host.ObjectID

	// Fault, when set, is consulted before every mutation; a non-nil
	// return fails the operation.
	Fault func(op string, id host.ObjectID) error
}

var _ host.Scene = (*Scene)(nil)

// New creates an empty scene.
func New() *Scene {
	return &Scene{nodes: make(map[host.ObjectID]*Node)}
}

// AddTransform adds a transform node with no shape.
func (s *Scene) AddTransform(name host.ObjectID, m math.Mat4) (*Node, error) {
	return s.add(&Node{Name: name, Kind: host.KindTransform, Matrix: m})
}

// AddMesh adds a transform node carrying the given mesh.
func (s *Scene) AddMesh(name host.ObjectID, mesh *Mesh, m math.Mat4) (*Node, error) {
	return s.add(&Node{Name: name, Kind: host.KindTransform, Matrix: m, Mesh: mesh})
}

// AddOther adds a node that is not a transform (a material, a light shape...).
func (s *Scene) AddOther(name host.ObjectID) (*Node, error) {
	return s.add(&Node{Name: name, Kind: host.KindNonTransform, Matrix: math.Identity()})
}

func (s *Scene) add(n *Node) (*Node, error) {
	if _, ok := s.nodes[n.Name]; ok {
		return nil, fmt.Errorf("%s: %w", n.Name, ErrDuplicateName)
	}
	n.UUID = uuid.New()
	n.Scale = 1
	s.nodes[n.Name] = n
	s.order = append(s.order, n.Name)
	return n, nil
}

// Node returns the node with the given name.
func (s *Scene) Node(id host.ObjectID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// ByUUID resolves a node by its UUID.
func (s *Scene) ByUUID(u uuid.UUID) (host.ObjectID, bool) {
	for _, id := range s.order {
		if s.nodes[id].UUID == u {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int {
	return len(s.order)
}

// Names returns node names in creation order.
func (s *Scene) Names() []host.ObjectID {
	return slices.Clone(s.order)
}

// InstancesOf returns the instances created from id, in creation order.
func (s *Scene) InstancesOf(id host.ObjectID) []*Node {
	var out []*Node
	for _, name := range s.order {
		if n := s.nodes[name]; n.InstanceOf == id {
			out = append(out, n)
		}
	}
	return out
}

// Select replaces the selection. Order is preserved.
func (s *Scene) Select(ids ...host.ObjectID) error {
	for _, id := range ids {
		if _, ok := s.nodes[id]; !ok {
			return fmt.Errorf("select %s: %w", id, ErrNotFound)
		}
	}
	s.selection = slices.Clone(ids)
	return nil
}

// Selected implements host.Selection.
func (s *Scene) Selected() ([]host.ObjectID, error) {
	return slices.Clone(s.selection), nil
}

// Kind implements host.MeshQuery.
func (s *Scene) Kind(id host.ObjectID) host.ObjectKind {
	n, ok := s.nodes[id]
	if !ok {
		return host.KindUnresolvable
	}
	return n.Kind
}

// Vertices implements host.MeshQuery.
func (s *Scene) Vertices(id host.ObjectID) ([]host.VertexID, error) {
	n, err := s.mesh(id)
	if err != nil {
		return nil, err
	}
	out := make([]host.VertexID, len(n.Mesh.Vertices))
	for i := range out {
		out[i] = host.VertexID{Mesh: id, Index: i}
	}
	return out, nil
}

// VertexPosition implements host.MeshQuery.
func (s *Scene) VertexPosition(v host.VertexID) (math.Vec3, error) {
	n, err := s.mesh(v.Mesh)
	if err != nil {
		return math.Vec3{}, err
	}
	if v.Index < 0 || v.Index >= len(n.Mesh.Vertices) {
		return math.Vec3{}, fmt.Errorf("%s: %w", v, ErrComponentRange)
	}
	return n.Matrix.TransformPoint(n.Mesh.Vertices[v.Index]), nil
}

// AdjacentFaces implements host.MeshQuery.
func (s *Scene) AdjacentFaces(v host.VertexID) ([]host.FaceID, error) {
	n, err := s.mesh(v.Mesh)
	if err != nil {
		return nil, err
	}
	if v.Index < 0 || v.Index >= len(n.Mesh.Vertices) {
		return nil, fmt.Errorf("%s: %w", v, ErrComponentRange)
	}
	var faces []host.FaceID
	for i, face := range n.Mesh.Faces {
		if slices.Contains(face, v.Index) {
			faces = append(faces, host.FaceID{Mesh: v.Mesh, Index: i})
		}
	}
	return faces, nil
}

// FaceNormal implements host.FaceNormals. It uses Newell's method on the
// world-space polygon, so non-planar quads still get a sensible normal.
// Zero-area faces return the zero vector.
func (s *Scene) FaceNormal(f host.FaceID) (math.Vec3, error) {
	n, err := s.mesh(f.Mesh)
	if err != nil {
		return math.Vec3{}, err
	}
	if f.Index < 0 || f.Index >= len(n.Mesh.Faces) {
		return math.Vec3{}, fmt.Errorf("%s: %w", f, ErrComponentRange)
	}

	face := n.Mesh.Faces[f.Index]
	var normal math.Vec3
	for i := range face {
		cur := n.Matrix.TransformPoint(n.Mesh.Vertices[face[i]])
		next := n.Matrix.TransformPoint(n.Mesh.Vertices[face[(i+1)%len(face)]])
		normal.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		normal.Y += (cur.Z - next.Z) * (cur.X + next.X)
		normal.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return normal.Normalize(), nil
}

// Instance implements host.Mutator. The new node shares the source mesh and
// starts at the source's transform.
func (s *Scene) Instance(id host.ObjectID) (host.ObjectID, error) {
	if err := s.fault("instance", id); err != nil {
		return "", err
	}
	src, ok := s.nodes[id]
	if !ok {
		return "", fmt.Errorf("instance %s: %w", id, ErrNotFound)
	}
	if src.Kind != host.KindTransform {
		return "", fmt.Errorf("instance %s: %w", id, ErrNotTransform)
	}

	source := id
	if src.InstanceOf != "" {
		source = src.InstanceOf
	}
	n, err := s.add(&Node{
		Name:       s.nextName(id),
		Kind:       host.KindTransform,
		Matrix:     src.Matrix,
		Mesh:       src.Mesh,
		InstanceOf: source,
	})
	if err != nil {
		return "", err
	}
	return n.Name, nil
}

// SetWorldPosition implements host.Mutator.
func (s *Scene) SetWorldPosition(id host.ObjectID, pos math.Vec3) error {
	n, err := s.mutable("move", id)
	if err != nil {
		return err
	}
	n.Matrix = n.Matrix.WithTranslation(pos)
	return nil
}

// SetWorldMatrix implements host.Mutator.
func (s *Scene) SetWorldMatrix(id host.ObjectID, m math.Mat4) error {
	n, err := s.mutable("xform", id)
	if err != nil {
		return err
	}
	n.Matrix = m
	return nil
}

// RotateRelative implements host.Mutator. The rotation is applied in
// object space, so the translation row is untouched.
func (s *Scene) RotateRelative(id host.ObjectID, degrees math.Vec3) error {
	n, err := s.mutable("rotate", id)
	if err != nil {
		return err
	}
	n.Matrix = math.RotateEuler(degrees).Mul(n.Matrix)
	n.Rotation = n.Rotation.Add(degrees)
	return nil
}

// ScaleRelative implements host.Mutator.
func (s *Scene) ScaleRelative(id host.ObjectID, factor float64) error {
	n, err := s.mutable("scale", id)
	if err != nil {
		return err
	}
	n.Matrix = math.Scale(factor, factor, factor).Mul(n.Matrix)
	n.Scale *= factor
	return nil
}

// Delete implements host.Mutator.
func (s *Scene) Delete(id host.ObjectID) error {
	if err := s.fault("delete", id); err != nil {
		return err
	}
	if _, ok := s.nodes[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(n host.ObjectID) bool { return n == id })
	s.selection = slices.DeleteFunc(s.selection, func(n host.ObjectID) bool { return n == id })
	return nil
}

func (s *Scene) mesh(id host.ObjectID) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if n.Mesh == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrNotMesh)
	}
	return n, nil
}

func (s *Scene) mutable(op string, id host.ObjectID) (*Node, error) {
	if err := s.fault(op, id); err != nil {
		return nil, err
	}
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	if n.Kind != host.KindTransform {
		return nil, fmt.Errorf("%s %s: %w", op, id, ErrNotTransform)
	}
	return n, nil
}

func (s *Scene) fault(op string, id host.ObjectID) error {
	if s.Fault == nil {
		return nil
	}
	return s.Fault(op, id)
}

// nextName picks the first free "<base><n>" name, where base is id with
// its trailing digits removed.
func (s *Scene) nextName(id host.ObjectID) host.ObjectID {
	base := strings.TrimRight(string(id), "0123456789")
	for i := 1; ; i++ {
		name := host.ObjectID(base + strconv.Itoa(i))
		if _, taken := s.nodes[name]; !taken {
			return name
		}
	}
}
