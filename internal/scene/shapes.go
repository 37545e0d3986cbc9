package scene

import "github.com/Faultbox/vertex-scatter/pkg/math"

// Quad returns a single square face of the given size in the XZ plane,
// facing +Y.
func Quad(size float64) *Mesh {
	h := size / 2
	return &Mesh{
		Vertices: []math.Vec3{
			{X: -h, Y: 0, Z: h},
			{X: h, Y: 0, Z: h},
			{X: h, Y: 0, Z: -h},
			{X: -h, Y: 0, Z: -h},
		},
		Faces: [][]int{{0, 1, 2, 3}},
	}
}

// Cube returns an axis-aligned cube centred on the origin with outward
// facing quads.
func Cube(size float64) *Mesh {
	h := size / 2
	return &Mesh{
		Vertices: []math.Vec3{
			{X: -h, Y: -h, Z: -h},
			{X: h, Y: -h, Z: -h},
			{X: h, Y: h, Z: -h},
			{X: -h, Y: h, Z: -h},
			{X: -h, Y: -h, Z: h},
			{X: h, Y: -h, Z: h},
			{X: h, Y: h, Z: h},
			{X: -h, Y: h, Z: h},
		},
		Faces: [][]int{
			{0, 3, 2, 1}, // -Z
			{4, 5, 6, 7}, // +Z
			{0, 1, 5, 4}, // -Y
			{3, 7, 6, 2}, // +Y
			{0, 4, 7, 3}, // -X
			{1, 2, 6, 5}, // +X
		},
	}
}

// Grid returns a cols x rows lattice of vertices in the XZ plane joined by
// +Y facing quads. Vertex (i, j) has index j*cols+i.
func Grid(cols, rows int, spacing float64) *Mesh {
	m := &Mesh{}
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			m.Vertices = append(m.Vertices, math.Vec3{X: float64(i) * spacing, Z: float64(j) * spacing})
		}
	}
	for j := 0; j+1 < rows; j++ {
		for i := 0; i+1 < cols; i++ {
			a := j*cols + i
			m.Faces = append(m.Faces, []int{a, a + cols, a + cols + 1, a + 1})
		}
	}
	return m
}
