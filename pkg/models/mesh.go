// Package models provides the triangle meshes spincube renders.
package models

import (
	"image/color"

	"github.com/taigrr/spincube/pkg/math3d"
)

// Triangle is three vertices in a fixed winding order plus the color
// assigned to it once shading has run.
//
// Winding matters: the outward normal is (P1-P0) × (P2-P0), and the
// pipeline's back-face test depends on it.
type Triangle struct {
	P     [3]math3d.Vec3
	Color color.RGBA
}

// Tri creates a triangle from three vertices.
func Tri(p0, p1, p2 math3d.Vec3) Triangle {
	return Triangle{P: [3]math3d.Vec3{p0, p1, p2}}
}

// Transform returns the triangle with every vertex transformed by m.
// Vertex order and color are preserved.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	for i := range t.P {
		t.P[i] = m.MulVec3(t.P[i])
	}
	return t
}

// Translate returns the triangle with offset added to every vertex.
func (t Triangle) Translate(offset math3d.Vec3) Triangle {
	for i := range t.P {
		t.P[i] = t.P[i].Add(offset)
	}
	return t
}

// Edges returns the two edge vectors sharing vertex 0.
func (t Triangle) Edges() (line1, line2 math3d.Vec3) {
	return t.P[1].Sub(t.P[0]), t.P[2].Sub(t.P[0])
}

// Normal returns the unit face normal. Degenerate triangles yield NaN.
func (t Triangle) Normal() math3d.Vec3 {
	line1, line2 := t.Edges()
	return line1.Cross(line2).Normalize()
}

// Degenerate reports whether the triangle has zero area.
func (t Triangle) Degenerate() bool {
	line1, line2 := t.Edges()
	return line1.Cross(line2).Len() == 0
}

// Mesh is an ordered list of triangles in model space.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// Add appends triangles to the mesh.
func (m *Mesh) Add(tris ...Triangle) {
	m.Triangles = append(m.Triangles, tris...)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices (three per triangle, unshared).
func (m *Mesh) VertexCount() int {
	return 3 * len(m.Triangles)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].P[0]
	m.BoundsMax = m.Triangles[0].P[0]

	for _, t := range m.Triangles {
		for _, p := range t.P {
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Transform applies a transformation matrix to all vertices.
// Only meant for preparing a mesh before it is handed to a pipeline.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Transform(mat)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its
// longest side equals size. Empty or flat-to-a-point meshes are left alone.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	if maxDim <= 0 {
		return
	}

	// Translate to origin first, then scale (row-vector order)
	m.Transform(math3d.Translate(m.Center().Negate()).Mul(math3d.ScaleUniform(size / maxDim)))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}
