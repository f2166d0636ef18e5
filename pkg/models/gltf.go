package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/spincube/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into a triangle soup Mesh.
type GLTFLoader struct {
	// FlipY mirrors the model vertically so that model "up" ends up at the
	// top of the screen (screen y grows downward). Winding is swapped at the
	// same time to keep normals pointing out of the surface.
	FlipY bool

	// FitSize, when positive, recenters the mesh on the origin and scales
	// its longest side to this length.
	FitSize float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FlipY:   true,
		FitSize: 1.5,
	}
}

// LoadGLB loads a binary GLTF (.glb) or .gltf file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s: no triangles", filepath.Base(path))
	}
	return mesh, nil
}

// FromDocument extracts every triangle primitive of doc into a Mesh.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.FitSize > 0 {
		mesh.Fit(l.FitSize)
	} else {
		mesh.CalculateBounds()
	}
	return mesh, nil
}

// processMesh appends the triangles of one GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips, fans)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var tri Triangle
			for j := range 3 {
				idx := int(indices[i+j])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d positions)", idx, len(positions))
				}
				p := positions[idx]
				tri.P[j] = math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
			}

			if l.FlipY {
				for j := range tri.P {
					tri.P[j].Y = -tri.P[j].Y
				}
				// Mirroring reverses orientation, swap to stay outward-facing
				tri.P[1], tri.P[2] = tri.P[2], tri.P[1]
			}

			// Zero-area faces have no normal; drop them here rather than
			// let them turn into NaN in the pipeline.
			if tri.Degenerate() {
				continue
			}
			mesh.Add(tri)
		}
	}

	return nil
}
