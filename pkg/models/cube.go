package models

import "github.com/taigrr/spincube/pkg/math3d"

// cubeFaces lists the unit cube two triangles per face. Every triangle is
// wound so that (P1-P0) × (P2-P0) points out of the cube.
var cubeFaces = [12][3][3]float64{
	// South (z = 0)
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	{{0, 0, 0}, {1, 1, 0}, {1, 0, 0}},

	// East (x = 1)
	{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	{{1, 0, 0}, {1, 1, 1}, {1, 0, 1}},

	// North (z = 1)
	{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	{{1, 0, 1}, {0, 1, 1}, {0, 0, 1}},

	// West (x = 0)
	{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	{{0, 0, 1}, {0, 1, 0}, {0, 0, 0}},

	// Top (y = 1)
	{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}},
	{{0, 1, 0}, {1, 1, 1}, {1, 1, 0}},

	// Bottom (y = 0)
	{{1, 0, 1}, {0, 0, 1}, {0, 0, 0}},
	{{1, 0, 1}, {0, 0, 0}, {1, 0, 0}},
}

// Cube returns the unit cube with corners at (0,0,0) and (1,1,1).
func Cube() *Mesh {
	mesh := NewMesh("cube")
	for _, f := range cubeFaces {
		mesh.Add(Tri(
			math3d.V3(f[0][0], f[0][1], f[0][2]),
			math3d.V3(f[1][0], f[1][1], f[1][2]),
			math3d.V3(f[2][0], f[2][1], f[2][2]),
		))
	}
	mesh.CalculateBounds()
	return mesh
}

// LoadCube adapts Cube to the loader signature used by the pipeline.
func LoadCube() (*Mesh, error) {
	return Cube(), nil
}
