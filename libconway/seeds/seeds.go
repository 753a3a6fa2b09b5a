// Package seeds builds the starting polyhedra a notation's operators are applied to.
package seeds

import (
	"math"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/geom"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Make returns a new outward-oriented seed polyhedron centered on the origin.
//
// The Platonic seeds are T, C, O, I and D. P, A and Y make an n-gonal prism, antiprism and pyramid,
// and require size >= 3.
func Make(letter byte, size int) (*conway.Mesh, error) {
	var M *conway.Mesh
	switch letter {
	case 'T':
		M = tetrahedron()
	case 'C':
		M = cube()
	case 'O':
		M = octahedron()
	case 'I':
		M = icosahedron()
	case 'D':
		M = dodecahedron()
	case 'P', 'A', 'Y':
		if size < conway.MinParam {
			return nil, errors.Wrapf(conway.ErrSeedSizeTooSmall, "seed %c(%d)", letter, size)
		}
		switch letter {
		case 'P':
			M = prism(size)
		case 'A':
			M = antiprism(size)
		default:
			M = pyramid(size)
		}
	default:
		return nil, errors.Wrapf(conway.ErrUnknownSeed, "seed %q", letter)
	}

	geom.CentroidToOrigin(M)
	geom.Orient(M)
	return M, nil
}

func tetrahedron() *conway.Mesh {
	return conway.NewMesh(
		[]r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}},
		[][]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}, {1, 3, 2}},
	)
}

func cube() *conway.Mesh {
	return conway.NewMesh(
		[]r3.Vec{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		[][]int{
			{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
			{2, 3, 7, 6}, {1, 2, 6, 5}, {0, 4, 7, 3},
		},
	)
}

func octahedron() *conway.Mesh {
	return conway.NewMesh(
		[]r3.Vec{
			{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
		},
		[][]int{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
	)
}

func icosahedron() *conway.Mesh {
	phi := (1 + math.Sqrt(5)) / 2
	verts := make([]r3.Vec, 0, 12)
	for _, s1 := range [2]float64{1, -1} {
		for _, s2 := range [2]float64{1, -1} {
			verts = append(verts,
				r3.Vec{X: 0, Y: s1, Z: s2 * phi},
				r3.Vec{X: s1, Y: s2 * phi, Z: 0},
				r3.Vec{X: s2 * phi, Y: 0, Z: s1},
			)
		}
	}

	// Faces are the vertex triples at the minimum pairwise distance.
	minDist := math.Inf(1)
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			minDist = math.Min(minDist, r3.Norm(r3.Sub(verts[i], verts[j])))
		}
	}
	adjacent := func(i, j int) bool {
		return math.Abs(r3.Norm(r3.Sub(verts[i], verts[j]))-minDist) < 1e-9
	}
	var faces [][]int
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if !adjacent(i, j) {
				continue
			}
			for k := j + 1; k < len(verts); k++ {
				if adjacent(i, k) && adjacent(j, k) {
					faces = append(faces, []int{i, j, k})
				}
			}
		}
	}

	M := conway.NewMesh(verts, faces)
	geom.Orient(M)
	return M
}

// dodecahedron is built from the icosahedron: one vertex per icosahedron face, one pentagon per icosahedron vertex.
func dodecahedron() *conway.Mesh {
	I := icosahedron()
	verts := geom.FaceCentroids(I)
	for i, v := range verts {
		verts[i] = r3.Unit(v)
	}
	return conway.NewMesh(verts, geom.VertexFaces(I))
}

func ring(n int, R, z, phase float64) []r3.Vec {
	pts := make([]r3.Vec, n)
	for i := range pts {
		theta := phase + 2*math.Pi*float64(i)/float64(n)
		pts[i] = r3.Vec{X: R * math.Cos(theta), Y: R * math.Sin(theta), Z: z}
	}
	return pts
}

// circumradius returns the circumradius of a regular n-gon with unit edges.
func circumradius(n int) float64 {
	return 1 / (2 * math.Sin(math.Pi/float64(n)))
}

func bottomFace(n int) []int {
	face := make([]int, n)
	for i := range face {
		face[i] = n - 1 - i
	}
	return face
}

func topFace(n, offset int) []int {
	face := make([]int, n)
	for i := range face {
		face[i] = offset + i
	}
	return face
}

func prism(n int) *conway.Mesh {
	R := circumradius(n)
	verts := append(ring(n, R, -0.5, 0), ring(n, R, 0.5, 0)...)
	faces := [][]int{bottomFace(n), topFace(n, n)}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, []int{i, j, n + j, n + i})
	}
	return conway.NewMesh(verts, faces)
}

func antiprism(n int) *conway.Mesh {
	R := circumradius(n)
	chord := 2 * R * math.Sin(math.Pi/float64(2*n))
	h := math.Sqrt(math.Max(0, 1-chord*chord))
	verts := append(ring(n, R, -h/2, 0), ring(n, R, h/2, math.Pi/float64(n))...)
	faces := [][]int{bottomFace(n), topFace(n, n)}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces,
			[]int{i, j, n + i},
			[]int{n + i, j, n + j},
		)
	}
	return conway.NewMesh(verts, faces)
}

func pyramid(n int) *conway.Mesh {
	R := circumradius(n)
	h := R
	if n <= 5 {
		h = math.Sqrt(1 - R*R)
	}
	verts := append(ring(n, R, 0, 0), r3.Vec{Z: h})
	faces := [][]int{bottomFace(n)}
	for i := 0; i < n; i++ {
		faces = append(faces, []int{i, (i + 1) % n, n})
	}
	return conway.NewMesh(verts, faces)
}
