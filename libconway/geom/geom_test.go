package geom_test

import (
	"testing"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/geom"
	"github.com/2x3systems/goconway/libconway/seeds"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustSeed(t *testing.T, letter byte, size int) *conway.Mesh {
	M, err := seeds.Make(letter, size)
	require.NoError(t, err)
	return M
}

func maxPlanarity(M *conway.Mesh) float64 {
	worst := 0.0
	for _, face := range M.Faces {
		n := geom.FaceNormal(M, face)
		c := geom.FaceCentroid(M, face)
		for _, vi := range face {
			d := r3.Dot(n, r3.Sub(M.Verts[vi], c))
			if d < 0 {
				d = -d
			}
			if d > worst {
				worst = d
			}
		}
	}
	return worst
}

func TestOrientFixesWinding(t *testing.T) {
	M := mustSeed(t, 'C', 0)
	vol := geom.SignedVolume(M)
	require.Greater(t, vol, 0.0)

	// flip one face, then everything
	X := M.Clone()
	for i, j := 0, 3; i < j; i, j = i+1, j-1 {
		X.Faces[2][i], X.Faces[2][j] = X.Faces[2][j], X.Faces[2][i]
	}
	geom.Orient(X)
	assert.InDelta(t, vol, geom.SignedVolume(X), 1e-12)

	Y := geom.Invert(M)
	assert.InDelta(t, vol, geom.SignedVolume(Y), 1e-12)
	assert.Equal(t, -M.Verts[0].X, Y.Verts[0].X)
}

func TestVertexFacesRing(t *testing.T) {
	M := mustSeed(t, 'C', 0)
	rings := geom.VertexFaces(M)
	require.Len(t, rings, 8)
	edgeFace := geom.DirectedEdgeFaces(M)
	assert.Len(t, edgeFace, 24)
	for vi, ring := range rings {
		require.Len(t, ring, 3)

		// the dual face winds outward
		pts := make([]r3.Vec, len(ring))
		for j, fi := range ring {
			pts[j] = geom.FaceCentroid(M, M.Faces[fi])
		}
		n := geom.PolygonNormal(pts)
		assert.Greater(t, r3.Dot(n, M.Verts[vi]), 0.0)
	}
}

func TestReciprocal(t *testing.T) {
	p := r3.Vec{X: 2}
	assert.Equal(t, r3.Vec{X: 0.5}, geom.Reciprocal(p))
	assert.Equal(t, r3.Vec{Z: 0.5}, geom.PlaneReciprocal(r3.Vec{Z: 1}, r3.Vec{X: 3, Z: 2}))
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, geom.Lerp(r3.Vec{}, r3.Vec{X: 3, Y: 3, Z: 3}, 1.0/3))

	M := mustSeed(t, 'C', 0)
	for _, q := range geom.ReciprocalFacePoints(M) {
		assert.InDelta(t, 1, r3.Norm(q), 1e-12)
	}
}

func TestUnitize(t *testing.T) {
	M := mustSeed(t, 'O', 0)
	geom.UnitizeEdges(M)
	for _, e := range M.Edges() {
		assert.InDelta(t, 1, r3.Norm(r3.Sub(M.Verts[e.A], M.Verts[e.B])), 1e-12)
	}
}

func TestPlanarizeFlattens(t *testing.T) {
	for _, method := range []byte{'p', 'q', 'l'} {
		M := mustSeed(t, 'C', 0)
		M.Verts[6] = r3.Scale(1.2, M.Verts[6])
		require.Greater(t, maxPlanarity(M), 0.01)

		iters, err := geom.Planarize(M, method, 500, 1e-10)
		require.NoError(t, err, "method %c", method)
		assert.Greater(t, iters, 0)
		assert.Less(t, maxPlanarity(M), 1e-4, "method %c", method)
	}
}

func TestPlanarizeNoop(t *testing.T) {
	M := mustSeed(t, 'C', 0)
	X := M.Clone()
	iters, err := geom.Planarize(X, 'p', 0, 1e-12)
	require.NoError(t, err)
	assert.Equal(t, 0, iters)
	assert.Equal(t, M.Verts, X.Verts)

	_, err = geom.Planarize(X, 'z', 10, 1e-12)
	assert.Equal(t, conway.ErrBadMethod, errors.Cause(err))
	_, err = geom.Canonicalize(X, 'z', 10, 1e-12)
	assert.Equal(t, conway.ErrBadMethod, errors.Cause(err))
}

func TestCanonicalizeTangentEdges(t *testing.T) {
	for _, method := range []byte{'n', 'm'} {
		M := mustSeed(t, 'C', 0)
		_, err := geom.Canonicalize(M, method, -1, 1e-12)
		require.NoError(t, err)
		for _, e := range M.Edges() {
			a, b := M.Verts[e.A], M.Verts[e.B]
			d := r3.Sub(b, a)
			s := -r3.Dot(a, d) / r3.Dot(d, d)
			assert.InDelta(t, 1, r3.Norm(r3.Add(a, r3.Scale(s, d))), 1e-6, "method %c", method)
		}
	}
}
