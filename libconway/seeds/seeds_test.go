package seeds_test

import (
	"math"
	"testing"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/geom"
	"github.com/2x3systems/goconway/libconway/seeds"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSeedCounts(t *testing.T) {
	cases := []struct {
		letter  byte
		size    int
		V, E, F int
	}{
		{'T', 0, 4, 6, 4},
		{'C', 0, 8, 12, 6},
		{'O', 0, 6, 12, 8},
		{'I', 0, 12, 30, 20},
		{'D', 0, 20, 30, 12},
		{'P', 5, 10, 15, 7},
		{'A', 4, 8, 16, 10},
		{'Y', 6, 7, 12, 7},
		{'Y', 3, 4, 6, 4},
	}
	for _, tc := range cases {
		M, err := seeds.Make(tc.letter, tc.size)
		require.NoError(t, err, "seed %c%d", tc.letter, tc.size)
		require.NoError(t, M.Validate())

		info := M.GetInfo()
		assert.Equal(t, tc.V, info.NumVerts, "seed %c%d", tc.letter, tc.size)
		assert.Equal(t, tc.E, info.NumEdges, "seed %c%d", tc.letter, tc.size)
		assert.Equal(t, tc.F, info.NumFaces, "seed %c%d", tc.letter, tc.size)
		assert.Equal(t, 2, info.EulerCharacteristic())
		assert.Greater(t, geom.SignedVolume(M), 0.0, "seed %c%d", tc.letter, tc.size)
		assert.InDelta(t, 0, r3.Norm(geom.Centroid(M.Verts)), 1e-9)
	}
}

func TestSeedShapes(t *testing.T) {
	D, err := seeds.Make('D', 0)
	require.NoError(t, err)
	assert.True(t, D.GetInfo().FaceSizes.IsEqual(conway.Spectrum{0, 0, 0, 0, 0, 12}))

	// unit edges
	for _, letter := range []byte{'P', 'A'} {
		M, err := seeds.Make(letter, 7)
		require.NoError(t, err)
		for _, e := range M.Edges() {
			assert.InDelta(t, 1, r3.Norm(r3.Sub(M.Verts[e.A], M.Verts[e.B])), 1e-9, "seed %c7", letter)
		}
	}

	Y, err := seeds.Make('Y', 4)
	require.NoError(t, err)
	for _, e := range Y.Edges() {
		assert.InDelta(t, 1, r3.Norm(r3.Sub(Y.Verts[e.A], Y.Verts[e.B])), 1e-9)
	}

	// the icosahedron's faces are planar triangles, the dodecahedron's pentagons nearly so
	I, err := seeds.Make('I', 0)
	require.NoError(t, err)
	for _, face := range I.Faces {
		assert.Len(t, face, 3)
	}
	for _, face := range D.Faces {
		n := geom.FaceNormal(D, face)
		c := geom.FaceCentroid(D, face)
		for _, vi := range face {
			assert.InDelta(t, 0, r3.Dot(n, r3.Sub(D.Verts[vi], c)), 1e-9)
		}
	}
	assert.False(t, math.IsNaN(geom.SignedVolume(D)))
}

func TestSeedErrors(t *testing.T) {
	_, err := seeds.Make('P', 2)
	assert.Equal(t, conway.ErrSeedSizeTooSmall, errors.Cause(err))

	_, err = seeds.Make('Q', 0)
	assert.Equal(t, conway.ErrUnknownSeed, errors.Cause(err))
}
