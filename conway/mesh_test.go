package conway_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/2x3systems/goconway/conway"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube() *conway.Mesh {
	return conway.NewMesh(
		[]conway.Vec{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		[][]int{
			{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
			{2, 3, 7, 6}, {1, 2, 6, 5}, {0, 4, 7, 3},
		},
	)
}

func TestMeshInfo(t *testing.T) {
	M := cube()
	require.NoError(t, M.Validate())

	info := M.GetInfo()
	assert.Equal(t, 8, info.NumVerts)
	assert.Equal(t, 12, info.NumEdges)
	assert.Equal(t, 6, info.NumFaces)
	assert.Equal(t, 2, info.EulerCharacteristic())
	assert.True(t, info.FaceSizes.IsEqual(conway.Spectrum{0, 0, 0, 0, 6}))
	assert.True(t, info.VertexDegrees.IsEqual(conway.Spectrum{0, 0, 0, 8}))
	assert.Equal(t, "{4:6}", info.FaceSizes.String())
}

func TestMeshValidate(t *testing.T) {
	M := cube()
	M.Faces[2] = []int{0, 1}
	err := M.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, conway.ErrBadMesh))

	M = cube()
	M.Faces[0][1] = 8
	assert.ErrorIs(t, M.Validate(), conway.ErrBadMesh)
}

func TestMeshClone(t *testing.T) {
	M := cube()
	X := M.Clone()
	X.Verts[0].X = 7
	X.Faces[0][0] = 5
	assert.Equal(t, -1.0, M.Verts[0].X)
	assert.Equal(t, 0, M.Faces[0][0])
}

func TestSpectrumEncoding(t *testing.T) {
	var S conway.Spectrum
	S.Tally(3)
	S.Tally(3)
	S.Tally(5)

	key := S.AppendSpectrumLSM(nil)
	padded := append(conway.Spectrum{}, S...)
	padded.SetLen(12)
	assert.Equal(t, key, padded.AppendSpectrumLSM(nil))

	var S2 conway.Spectrum
	require.NoError(t, S2.InitFromSpectrumLSM(key))
	assert.True(t, S.IsEqual(S2))
	assert.Equal(t, int64(3), S2.Total())
	assert.False(t, S2.IsZero())
}

func TestSignature(t *testing.T) {
	infoA := cube().GetInfo()
	infoB := cube().GetInfo()
	assert.Equal(t, infoA.AppendSignature(nil), infoB.AppendSignature(nil))

	M := cube()
	M.Faces = M.Faces[:5]
	infoC := M.GetInfo()
	assert.NotEqual(t, infoA.AppendSignature(nil), infoC.AppendSignature(nil))
}

func TestWriteAsString(t *testing.T) {
	var buf bytes.Buffer
	opts := conway.DefaultPrintOpts
	opts.Label = "C"
	cube().WriteAsString(&buf, opts)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "C,V=8,E=12,F=6,"))
	assert.Contains(t, out, "faces={4:6}")
	assert.Contains(t, out, "verts={3:8}")
}

func TestCatalogKey(t *testing.T) {
	opts := conway.DefaultOptions
	k1 := conway.CatalogKey("aC", opts)
	assert.Equal(t, k1, conway.CatalogKey("aC", opts))
	assert.NotEqual(t, k1, conway.CatalogKey("aO", opts))

	opts.Verbose = true
	assert.Equal(t, k1, conway.CatalogKey("aC", opts))

	opts.Unitize = true
	assert.NotEqual(t, k1, conway.CatalogKey("aC", opts))
}

type closeCounter struct {
	conway.Catalog
	closed chan struct{}
	ctx    conway.CatalogContext
}

func (cc *closeCounter) Close() error {
	close(cc.closed)
	cc.ctx.DetachCatalog(cc)
	return nil
}

func TestCatalogContext(t *testing.T) {
	ctx := conway.NewCatalogContext()
	cc := &closeCounter{closed: make(chan struct{}), ctx: ctx}
	ctx.AttachCatalog(cc)
	ctx.Close()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("catalog context did not close")
	}
	_, open := <-cc.closed
	assert.False(t, open)
}

func TestNotationError(t *testing.T) {
	err := error(&conway.NotationError{Notation: "aQ", Pos: 2, Err: conway.ErrInvalidChar})
	assert.Equal(t, conway.ErrInvalidChar, errors.Cause(err))
	assert.ErrorIs(t, err, conway.ErrInvalidChar)
	assert.Equal(t, "unexpected character in position 2: aQ", err.Error())
}
