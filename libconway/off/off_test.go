package off_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/off"
	"github.com/2x3systems/goconway/libconway/seeds"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetraOFF = `OFF
# a tetrahedron
4 4 6

1 1 1
1 -1 -1
-1 1 -1
-1 -1 1
3 0 1 2   255 0 0
3 0 2 3
3 0 3 1
3 1 3 2
`

func TestRead(t *testing.T) {
	M, err := off.Read(strings.NewReader(tetraOFF))
	require.NoError(t, err)
	assert.Len(t, M.Verts, 4)
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}, {1, 3, 2}}, M.Faces)
	assert.Equal(t, -1.0, M.Verts[3].Y)
}

func TestWriteRead(t *testing.T) {
	M, err := seeds.Make('D', 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, off.Write(&buf, M))
	assert.True(t, strings.HasPrefix(buf.String(), "OFF\n20 12 30\n"))

	X, err := off.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, M.Faces, X.Faces)
	for i := range M.Verts {
		assert.InDelta(t, M.Verts[i].X, X.Verts[i].X, 1e-15)
		assert.InDelta(t, M.Verts[i].Z, X.Verts[i].Z, 1e-15)
	}
}

func TestReadErrors(t *testing.T) {
	_, err := off.Read(strings.NewReader("OFF\n3 1 0\n0 0 0\n1 0 0\n"))
	assert.Error(t, err)

	_, err = off.Read(strings.NewReader("OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n"))
	assert.Equal(t, conway.ErrBadMesh, errors.Cause(err))

	_, err = off.Read(strings.NewReader("OFF\nx 1 0\n"))
	assert.Equal(t, conway.ErrBadMesh, errors.Cause(err))
}
