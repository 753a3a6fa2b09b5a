package pyconway

import (
	"os"
	"path"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromFlags(t *testing.T) {
	opts := OptionsFromFlags(REVERSE | UNITIZE | NO_PLANARIZE)
	assert.True(t, opts.Reverse)
	assert.True(t, opts.Unitize)
	assert.False(t, opts.NoSimplify)
	assert.False(t, opts.TruncateAlgorithm)
	assert.Equal(t, 0, opts.Planarize.MaxIters)

	opts = OptionsFromFlags(0)
	assert.Equal(t, byte('p'), opts.Planarize.Method)
}

func TestRunAndInspect(t *testing.T) {
	obj, err := py_Run(nil, py.Tuple{py.String("aC"), py.Int(NO_PLANARIZE)})
	require.NoError(t, err)

	nv, err := py_Mesh_NumVerts(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(12), nv)

	nf, err := py_Mesh_NumFaces(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(14), nf)

	sizes, err := py_Mesh_FaceSizes(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Tuple{py.Int(0), py.Int(0), py.Int(0), py.Int(8), py.Int(6)}, sizes)

	resolved, err := py_Resolve(nil, py.Tuple{py.String("tC")})
	require.NoError(t, err)
	assert.Equal(t, py.String("dkO"), resolved)

	_, err = py_Run(nil, py.Tuple{py.String("aQ")})
	assert.Error(t, err)
}

func TestSpectrumSetAndOFF(t *testing.T) {
	setObj, err := py_NewSpectrumSet(nil, nil)
	require.NoError(t, err)
	defer py_SpectrumSet_Close(setObj, nil)

	for _, notation := range []string{"aC", "aO", "dO"} {
		obj, err := py_Run(nil, py.Tuple{py.String(notation), py.Int(NO_PLANARIZE)})
		require.NoError(t, err)
		_, err = py_SpectrumSet_TryAdd(setObj, py.Tuple{obj})
		require.NoError(t, err)
	}
	n, err := py_SpectrumSet_Len(setObj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(2), n)

	dir, err := os.MkdirTemp("", "pyconway*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	obj, err := py_Run(nil, py.Tuple{py.String("kT"), py.Int(NO_PLANARIZE)})
	require.NoError(t, err)
	pathname := path.Join(dir, "out", "kT.off")
	_, err = py_Mesh_WriteOFF(obj, py.Tuple{py.String(pathname)})
	require.NoError(t, err)

	readObj, err := py_ReadOFF(nil, py.Tuple{py.String(pathname)})
	require.NoError(t, err)
	nf, err := py_Mesh_NumFaces(readObj, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(12), nf)

	applied, err := py_Mesh_Apply(readObj, py.Tuple{py.String("d"), py.Int(NO_PLANARIZE)})
	require.NoError(t, err)
	nv, err := py_Mesh_NumVerts(applied, nil)
	require.NoError(t, err)
	assert.Equal(t, py.Int(12), nv)
}
