package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway"
	"github.com/2x3systems/goconway/libconway/catalog"
	"github.com/2x3systems/goconway/libconway/seeds"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshCodec(t *testing.T) {
	M, err := seeds.Make('A', 5)
	require.NoError(t, err)

	val := catalog.MarshalMesh(nil, M)
	X, err := catalog.UnmarshalMesh(val)
	require.NoError(t, err)
	assert.Equal(t, M, X)

	_, err = catalog.UnmarshalMesh(val[:len(val)-3])
	assert.Equal(t, conway.ErrUnmarshal, errors.Cause(err))
}

func TestCatalogPersists(t *testing.T) {
	dir, err := os.MkdirTemp("", "conway-catalog*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := conway.DefaultOptions
	opts.Planarize.MaxIters = 0
	ctx := conway.NewCatalogContext()
	dbPath := path.Join(dir, "TestCatalogPersists")

	cat, err := catalog.OpenCatalog(ctx, conway.CatalogOpts{DbPathName: dbPath})
	require.NoError(t, err)
	M, err := libconway.RunWithCatalog(cat, "gC", opts)
	require.NoError(t, err)
	_, err = libconway.RunWithCatalog(cat, "aO", opts)
	require.NoError(t, err)
	_, err = libconway.RunWithCatalog(cat, "aC", opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cat.NumMeshes())
	require.NoError(t, cat.Close())

	cat, err = catalog.OpenCatalog(ctx, conway.CatalogOpts{DbPathName: dbPath, ReadOnly: true})
	require.NoError(t, err)
	defer cat.Close()
	assert.True(t, cat.IsReadOnly())
	assert.Equal(t, int64(2), cat.NumMeshes())

	X, err := cat.GetMesh(conway.CatalogKey("gC", opts))
	require.NoError(t, err)
	assert.Equal(t, M, X)

	X, err = cat.GetMesh(conway.CatalogKey("kC", opts))
	require.NoError(t, err)
	assert.Nil(t, X)

	assert.Equal(t, conway.ErrReadOnly, cat.PutMesh([]byte("x"), M))
}

func TestCatalogParams(t *testing.T) {
	ctx := conway.NewCatalogContext()
	_, err := catalog.OpenCatalog(ctx, conway.CatalogOpts{ReadOnly: true})
	assert.Equal(t, conway.ErrBadCatalogParam, errors.Cause(err))

	cat, err := catalog.OpenCatalog(ctx, conway.CatalogOpts{})
	require.NoError(t, err)
	require.NoError(t, cat.PutMesh([]byte("C"), &conway.Mesh{}))
	assert.Equal(t, int64(1), cat.NumMeshes())

	ctx.Close()
	<-ctx.Done()
}
