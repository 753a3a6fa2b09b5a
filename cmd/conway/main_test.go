package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/off"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunToFile(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "aC.off")
	_, err := execute(t, "", "-i", "0", "-o", pathname, "aC")
	require.NoError(t, err)

	file, err := os.Open(pathname)
	require.NoError(t, err)
	defer file.Close()

	M, err := off.Read(file)
	require.NoError(t, err)
	require.Equal(t, 12, M.NumVerts())
	require.Equal(t, 14, M.NumFaces())
}

func TestRunFromStdin(t *testing.T) {
	cube, err := execute(t, "", "-i", "0", "C")
	require.NoError(t, err)

	out, err := execute(t, cube, "-i", "0", "k")
	require.NoError(t, err)

	M, err := off.Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 14, M.NumVerts())
	require.Equal(t, 24, M.NumFaces())
}

func TestRunWithDb(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog")
	first, err := execute(t, "", "-i", "0", "--db", dbPath, "jC")
	require.NoError(t, err)
	second, err := execute(t, "", "-i", "0", "--db", dbPath, "jC")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSeedWithInputFile(t *testing.T) {
	_, err := execute(t, "", "kC", "cube.off")
	require.Equal(t, conway.ErrSeedWithInput, errors.Cause(err))
}

func TestBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-p", "x", "C"},
		{"-p", "pq", "C"},
		{"-c", "z", "C"},
		{"-n", "0", "C"},
		{"-i", "-2", "C"},
	} {
		_, err := execute(t, "", args...)
		require.Error(t, err, "%v", args)
	}
}

func TestBadNotation(t *testing.T) {
	_, err := execute(t, "", "kkXC")
	var notationErr *conway.NotationError
	require.ErrorAs(t, err, &notationErr)
	require.Equal(t, 3, notationErr.Pos)
}

func TestNotationHelp(t *testing.T) {
	out, err := execute(t, "", "-H")
	require.NoError(t, err)
	require.Contains(t, out, "Operators")
}
