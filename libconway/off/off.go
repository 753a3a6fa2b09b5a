// Package off reads and writes meshes in the Object File Format.
package off

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2x3systems/goconway/conway"
	"github.com/pkg/errors"
)

type lineReader struct {
	scanner *bufio.Scanner
	lineNum int
}

// next returns the fields of the next line that is not blank or a comment.
func (rdr *lineReader) next() ([]string, error) {
	for rdr.scanner.Scan() {
		rdr.lineNum++
		line := rdr.scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := rdr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func (rdr *lineReader) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(conway.ErrBadMesh, "OFF line %d: %s", rdr.lineNum, fmt.Sprintf(format, args...))
}

// Read parses an OFF document into a new Mesh.
// Face colors and any other trailing values are ignored.
func Read(r io.Reader) (*conway.Mesh, error) {
	rdr := &lineReader{scanner: bufio.NewScanner(r)}
	rdr.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	fields, err := rdr.next()
	if err != nil {
		return nil, errors.Wrap(err, "OFF header")
	}
	if strings.HasSuffix(fields[0], "OFF") {
		fields = fields[1:]
		if len(fields) == 0 {
			if fields, err = rdr.next(); err != nil {
				return nil, errors.Wrap(err, "OFF counts")
			}
		}
	}
	if len(fields) < 2 {
		return nil, rdr.errorf("expected vertex and face counts")
	}
	Nv, err1 := strconv.Atoi(fields[0])
	Nf, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || Nv < 0 || Nf < 0 {
		return nil, rdr.errorf("bad counts %q", fields)
	}

	M := &conway.Mesh{
		Verts: make([]conway.Vec, Nv),
		Faces: make([][]int, 0, Nf),
	}
	for i := range M.Verts {
		if fields, err = rdr.next(); err != nil {
			return nil, errors.Wrapf(err, "OFF vertex %d", i)
		}
		if len(fields) < 3 {
			return nil, rdr.errorf("vertex %d needs 3 coordinates", i)
		}
		var xyz [3]float64
		for j := range xyz {
			if xyz[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return nil, rdr.errorf("vertex %d: %v", i, err)
			}
		}
		M.Verts[i] = conway.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}

	for i := 0; i < Nf; i++ {
		if fields, err = rdr.next(); err != nil {
			return nil, errors.Wrapf(err, "OFF face %d", i)
		}
		N, err := strconv.Atoi(fields[0])
		if err != nil || N < 0 || len(fields) < N+1 {
			return nil, rdr.errorf("face %d: bad vertex count", i)
		}
		face := make([]int, N)
		for j := range face {
			if face[j], err = strconv.Atoi(fields[j+1]); err != nil {
				return nil, rdr.errorf("face %d: %v", i, err)
			}
		}

		// skip points and segments
		if N < 3 {
			continue
		}
		M.Faces = append(M.Faces, face)
	}

	if err := M.Validate(); err != nil {
		return nil, err
	}
	return M, nil
}

// Write writes M as an OFF document.
func Write(w io.Writer, M *conway.Mesh) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "OFF\n%d %d %d\n", len(M.Verts), len(M.Faces), M.NumEdges())
	for _, v := range M.Verts {
		fmt.Fprintf(out, "%s %s %s\n", formatCoord(v.X), formatCoord(v.Y), formatCoord(v.Z))
	}
	for _, face := range M.Faces {
		out.WriteString(strconv.Itoa(len(face)))
		for _, vi := range face {
			out.WriteByte(' ')
			out.WriteString(strconv.Itoa(vi))
		}
		out.WriteByte('\n')
	}
	return out.Flush()
}

func formatCoord(x float64) string {
	if x == 0 {
		x = 0 // normalizes -0
	}
	return strconv.FormatFloat(x, 'g', 17, 64)
}
