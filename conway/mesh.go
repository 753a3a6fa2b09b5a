package conway

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// NewMesh returns a Mesh that takes ownership of the given vertices and faces.
func NewMesh(verts []Vec, faces [][]int) *Mesh {
	return &Mesh{
		Verts: verts,
		Faces: faces,
	}
}

// Clone returns a deep copy of M.
func (M *Mesh) Clone() *Mesh {
	X := &Mesh{
		Verts: append([]Vec(nil), M.Verts...),
		Faces: make([][]int, len(M.Faces)),
	}
	for i, face := range M.Faces {
		X.Faces[i] = append([]int(nil), face...)
	}
	return X
}

func (M *Mesh) NumVerts() int { return len(M.Verts) }
func (M *Mesh) NumFaces() int { return len(M.Faces) }

// Validate checks that every face has at least 3 vertices and only references valid vertex indices.
func (M *Mesh) Validate() error {
	Nv := len(M.Verts)
	for fi, face := range M.Faces {
		if len(face) < 3 {
			return errors.Wrapf(ErrBadMesh, "face %d has %d vertices", fi, len(face))
		}
		for _, vi := range face {
			if vi < 0 || vi >= Nv {
				return errors.Wrapf(ErrBadMesh, "face %d references vertex %d of %d", fi, vi, Nv)
			}
		}
	}
	return nil
}

// Edge is an undirected edge, with A < B.
type Edge struct {
	A, B int
}

func MakeEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// Edges returns each undirected edge of M once, in the order first seen walking the faces.
func (M *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{}, 2*len(M.Faces))
	edges := make([]Edge, 0, 2*len(M.Faces))
	for _, face := range M.Faces {
		N := len(face)
		for j := range face {
			e := MakeEdge(face[j], face[(j+1)%N])
			if _, exists := seen[e]; !exists {
				seen[e] = struct{}{}
				edges = append(edges, e)
			}
		}
	}
	return edges
}

func (M *Mesh) NumEdges() int {
	return len(M.Edges())
}

// GetInfo returns counts and spectra describing M's combinatorics.
func (M *Mesh) GetInfo() MeshInfo {
	edges := M.Edges()

	info := MeshInfo{
		NumVerts: len(M.Verts),
		NumEdges: len(edges),
		NumFaces: len(M.Faces),
	}
	for _, face := range M.Faces {
		info.FaceSizes.Tally(len(face))
	}

	degree := make([]int, len(M.Verts))
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}
	for _, d := range degree {
		info.VertexDegrees.Tally(d)
	}
	return info
}

// EulerCharacteristic returns V - E + F, which is 2 for any closed mesh of genus 0.
func (info *MeshInfo) EulerCharacteristic() int {
	return info.NumVerts - info.NumEdges + info.NumFaces
}

// AppendSignature appends a canonical binary encoding of info's counts and spectra.
// Two meshes with equal signatures are indistinguishable by counts and spectra alone.
func (info *MeshInfo) AppendSignature(dst []byte) []byte {
	counts := Spectrum{int64(info.NumVerts), int64(info.NumEdges), int64(info.NumFaces)}
	dst = counts.AppendSpectrumLSM(dst)
	dst = append(dst, 0)
	dst = info.FaceSizes.AppendSpectrumLSM(dst)
	dst = append(dst, 0)
	dst = info.VertexDegrees.AppendSpectrumLSM(dst)
	return dst
}

// WriteAsString writes a human readable description of M.
func (M *Mesh) WriteAsString(out io.Writer, opts PrintOpts) {
	var b strings.Builder
	b.Grow(256)

	if len(opts.Label) > 0 {
		b.WriteString(opts.Label)
		b.WriteByte(',')
	}

	info := M.GetInfo()
	if opts.Counts {
		fmt.Fprintf(&b, "V=%d,E=%d,F=%d,", info.NumVerts, info.NumEdges, info.NumFaces)
	}
	if opts.Spectrum {
		b.WriteString("faces=")
		info.FaceSizes.WriteAsString(&b)
		b.WriteString(",verts=")
		info.VertexDegrees.WriteAsString(&b)
		b.WriteByte(',')
	}
	if opts.Verts {
		for i, v := range M.Verts {
			fmt.Fprintf(&b, "\n  v%d: %.6f %.6f %.6f", i, v.X, v.Y, v.Z)
		}
	}
	if opts.Faces {
		for i, face := range M.Faces {
			fmt.Fprintf(&b, "\n  f%d: %v", i, face)
		}
	}
	b.WriteByte('\n')
	out.Write([]byte(b.String()))
}
