package catalog

import (
	"math"

	"github.com/2x3systems/goconway/conway"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Mesh value format:
//
//	NumVerts (varint), [NumVerts][3]float64 (fixed64),
//	NumFaces (varint), [NumFaces] { FaceLen (varint), [FaceLen]VertIndex (varint) }

// MarshalMesh appends the catalog encoding of M to dst.
func MarshalMesh(dst []byte, M *conway.Mesh) []byte {
	buf := proto.NewBuffer(dst)
	buf.EncodeVarint(uint64(len(M.Verts)))
	for _, v := range M.Verts {
		buf.EncodeFixed64(math.Float64bits(v.X))
		buf.EncodeFixed64(math.Float64bits(v.Y))
		buf.EncodeFixed64(math.Float64bits(v.Z))
	}
	buf.EncodeVarint(uint64(len(M.Faces)))
	for _, face := range M.Faces {
		buf.EncodeVarint(uint64(len(face)))
		for _, vi := range face {
			buf.EncodeVarint(uint64(vi))
		}
	}
	return buf.Bytes()
}

// UnmarshalMesh decodes a Mesh made by MarshalMesh.
func UnmarshalMesh(val []byte) (*conway.Mesh, error) {
	buf := proto.NewBuffer(val)
	dec := meshDecoder{buf: buf}

	Nv := dec.count(len(val) / 24)
	M := &conway.Mesh{
		Verts: make([]conway.Vec, Nv),
	}
	for i := range M.Verts {
		M.Verts[i] = conway.Vec{
			X: dec.float(),
			Y: dec.float(),
			Z: dec.float(),
		}
	}

	Nf := dec.count(len(val))
	M.Faces = make([][]int, Nf)
	for i := range M.Faces {
		face := make([]int, dec.count(len(val)))
		for j := range face {
			face[j] = dec.count(Nv - 1)
		}
		M.Faces[i] = face
	}

	if dec.err != nil {
		return nil, errors.Wrap(conway.ErrUnmarshal, dec.err.Error())
	}
	if err := M.Validate(); err != nil {
		return nil, errors.Wrap(conway.ErrUnmarshal, err.Error())
	}
	return M, nil
}

type meshDecoder struct {
	buf *proto.Buffer
	err error
}

// count reads a varint that must not exceed max.
func (dec *meshDecoder) count(max int) int {
	if dec.err != nil {
		return 0
	}
	x, err := dec.buf.DecodeVarint()
	if err != nil {
		dec.err = err
		return 0
	}
	if x > uint64(max) {
		dec.err = errors.Errorf("value %d exceeds %d", x, max)
		return 0
	}
	return int(x)
}

func (dec *meshDecoder) float() float64 {
	if dec.err != nil {
		return 0
	}
	x, err := dec.buf.DecodeFixed64()
	if err != nil {
		dec.err = err
		return 0
	}
	return math.Float64frombits(x)
}
