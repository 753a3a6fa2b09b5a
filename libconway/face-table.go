package libconway

import (
	"github.com/2x3systems/goconway/conway"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

type symKind uint8

const (
	symVertex symKind = iota + 1 // an input vertex
	symFace                      // an input face
	symEdge                      // an undirected input edge
	symBlend                     // a point on a directed input edge
	symCorner                    // an input face at one of its vertices
)

// symID names a vertex or face of an operator's output by the input elements it derives from.
type symID struct {
	kind symKind
	a, b int32
}

func vertID(v int) symID {
	return symID{symVertex, int32(v), 0}
}

func faceID(f int) symID {
	return symID{symFace, int32(f), 0}
}

func edgeID(v, w int) symID {
	if v > w {
		v, w = w, v
	}
	return symID{symEdge, int32(v), int32(w)}
}

func blendID(from, to int) symID {
	return symID{symBlend, int32(from), int32(to)}
}

func cornerID(f, v int) symID {
	return symID{symCorner, int32(f), int32(v)}
}

type tableVert struct {
	index int
	pos   r3.Vec
}

type tableFace struct {
	start symID
	next  map[symID]symID
}

// faceTable assembles an operator's output mesh from symbolically named vertices and directed face boundary fragments.
// Output vertices and faces are indexed in the order first seen.
type faceTable struct {
	verts *linkedhashmap.Map // symID -> *tableVert
	faces *linkedhashmap.Map // symID -> *tableFace
}

func newFaceTable() *faceTable {
	return &faceTable{
		verts: linkedhashmap.New(),
		faces: linkedhashmap.New(),
	}
}

// addVert registers a vertex, if not already registered.
func (tb *faceTable) addVert(id symID, pos r3.Vec) {
	if _, exists := tb.verts.Get(id); !exists {
		tb.verts.Put(id, &tableVert{
			index: tb.verts.Size(),
			pos:   pos,
		})
	}
}

// addEdge adds the directed boundary fragment from -> to to the given face.
func (tb *faceTable) addEdge(face, from, to symID) {
	var f *tableFace
	if val, exists := tb.faces.Get(face); exists {
		f = val.(*tableFace)
	} else {
		f = &tableFace{
			start: from,
			next:  make(map[symID]symID, 6),
		}
		tb.faces.Put(face, f)
	}
	f.next[from] = to
}

// build walks each face's fragments into a closed vertex cycle.
func (tb *faceTable) build() (*conway.Mesh, error) {
	M := &conway.Mesh{
		Verts: make([]r3.Vec, tb.verts.Size()),
		Faces: make([][]int, 0, tb.faces.Size()),
	}
	for _, val := range tb.verts.Values() {
		v := val.(*tableVert)
		M.Verts[v.index] = v.pos
	}

	it := tb.faces.Iterator()
	for it.Next() {
		f := it.Value().(*tableFace)
		face := make([]int, 0, len(f.next))
		for cur := f.start; ; {
			val, exists := tb.verts.Get(cur)
			if !exists {
				return nil, errors.Wrapf(conway.ErrBrokenFace, "face %v: unregistered vertex %v", it.Key(), cur)
			}
			face = append(face, val.(*tableVert).index)

			next, exists := f.next[cur]
			if !exists {
				return nil, errors.Wrapf(conway.ErrBrokenFace, "face %v: no successor of %v", it.Key(), cur)
			}
			if next == f.start {
				break
			}
			if len(face) >= len(f.next) {
				return nil, errors.Wrapf(conway.ErrBrokenFace, "face %v: cycle never returns to its start", it.Key())
			}
			cur = next
		}
		if len(face) != len(f.next) {
			return nil, errors.Wrapf(conway.ErrBrokenFace, "face %v: fragments form more than one cycle", it.Key())
		}
		M.Faces = append(M.Faces, face)
	}
	return M, nil
}
