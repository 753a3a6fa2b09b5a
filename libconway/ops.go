package libconway

import (
	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/geom"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// gyro and propellor blend point weight toward the edge's from vertex
const blendWeight = 0.7

// ratios of the vertex truncations run by ambo and truncate in truncate algorithm mode
const (
	truncAmboRatio = 1.0 / 2
	truncRatio     = 1.0 / 3
)

var errNoOperator = errors.New("unexpected operator")

// applyOperation runs a primitive operation on M and returns the resulting oriented mesh.
func applyOperation(M *conway.Mesh, op conway.Operation) (*conway.Mesh, error) {
	var X *conway.Mesh
	var err error

	switch op.Op {
	case conway.OpAmbo:
		X, err = Ambo(M)
	case conway.OpDual:
		X, err = Dual(M)
	case conway.OpGyro:
		X, err = Gyro(M)
	case conway.OpKis:
		X = Kis(M, op.Param)
	case conway.OpPropellor:
		X, err = Propellor(M)
	case conway.OpReflect:
		X = geom.Invert(M)
	case conway.OpNull:
		X = M.Clone()
	case conway.OpTruncAmbo:
		X, err = TruncateVerts(M, 0, truncAmboRatio)
	case conway.OpTruncRatio:
		X, err = TruncateVerts(M, op.Param, truncRatio)
	default:
		return nil, errNoOperator
	}
	if err != nil {
		return nil, err
	}

	geom.Orient(X)
	return X, nil
}

func midpoint(M *conway.Mesh, v, w int) r3.Vec {
	return r3.Scale(0.5, r3.Add(M.Verts[v], M.Verts[w]))
}

// forEachCorner calls fn for each face corner (v1, v2, v3), where v2 follows v1 and v3 follows v2 in face fi.
func forEachCorner(M *conway.Mesh, fn func(fi, v1, v2, v3 int)) {
	for fi, face := range M.Faces {
		N := len(face)
		for j := range face {
			fn(fi, face[j], face[(j+1)%N], face[(j+2)%N])
		}
	}
}

// Ambo returns the mesh whose vertices are the edge midpoints of M.
// Each face of M becomes a face joining its edge midpoints, and each vertex of M becomes a face around it.
func Ambo(M *conway.Mesh) (*conway.Mesh, error) {
	tb := newFaceTable()
	forEachCorner(M, func(fi, v1, v2, v3 int) {
		e12, e23 := edgeID(v1, v2), edgeID(v2, v3)
		tb.addVert(e12, midpoint(M, v1, v2))
		tb.addVert(e23, midpoint(M, v2, v3))
		tb.addEdge(faceID(fi), e12, e23)
		tb.addEdge(vertID(v2), e23, e12)
	})
	return tb.build()
}

// Dual returns the mesh with one vertex per face of M and one face per vertex of M.
// Dual vertices are the reciprocals of the face planes of M recentered on its vertex centroid.
func Dual(M *conway.Mesh) (*conway.Mesh, error) {
	C := M.Clone()
	geom.CentroidToOrigin(C)
	pts := geom.ReciprocalFacePoints(C)
	edgeFace := geom.DirectedEdgeFaces(C)

	tb := newFaceTable()
	for fi := range C.Faces {
		tb.addVert(faceID(fi), pts[fi])
	}

	var err error
	forEachCorner(C, func(fi, v1, v2, _ int) {
		gi, exists := edgeFace[[2]int{v2, v1}]
		if !exists {
			if err == nil {
				err = errors.Wrapf(conway.ErrBrokenFace, "dual: edge %d-%d borders one face", v1, v2)
			}
			return
		}
		tb.addEdge(vertID(v2), faceID(fi), faceID(gi))
	})
	if err != nil {
		return nil, err
	}
	return tb.build()
}

// addBlendVerts registers the blend points near each end of every edge of M.
func addBlendVerts(tb *faceTable, verts []r3.Vec, M *conway.Mesh) {
	forEachCorner(M, func(_, v1, v2, _ int) {
		tb.addVert(blendID(v1, v2), geom.Lerp(verts[v2], verts[v1], blendWeight))
		tb.addVert(blendID(v2, v1), geom.Lerp(verts[v1], verts[v2], blendWeight))
	})
}

// Gyro returns the mesh that replaces each face corner of M with a pentagon, twisting each face's edges around its center.
func Gyro(M *conway.Mesh) (*conway.Mesh, error) {
	tb := newFaceTable()
	for vi, v := range M.Verts {
		tb.addVert(vertID(vi), v)
	}
	for fi, c := range geom.FaceCentroids(M) {
		if r3.Norm(c) > 0 {
			c = r3.Unit(c)
		}
		tb.addVert(faceID(fi), c)
	}
	addBlendVerts(tb, M.Verts, M)

	forEachCorner(M, func(fi, v1, v2, v3 int) {
		face := cornerID(fi, v1)
		center := faceID(fi)
		tb.addEdge(face, center, blendID(v1, v2))
		tb.addEdge(face, blendID(v1, v2), blendID(v2, v1))
		tb.addEdge(face, blendID(v2, v1), vertID(v2))
		tb.addEdge(face, vertID(v2), blendID(v2, v3))
		tb.addEdge(face, blendID(v2, v3), center)
	})
	return tb.build()
}

// Propellor returns the mesh that keeps a smaller twisted copy of each face of M and adds a quad at each face corner.
// Kept vertices are moved onto the unit sphere while blend points stay on the edges of M.
func Propellor(M *conway.Mesh) (*conway.Mesh, error) {
	unit := make([]r3.Vec, len(M.Verts))
	for vi, v := range M.Verts {
		if r3.Norm(v) > 0 {
			v = r3.Unit(v)
		}
		unit[vi] = v
	}

	tb := newFaceTable()
	for vi, v := range unit {
		tb.addVert(vertID(vi), v)
	}
	addBlendVerts(tb, M.Verts, M)

	forEachCorner(M, func(fi, v1, v2, v3 int) {
		tb.addEdge(faceID(fi), blendID(v1, v2), blendID(v2, v3))

		face := cornerID(fi, v2)
		tb.addEdge(face, blendID(v1, v2), blendID(v2, v1))
		tb.addEdge(face, blendID(v2, v1), vertID(v2))
		tb.addEdge(face, vertID(v2), blendID(v2, v3))
		tb.addEdge(face, blendID(v2, v3), blendID(v1, v2))
	})
	return tb.build()
}

// Kis returns the mesh that raises a pyramid on each face of M with n sides, or on every face if n is 0.
func Kis(M *conway.Mesh, n int) *conway.Mesh {
	X := &conway.Mesh{
		Verts: append(make([]r3.Vec, 0, len(M.Verts)+len(M.Faces)), M.Verts...),
		Faces: make([][]int, 0, 3*len(M.Faces)),
	}
	for _, face := range M.Faces {
		N := len(face)
		if n != 0 && N != n {
			X.Faces = append(X.Faces, append([]int(nil), face...))
			continue
		}
		apex := len(X.Verts)
		X.Verts = append(X.Verts, geom.FaceCentroid(M, face))
		for j := range face {
			X.Faces = append(X.Faces, []int{face[j], face[(j+1)%N], apex})
		}
	}
	return X
}

// TruncateVerts cuts off each vertex of M with n edges (or every vertex if n is 0), at the given ratio along its edges.
//
// At ratio 1/2, cut points of adjacent truncated vertices coincide and are merged, giving the ambo of M.
func TruncateVerts(M *conway.Mesh, n int, ratio float64) (*conway.Mesh, error) {
	degree := make([]int, len(M.Verts))
	for _, e := range M.Edges() {
		degree[e.A]++
		degree[e.B]++
	}
	truncated := func(v int) bool {
		return n == 0 || degree[v] == n
	}

	tb := newFaceTable()
	cutPoint := func(v, w int) symID {
		if ratio == truncAmboRatio && truncated(w) {
			id := edgeID(v, w)
			tb.addVert(id, midpoint(M, v, w))
			return id
		}
		id := blendID(v, w)
		tb.addVert(id, geom.Lerp(M.Verts[v], M.Verts[w], ratio))
		return id
	}

	ring := make([]symID, 0, 16)
	for fi, face := range M.Faces {
		N := len(face)
		ring = ring[:0]
		for j, v := range face {
			if !truncated(v) {
				tb.addVert(vertID(v), M.Verts[v])
				ring = append(ring, vertID(v))
				continue
			}
			u, w := face[(j+N-1)%N], face[(j+1)%N]
			pu, pw := cutPoint(v, u), cutPoint(v, w)
			ring = append(ring, pu, pw)
			tb.addEdge(vertID(v), pw, pu)
		}

		// merged cut points repeat
		dedup := ring[:0]
		for j, id := range ring {
			if j == 0 || id != dedup[len(dedup)-1] {
				dedup = append(dedup, id)
			}
		}
		if len(dedup) > 1 && dedup[0] == dedup[len(dedup)-1] {
			dedup = dedup[:len(dedup)-1]
		}
		for j, id := range dedup {
			tb.addEdge(faceID(fi), id, dedup[(j+1)%len(dedup)])
		}
	}
	return tb.build()
}
