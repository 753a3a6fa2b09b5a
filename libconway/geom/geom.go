// Package geom holds the numeric helpers the topology operators and the refinement passes are built on.
//
// Unless noted, functions taking a *conway.Mesh modify its vertex positions in place.
package geom

import (
	"math"

	"github.com/2x3systems/goconway/conway"
	"gonum.org/v1/gonum/spatial/r3"
)

// Centroid returns the average of the given points.
func Centroid(pts []r3.Vec) r3.Vec {
	var c r3.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}

// FaceCentroid returns the average of the vertices of the given face.
func FaceCentroid(M *conway.Mesh, face []int) r3.Vec {
	var c r3.Vec
	for _, vi := range face {
		c = r3.Add(c, M.Verts[vi])
	}
	return r3.Scale(1/float64(len(face)), c)
}

// FaceCentroids returns the centroid of each face of M.
func FaceCentroids(M *conway.Mesh) []r3.Vec {
	out := make([]r3.Vec, len(M.Faces))
	for i, face := range M.Faces {
		out[i] = FaceCentroid(M, face)
	}
	return out
}

// PolygonNormal returns the unit Newell normal of a closed polygon, or the zero vector if it is degenerate.
func PolygonNormal(pts []r3.Vec) r3.Vec {
	var n r3.Vec
	N := len(pts)
	for i, p := range pts {
		q := pts[(i+1)%N]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	if r3.Norm(n) == 0 {
		return n
	}
	return r3.Unit(n)
}

// FaceNormal returns the unit Newell normal of the given face.
func FaceNormal(M *conway.Mesh, face []int) r3.Vec {
	return PolygonNormal(facePoints(M, face))
}

func facePoints(M *conway.Mesh, face []int) []r3.Vec {
	pts := make([]r3.Vec, len(face))
	for j, vi := range face {
		pts[j] = M.Verts[vi]
	}
	return pts
}

// CentroidToOrigin translates M so its vertex centroid is the origin.
func CentroidToOrigin(M *conway.Mesh) {
	c := Centroid(M.Verts)
	for i := range M.Verts {
		M.Verts[i] = r3.Sub(M.Verts[i], c)
	}
}

// ProjectOntoSphere moves every vertex of M onto the unit sphere.
func ProjectOntoSphere(M *conway.Mesh) {
	for i, v := range M.Verts {
		if r3.Norm(v) > 0 {
			M.Verts[i] = r3.Unit(v)
		}
	}
}

// UnitizeEdges scales M so its average edge length is 1.
func UnitizeEdges(M *conway.Mesh) {
	edges := M.Edges()
	if len(edges) == 0 {
		return
	}
	sum := 0.0
	for _, e := range edges {
		sum += r3.Norm(r3.Sub(M.Verts[e.A], M.Verts[e.B]))
	}
	avg := sum / float64(len(edges))
	if avg == 0 {
		return
	}
	for i, v := range M.Verts {
		M.Verts[i] = r3.Scale(1/avg, v)
	}
}

// Reciprocal returns the reciprocal of p in the unit sphere, p / |p|².
func Reciprocal(p r3.Vec) r3.Vec {
	d := r3.Dot(p, p)
	if d == 0 {
		return p
	}
	return r3.Scale(1/d, p)
}

// PlaneReciprocal returns the reciprocal point of the plane with unit normal n through c, n / (n·c).
// If the plane passes through the origin, the reciprocal of c is returned.
func PlaneReciprocal(n, c r3.Vec) r3.Vec {
	d := r3.Dot(n, c)
	if math.Abs(d) < 1e-12 || r3.Norm(n) == 0 {
		return Reciprocal(c)
	}
	return r3.Scale(1/d, n)
}

// ReciprocalFacePoints returns, for each face of M, the reciprocal point of the face's plane.
func ReciprocalFacePoints(M *conway.Mesh) []r3.Vec {
	out := make([]r3.Vec, len(M.Faces))
	for i, face := range M.Faces {
		out[i] = PlaneReciprocal(FaceNormal(M, face), FaceCentroid(M, face))
	}
	return out
}

// Lerp returns the point at ratio r along the segment from v to w.
func Lerp(v, w r3.Vec, r float64) r3.Vec {
	return r3.Add(v, r3.Scale(r, r3.Sub(w, v)))
}

// Invert returns a new Mesh with every vertex reflected through the origin and every face reversed.
func Invert(M *conway.Mesh) *conway.Mesh {
	X := M.Clone()
	for i, v := range X.Verts {
		X.Verts[i] = r3.Scale(-1, v)
	}
	for _, face := range X.Faces {
		reverse(face)
	}
	return X
}

// SignedVolume returns the volume enclosed by M, negative when its faces wind inward.
func SignedVolume(M *conway.Mesh) float64 {
	vol := 0.0
	for _, face := range M.Faces {
		if len(face) < 3 {
			continue
		}
		p0 := M.Verts[face[0]]
		for j := 1; j+1 < len(face); j++ {
			vol += r3.Dot(p0, r3.Cross(M.Verts[face[j]], M.Verts[face[j+1]]))
		}
	}
	return vol / 6
}

func reverse(face []int) {
	for i, j := 0, len(face)-1; i < j; i, j = i+1, j-1 {
		face[i], face[j] = face[j], face[i]
	}
}

func isFinite(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
