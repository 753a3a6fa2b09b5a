package geom

import (
	"math"

	"github.com/2x3systems/goconway/conway"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnboundedIters caps a refinement pass that was asked to run until converged.
const UnboundedIters = 10000

// Planarize methods
const (
	MethodCentroids = 'p' // reciprocal of face centroids, iterated dual of dual
	MethodTangents  = 'q' // reciprocal of face tangent planes
	MethodProject   = 'l' // vertices projected onto their face planes
)

// Canonicalize methods
const (
	MethodCanonical       = 'n' // edges tangent to the unit sphere, centroid at the origin, planar faces
	MethodCanonicalSphere = 'm' // as 'n', starting from vertices on the unit sphere
)

// Planarize iteratively moves the vertices of M to flatten its faces.
//
// A pass stops after maxIters iterations, or once no vertex moves more than tol.
// maxIters < 0 runs until converged (at most UnboundedIters), and 0 or method 0 does nothing.
// Returns the number of iterations run.
func Planarize(M *conway.Mesh, method byte, maxIters int, tol float64) (int, error) {
	var step func(*conway.Mesh, *refineCtx) []r3.Vec
	switch method {
	case 0:
		return 0, nil
	case MethodCentroids:
		step = stepReciprocalCentroids
	case MethodTangents:
		step = stepReciprocalTangents
	case MethodProject:
		step = stepProjectToPlanes
	default:
		return 0, errors.Wrapf(conway.ErrBadMethod, "planarize method %q", method)
	}
	return refine(M, "planarize", method, maxIters, tol, step)
}

// Canonicalize iteratively moves the vertices of M toward a canonical form.
//
// The 'n' and 'm' methods make every edge tangent to the unit sphere while keeping faces planar.
// The planarize methods ('p', 'q', 'l') run a Planarize pass instead.
func Canonicalize(M *conway.Mesh, method byte, maxIters int, tol float64) (int, error) {
	switch method {
	case 0:
		return 0, nil
	case MethodCanonicalSphere:
		ProjectOntoSphere(M)
	case MethodCanonical:
	case MethodCentroids, MethodTangents, MethodProject:
		return Planarize(M, method, maxIters, tol)
	default:
		return 0, errors.Wrapf(conway.ErrBadMethod, "canonicalize method %q", method)
	}
	return refine(M, "canonicalize", method, maxIters, tol, stepCanonical)
}

type refineCtx struct {
	vertFaces [][]int
	edges     []conway.Edge
}

func refine(M *conway.Mesh, pass string, method byte, maxIters int, tol float64, step func(*conway.Mesh, *refineCtx) []r3.Vec) (int, error) {
	if maxIters == 0 || len(M.Verts) == 0 {
		return 0, nil
	}
	if maxIters < 0 {
		maxIters = UnboundedIters
	}

	ctx := &refineCtx{
		vertFaces: VertexFaces(M),
		edges:     M.Edges(),
	}

	for iter := 1; iter <= maxIters; iter++ {
		next := step(M, ctx)
		maxMove := 0.0
		for i, v := range next {
			if !isFinite(v) {
				return iter, errors.Wrapf(conway.ErrDiverged, "%s method %q at iteration %d", pass, method, iter)
			}
			maxMove = math.Max(maxMove, r3.Norm(r3.Sub(v, M.Verts[i])))
		}
		copy(M.Verts, next)
		if maxMove < tol {
			return iter, nil
		}
	}
	return maxIters, nil
}

// stepReciprocalCentroids reciprocates the face centroids into dual vertices, then reciprocates the
// centroids of the dual faces back into vertices.
func stepReciprocalCentroids(M *conway.Mesh, ctx *refineCtx) []r3.Vec {
	CentroidToOrigin(M)
	dual := FaceCentroids(M)
	for i, c := range dual {
		dual[i] = Reciprocal(c)
	}

	next := make([]r3.Vec, len(M.Verts))
	for vi, faces := range ctx.vertFaces {
		if len(faces) == 0 {
			next[vi] = M.Verts[vi]
			continue
		}
		var c r3.Vec
		for _, fi := range faces {
			c = r3.Add(c, dual[fi])
		}
		next[vi] = Reciprocal(r3.Scale(1/float64(len(faces)), c))
	}
	return next
}

// stepReciprocalTangents reciprocates the face planes into dual vertices, then reciprocates the planes
// of the dual faces back into vertices.
func stepReciprocalTangents(M *conway.Mesh, ctx *refineCtx) []r3.Vec {
	CentroidToOrigin(M)
	dual := ReciprocalFacePoints(M)

	next := make([]r3.Vec, len(M.Verts))
	ring := make([]r3.Vec, 0, 8)
	for vi, faces := range ctx.vertFaces {
		if len(faces) < 3 {
			next[vi] = M.Verts[vi]
			continue
		}
		ring = ring[:0]
		for _, fi := range faces {
			ring = append(ring, dual[fi])
		}
		next[vi] = PlaneReciprocal(PolygonNormal(ring), Centroid(ring))
	}
	return next
}

// stepProjectToPlanes moves each vertex to the average of its projections onto the planes of its faces.
func stepProjectToPlanes(M *conway.Mesh, ctx *refineCtx) []r3.Vec {
	normals := make([]r3.Vec, len(M.Faces))
	centers := make([]r3.Vec, len(M.Faces))
	for fi, face := range M.Faces {
		normals[fi] = FaceNormal(M, face)
		centers[fi] = FaceCentroid(M, face)
	}
	return projectToPlanes(M, ctx, normals, centers)
}

func projectToPlanes(M *conway.Mesh, ctx *refineCtx, normals, centers []r3.Vec) []r3.Vec {
	next := make([]r3.Vec, len(M.Verts))
	for vi, v := range M.Verts {
		faces := ctx.vertFaces[vi]
		if len(faces) == 0 {
			next[vi] = v
			continue
		}
		var sum r3.Vec
		for _, fi := range faces {
			n := normals[fi]
			d := r3.Dot(n, r3.Sub(v, centers[fi]))
			sum = r3.Add(sum, r3.Sub(v, r3.Scale(d, n)))
		}
		next[vi] = r3.Scale(1/float64(len(faces)), sum)
	}
	return next
}

// stepCanonical makes edges tangent to the unit sphere, recenters the edge tangent points on the origin,
// then flattens faces.
func stepCanonical(M *conway.Mesh, ctx *refineCtx) []r3.Vec {
	Nv := len(M.Verts)
	cur := make([]r3.Vec, Nv)
	copy(cur, M.Verts)

	// tangentify
	var tangentSum r3.Vec
	adjust := make([]r3.Vec, Nv)
	for _, e := range ctx.edges {
		a, b := cur[e.A], cur[e.B]
		t := closestToOrigin(a, b)
		tangentSum = r3.Add(tangentSum, t)
		corr := r3.Scale(0.5*(1-r3.Norm(t)), t)
		adjust[e.A] = r3.Add(adjust[e.A], corr)
		adjust[e.B] = r3.Add(adjust[e.B], corr)
	}
	for i := range cur {
		cur[i] = r3.Add(cur[i], adjust[i])
	}

	// recenter
	if len(ctx.edges) > 0 {
		shift := r3.Scale(1/float64(len(ctx.edges)), tangentSum)
		for i := range cur {
			cur[i] = r3.Sub(cur[i], shift)
		}
	}

	X := &conway.Mesh{Verts: cur, Faces: M.Faces}
	return stepProjectToPlanes(X, ctx)
}

// closestToOrigin returns the point on the line through a and b nearest the origin.
func closestToOrigin(a, b r3.Vec) r3.Vec {
	d := r3.Sub(b, a)
	dd := r3.Dot(d, d)
	if dd == 0 {
		return a
	}
	s := -r3.Dot(a, d) / dd
	return r3.Add(a, r3.Scale(s, d))
}
