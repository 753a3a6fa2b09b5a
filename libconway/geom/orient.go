package geom

import (
	"github.com/2x3systems/goconway/conway"
)

type dirEdge struct {
	from, to int
}

// Orient makes the winding of M's faces consistent across shared edges, then flips every face if M's
// signed volume is negative, so face normals point outward.
func Orient(M *conway.Mesh) {
	Nf := len(M.Faces)
	if Nf == 0 {
		return
	}

	// undirected edge -> faces sharing it
	edgeFaces := make(map[conway.Edge][]int, 2*Nf)
	for fi, face := range M.Faces {
		N := len(face)
		for j := range face {
			e := conway.MakeEdge(face[j], face[(j+1)%N])
			edgeFaces[e] = append(edgeFaces[e], fi)
		}
	}

	visited := make([]bool, Nf)
	queue := make([]int, 0, Nf)
	for start := 0; start < Nf; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			fi := queue[0]
			queue = queue[1:]
			face := M.Faces[fi]
			N := len(face)
			for j := range face {
				a, b := face[j], face[(j+1)%N]
				for _, gi := range edgeFaces[conway.MakeEdge(a, b)] {
					if gi == fi || visited[gi] {
						continue
					}
					visited[gi] = true
					if hasDirEdge(M.Faces[gi], a, b) {
						reverse(M.Faces[gi])
					}
					queue = append(queue, gi)
				}
			}
		}
	}

	if SignedVolume(M) < 0 {
		for _, face := range M.Faces {
			reverse(face)
		}
	}
}

func hasDirEdge(face []int, from, to int) bool {
	N := len(face)
	for j := range face {
		if face[j] == from && face[(j+1)%N] == to {
			return true
		}
	}
	return false
}

// DirectedEdgeFaces maps each directed edge (from, to) of M to the face it bounds.
func DirectedEdgeFaces(M *conway.Mesh) map[[2]int]int {
	out := make(map[[2]int]int, 2*len(M.Faces))
	for fi, face := range M.Faces {
		N := len(face)
		for j := range face {
			out[[2]int{face[j], face[(j+1)%N]}] = fi
		}
	}
	return out
}

// VertexFaces returns, for each vertex of M, the faces around it.
//
// For an oriented closed mesh, the faces are listed in the order that makes them a counter-clockwise dual face.
// Where the surface is open or not manifold, the remaining incident faces are appended unordered.
func VertexFaces(M *conway.Mesh) [][]int {
	Nv := len(M.Verts)
	incident := make([][]int, Nv)
	prevOf := make(map[[2]int]int, 4*len(M.Faces)) // (face, vertex) -> previous vertex in face
	for fi, face := range M.Faces {
		N := len(face)
		for j, vi := range face {
			incident[vi] = append(incident[vi], fi)
			prevOf[[2]int{fi, vi}] = face[(j+N-1)%N]
		}
	}

	edgeFace := DirectedEdgeFaces(M)
	out := make([][]int, Nv)
	for vi, faces := range incident {
		if len(faces) == 0 {
			continue
		}
		ring := make([]int, 0, len(faces))
		seen := make(map[int]bool, len(faces))
		fi := faces[0]
		for !seen[fi] {
			seen[fi] = true
			ring = append(ring, fi)
			u := prevOf[[2]int{fi, vi}]
			next, exists := edgeFace[[2]int{vi, u}]
			if !exists {
				break
			}
			fi = next
		}
		for _, fi := range faces {
			if !seen[fi] {
				seen[fi] = true
				ring = append(ring, fi)
			}
		}
		out[vi] = ring
	}
	return out
}
