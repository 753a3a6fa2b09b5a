package conway

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a vertex position.
type Vec = r3.Vec

// Mesh is a polyhedral surface: a vertex list and a list of faces, each face an ordered cycle of vertex indices
// read counter-clockwise when viewed from outside.
//
// Operators never modify a Mesh passed to them; each returns a freshly built Mesh.
type Mesh struct {
	Verts []Vec
	Faces [][]int
}

// Operator is a notation letter naming a topology operation.
type Operator byte

const (
	OpAmbo      Operator = 'a'
	OpBevel     Operator = 'b'
	OpDual      Operator = 'd'
	OpExpand    Operator = 'e'
	OpGyro      Operator = 'g'
	OpJoin      Operator = 'j'
	OpKis       Operator = 'k'
	OpMeta      Operator = 'm'
	OpOrtho     Operator = 'o'
	OpPropellor Operator = 'p'
	OpReflect   Operator = 'r'
	OpSnub      Operator = 's'
	OpTruncate  Operator = 't'
	OpNull      Operator = 'x'

	// Truncate algorithm mode substitutes
	OpTruncAmbo  Operator = '^' // ambo as a vertex truncation at ratio 1/2
	OpTruncRatio Operator = '#' // truncate as a vertex truncation at ratio 1/3
)

const (
	// NotationOperators are the operator letters accepted in a notation string.
	NotationOperators = "abdegjkmoprstx"

	// NotationSeeds are the seed letters accepted in a notation string.
	NotationSeeds = "TCOIDPAY"

	// ParamOperators are the operators that accept a trailing numeric parameter.
	ParamOperators = "kt"

	// SizedSeeds are the seeds that require a trailing size.
	SizedSeeds = "PAY"

	// MinParam is the smallest accepted operator parameter or seed size.
	MinParam = 3
)

func (op Operator) String() string {
	switch op {
	case OpAmbo:
		return "ambo"
	case OpBevel:
		return "bevel"
	case OpDual:
		return "dual"
	case OpExpand:
		return "expand"
	case OpGyro:
		return "gyro"
	case OpJoin:
		return "join"
	case OpKis:
		return "kis"
	case OpMeta:
		return "meta"
	case OpOrtho:
		return "ortho"
	case OpPropellor:
		return "propellor"
	case OpReflect:
		return "reflect"
	case OpSnub:
		return "snub"
	case OpTruncate:
		return "truncate"
	case OpNull:
		return "null"
	case OpTruncAmbo:
		return "ambo as truncate to edge midpoints"
	case OpTruncRatio:
		return "truncate by ratio"
	}
	return "unknown"
}

// Operation is one operator occurrence in a notation string.
//
// Pos is the operation's position in the notation it was read from and only serves to order operations.
// Param is the operator's numeric argument, where 0 denotes "every face size" for kis and truncate.
type Operation struct {
	Pos   int
	Op    Operator
	Param int
}

// PlanarizeOpts configures an iterative vertex refinement pass.
type PlanarizeOpts struct {
	Method    byte    // 0 denotes no pass
	MaxIters  int     // < 0 denotes until converged, 0 disables the pass
	Tolerance float64 // max vertex movement that ends the pass
}

// Options specifies how a notation string is resolved and run.
//
// Options is passed by value and never modified by the pipeline.
type Options struct {
	NoSimplify        bool // skip the rewrite simplifier
	Reverse           bool // run operators left to right
	TruncateAlgorithm bool // ambo and truncate as direct vertex truncation
	Unitize           bool // scale the result to unit average edge length
	Verbose           bool // log one line per executed step

	Planarize    PlanarizeOpts // run after every primitive step
	Canonicalize PlanarizeOpts // run once after all steps
}

// DefaultTolerance is the default planarize and canonicalize stop threshold.
const DefaultTolerance = 1e-12

// DefaultOptions are the Options used by the command line tool when no flags are given.
var DefaultOptions = Options{
	Planarize: PlanarizeOpts{
		Method:    'p',
		MaxIters:  -1,
		Tolerance: DefaultTolerance,
	},
	Canonicalize: PlanarizeOpts{
		MaxIters:  -1,
		Tolerance: DefaultTolerance,
	},
}

// MeshInfo summarizes the combinatorics of a Mesh.
type MeshInfo struct {
	NumVerts      int
	NumEdges      int
	NumFaces      int
	FaceSizes     Spectrum // FaceSizes[n] is the number of n-sided faces
	VertexDegrees Spectrum // VertexDegrees[n] is the number of vertices with n incident edges
}

// PrintOpts specifies what is printed when printing a Mesh
type PrintOpts struct {
	Label    string // Prefix label
	Counts   bool   // If set, prints vertex, edge, and face counts
	Spectrum bool   // If set, prints the face size and vertex degree spectra
	Verts    bool   // If set, prints vertex coordinates
	Faces    bool   // If set, prints face index lists
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Counts:   true,
	Spectrum: true,
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog wraps a database of meshes keyed by a resolved notation and the options that produced them.
type Catalog interface {

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// Looks up the mesh stored under the given key.
	// If no mesh is stored, (nil, nil) is returned.
	GetMesh(key []byte) (*Mesh, error)

	// Stores M under the given key, replacing any previous entry.
	PutMesh(key []byte, M *Mesh) error

	// NumMeshes returns the number of meshes stored in this catalog.
	NumMeshes() int64

	Close() error
}

// MeshAdder accepts meshes and reports if an equivalent mesh was already seen.
type MeshAdder interface {

	// Tries to add the given mesh.
	// If true is returned, no equivalent mesh was present and M was added.
	TryAdd(M *Mesh) bool
}
