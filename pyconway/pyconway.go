package pyconway

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway"
	"github.com/2x3systems/goconway/libconway/catalog"
	"github.com/2x3systems/goconway/libconway/off"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyMeshType        = py.NewType("Mesh", "a polyhedron: vertex positions and faces")
	pySpectrumSetType = py.NewType("SpectrumSet", "reports if a mesh with the same counts and spectra was already added")
	pyCatalogType     = py.NewType("Catalog", "conway.Catalog")
	pyWorkspaceType   = py.NewType("Workspace", "collects active session resources and catalogs")
)

// Run and Resolve flags
const (
	NO_SIMPLIFY        = 0x01
	REVERSE            = 0x02
	TRUNCATE_ALGORITHM = 0x04
	UNITIZE            = 0x08
	VERBOSE            = 0x10
	NO_PLANARIZE       = 0x20
)

// OpenCatalog flags
const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

// OptionsFromFlags returns the conway.Options that a script's flags select.
func OptionsFromFlags(flags int) conway.Options {
	opts := conway.DefaultOptions
	opts.NoSimplify = flags&NO_SIMPLIFY != 0
	opts.Reverse = flags&REVERSE != 0
	opts.TruncateAlgorithm = flags&TRUNCATE_ALGORITHM != 0
	opts.Unitize = flags&UNITIZE != 0
	opts.Verbose = flags&VERBOSE != 0
	if flags&NO_PLANARIZE != 0 {
		opts.Planarize.MaxIters = 0
	}
	return opts
}

// parseNotationArgs reads (notation string [, flags int])
func parseNotationArgs(args py.Tuple) (string, conway.Options, error) {
	var notationObj, flagsObj py.Object
	err := py.ParseTuple(args, "s|i", &notationObj, &flagsObj)
	if err != nil {
		return "", conway.Options{}, err
	}
	flags := 0
	if flagsObj != nil {
		flags = int(flagsObj.(py.Int))
	}
	return string(notationObj.(py.String)), OptionsFromFlags(flags), nil
}

func raise(err error) error {
	return py.ExceptionNewf(py.ValueError, "%v", err)
}

type pyMesh struct {
	*conway.Mesh
}

func (M pyMesh) Type() *py.Type {
	return pyMeshType
}

func (M pyMesh) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	M.WriteAsString(&writer, conway.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (M pyMesh) M__repr__() (py.Object, error) {
	return M.M__str__()
}

func getMeshFromObj(obj py.Object) (pyMesh, error) {
	M, ok := obj.(pyMesh)
	if !ok {
		return M, py.ExceptionNewf(py.TypeError, "expected Mesh object (got %v)", obj.Type().Name)
	}
	return M, nil
}

func spectrumTuple(S conway.Spectrum) py.Tuple {
	out := make(py.Tuple, len(S))
	for i, Si := range S {
		out[i] = py.Int(Si)
	}
	return out
}

func py_Run(module py.Object, args py.Tuple) (py.Object, error) {
	notation, opts, err := parseNotationArgs(args)
	if err != nil {
		return nil, err
	}
	M, err := libconway.Run(notation, nil, opts)
	if err != nil {
		return nil, raise(err)
	}
	return pyMesh{M}, nil
}

func py_Resolve(module py.Object, args py.Tuple) (py.Object, error) {
	notation, opts, err := parseNotationArgs(args)
	if err != nil {
		return nil, err
	}
	plan, err := libconway.Compile(notation, opts)
	if err != nil {
		return nil, raise(err)
	}
	return py.String(plan.Resolved), nil
}

func py_ReadOFF(module py.Object, args py.Tuple) (py.Object, error) {
	var pathObj py.Object
	if err := py.ParseTuple(args, "s", &pathObj); err != nil {
		return nil, err
	}
	file, err := os.Open(string(pathObj.(py.String)))
	if err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	defer file.Close()

	M, err := off.Read(file)
	if err != nil {
		return nil, raise(err)
	}
	return pyMesh{M}, nil
}

func py_Mesh_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	return py.Int(M.NumVerts()), nil
}

func py_Mesh_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	return py.Int(M.NumEdges()), nil
}

func py_Mesh_NumFaces(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	return py.Int(M.NumFaces()), nil
}

func py_Mesh_FaceSizes(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	return spectrumTuple(M.GetInfo().FaceSizes), nil
}

func py_Mesh_VertexDegrees(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	return spectrumTuple(M.GetInfo().VertexDegrees), nil
}

// Applies (notation [, flags]) to this mesh, where notation has no seed.
func py_Mesh_Apply(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	notation, opts, err := parseNotationArgs(args)
	if err != nil {
		return nil, err
	}
	X, err := libconway.Run(notation, M.Mesh, opts)
	if err != nil {
		return nil, raise(err)
	}
	return pyMesh{X}, nil
}

func py_Mesh_WriteOFF(self py.Object, args py.Tuple) (py.Object, error) {
	M := self.(pyMesh)
	var pathObj py.Object
	if err := py.ParseTuple(args, "s", &pathObj); err != nil {
		return nil, err
	}
	pathname := string(pathObj.(py.String))
	os.MkdirAll(filepath.Dir(pathname), 0700)

	file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	defer file.Close()
	if err = off.Write(file, M.Mesh); err != nil {
		return nil, py.ExceptionNewf(py.OSError, "%v", err)
	}
	return py.None, nil
}

type pySpectrumSet struct {
	libconway.SpectrumSet
}

func (set pySpectrumSet) Type() *py.Type {
	return pySpectrumSetType
}

func py_NewSpectrumSet(module py.Object, args py.Tuple) (py.Object, error) {
	return pySpectrumSet{libconway.NewSpectrumSet()}, nil
}

func py_SpectrumSet_TryAdd(self py.Object, args py.Tuple) (py.Object, error) {
	set := self.(pySpectrumSet)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "TryAdd() takes exactly one Mesh")
	}
	M, err := getMeshFromObj(args[0])
	if err != nil {
		return nil, err
	}
	return py.NewBool(set.TryAdd(M.Mesh)), nil
}

func py_SpectrumSet_Len(self py.Object, args py.Tuple) (py.Object, error) {
	set := self.(pySpectrumSet)
	return py.Int(set.Len()), nil
}

func py_SpectrumSet_Close(self py.Object, args py.Tuple) (py.Object, error) {
	set := self.(pySpectrumSet)
	set.Close()
	return py.None, nil
}

type Workspace struct {
	CatalogCtx conway.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: conway.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathObj py.Object
	if err := py.ParseTuple(args, "s", &pathObj); err != nil {
		return nil, err
	}
	_, err := os.Stat(string(pathObj.(py.String)))
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Opens (pathname [, flags]), where an empty pathname opens an in-memory catalog.
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathObj, flagsObj py.Object
	if err := py.ParseTuple(args, "s|i", &pathObj, &flagsObj); err != nil {
		return nil, err
	}
	flags := 0
	if flagsObj != nil {
		flags = int(flagsObj.(py.Int))
	}

	opts := conway.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: string(pathObj.(py.String)),
	}
	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	conway.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_NumMeshes(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumMeshes()), nil
}

// Runs (notation [, flags]) through the catalog, returning the stored mesh when present.
func py_Catalog_Run(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	notation, opts, err := parseNotationArgs(args)
	if err != nil {
		return nil, err
	}
	M, err := libconway.RunWithCatalog(cat.Catalog, notation, opts)
	if err != nil {
		return nil, raise(err)
	}
	return pyMesh{M}, nil
}

func init() {

	/////////////////////////////////
	// Mesh
	{
		pyMeshType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Mesh_NumVerts, 0, "")
		pyMeshType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Mesh_NumEdges, 0, "")
		pyMeshType.Dict["NumFaces"] = py.MustNewMethod("NumFaces", py_Mesh_NumFaces, 0, "")
		pyMeshType.Dict["FaceSizes"] = py.MustNewMethod("FaceSizes", py_Mesh_FaceSizes, 0, "tuple whose item n is the number of n-sided faces")
		pyMeshType.Dict["VertexDegrees"] = py.MustNewMethod("VertexDegrees", py_Mesh_VertexDegrees, 0, "tuple whose item n is the number of n-edge vertices")
		pyMeshType.Dict["Apply"] = py.MustNewMethod("Apply", py_Mesh_Apply, 0, "runs a notation without a seed on this mesh")
		pyMeshType.Dict["WriteOFF"] = py.MustNewMethod("WriteOFF", py_Mesh_WriteOFF, 0, "writes this mesh to an OFF file")
	}

	/////////////////////////////////
	// SpectrumSet
	{
		pySpectrumSetType.Dict["TryAdd"] = py.MustNewMethod("TryAdd", py_SpectrumSet_TryAdd, 0, "adds a Mesh, returning False if an equivalent was already added")
		pySpectrumSetType.Dict["Len"] = py.MustNewMethod("Len", py_SpectrumSet_Len, 0, "")
		pySpectrumSetType.Dict["Close"] = py.MustNewMethod("Close", py_SpectrumSet_Close, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Run"] = py.MustNewMethod("Run", py_Catalog_Run, 0, "")
		pyCatalogType.Dict["NumMeshes"] = py.MustNewMethod("NumMeshes", py_Catalog_NumMeshes, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Run", py_Run, 0, "runs (notation [, flags]) and returns the resulting Mesh"),
			py.MustNewMethod("Resolve", py_Resolve, 0, "returns the notation that (notation [, flags]) runs as"),
			py.MustNewMethod("ReadOFF", py_ReadOFF, 0, "reads a Mesh from an OFF file"),
			py.MustNewMethod("NewSpectrumSet", py_NewSpectrumSet, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":        py.String(LIB_VERSION),
			"NO_SIMPLIFY":        py.Int(NO_SIMPLIFY),
			"REVERSE":            py.Int(REVERSE),
			"TRUNCATE_ALGORITHM": py.Int(TRUNCATE_ALGORITHM),
			"UNITIZE":            py.Int(UNITIZE),
			"VERBOSE":            py.Int(VERBOSE),
			"NO_PLANARIZE":       py.Int(NO_PLANARIZE),
			"READ_ONLY":          py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyconway",
				Doc:  "Conway polyhedron notation gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
