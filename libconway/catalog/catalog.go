package catalog

import (
	"runtime"

	"github.com/2x3systems/goconway/conway"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState (varints)

	kMeshPrefix, CatalogKey  => Mesh (see MarshalMesh)

where CatalogKey is conway.CatalogKey(resolved notation, options).

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kMeshPrefix = 0x01

	kMajorVers = 2024
	kMinorVers = 1
)

type catalogState struct {
	MajorVers uint64
	MinorVers uint64
	NumMeshes uint64
}

func (state *catalogState) Marshal() []byte {
	buf := proto.NewBuffer(make([]byte, 0, 16))
	buf.EncodeVarint(state.MajorVers)
	buf.EncodeVarint(state.MinorVers)
	buf.EncodeVarint(state.NumMeshes)
	return buf.Bytes()
}

func (state *catalogState) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)
	var err error
	for _, field := range []*uint64{&state.MajorVers, &state.MinorVers, &state.NumMeshes} {
		if *field, err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(conway.ErrUnmarshal, "catalog state")
		}
	}
	return nil
}

// catalog is a badger db of meshes
type catalog struct {
	ctx        conway.CatalogContext
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

// OpenCatalog opens a new or existing catalog and attaches it to ctx until closed.
// If opts.DbPathName is empty, the catalog is held in memory.
func OpenCatalog(ctx conway.CatalogContext, opts conway.CatalogOpts) (conway.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(conway.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, we consider the catalog ctx blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Errorf("catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
	return err
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) Close() error {
	var err error
	if cat.db != nil {
		err = cat.flushState()
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumMeshes() int64 {
	return int64(cat.state.NumMeshes)
}

func formMeshKey(key []byte) []byte {
	meshKey := make([]byte, 0, len(key)+1)
	meshKey = append(meshKey, kMeshPrefix)
	return append(meshKey, key...)
}

func (cat *catalog) GetMesh(key []byte) (*conway.Mesh, error) {
	var M *conway.Mesh
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formMeshKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			M, err = UnmarshalMesh(val)
			return err
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "catalog key %q", key)
	}
	return M, nil
}

func (cat *catalog) PutMesh(key []byte, M *conway.Mesh) error {
	if cat.readOnly {
		return conway.ErrReadOnly
	}

	meshKey := formMeshKey(key)
	val := MarshalMesh(nil, M)
	return cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(meshKey)
		if err == badger.ErrKeyNotFound {
			cat.state.NumMeshes++
			cat.stateDirty = true
		} else if err != nil {
			return err
		}
		return txn.Set(meshKey, val)
	})
}
