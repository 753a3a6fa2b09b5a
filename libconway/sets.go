package libconway

import (
	"github.com/2x3systems/goconway/conway"
	"github.com/dgraph-io/badger/v3"
)

// SpectrumSet allows adding meshes and returning if a mesh with the same counts and spectra has already been added.
type SpectrumSet interface {
	conway.MeshAdder

	// Len returns the number of distinct meshes added.
	Len() int

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAdd(), call Close() when you're done.
	Close()
}

// NewSpectrumSet returns a SpectrumSet backed by an in-memory db that is opened on first use.
func NewSpectrumSet() SpectrumSet {
	return &spectrumSet{}
}

type spectrumSet struct {
	lsmSet
	count int
}

func (ss *spectrumSet) TryAdd(M *conway.Mesh) bool {
	var buf [128]byte
	info := M.GetInfo()
	key := info.AppendSignature(buf[:0])
	added := ss.tryAdd(key)
	if added {
		ss.count++
	}
	return added
}

func (ss *spectrumSet) Len() int {
	return ss.count
}

func (ss *spectrumSet) Close() {
	ss.lsmSet.Close()
	ss.count = 0
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
