package conway

import (
	"encoding/binary"
	"math"
	"sync"
)

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	closeOnce    sync.Once
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)
		ctx.mu.Lock()
		for cat := range ctx.openCatalogs {
			go cat.Close()
		}
		ctx.mu.Unlock()
	})
}

// CatalogKey returns the key under which the mesh produced by running a resolved notation with the given options is stored.
//
// Only options that change the resulting geometry contribute to the key.
func CatalogKey(resolved string, opts Options) []byte {
	key := make([]byte, 0, len(resolved)+40)
	key = append(key, resolved...)
	key = append(key, 0)

	flags := byte(0)
	if opts.Reverse {
		flags |= 0x01
	}
	if opts.TruncateAlgorithm {
		flags |= 0x02
	}
	if opts.Unitize {
		flags |= 0x04
	}
	key = append(key, flags)
	key = opts.Planarize.appendKey(key)
	key = opts.Canonicalize.appendKey(key)
	return key
}

func (po *PlanarizeOpts) appendKey(key []byte) []byte {
	key = append(key, po.Method)
	if po.Method == 0 {
		return key
	}
	key = binary.AppendVarint(key, int64(po.MaxIters))
	key = binary.BigEndian.AppendUint64(key, math.Float64bits(po.Tolerance))
	return key
}
