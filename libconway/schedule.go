package libconway

import (
	"github.com/2x3systems/goconway/conway"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Schedule returns the given operations in the order they are run.
//
// Operations run from the one nearest the seed outward (descending Pos).
// If reverse is set, operations instead run in the order written (ascending Pos).
func Schedule(ops []conway.Operation, reverse bool) []conway.Operation {
	byPos := redblacktree.NewWith(utils.IntComparator)
	for _, op := range ops {
		byPos.Put(op.Pos, op)
	}

	out := make([]conway.Operation, 0, byPos.Size())
	it := byPos.Iterator()
	if reverse {
		for it.Next() {
			out = append(out, it.Value().(conway.Operation))
		}
	} else {
		for it.End(); it.Prev(); {
			out = append(out, it.Value().(conway.Operation))
		}
	}
	return out
}
