package libconway

import (
	"fmt"
	"strings"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway/geom"
	"github.com/2x3systems/goconway/libconway/seeds"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Plan is a compiled notation: its resolved form, its seed, and its operations in run order.
type Plan struct {
	Input    string             // notation as given
	Resolved string             // notation after simplification
	Seed     byte               // 0 when the notation runs on an input mesh
	SeedSize int                // n of P(n), A(n), or Y(n)
	Ops      []conway.Operation // in run order
}

// Compile validates, simplifies and schedules a notation string.
func Compile(notation string, opts conway.Options) (*Plan, error) {
	N, err := Validate(notation)
	if err != nil {
		return nil, err
	}

	resolved := notation
	if !opts.NoSimplify {
		resolved = Simplify(notation, opts.TruncateAlgorithm)
		if resolved != notation {
			shown := resolved
			if len(shown) == 0 {
				shown = "NOTHING"
			}
			klog.Infof("notation %q resolved to %q", notation, shown)

			N, err = Validate(resolved)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving %q", notation)
			}
		}
	}

	plan := &Plan{
		Input:    notation,
		Resolved: resolved,
		Seed:     N.Seed,
		SeedSize: N.SeedSize,
		Ops:      Schedule(N.Ops, opts.Reverse),
	}
	return plan, nil
}

// Steps returns the primitive operations this plan runs, with composites expanded.
func (plan *Plan) Steps(opts conway.Options) []conway.Operation {
	steps := make([]conway.Operation, 0, 2*len(plan.Ops))
	for _, op := range plan.Ops {
		steps = ExpandOperation(op, opts.TruncateAlgorithm, steps)
	}
	return steps
}

// FormatOperation returns a one line description of op, e.g. "k4 (kis)".
func FormatOperation(op conway.Operation) string {
	var b strings.Builder
	b.WriteByte(byte(op.Op))
	if op.Param > 0 {
		fmt.Fprintf(&b, "%d", op.Param)
	}
	fmt.Fprintf(&b, " (%v)", op.Op)
	return b.String()
}

// FormatTrace returns the line logged when op runs as the given primitive steps, e.g. "t (truncate) = d k d".
func FormatTrace(op conway.Operation, steps []conway.Operation) string {
	var b strings.Builder
	b.WriteString(FormatOperation(op))
	if len(steps) == 1 && steps[0].Op == op.Op {
		return b.String()
	}
	b.WriteString(" =")
	for i := len(steps) - 1; i >= 0; i-- {
		b.WriteByte(' ')
		b.WriteByte(byte(steps[i].Op))
		if steps[i].Param > 0 {
			fmt.Fprintf(&b, "%d", steps[i].Param)
		}
	}
	return b.String()
}

// Run compiles a notation and runs it on its seed or, when the notation has no seed, on a copy of input.
func Run(notation string, input *conway.Mesh, opts conway.Options) (*conway.Mesh, error) {
	plan, err := Compile(notation, opts)
	if err != nil {
		return nil, err
	}
	return plan.Run(input, opts)
}

// Run runs this plan on its seed or, when there is no seed, on a copy of input.
func (plan *Plan) Run(input *conway.Mesh, opts conway.Options) (*conway.Mesh, error) {
	var M *conway.Mesh
	var err error

	switch {
	case plan.Seed != 0 && input != nil:
		return nil, errors.Wrapf(conway.ErrSeedWithInput, "seed %c", plan.Seed)
	case plan.Seed != 0:
		if M, err = seeds.Make(plan.Seed, plan.SeedSize); err != nil {
			return nil, err
		}
	case input != nil:
		if err = input.Validate(); err != nil {
			return nil, err
		}
		M = input.Clone()
	default:
		return nil, conway.ErrNoSeed
	}

	geom.Orient(M)
	geom.CentroidToOrigin(M)

	for _, op := range plan.Ops {
		steps := ExpandOperation(op, opts.TruncateAlgorithm, nil)
		if opts.Verbose {
			klog.Infof("%s", FormatTrace(op, steps))
		}
		for _, step := range steps {
			X, err := applyOperation(M, step)
			if err == errNoOperator {
				klog.Warningf("unexpected operator %q, skipped", step.Op)
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "running %s", FormatOperation(step))
			}
			M = X

			if opts.Planarize.MaxIters != 0 {
				if _, err = geom.Planarize(M, opts.Planarize.Method, opts.Planarize.MaxIters, opts.Planarize.Tolerance); err != nil {
					klog.Warningf("planarize after %s: %v", FormatOperation(step), err)
					return nil, err
				}
			}
		}
	}

	if iters, err := geom.Canonicalize(M, opts.Canonicalize.Method, opts.Canonicalize.MaxIters, opts.Canonicalize.Tolerance); err != nil {
		klog.Warningf("canonicalize: %v", err)
		return nil, err
	} else if opts.Verbose && iters > 0 {
		klog.Infof("canonicalize %q: %d iterations", opts.Canonicalize.Method, iters)
	}

	if opts.Unitize {
		geom.UnitizeEdges(M)
	}
	return M, nil
}

// RunWithCatalog runs a seeded notation, returning the mesh stored in cat if present and storing it otherwise.
func RunWithCatalog(cat conway.Catalog, notation string, opts conway.Options) (*conway.Mesh, error) {
	plan, err := Compile(notation, opts)
	if err != nil {
		return nil, err
	}
	if plan.Seed == 0 {
		return nil, errors.Wrapf(conway.ErrNoSeed, "catalog lookup of %q", notation)
	}

	key := conway.CatalogKey(plan.Resolved, opts)
	M, err := cat.GetMesh(key)
	if err != nil || M != nil {
		return M, err
	}

	M, err = plan.Run(nil, opts)
	if err != nil {
		return nil, err
	}
	if !cat.IsReadOnly() {
		if err = cat.PutMesh(key, M); err != nil {
			return nil, err
		}
	}
	return M, nil
}
