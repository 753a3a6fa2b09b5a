package libconway

import (
	"github.com/2x3systems/goconway/conway"
)

// inheritParam marks a macro step that takes the parameter of the operation being expanded.
const inheritParam = -1

// macroTable maps each composite operator to the operators it is written as.
// As in a notation string, the rightmost operator runs first.
var macroTable = map[conway.Operator][]conway.Operation{
	conway.OpExpand:   {{Op: conway.OpAmbo}, {Op: conway.OpAmbo}},
	conway.OpJoin:     {{Op: conway.OpDual}, {Op: conway.OpAmbo}, {Op: conway.OpDual}},
	conway.OpMeta:     {{Op: conway.OpKis}, {Op: conway.OpJoin}},
	conway.OpOrtho:    {{Op: conway.OpJoin}, {Op: conway.OpJoin}},
	conway.OpSnub:     {{Op: conway.OpDual}, {Op: conway.OpGyro}, {Op: conway.OpDual}},
	conway.OpTruncate: {{Op: conway.OpDual}, {Op: conway.OpKis, Param: inheritParam}, {Op: conway.OpDual}},
	conway.OpBevel:    {{Op: conway.OpTruncate}, {Op: conway.OpAmbo}},
}

// ExpandOperation appends the primitive operations that op runs as.
//
// If truncateAlgorithm is set, ambo and truncate run as direct vertex truncations, including within composites.
func ExpandOperation(op conway.Operation, truncateAlgorithm bool, out []conway.Operation) []conway.Operation {
	if truncateAlgorithm {
		switch op.Op {
		case conway.OpAmbo:
			op.Op = conway.OpTruncAmbo
		case conway.OpTruncate:
			op.Op = conway.OpTruncRatio
		}
	}

	steps, isMacro := macroTable[op.Op]
	if !isMacro {
		return append(out, op)
	}
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		step.Pos = op.Pos
		if step.Param == inheritParam {
			step.Param = op.Param
		}
		out = ExpandOperation(step, truncateAlgorithm, out)
	}
	return out
}
