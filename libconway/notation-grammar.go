package libconway

import (
	"strconv"
	"strings"

	"github.com/2x3systems/goconway/conway"
	"github.com/alecthomas/participle/v2/lexer"
)

// Notation is a validated notation string.
type Notation struct {
	Text     string
	Ops      []conway.Operation // in the order read, see Schedule()
	Seed     byte               // 0 if no seed was given
	SeedSize int                // n of P(n), A(n), or Y(n)
}

var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `[abdegjkmoprstx]`},
	{Name: "Seed", Pattern: `[TCOIDPAY]`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Invalid", Pattern: `[\s\S]`},
})

var (
	tokOp   = notationLexer.Symbols()["Op"]
	tokSeed = notationLexer.Symbols()["Seed"]
	tokInt  = notationLexer.Symbols()["Int"]
)

// what a digit run may follow
type digitsFollow int

const (
	followNothing digitsFollow = iota
	followParamOp
	followSizedSeed
)

type notationReader struct {
	Notation
	pending conway.Operator // k or t awaiting an optional parameter
	follow  digitsFollow
}

func (rdr *notationReader) errorAt(idx int, err error) error {
	return &conway.NotationError{
		Notation: rdr.Text,
		Pos:      idx + 1,
		Err:      err,
	}
}

func (rdr *notationReader) emit(pos int, op conway.Operator, param int) {
	rdr.Ops = append(rdr.Ops, conway.Operation{
		Pos:   pos,
		Op:    op,
		Param: param,
	})
}

func (rdr *notationReader) flushPending(pos int) {
	if rdr.pending != 0 {
		rdr.emit(pos, rdr.pending, 0)
		rdr.pending = 0
	}
}

// Validate reads a notation string into its operations and seed.
//
// The seed, if present, must be the last letter, so operators are read right to left from the seed.
// Errors are returned as a *conway.NotationError.
func Validate(s string) (*Notation, error) {
	rdr := &notationReader{
		Notation: Notation{
			Text: s,
		},
	}

	lex, err := notationLexer.LexString("", s)
	if err != nil {
		return nil, err
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, rdr.errorAt(tok.Pos.Offset, conway.ErrInvalidChar)
		}
		if tok.EOF() {
			break
		}

		i := tok.Pos.Offset
		switch tok.Type {
		case tokOp:
			if rdr.Seed != 0 {
				return nil, rdr.errorAt(i, conway.ErrOperatorAfterSeed)
			}
			rdr.flushPending(i)
			op := conway.Operator(tok.Value[0])
			if strings.IndexByte(conway.ParamOperators, tok.Value[0]) >= 0 {
				rdr.pending = op
				rdr.follow = followParamOp
			} else {
				rdr.emit(i+1, op, 0)
				rdr.follow = followNothing
			}

		case tokSeed:
			if rdr.Seed != 0 {
				return nil, rdr.errorAt(i, conway.ErrDuplicateSeed)
			}
			rdr.flushPending(i)
			rdr.Seed = tok.Value[0]
			if strings.IndexByte(conway.SizedSeeds, rdr.Seed) >= 0 {
				rdr.follow = followSizedSeed
			} else {
				rdr.follow = followNothing
			}

		case tokInt:
			n, err := strconv.Atoi(tok.Value)
			if err != nil {
				return nil, rdr.errorAt(i, conway.ErrInvalidChar)
			}
			switch rdr.follow {
			case followParamOp:
				if n < conway.MinParam {
					return nil, rdr.errorAt(i, conway.ErrParamTooSmall)
				}
				rdr.emit(i+1, rdr.pending, n)
				rdr.pending = 0
			case followSizedSeed:
				if n < conway.MinParam {
					return nil, rdr.errorAt(i, conway.ErrSeedSizeTooSmall)
				}
				rdr.SeedSize = n
			default:
				return nil, rdr.errorAt(i, conway.ErrMisplacedDigit)
			}
			rdr.follow = followNothing

		default:
			return nil, rdr.errorAt(i, conway.ErrInvalidChar)
		}
	}

	rdr.flushPending(len(s))
	if rdr.SeedSize == 0 && rdr.Seed != 0 && strings.IndexByte(conway.SizedSeeds, rdr.Seed) >= 0 {
		return nil, rdr.errorAt(len(s), conway.ErrSeedSizeRequired)
	}

	return &rdr.Notation, nil
}
