package conway

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidChar       = errors.New("unexpected character")
	ErrMisplacedDigit    = errors.New("digit not preceded by k, t, P, A or Y")
	ErrDuplicateSeed     = errors.New("more than one seed")
	ErrOperatorAfterSeed = errors.New("operator follows the seed")
	ErrParamTooSmall     = errors.New("k(n) and t(n) require n >= 3")
	ErrSeedSizeTooSmall  = errors.New("P(n), A(n), or Y(n) require n >= 3")
	ErrSeedSizeRequired  = errors.New("seed P(n), A(n), or Y(n) requires n")
	ErrUnknownSeed       = errors.New("unknown seed")
	ErrSeedWithInput     = errors.New("seed was specified so an input mesh is unexpected")
	ErrNoSeed            = errors.New("no seed and no input mesh")
	ErrBrokenFace        = errors.New("face cycle does not close")
	ErrBadMesh           = errors.New("bad mesh")
	ErrDiverged          = errors.New("vertex refinement diverged")
	ErrBadMethod         = errors.New("unknown planarize or canonicalize method")
	ErrUnmarshal         = errors.New("unmarshal failed")
	ErrBadCatalogParam   = errors.New("bad catalog param")
	ErrReadOnly          = errors.New("catalog is read-only")
)

// NotationError reports a malformed notation string and the 1-based position of the offending character.
type NotationError struct {
	Notation string
	Pos      int
	Err      error
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("%v in position %d: %s", e.Err, e.Pos, e.Notation)
}

// Cause returns the sentinel error, see github.com/pkg/errors.
func (e *NotationError) Cause() error {
	return e.Err
}

func (e *NotationError) Unwrap() error {
	return e.Err
}
