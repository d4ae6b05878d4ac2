package interp

import (
	"errors"
	"fmt"

	"github.com/npillmayer/bpp"
	"github.com/npillmayer/bpp/syntax"
)

// LookupError is a reference to a variable which is not visible from the
// current scope.
type LookupError struct {
	Name string
	Span bpp.Span
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("undefined variable '%s' at %v", e.Name, e.Span)
}

// ArithmeticError is a division or modulo by zero.
type ArithmeticError struct {
	Op   syntax.ArithOp
	Span bpp.Span
}

func (e *ArithmeticError) Error() string {
	what := "division"
	if e.Op == syntax.Mod {
		what = "modulo"
	}
	return fmt.Sprintf("%s by zero at %v", what, e.Span)
}

// IsPropagated is a predicate: is err a failure aborting a script run?
func IsPropagated(err error) bool {
	var lerr *LookupError
	var aerr *ArithmeticError
	return errors.As(err, &lerr) || errors.As(err, &aerr)
}
