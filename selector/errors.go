package selector

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicatePart     = errors.New("duplicate selector part")
	ErrInvalidCombinator = errors.New("invalid combinator")
	ErrMissingOperand    = errors.New("missing combinator operand")
)

// DuplicatePartError is recorded when element, id or pseudo-element is added
// to a fragment which already has one.
type DuplicatePartError struct {
	Kind     PartKind
	Existing string // value already present in the fragment
	Value    string // rejected value
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("unable to add %s %q, selector already has %s %q: element, id and pseudo-element should not occur more than one time inside the selector",
		e.Kind, e.Value, e.Kind, e.Existing)
}

func (e *DuplicatePartError) Is(target error) bool {
	return target == ErrDuplicatePart
}

// InvalidCombinatorError is recorded when selectors are combined with a symbol
// other than " ", "+", "~" or ">".
type InvalidCombinatorError struct {
	Combinator string
}

func (e *InvalidCombinatorError) Error() string {
	return fmt.Sprintf("invalid combinator %q, expected one of \" \", \"+\", \"~\", \">\"", e.Combinator)
}

func (e *InvalidCombinatorError) Is(target error) bool {
	return target == ErrInvalidCombinator
}
