package core

import (
	"errors"
	"fmt"
	"strings"
)

// ConstraintKind names which caller input violated its constraint.
type ConstraintKind string

const (
	KindBoardShape ConstraintKind = "board-shape"
	KindSnakeShape ConstraintKind = "snake-shape"
	KindDepthRange ConstraintKind = "depth-range"
)

// Sentinels matched with errors.Is against a ConstraintError.
var (
	ErrBoardShape = errors.New("board shape constraint violated")
	ErrSnakeShape = errors.New("snake shape constraint violated")
	ErrDepthRange = errors.New("depth range constraint violated")
)

// ConstraintError reports every violation found while checking one input.
type ConstraintError struct {
	Kind    ConstraintKind
	Details []string
}

func (e *ConstraintError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("[%s] constraint error", e.Kind)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, strings.Join(e.Details, "; "))
}

// Unwrap returns the sentinel for the error's kind.
func (e *ConstraintError) Unwrap() error {
	switch e.Kind {
	case KindBoardShape:
		return ErrBoardShape
	case KindSnakeShape:
		return ErrSnakeShape
	case KindDepthRange:
		return ErrDepthRange
	default:
		return nil
	}
}

// Violations collects constraint messages for a single input before failing.
type Violations struct {
	kind    ConstraintKind
	details []string
}

// NewViolations starts an empty collection for the given kind.
func NewViolations(kind ConstraintKind) *Violations {
	return &Violations{kind: kind}
}

// Addf records one violation.
func (v *Violations) Addf(format string, args ...any) {
	v.details = append(v.details, fmt.Sprintf(format, args...))
}

// Err returns nil if nothing was recorded, or a *ConstraintError otherwise.
func (v *Violations) Err() error {
	if len(v.details) == 0 {
		return nil
	}
	return &ConstraintError{Kind: v.kind, Details: v.details}
}

// KindsOf lists the constraint kinds found in err, in wrap order.
// Works on errors joined with errors.Join.
func KindsOf(err error) []ConstraintKind {
	var kinds []ConstraintKind
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ce, ok := e.(*ConstraintError); ok {
			kinds = append(kinds, ce.Kind)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return kinds
}
