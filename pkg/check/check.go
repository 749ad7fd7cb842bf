// Package check provides contract helpers: precondition, postcondition, and
// invariant checks that report failures as ordinary errors instead of
// panicking. Checks can be disabled globally for release builds; disabled
// checks return nil without formatting their message.
package check

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrViolation matches any contract violation via errors.Is.
var ErrViolation = errors.New("contract violation")

// Kind identifies which side of a contract was broken.
type Kind string

// Contract kinds.
const (
	KindPrecondition  Kind = "precondition"
	KindPostcondition Kind = "postcondition"
	KindInvariant     Kind = "invariant"
)

// Violation is the error returned by a failed check.
type Violation struct {
	Kind    Kind
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s violated: %s", v.Kind, v.Message)
}

// Is makes errors.Is(err, ErrViolation) match every Violation.
func (v *Violation) Is(target error) bool {
	return target == ErrViolation
}

// disabled is the global kill switch. Zero value: checks enabled.
var disabled atomic.Bool

// SetEnabled turns contract checking on or off process-wide.
func SetEnabled(on bool) {
	disabled.Store(!on)
}

// Enabled reports whether contract checking is active.
func Enabled() bool {
	return !disabled.Load()
}

// Require checks a precondition. Returns a *Violation when cond is false and
// checking is enabled; nil otherwise.
func Require(cond bool, format string, args ...any) error {
	return violation(KindPrecondition, cond, format, args)
}

// Ensure checks a postcondition.
func Ensure(cond bool, format string, args ...any) error {
	return violation(KindPostcondition, cond, format, args)
}

// Invariant checks a structural invariant.
func Invariant(cond bool, format string, args ...any) error {
	return violation(KindInvariant, cond, format, args)
}

func violation(kind Kind, cond bool, format string, args []any) error {
	if cond || disabled.Load() {
		return nil
	}
	return &Violation{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
