// nti-admin/internal/ledger/errors.go

package ledger

import "errors"

// Engine failure kinds. Handlers map these onto HTTP statuses; the
// kinds themselves stay transport-agnostic.
var (
	// ErrValidation marks rejected input. Nothing was mutated.
	ErrValidation = errors.New("validation failed")
	// ErrPrecondition marks a gated transition that did not fire, e.g.
	// promoting a student whose year is not fully paid. Quiet by
	// design: no audit entry, no partial effect.
	ErrPrecondition = errors.New("precondition not met")
	// ErrForbidden marks an actor without the required permission.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a natural-key collision, e.g. paying the same
	// salary month twice.
	ErrConflict = errors.New("conflict")
)

// Actor identifies who is performing an operation. The zero Actor is
// unauthenticated and holds no permissions.
type Actor struct {
	Name string
	Role string
}

// Authenticated reports whether the actor carries a role at all.
func (a Actor) Authenticated() bool {
	return a.Role != ""
}
