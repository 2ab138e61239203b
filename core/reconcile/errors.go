package reconcile

import (
	"fmt"
	"strings"
)

// ConflictError reports a directory state where one number is claimed more
// than once, or where a rename destination is already occupied. It aborts the
// run; renames applied before it are kept.
type ConflictError struct {
	// Number is the contested number.
	Number int

	// Names are the files involved.
	Names []string

	// Reason describes the conflict.
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on number %d (%s): %s", e.Number, strings.Join(e.Names, ", "), e.Reason)
}
