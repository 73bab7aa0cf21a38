package event

import "fmt"

// LogicError reports an internal invariant violation: a reachable gate
// has no parent index after the tree was sealed. Spec §7 treats this as
// unreachable in a correctly built tree; it is never raised by ordinary
// misuse, only by a broken invariant, so it is never panicked — the
// teacher's failure style favors returned errors over exceptions even
// for "should not happen" conditions.
type LogicError struct {
	Tree    string
	Subject string
	Detail  string
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("event: logic error in tree %q: %s: %s", e.Tree, e.Subject, e.Detail)
}

var (
	// ErrSealed is returned by mutating operations once a tree has been
	// sealed by validation.
	ErrSealed = fmt.Errorf("event: tree already sealed, no further mutation")
	// ErrDuplicateChild is returned by AddChild when the child identifier
	// is already present in the gate.
	ErrDuplicateChild = fmt.Errorf("event: duplicate child in gate")
	// ErrDuplicateID is returned when an identifier is redefined within
	// the same fault-tree scope.
	ErrDuplicateID = fmt.Errorf("event: identifier already defined in this tree")
	// ErrUnknownChild describes a gate child identifier that was never
	// registered in the tree. No function in this module returns it: the
	// builder substitutes a DanglingRef for such a child, and fta/validate
	// reports it in a ValidationError.
	ErrUnknownChild = fmt.Errorf("event: child identifier not registered in tree")
)
