// Package mirror keeps an external copy of the transaction list in step with
// the local store. A Session links to a user-chosen Target, imports what the
// target already holds, and rewrites it after every change.
package mirror

// State is the lifecycle position of a Session.
type State int

const (
	// StateUnlinked means no usable target is known.
	StateUnlinked State = iota
	// StateLinkedInactive means a handle is recorded but permission has not
	// been granted in this process.
	StateLinkedInactive
	// StateActive means every change is mirrored to the target.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateUnlinked:
		return "unlinked"
	case StateLinkedInactive:
		return "linked (inactive)"
	case StateActive:
		return "active"
	}
	return "unknown"
}
