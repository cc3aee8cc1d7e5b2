package session

import "fmt"

// State is the resolver's position in the session state machine.
type State uint8

const (
	// StateUnknown means the session has not been checked yet. Consumers
	// must not treat this as StateAbsent; doing so causes a premature
	// redirect to login while the check is still in flight.
	StateUnknown State = iota

	// StateAbsent means the server explicitly reported no valid session.
	StateAbsent

	// StatePresent means the server confirmed an identity.
	StatePresent
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAbsent:
		return "absent"
	case StatePresent:
		return "present"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}
