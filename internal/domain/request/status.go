package request

// Status represents the lifecycle state of an accommodation request
type Status string

const (
	StatusAwaitingManager     Status = "AWAITING_MANAGER"
	StatusAwaitingReservation Status = "AWAITING_RESERVATION"
	StatusReserved            Status = "RESERVED"
	StatusRejected            Status = "REJECTED"
)

// IsValid checks if the status is one of the known lifecycle states
func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingManager, StatusAwaitingReservation, StatusReserved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// RESERVED permits a self-transition: agents may re-run the reservation
// pipeline to replace a booking.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusAwaitingManager:
		return target == StatusAwaitingReservation || target == StatusRejected
	case StatusAwaitingReservation:
		return target == StatusReserved
	case StatusReserved:
		return target == StatusReserved
	case StatusRejected:
		return false
	}
	return false
}

// IsTerminal reports whether no further manager action is possible
func (s Status) IsTerminal() bool {
	return s == StatusRejected
}
