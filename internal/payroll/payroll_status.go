package payroll

// Status is the payroll record lifecycle state. PROCESSED sits alongside
// PENDING as a payable pre-state; RELEASED and CANCELLED are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusPaid      Status = "PAID"
	StatusReleased  Status = "RELEASED"
	StatusCancelled Status = "CANCELLED"
)

// PayableStates are the states markAsPaid may transition from.
var PayableStates = []Status{StatusPending, StatusProcessed}

// transitions is the single source of truth for valid status changes.
var transitions = map[Status][]Status{
	StatusPending:   {StatusProcessed, StatusPaid, StatusCancelled},
	StatusProcessed: {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusReleased},
}

// CanTransition reports whether moving from s to target is allowed.
func (s Status) CanTransition(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusPaid, StatusReleased, StatusCancelled:
		return true
	}
	return false
}
