package domain

// TransitionPolicy decides whether a status change is accepted.
type TransitionPolicy interface {
	Allows(current, next TicketStatus) bool
}

// PermissivePolicy accepts any transition between valid statuses.
type PermissivePolicy struct{}

// Allows accepts every valid next status, including the current one.
func (PermissivePolicy) Allows(current, next TicketStatus) bool {
	return next.Valid()
}

// StrictOrderPolicy only accepts a move to the next status in the progression.
type StrictOrderPolicy struct{}

var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:               {TicketStatusAwaitingTechnician},
	TicketStatusAwaitingTechnician: {TicketStatusInProgress},
	TicketStatusInProgress:         {TicketStatusClosed},
	TicketStatusClosed:             {},
}

// Allows accepts next only when it directly follows current.
func (StrictOrderPolicy) Allows(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// PolicyFor maps the strict order flag to a policy.
func PolicyFor(strictOrder bool) TransitionPolicy {
	if strictOrder {
		return StrictOrderPolicy{}
	}
	return PermissivePolicy{}
}
