package domain

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/spec-kit/ticket-status/pkg/util/errorutil"
)

// Transition is what gets recorded for an accepted status change.
type Transition struct {
	TicketID int
	Title    string
	Status   TicketStatus
}

// TransitionLogger appends accepted transitions to a durable sink.
type TransitionLogger interface {
	Append(ctx context.Context, transition Transition) error
}

// TicketOption customizes ticket construction.
type TicketOption func(*Ticket)

// WithStrictOrder enables or disables strict progression checks.
func WithStrictOrder(strict bool) TicketOption {
	return func(t *Ticket) {
		t.policy = PolicyFor(strict)
	}
}

// WithPolicy installs a custom transition policy.
func WithPolicy(policy TransitionPolicy) TicketOption {
	return func(t *Ticket) {
		if policy != nil {
			t.policy = policy
		}
	}
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	mu     sync.Mutex
	id     int
	title  string
	status TicketStatus
	log    TransitionLogger
	policy TransitionPolicy
}

// NewTicket creates an open ticket. The initial status is not logged.
func NewTicket(id int, title string, log TransitionLogger, opts ...TicketOption) *Ticket {
	t := &Ticket{
		id:     id,
		title:  title,
		status: TicketStatusOpen,
		log:    log,
		policy: PermissivePolicy{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the caller-supplied identifier.
func (t *Ticket) ID() int {
	return t.id
}

// Title returns the title given at construction.
func (t *Ticket) Title() string {
	return t.title
}

// Status returns the current status.
func (t *Ticket) Status() TicketStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// StrictOrder reports whether the ticket enforces the progression order.
func (t *Ticket) StrictOrder() bool {
	_, strict := t.policy.(StrictOrderPolicy)
	return strict
}

// ChangeStatus applies newStatus and appends it to the transition log.
//
// The status stays applied when the log write fails; the failure is returned as a
// LOG_IO_FAILED error and is not retried.
func (t *Ticket) ChangeStatus(ctx context.Context, newStatus TicketStatus) error {
	_, err := t.ApplyStatus(ctx, newStatus)
	return err
}

// ApplyStatus behaves like ChangeStatus and also returns the status the ticket had
// right before this change, read under the same lock.
func (t *Ticket) ApplyStatus(ctx context.Context, newStatus TicketStatus) (TicketStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.status
	if !newStatus.Valid() {
		return previous, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": int(newStatus)})
	}
	if !t.policy.Allows(t.status, newStatus) {
		return previous, apperrors.NewInvalidTransitionError(t.status.String(), newStatus.String())
	}
	t.status = newStatus

	if t.log == nil {
		return previous, apperrors.NewLogIOError(fmt.Errorf("no transition logger configured"), t.detailsLocked())
	}
	if err := t.log.Append(ctx, Transition{TicketID: t.id, Title: t.title, Status: newStatus}); err != nil {
		if apperrors.IsCode(err, apperrors.CodeLogIO) {
			return previous, err
		}
		return previous, apperrors.NewLogIOError(err, t.detailsLocked())
	}
	return previous, nil
}

// Describe renders the ticket's current state.
func (t *Ticket) Describe() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("Chamado #%d: %s | Status: %s", t.id, t.title, t.status)
}

func (t *Ticket) detailsLocked() map[string]any {
	return map[string]any{
		"ticket_id": t.id,
		"status":    t.status.String(),
	}
}
