package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/spec-kit/ticket-status/internal/domain"
)

// ErrTicketExists is returned by Create when the id is already registered.
var ErrTicketExists = errors.New("ticket already exists")

// ErrTicketNotFound is returned when no ticket has the requested id.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketFilter captures listing parameters. Zero values mean no filter.
type TicketFilter struct {
	Statuses []domain.TicketStatus
	Limit    int
	Offset   int
}

// TicketRepository keeps the tickets created through the service.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error)
}

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[int]*domain.Ticket
}

// NewTicketRepository instantiates an in-memory repository.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{tickets: make(map[int]*domain.Ticket)}
}

func (r *ticketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[ticket.ID()]; exists {
		return ErrTicketExists
	}
	r.tickets[ticket.ID()] = ticket
	return nil
}

func (r *ticketRepository) GetByID(_ context.Context, id int) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// ListWithFilter returns matching tickets ordered by id.
//
// Status is read after the registry lock is released: a ticket holds its own lock
// while its transition is being logged.
func (r *ticketRepository) ListWithFilter(_ context.Context, filter TicketFilter) ([]*domain.Ticket, error) {
	r.mu.RLock()
	registered := make([]*domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		registered = append(registered, ticket)
	}
	r.mu.RUnlock()

	result := registered[:0]
	for _, ticket := range registered {
		if matchesStatus(ticket.Status(), filter.Statuses) {
			result = append(result, ticket)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*domain.Ticket{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func matchesStatus(status domain.TicketStatus, statuses []domain.TicketStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}
