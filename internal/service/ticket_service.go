package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-status/internal/domain"
	"github.com/spec-kit/ticket-status/internal/events"
	"github.com/spec-kit/ticket-status/internal/repository"
	apperrors "github.com/spec-kit/ticket-status/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	log         domain.TransitionLogger
	dispatcher  events.Dispatcher
	strictOrder bool
	logger      *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	TransitionLog domain.TransitionLogger
	Dispatcher    events.Dispatcher
	StrictOrder   bool
	Logger        *zap.Logger
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses []domain.TicketStatus
	Limit    int
	Offset   int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:     deps.TicketRepo,
		log:         deps.TransitionLog,
		dispatcher:  deps.Dispatcher,
		strictOrder: deps.StrictOrder,
		logger:      logger,
	}
}

// CreateTicket registers a new open ticket. No transition is logged.
func (s *TicketService) CreateTicket(ctx context.Context, id int, title string) (*domain.Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	ticket := domain.NewTicket(id, title, s.log, domain.WithStrictOrder(s.strictOrder))
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrTicketExists) {
			return nil, apperrors.NewConflict("ticket already exists", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("ticket created", zap.Int("ticket_id", id))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: id,
		Payload: events.TicketCreatedPayload{
			Title:       title,
			StrictOrder: ticket.StrictOrder(),
		},
	})
	return ticket, nil
}

// GetTicket fetches a registered ticket.
func (s *TicketService) GetTicket(ctx context.Context, id int) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// ListTickets returns registered tickets, optionally filtered by current status.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]*domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

// UpdateStatus changes a ticket's status.
//
// When the transition log write fails the ticket is still returned, with the new
// status applied, alongside the LOG_IO_FAILED error.
func (s *TicketService) UpdateStatus(ctx context.Context, id int, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus, err := ticket.ApplyStatus(ctx, newStatus)
	if err != nil {
		if !apperrors.IsCode(err, apperrors.CodeLogIO) {
			return nil, err
		}
		s.logger.Warn("status applied but not logged",
			zap.Int("ticket_id", id),
			zap.Stringer("status", newStatus),
			zap.Error(err))
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketTransitionFailed,
			TicketID: id,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: newStatus,
				Error:     err.Error(),
			},
		})
		return ticket, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: id,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
