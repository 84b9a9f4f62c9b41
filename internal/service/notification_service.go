package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-status/internal/events"
)

// NotificationService reports ticket lifecycle events on the application log.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketTransitionFailed, n.handleTransitionFailed)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("event_id", event.ID), zap.Int("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		n.logger.Info("TicketStatusChanged", zap.Int("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
		return nil
	}
	n.logger.Info("TicketStatusChanged",
		zap.String("event_id", event.ID),
		zap.Int("ticket_id", event.TicketID),
		zap.Stringer("old_status", payload.OldStatus),
		zap.Stringer("new_status", payload.NewStatus))
	return nil
}

func (n *NotificationService) handleTransitionFailed(_ context.Context, event events.Event) error {
	n.logger.Error("TicketTransitionNotLogged",
		zap.String("event_id", event.ID),
		zap.Int("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	return nil
}
