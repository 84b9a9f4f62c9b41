package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-status/internal/events"
	"github.com/spec-kit/ticket-status/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to dispatcher and
// returns the running service. A nil dispatcher disables notifications.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	notifications := service.NewNotificationService(dispatcher, logger.Named("notifications"))
	notifications.RegisterHandlers()
	return notifications
}
