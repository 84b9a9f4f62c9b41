package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-status/internal/config"
	"github.com/spec-kit/ticket-status/internal/domain"
	"github.com/spec-kit/ticket-status/internal/observability"
	"github.com/spec-kit/ticket-status/internal/transitionlog"
)

// Walks one ticket through its lifecycle, printing it after every step. Transitions
// are appended to the configured log file.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	labels, err := domain.LabelsFor(cfg.Transition.Labels)
	if err != nil {
		logger.Fatal("invalid status labels", zap.Error(err))
	}
	transitions := transitionlog.New(transitionlog.NewFileSink(cfg.Transition.LogPath),
		transitionlog.WithLabels(labels),
		transitionlog.WithZap(logger),
	)

	ctx := context.Background()
	ticket := domain.NewTicket(1, "Erro no sistema de login", transitions,
		domain.WithStrictOrder(cfg.Transition.StrictOrder))
	fmt.Println(ticket.Describe())

	for _, status := range []domain.TicketStatus{
		domain.TicketStatusAwaitingTechnician,
		domain.TicketStatusInProgress,
		domain.TicketStatusClosed,
	} {
		if err := ticket.ChangeStatus(ctx, status); err != nil {
			logger.Error("status change failed", zap.Stringer("status", status), zap.Error(err))
		}
		fmt.Println(ticket.Describe())
	}
}
