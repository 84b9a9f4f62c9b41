package transitionlog

import (
	"context"
	"errors"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-status/internal/domain"
	"github.com/spec-kit/ticket-status/internal/observability"
	apperrors "github.com/spec-kit/ticket-status/pkg/util/errorutil"
)

// Logger is the process-wide transition logger. It implements domain.TransitionLogger.
type Logger struct {
	sink    Sink
	clock   clock.Clock
	labels  domain.StatusLabels
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Option customizes a Logger.
type Option func(*Logger)

// WithClock sets the timestamp source.
func WithClock(c clock.Clock) Option {
	return func(l *Logger) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithLabels sets the status names written into lines.
func WithLabels(labels domain.StatusLabels) Option {
	return func(l *Logger) {
		if labels != nil {
			l.labels = labels
		}
	}
}

// WithZap sets the logger used to report failed writes.
func WithZap(logger *zap.Logger) Option {
	return func(l *Logger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics counts logged transitions and failed writes.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(l *Logger) {
		l.metrics = metrics
	}
}

// New builds a Logger writing to sink.
func New(sink Sink, opts ...Option) *Logger {
	l := &Logger{
		sink:   sink,
		clock:  clock.WallClock,
		labels: domain.StatusLabels{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append formats the transition with the current local time and writes it to the sink.
func (l *Logger) Append(ctx context.Context, transition domain.Transition) error {
	line := FormatLine(l.clock.Now(), transition.TicketID, transition.Title, l.labels.Label(transition.Status))
	if err := l.write(ctx, line); err != nil {
		l.metrics.RecordLogFailure()
		l.logger.Error("transition log write failed",
			zap.Int("ticket_id", transition.TicketID),
			zap.String("status", transition.Status.String()),
			zap.Error(err))
		return apperrors.NewLogIOError(err, map[string]any{
			"ticket_id": transition.TicketID,
			"status":    transition.Status.String(),
		})
	}
	l.metrics.RecordTransition(transition.Status.String())
	l.logger.Debug("transition logged", zap.String("line", line))
	return nil
}

func (l *Logger) write(ctx context.Context, line string) error {
	if l.sink == nil {
		return errors.New("no transition sink configured")
	}
	return l.sink.WriteLine(ctx, line)
}
