package domain_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-status/internal/domain"
	"github.com/spec-kit/ticket-status/internal/transitionlog"
	apperrors "github.com/spec-kit/ticket-status/pkg/util/errorutil"
)

type recordingLog struct {
	mu          sync.Mutex
	transitions []domain.Transition
	err         error
}

func (r *recordingLog) Append(_ context.Context, transition domain.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.transitions = append(r.transitions, transition)
	return nil
}

func (r *recordingLog) recorded() []domain.Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Transition(nil), r.transitions...)
}

func TestNewTicketStartsOpenWithoutLogging(t *testing.T) {
	log := &recordingLog{}
	ticket := domain.NewTicket(7, "Impressora offline", log)

	assert.Equal(t, 7, ticket.ID())
	assert.Equal(t, "Impressora offline", ticket.Title())
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status())
	assert.False(t, ticket.StrictOrder())
	assert.Empty(t, log.recorded())
}

func TestNewTicketAcceptsUnvalidatedInput(t *testing.T) {
	ticket := domain.NewTicket(-3, "", &recordingLog{})
	assert.Equal(t, "Chamado #-3:  | Status: Open", ticket.Describe())
}

func TestChangeStatusIsPermissive(t *testing.T) {
	for _, from := range domain.TicketStatuses {
		for _, to := range domain.TicketStatuses {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				log := &recordingLog{}
				ticket := domain.NewTicket(1, "t", log)
				require.NoError(t, ticket.ChangeStatus(context.Background(), from))
				require.NoError(t, ticket.ChangeStatus(context.Background(), to))

				assert.Equal(t, to, ticket.Status())
				assert.Contains(t, ticket.Describe(), "Status: "+to.String())
				assert.Len(t, log.recorded(), 2)
			})
		}
	}
}

func TestChangeStatusLogsEachTransition(t *testing.T) {
	log := &recordingLog{}
	ticket := domain.NewTicket(42, "VPN caiu", log)
	ctx := context.Background()

	steps := []domain.TicketStatus{
		domain.TicketStatusClosed,
		domain.TicketStatusOpen,
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
	}
	for _, status := range steps {
		require.NoError(t, ticket.ChangeStatus(ctx, status))
	}

	recorded := log.recorded()
	require.Len(t, recorded, len(steps))
	for i, status := range steps {
		assert.Equal(t, domain.Transition{TicketID: 42, Title: "VPN caiu", Status: status}, recorded[i])
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	log := &recordingLog{}
	ticket := domain.NewTicket(1, "t", log)

	err := ticket.ChangeStatus(context.Background(), domain.TicketStatus(99))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status())
	assert.Empty(t, log.recorded())
}

func TestChangeStatusStrictOrder(t *testing.T) {
	log := &recordingLog{}
	ticket := domain.NewTicket(1, "t", log, domain.WithStrictOrder(true))
	ctx := context.Background()
	assert.True(t, ticket.StrictOrder())

	err := ticket.ChangeStatus(ctx, domain.TicketStatusClosed)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTransition))
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status())
	assert.Empty(t, log.recorded())

	require.NoError(t, ticket.ChangeStatus(ctx, domain.TicketStatusAwaitingTechnician))
	require.NoError(t, ticket.ChangeStatus(ctx, domain.TicketStatusInProgress))

	err = ticket.ChangeStatus(ctx, domain.TicketStatusInProgress)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTransition), "repeat rejected")
	err = ticket.ChangeStatus(ctx, domain.TicketStatusAwaitingTechnician)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTransition), "backward rejected")

	require.NoError(t, ticket.ChangeStatus(ctx, domain.TicketStatusClosed))
	assert.Equal(t, domain.TicketStatusClosed, ticket.Status())
	assert.Len(t, log.recorded(), 3)
}

func TestChangeStatusAppliesStatusWhenLogFails(t *testing.T) {
	log := &recordingLog{err: errors.New("disk full")}
	ticket := domain.NewTicket(3, "t", log)

	err := ticket.ChangeStatus(context.Background(), domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeLogIO))
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status())

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "InProgress", domainErr.Details["status"])
}

func TestChangeStatusWithoutLogger(t *testing.T) {
	ticket := domain.NewTicket(3, "t", nil)
	err := ticket.ChangeStatus(context.Background(), domain.TicketStatusClosed)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeLogIO))
	assert.Equal(t, domain.TicketStatusClosed, ticket.Status())
}

func TestTicketLifecycleScenario(t *testing.T) {
	sink := transitionlog.NewMemorySink()
	ticket := domain.NewTicket(1, "Erro no sistema de login", transitionlog.New(sink))
	ctx := context.Background()

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status())
	assert.Equal(t, "Chamado #1: Erro no sistema de login | Status: Open", ticket.Describe())
	assert.Empty(t, sink.Lines())

	require.NoError(t, ticket.ChangeStatus(ctx, domain.TicketStatusAwaitingTechnician))
	assert.Equal(t, "Chamado #1: Erro no sistema de login | Status: AwaitingTechnician", ticket.Describe())
	lines := sink.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Chamado #1")
	assert.Contains(t, lines[0], "Filtro: AwaitingTechnician")

	require.NoError(t, ticket.ChangeStatus(ctx, domain.TicketStatusInProgress))
	assert.Equal(t, "Chamado #1: Erro no sistema de login | Status: InProgress", ticket.Describe())
	require.NoError(t, ticket.ChangeStatus(ctx, domain.TicketStatusClosed))
	assert.Equal(t, "Chamado #1: Erro no sistema de login | Status: Closed", ticket.Describe())

	lines = sink.Lines()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], "Filtro: InProgress"))
	assert.True(t, strings.HasSuffix(lines[2], "Filtro: Closed"))
	assert.Equal(t, domain.TicketStatusClosed, ticket.Status())
}

func TestSharedTicketConcurrentTransitions(t *testing.T) {
	log := &recordingLog{}
	ticket := domain.NewTicket(1, "t", log)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := domain.TicketStatuses[i%len(domain.TicketStatuses)]
			assert.NoError(t, ticket.ChangeStatus(context.Background(), status))
			_ = ticket.Describe()
		}(i)
	}
	wg.Wait()

	recorded := log.recorded()
	require.Len(t, recorded, 50)
	assert.Equal(t, recorded[len(recorded)-1].Status, ticket.Status())
}

func TestApplyStatusReturnsPreviousStatus(t *testing.T) {
	ctx := context.Background()
	ticket := domain.NewTicket(1, "t", &recordingLog{}, domain.WithStrictOrder(true))

	previous, err := ticket.ApplyStatus(ctx, domain.TicketStatusAwaitingTechnician)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, previous)

	previous, err = ticket.ApplyStatus(ctx, domain.TicketStatusClosed)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTransition))
	assert.Equal(t, domain.TicketStatusAwaitingTechnician, previous)

	failing := domain.NewTicket(2, "t", &recordingLog{err: errors.New("disk full")})
	previous, err = failing.ApplyStatus(ctx, domain.TicketStatusInProgress)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeLogIO))
	assert.Equal(t, domain.TicketStatusOpen, previous)
	assert.Equal(t, domain.TicketStatusInProgress, failing.Status())
}

func TestApplyStatusPreviousValuesChainUnderContention(t *testing.T) {
	log := &recordingLog{}
	ticket := domain.NewTicket(1, "t", log)

	var mu sync.Mutex
	previousCounts := map[domain.TicketStatus]int{}
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			previous, err := ticket.ApplyStatus(context.Background(), domain.TicketStatuses[i%len(domain.TicketStatuses)])
			assert.NoError(t, err)
			mu.Lock()
			previousCounts[previous]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	// every change observed exactly the status left by the one before it
	recorded := log.recorded()
	require.Len(t, recorded, 40)
	want := map[domain.TicketStatus]int{domain.TicketStatusOpen: 1}
	for _, transition := range recorded[:len(recorded)-1] {
		want[transition.Status]++
	}
	assert.Equal(t, want, previousCounts)
}
