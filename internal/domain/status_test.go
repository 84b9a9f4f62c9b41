package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-status/internal/domain"
)

func TestTicketStatusNames(t *testing.T) {
	assert.Equal(t, "Open", domain.TicketStatusOpen.String())
	assert.Equal(t, "AwaitingTechnician", domain.TicketStatusAwaitingTechnician.String())
	assert.Equal(t, "InProgress", domain.TicketStatusInProgress.String())
	assert.Equal(t, "Closed", domain.TicketStatusClosed.String())
	assert.Equal(t, "TicketStatus(9)", domain.TicketStatus(9).String())
	assert.Len(t, domain.TicketStatuses, 4)
}

func TestTicketStatusValid(t *testing.T) {
	for _, status := range domain.TicketStatuses {
		assert.True(t, status.Valid(), status.String())
	}
	assert.False(t, domain.TicketStatus(-1).Valid())
	assert.False(t, domain.TicketStatus(4).Valid())
}

func TestParseTicketStatus(t *testing.T) {
	cases := map[string]domain.TicketStatus{
		"Open":               domain.TicketStatusOpen,
		"inprogress":         domain.TicketStatusInProgress,
		" Closed ":           domain.TicketStatusClosed,
		"AguardandoTecnico":  domain.TicketStatusAwaitingTechnician,
		"EmAtendimento":      domain.TicketStatusInProgress,
		"Finalizado":         domain.TicketStatusClosed,
		"aberto":             domain.TicketStatusOpen,
		"AwaitingTechnician": domain.TicketStatusAwaitingTechnician,
	}
	for name, want := range cases {
		got, err := domain.ParseTicketStatus(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := domain.ParseTicketStatus("Resolved")
	assert.Error(t, err)
}

func TestTicketStatusJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]domain.TicketStatus{"status": domain.TicketStatusInProgress})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"InProgress"}`, string(payload))

	var decoded struct {
		Status domain.TicketStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Closed"}`), &decoded))
	assert.Equal(t, domain.TicketStatusClosed, decoded.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"Nope"}`), &decoded))

	_, err = json.Marshal(domain.TicketStatus(7))
	assert.Error(t, err)
}

func TestLabelsFor(t *testing.T) {
	en, err := domain.LabelsFor(domain.LabelSetEnglish)
	require.NoError(t, err)
	assert.Equal(t, "AwaitingTechnician", en.Label(domain.TicketStatusAwaitingTechnician))

	pt, err := domain.LabelsFor(domain.LabelSetPortuguese)
	require.NoError(t, err)
	assert.Equal(t, "Aberto", pt.Label(domain.TicketStatusOpen))
	assert.Equal(t, "AguardandoTecnico", pt.Label(domain.TicketStatusAwaitingTechnician))
	assert.Equal(t, "EmAtendimento", pt.Label(domain.TicketStatusInProgress))
	assert.Equal(t, "Finalizado", pt.Label(domain.TicketStatusClosed))

	_, err = domain.LabelsFor("fr")
	assert.Error(t, err)

	// empty label sets fall back to canonical names
	assert.Equal(t, "Closed", domain.StatusLabels{}.Label(domain.TicketStatusClosed))
}

func TestStrictOrderPolicy(t *testing.T) {
	policy := domain.StrictOrderPolicy{}
	assert.True(t, policy.Allows(domain.TicketStatusOpen, domain.TicketStatusAwaitingTechnician))
	assert.True(t, policy.Allows(domain.TicketStatusAwaitingTechnician, domain.TicketStatusInProgress))
	assert.True(t, policy.Allows(domain.TicketStatusInProgress, domain.TicketStatusClosed))

	assert.False(t, policy.Allows(domain.TicketStatusOpen, domain.TicketStatusClosed), "skip")
	assert.False(t, policy.Allows(domain.TicketStatusInProgress, domain.TicketStatusOpen), "backward")
	assert.False(t, policy.Allows(domain.TicketStatusOpen, domain.TicketStatusOpen), "repeat")
	assert.False(t, policy.Allows(domain.TicketStatusClosed, domain.TicketStatusOpen), "reopen")
}

func TestPermissivePolicy(t *testing.T) {
	policy := domain.PermissivePolicy{}
	for _, from := range domain.TicketStatuses {
		for _, to := range domain.TicketStatuses {
			assert.True(t, policy.Allows(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, policy.Allows(domain.TicketStatusOpen, domain.TicketStatus(12)))
}
