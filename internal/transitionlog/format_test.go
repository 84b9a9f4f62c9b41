package transitionlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)

	line := FormatLine(at, 1, "Erro no sistema de login", "AwaitingTechnician")
	assert.Equal(t, "05/03/2024 14:07:09 | Chamado #1 - 'Erro no sistema de login' Filtro: AwaitingTechnician", line)
}

func TestFormatLineUsesLocalTime(t *testing.T) {
	at := time.Date(2024, time.December, 31, 23, 59, 58, 0, time.UTC)
	line := FormatLine(at, 2, "x", "Closed")
	assert.Contains(t, line, at.Local().Format(TimestampLayout))
}

func TestFormatLineKeepsRecordOnOneLine(t *testing.T) {
	at := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)
	line := FormatLine(at, 9, "primeira\nsegunda\r\nterceira", "Open")
	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, "\r")
	assert.Contains(t, line, "'primeira segunda terceira'")
}

func TestParseLine(t *testing.T) {
	at := time.Date(2023, time.July, 14, 8, 30, 0, 0, time.Local)
	line := FormatLine(at, 12, "Senha d'agua expirada", "EmAtendimento")

	entry, err := ParseLine(line + "\n")
	require.NoError(t, err)
	assert.True(t, at.Equal(entry.At))
	assert.Equal(t, 12, entry.TicketID)
	assert.Equal(t, "Senha d'agua expirada", entry.Title)
	assert.Equal(t, "EmAtendimento", entry.Status)
}

func TestParseLineRejectsMalformedInput(t *testing.T) {
	for _, line := range []string{
		"",
		"05/03/2024 14:07:09 | Chamado #1 - 'x'",
		"2024-03-05 14:07:09 | Chamado #1 - 'x' Filtro: Open",
		"05/03/2024 14:07:09 | Ticket #1 - 'x' Filtro: Open",
		"45/13/2024 14:07:09 | Chamado #1 - 'x' Filtro: Open",
	} {
		_, err := ParseLine(line)
		assert.Error(t, err, line)
	}
}
