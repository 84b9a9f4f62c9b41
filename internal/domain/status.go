package domain

import (
	"fmt"
	"strings"
)

// TicketStatus enumerates lifecycle states for tickets, in progression order.
type TicketStatus int

const (
	TicketStatusOpen TicketStatus = iota
	TicketStatusAwaitingTechnician
	TicketStatusInProgress
	TicketStatusClosed
)

// TicketStatuses lists every valid status in progression order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusAwaitingTechnician,
	TicketStatusInProgress,
	TicketStatusClosed,
}

var statusNames = map[TicketStatus]string{
	TicketStatusOpen:               "Open",
	TicketStatusAwaitingTechnician: "AwaitingTechnician",
	TicketStatusInProgress:         "InProgress",
	TicketStatusClosed:             "Closed",
}

// Valid reports whether s is one of the enumerated statuses.
func (s TicketStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// String returns the canonical display name.
func (s TicketStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TicketStatus(%d)", int(s))
}

// MarshalText encodes the status as its canonical name.
func (s TicketStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ticket status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a canonical or localized status name.
func (s *TicketStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTicketStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseTicketStatus resolves a status name. Canonical names and the labels of every
// known label set are accepted, case-insensitively.
func ParseTicketStatus(name string) (TicketStatus, error) {
	name = strings.TrimSpace(name)
	for _, status := range TicketStatuses {
		if strings.EqualFold(statusNames[status], name) {
			return status, nil
		}
	}
	for _, labels := range labelSets {
		for status, label := range labels {
			if strings.EqualFold(label, name) {
				return status, nil
			}
		}
	}
	return TicketStatusOpen, fmt.Errorf("unknown ticket status %q", name)
}

// StatusLabels maps statuses to the names written into the transition log.
type StatusLabels map[TicketStatus]string

// Label returns the label for s, falling back to the canonical name.
func (l StatusLabels) Label(s TicketStatus) string {
	if label, ok := l[s]; ok {
		return label
	}
	return s.String()
}

const (
	LabelSetEnglish    = "en"
	LabelSetPortuguese = "pt-BR"
)

var labelSets = map[string]StatusLabels{
	LabelSetEnglish: {
		TicketStatusOpen:               "Open",
		TicketStatusAwaitingTechnician: "AwaitingTechnician",
		TicketStatusInProgress:         "InProgress",
		TicketStatusClosed:             "Closed",
	},
	LabelSetPortuguese: {
		TicketStatusOpen:               "Aberto",
		TicketStatusAwaitingTechnician: "AguardandoTecnico",
		TicketStatusInProgress:         "EmAtendimento",
		TicketStatusClosed:             "Finalizado",
	},
}

// LabelsFor returns the named label set.
func LabelsFor(name string) (StatusLabels, error) {
	labels, ok := labelSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown status label set %q", name)
	}
	return labels, nil
}
