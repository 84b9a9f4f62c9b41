package dto

import (
	"github.com/spec-kit/ticket-status/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ID    *int   `json:"id"`
	Title string `json:"title"`
}

// ChangeStatusRequest payload. Status accepts canonical or localized names.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse describes a ticket's current state.
type TicketResponse struct {
	ID          int                 `json:"id"`
	Title       string              `json:"title"`
	Status      domain.TicketStatus `json:"status"`
	StrictOrder bool                `json:"strict_order"`
	Description string              `json:"description"`
}
