package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type TicketResponse struct {
	TicketUID   string             `json:"ticket_uid"`
	Name        string             `json:"name"`
	Mobile      string             `json:"mobile"`
	Email       string             `json:"email"`
	PaymentRef  string             `json:"payment_reference"`
	TicketClass entity.TicketClass `json:"ticket_class"`
	Quantity    int                `json:"quantity"`
	Redeemed    bool               `json:"redeemed"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Redemption statuses shown to the gate operator.
const (
	RedemptionStatusRedeemed        = "redeemed"
	RedemptionStatusAlreadyRedeemed = "already_redeemed"
	RedemptionStatusNotFound        = "not_found"
)

type RedemptionResponse struct {
	TicketUID string `json:"ticket_uid"`
	Status    string `json:"status"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
}

// Helper converter
func TicketToResponse(ticket *entity.Ticket) *TicketResponse {
	return &TicketResponse{
		TicketUID:   ticket.TicketUID,
		Name:        ticket.Name,
		Mobile:      ticket.Mobile,
		Email:       ticket.Email,
		PaymentRef:  ticket.PaymentRef,
		TicketClass: ticket.TicketClass,
		Quantity:    ticket.Quantity,
		Redeemed:    ticket.Redeemed,
		CreatedAt:   ticket.CreatedAt,
	}
}
