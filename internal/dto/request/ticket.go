package request

type CreateTicketRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Mobile      string `json:"mobile" validate:"required,min=8,max=15"`
	Email       string `json:"email" validate:"required,email"`
	PaymentRef  string `json:"payment_reference" validate:"required,min=5,max=100"`
	TicketClass string `json:"ticket_class" validate:"required,oneof=premium standard guest"`
	// Quantity defaults to 1 when omitted; see TicketService.IssueTicket.
	Quantity int `json:"quantity" validate:"omitempty,min=1,max=50"`
}

type RedeemTicketRequest struct {
	Payload string `json:"payload" validate:"required"`
}
