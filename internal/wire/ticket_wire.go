package wire

import (
	"event-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler) {
	// POST /tickets - register and issue a new ticket
	r.Post("/tickets", ticketHandler.CreateTicket)

	// GET /tickets/{ticket_uid} - fetch ticket for verification at entry
	r.Get("/tickets/{ticket_uid}", ticketHandler.GetTicketByUID)
}
