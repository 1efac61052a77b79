package entity

import (
	"time"
)

type TicketClass string

const (
	TicketClassPremium  TicketClass = "premium"
	TicketClassStandard TicketClass = "standard"
	TicketClassGuest    TicketClass = "guest"
)

// Ticket is the single persisted entity. Rows are created once by issuance and
// never updated afterwards except for the one-time redeemed flag flip.
type Ticket struct {
	TicketUID   string      `db:"ticket_uid"`
	Name        string      `db:"name"`
	Mobile      string      `db:"mobile"`
	Email       string      `db:"email"`
	PaymentRef  string      `db:"payment_ref"`
	TicketClass TicketClass `db:"ticket_class"`
	Quantity    int         `db:"quantity"`
	Redeemed    bool        `db:"redeemed"`
	CreatedAt   time.Time   `db:"created_at"`
}
