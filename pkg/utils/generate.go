package utils

import (
	"github.com/google/uuid"
)

// NewTicketUID returns a fresh ticket identifier. The UID doubles as the
// redemption credential encoded into the QR code, so it has to be
// unguessable: uuid v4 draws 122 bits from crypto/rand, and the primary key
// on the tickets table backstops the negligible collision chance.
func NewTicketUID() string {
	return uuid.NewString()
}
