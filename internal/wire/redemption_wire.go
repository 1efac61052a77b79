package wire

import (
	"event-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRedemption(r chi.Router, redemptionHandler *adaptor.RedemptionHandler) {
	// POST /redeem - gate device submits a scanned QR payload
	r.Post("/redeem", redemptionHandler.RedeemTicket)
}
