package adaptor

import (
	"event-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Ticket     *TicketHandler
	Redemption *RedemptionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Ticket:     NewTicketHandler(service.Ticket, log),
		Redemption: NewRedemptionHandler(service.Redemption, log),
	}
}
