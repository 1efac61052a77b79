package usecase

import (
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/mailer"
	"event-ticketing/pkg/qr"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Ticket     TicketService
	Redemption RedemptionService
}

func NewService(repo *repository.Repository, renderer qr.Renderer, mail mailer.Mailer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Ticket:     NewTicketService(repo.Ticket, renderer, mail, config.Event, log),
		Redemption: NewRedemptionService(repo.Ticket, log),
	}
}
