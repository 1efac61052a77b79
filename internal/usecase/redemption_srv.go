package usecase

import (
	"context"
	"fmt"
	"strings"

	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/response"

	"go.uber.org/zap"
)

type RedemptionService interface {
	Redeem(ctx context.Context, scannedPayload string) (*response.RedemptionResponse, error)
}

type redemptionService struct {
	tickets repository.TicketRepository
	log     *zap.Logger
}

func NewRedemptionService(tickets repository.TicketRepository, log *zap.Logger) RedemptionService {
	return &redemptionService{
		tickets: tickets,
		log:     log.With(zap.String("service", "redemption")),
	}
}

// Redeem classifies one gate presentation of a scanned payload. The payload is
// taken as the literal ticket UID; the store's conditional update decides the
// outcome, so two devices scanning the same ticket at once get exactly one
// "redeemed" between them.
func (s *redemptionService) Redeem(ctx context.Context, scannedPayload string) (*response.RedemptionResponse, error) {
	ticketUID := strings.TrimSpace(scannedPayload)

	outcome, err := s.tickets.MarkRedeemed(ctx, ticketUID)
	if err != nil {
		return nil, fmt.Errorf("redeem ticket: %w", err)
	}

	resp := &response.RedemptionResponse{TicketUID: ticketUID}

	switch outcome {
	case repository.RedemptionRedeemed:
		resp.Status = response.RedemptionStatusRedeemed
		resp.Success = true
		resp.Message = "ticket valid, admit"
		s.log.Info("Ticket redeemed", zap.String("ticket_uid", ticketUID))

	case repository.RedemptionAlreadyRedeemed:
		resp.Status = response.RedemptionStatusAlreadyRedeemed
		resp.Success = false
		resp.Message = "ticket already used"
		s.log.Warn("Ticket already redeemed", zap.String("ticket_uid", ticketUID))

	default:
		resp.Status = response.RedemptionStatusNotFound
		resp.Success = false
		resp.Message = "ticket does not exist"
		s.log.Warn("Unknown ticket scanned", zap.String("ticket_uid", ticketUID))
	}

	return resp, nil
}
