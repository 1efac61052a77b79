package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.IssueTicket(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "issue ticket")
		return
	}

	utils.ResponseCreated(w, "ticket issued", ticket)
}

// GetTicketByUID handles GET /tickets/{ticket_uid}
func (h *TicketHandler) GetTicketByUID(w http.ResponseWriter, r *http.Request) {
	ticketUID := chi.URLParam(r, "ticket_uid")
	if ticketUID == "" {
		utils.ResponseBadRequest(w, "Ticket UID is required", nil)
		return
	}

	ticket, err := h.service.GetTicketByUID(r.Context(), ticketUID)
	if err != nil {
		h.handleServiceError(w, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// handleServiceError maps service errors to HTTP responses
func (h *TicketHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrDuplicatePaymentRef):
		h.log.Warn(operation+" failed - duplicate payment reference", zap.Error(err))
		utils.ResponseConflict(w, "This payment reference is already registered for a ticket")

	case errors.Is(err, usecase.ErrTicketNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Ticket not found")

	case errors.Is(err, usecase.ErrRenderFailed):
		// The ticket row is committed but no email was attempted.
		h.log.Error(operation+" failed - QR render", zap.Error(err))
		utils.ResponseInternalError(w, "Ticket was issued but its QR code could not be generated")

	case errors.Is(err, usecase.ErrNotificationFailed):
		// The ticket row is committed; the client can retry delivery
		// out-of-band instead of re-registering.
		h.log.Error(operation+" failed - notification", zap.Error(err))
		utils.ResponseInternalError(w, "Ticket was issued but the confirmation email could not be sent")

	case errors.Is(err, usecase.ErrInvalidRequest):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
