package adaptor

import (
	"encoding/json"
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type RedemptionHandler struct {
	service usecase.RedemptionService
	log     *zap.Logger
}

func NewRedemptionHandler(service usecase.RedemptionService, log *zap.Logger) *RedemptionHandler {
	return &RedemptionHandler{
		service: service,
		log:     log.With(zap.String("handler", "redemption")),
	}
}

// RedeemTicket handles POST /redeem (gate device endpoint).
//
// All three scan classifications come back as 200: not_found and
// already_redeemed are operator display states, not transport errors. Only
// store failures produce a 5xx.
func (h *RedemptionHandler) RedeemTicket(w http.ResponseWriter, r *http.Request) {
	var req request.RedeemTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Redeem(r.Context(), req.Payload)
	if err != nil {
		h.log.Error("Failed to redeem ticket", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, result.Success, result.Message, result, nil)
}
