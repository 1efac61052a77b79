package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-ticketing/internal/dto/response"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRedemptionService mocks the redemption service interface
type MockRedemptionService struct {
	mock.Mock
}

func (m *MockRedemptionService) Redeem(ctx context.Context, scannedPayload string) (*response.RedemptionResponse, error) {
	args := m.Called(ctx, scannedPayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.RedemptionResponse), args.Error(1)
}

func setupRedemptionRouter(service usecase.RedemptionService) *chi.Mux {
	handler := NewRedemptionHandler(service, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/redeem", handler.RedeemTicket)
	return r
}

func redeemBody(payload string) []byte {
	body, _ := json.Marshal(map[string]string{"payload": payload})
	return body
}

func TestRedeemTicket_Admitted(t *testing.T) {
	service := new(MockRedemptionService)
	service.On("Redeem", mock.Anything, "uid-1").Return(&response.RedemptionResponse{
		TicketUID: "uid-1",
		Status:    response.RedemptionStatusRedeemed,
		Success:   true,
		Message:   "ticket valid, admit",
	}, nil)

	router := setupRedemptionRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(redeemBody("uid-1")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "ticket valid, admit", resp.Message)
	service.AssertExpectations(t)
}

func TestRedeemTicket_AlreadyUsedStaysHTTP200(t *testing.T) {
	service := new(MockRedemptionService)
	service.On("Redeem", mock.Anything, "uid-1").Return(&response.RedemptionResponse{
		TicketUID: "uid-1",
		Status:    response.RedemptionStatusAlreadyRedeemed,
		Success:   false,
		Message:   "ticket already used",
	}, nil)

	router := setupRedemptionRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(redeemBody("uid-1")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Operator classification, not a transport error
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "ticket already used", resp.Message)
}

func TestRedeemTicket_NotFoundStaysHTTP200(t *testing.T) {
	service := new(MockRedemptionService)
	service.On("Redeem", mock.Anything, "garbage").Return(&response.RedemptionResponse{
		TicketUID: "garbage",
		Status:    response.RedemptionStatusNotFound,
		Success:   false,
		Message:   "ticket does not exist",
	}, nil)

	router := setupRedemptionRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(redeemBody("garbage")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "ticket does not exist", resp.Message)
}

func TestRedeemTicket_EmptyPayload(t *testing.T) {
	service := new(MockRedemptionService)
	router := setupRedemptionRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(redeemBody("")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}

func TestRedeemTicket_StoreError(t *testing.T) {
	service := new(MockRedemptionService)
	service.On("Redeem", mock.Anything, "uid-1").Return(nil, errors.New("connection reset"))

	router := setupRedemptionRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/redeem", bytes.NewReader(redeemBody("uid-1")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
