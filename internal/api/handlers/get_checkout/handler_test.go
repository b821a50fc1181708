package get_checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getCheckout "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_checkout"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getCheckout.Request) (*getCheckout.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*getCheckout.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id+"/checkout", nil)
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Success(t *testing.T) {
	id := uuid.New()
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getCheckout.Request{ReservationID: id}).Return(&getCheckout.Response{
		ReservationID: id,
		Step:          domain.StepPayment,
		Status:        domain.StatusPending,
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		EndTime:       "19:00",
		PaymentMode:   domain.PaymentModeDeposit,
		Amount:        15000,
		PaymentLink:   "https://pay.example.cl/deposit",
	}, nil)

	rec := get(NewHandler(uc, nopLogger{}), id.String())

	require.Equal(t, http.StatusOK, rec.Code)
	var body CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(domain.StepPayment), body.Step)
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, "https://pay.example.cl/deposit", body.PaymentLink)
	assert.False(t, body.HoldExpired)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"invalid id", "abc", nil, http.StatusBadRequest},
		{"not found", uuid.NewString(), getCheckout.ErrReservationNotFound, http.StatusNotFound},
		{"cancelled", uuid.NewString(), getCheckout.ErrReservationCancelled, http.StatusGone},
		{"internal", uuid.NewString(), errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := get(NewHandler(uc, nopLogger{}), tt.id)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
