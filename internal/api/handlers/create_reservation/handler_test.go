package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_reservation"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createReservation.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	venueID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	courtID = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
)

func validBody() string {
	return `{"venueId":"` + venueID.String() + `","courtId":"` + courtID.String() + `",` +
		`"date":"2025-03-10","startTime":"18:00","customerName":"Ana Pérez",` +
		`"phone":"+56911112222","email":"ana@example.cl","paymentMode":"deposit"}`
}

func post(h *Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.RemoteAddr = "198.51.100.7:5555"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func reservation() *domain.Reservation {
	return &domain.Reservation{
		ID:          uuid.New(),
		VenueID:     venueID,
		CourtID:     courtID,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "18:00",
		EndTime:     "19:00",
		Status:      domain.StatusPending,
		PaymentMode: domain.PaymentModeDeposit,
		Amount:      15000,
	}
}

func TestHandler_Handle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.CourtID == courtID &&
			req.StartTime == "18:00" &&
			req.PaymentMode == domain.PaymentModeDeposit &&
			req.ClientKey == "198.51.100.7" &&
			req.IdempotencyKey == "abc-123"
	})).Return(&createReservation.Response{Reservation: reservation()}, nil)

	rec := post(NewHandler(uc, nopLogger{}), validBody(), map[string]string{"Idempotency-Key": " abc-123 "})

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, "19:00", body["endTime"])
	assert.Equal(t, float64(15000), body["amount"])
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Replayed(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(&createReservation.Response{Reservation: reservation(), Replayed: true}, nil)

	rec := post(NewHandler(uc, nopLogger{}), validBody(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Handle_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		headers map[string]string
	}{
		{"empty body", "", nil},
		{"malformed json", "{", nil},
		{"missing email", strings.Replace(validBody(), `"ana@example.cl"`, `""`, 1), nil},
		{"unknown payment mode", strings.Replace(validBody(), `"deposit"`, `"CASH"`, 1), nil},
		{"bad date", strings.Replace(validBody(), "2025-03-10", "10/03/2025", 1), nil},
		{"bad time", strings.Replace(validBody(), `"18:00"`, `"25:99"`, 1), nil},
		{"long idempotency key", validBody(), map[string]string{"Idempotency-Key": strings.Repeat("k", 200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := post(NewHandler(uc, nopLogger{}), tt.body, tt.headers)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Handle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"court not found", createReservation.ErrCourtNotFound, http.StatusNotFound},
		{"venue closed", createReservation.ErrVenueClosed, http.StatusUnprocessableEntity},
		{"outside hours", createReservation.ErrOutsideHours, http.StatusUnprocessableEntity},
		{"slot in past", createReservation.ErrSlotInPast, http.StatusUnprocessableEntity},
		{"no price", createReservation.ErrPriceNotFound, http.StatusUnprocessableEntity},
		{"in progress", createReservation.ErrIdempotencyInProgress, http.StatusConflict},
		{"key reused", createReservation.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(uc, nopLogger{}), validBody(), nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Handle_RateLimited(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &createReservation.RateLimitError{RetryAfter: 1500 * time.Millisecond})

	rec := post(NewHandler(uc, nopLogger{}), validBody(), nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestHandler_Handle_ForwardedForDoesNotChangeClientKey(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.ClientKey == "198.51.100.7"
	})).Return(&createReservation.Response{Reservation: reservation()}, nil)

	rec := post(NewHandler(uc, nopLogger{}), validBody(), map[string]string{"X-Forwarded-For": "192.0.2.44"})

	require.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}
