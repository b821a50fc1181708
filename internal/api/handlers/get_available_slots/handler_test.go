package get_available_slots

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
	getAvailableSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*getAvailableSlots.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, vars map[string]string, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/slots"+query, nil)
	req = mux.SetURLVars(req, vars)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Success(t *testing.T) {
	venueID, courtID := uuid.New(), uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{VenueID: venueID, CourtID: courtID, Date: date}).
		Return(&getAvailableSlots.Response{
			Date: date, VenueID: venueID, CourtID: courtID, CourtType: domain.CourtTypePadel,
			Slots: []domain.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00", Status: domain.SlotAvailable, Available: true, Price: ptr.Ptr(int64(20000))},
				{StartTime: "10:00", EndTime: "11:00", Status: domain.SlotBooked},
			},
		}, nil)

	rec := doRequest(NewHandler(uc, nopLogger{}),
		map[string]string{"venueId": venueID.String(), "courtId": courtID.String()}, "?date=2025-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, "PADEL", body.CourtType)
	require.Len(t, body.Slots, 2)
	assert.True(t, body.Slots[0].Available)
	assert.Equal(t, int64(20000), *body.Slots[0].Price)
	assert.Equal(t, "booked", body.Slots[1].Status)
	assert.False(t, body.Slots[1].Available)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	venueID, courtID := uuid.New(), uuid.New()
	okVars := map[string]string{"venueId": venueID.String(), "courtId": courtID.String()}

	tests := []struct {
		name       string
		vars       map[string]string
		query      string
		ucErr      error
		wantStatus int
	}{
		{"bad venue id", map[string]string{"venueId": "x", "courtId": courtID.String()}, "?date=2025-03-10", nil, http.StatusBadRequest},
		{"bad court id", map[string]string{"venueId": venueID.String(), "courtId": "x"}, "?date=2025-03-10", nil, http.StatusBadRequest},
		{"missing date", okVars, "", nil, http.StatusBadRequest},
		{"bad date", okVars, "?date=10-03-2025", nil, http.StatusBadRequest},
		{"court not found", okVars, "?date=2025-03-10", getAvailableSlots.ErrCourtNotFound, http.StatusNotFound},
		{"internal", okVars, "?date=2025-03-10", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := doRequest(NewHandler(uc, nopLogger{}), tt.vars, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
