package create_court_block

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks"
	"github.com/m04kA/SMC-CourtBooking/internal/service/blocks/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BlockResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{"date":"2025-03-10","startTime":"14:00","endTime":"16:00","reason":"torneo"}`

func post(h *Handler, courtID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/courts/"+courtID+"/blocks", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"courtId": courtID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	courtID := uuid.New()
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateBlockRequest) bool {
		return req.CourtID == courtID && req.StartTime == "14:00" && req.Reason != nil && *req.Reason == "torneo"
	})).Return(&models.BlockResponse{ID: uuid.New(), CourtID: courtID, Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"}, nil)

	rec := post(NewHandler(svc, nopLogger{}), courtID.String())

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"range", blocks.ErrInvalidTimeRange, http.StatusBadRequest},
		{"input", blocks.ErrInvalidInput, http.StatusBadRequest},
		{"court", blocks.ErrCourtNotFound, http.StatusNotFound},
		{"internal", blocks.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(svc, nopLogger{}), uuid.NewString())
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
