package get_contact_link

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/service/settings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/settings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ContactLink(ctx context.Context, venueID *uuid.UUID) (*models.ContactLinkResponse, error) {
	args := m.Called(ctx, venueID)
	if l := args.Get(0); l != nil {
		return l.(*models.ContactLinkResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle_WithVenue(t *testing.T) {
	venueID := uuid.New()
	svc := &mockService{}
	svc.On("ContactLink", mock.Anything, &venueID).Return(&models.ContactLinkResponse{
		Phone: "+56912345678",
		URL:   "https://wa.me/56912345678?text=Hola",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact/whatsapp?venueId="+venueID.String(), nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ContactLinkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://wa.me/56912345678?text=Hola", body.URL)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{"bad venue id", "?venueId=abc", nil, http.StatusBadRequest},
		{"venue not found", "", settings.ErrVenueNotFound, http.StatusNotFound},
		{"not configured", "", settings.ErrSettingsNotFound, http.StatusNotFound},
		{"internal", "", settings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("ContactLink", mock.Anything, (*uuid.UUID)(nil)).Return(nil, tt.err)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/contact/whatsapp"+tt.query, nil)
			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
