package auth_sign_in

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) SignIn(ctx context.Context, email, password string) (*authprovider.Session, error) {
	args := m.Called(ctx, email, password)
	if s := args.Get(0); s != nil {
		return s.(*authprovider.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func signIn(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Success(t *testing.T) {
	client := &mockClient{}
	client.On("SignIn", mock.Anything, "admin@canchas.cl", "secret").Return(&authprovider.Session{
		AccessToken: "jwt",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        &authprovider.User{ID: "u-1", Email: "admin@canchas.cl"},
	}, nil)

	rec := signIn(NewHandler(client, nopLogger{}), `{"email":"admin@canchas.cl","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jwt", body.AccessToken)
	assert.Equal(t, "u-1", body.UserID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"bad email", `{"email":"nope","password":"x"}`, nil, http.StatusBadRequest},
		{"missing password", `{"email":"a@b.cl"}`, nil, http.StatusBadRequest},
		{"wrong password", `{"email":"a@b.cl","password":"x"}`, authprovider.ErrInvalidCredentials, http.StatusUnauthorized},
		{"rate limited", `{"email":"a@b.cl","password":"x"}`, authprovider.ErrRateLimited, http.StatusTooManyRequests},
		{"unavailable", `{"email":"a@b.cl","password":"x"}`, fmt.Errorf("%w: timeout", authprovider.ErrUnavailable), http.StatusBadGateway},
		{"internal", `{"email":"a@b.cl","password":"x"}`, authprovider.ErrInvalidResponse, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{}
			if tt.err != nil {
				client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := signIn(NewHandler(client, nopLogger{}), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
