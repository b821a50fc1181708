package authprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "anon-key", time.Second, nopLogger{})
}

func TestClient_SignIn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@canchas.cl", creds.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"jwt","token_type":"bearer","expires_in":3600,"refresh_token":"r","user":{"id":"u-1","email":"admin@canchas.cl"}}`))
	})

	session, err := client.SignIn(context.Background(), "admin@canchas.cl", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "jwt", session.AccessToken)
	assert.Equal(t, 3600, session.ExpiresIn)
	require.NotNil(t, session.User)
	assert.Equal(t, "u-1", session.User.ID)
}

func TestClient_SignIn_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignIn(context.Background(), "a@b.cl", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_SignUp_ConfirmationPending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"u-2","email":"new@canchas.cl"}`))
	})

	session, err := client.SignUp(context.Background(), "new@canchas.cl", "secret123")
	require.NoError(t, err)
	assert.Empty(t, session.AccessToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "u-2", session.User.ID)
}

func TestClient_SignUp_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"already registered", http.StatusBadRequest, `{"code":400,"msg":"User already registered"}`, ErrUserAlreadyExists},
		{"weak password", http.StatusUnprocessableEntity, `{"code":422,"error_code":"weak_password","msg":"Password should be at least 6 characters"}`, ErrWeakPassword},
		{"rate limited", http.StatusTooManyRequests, `{}`, ErrRateLimited},
		{"provider down", http.StatusBadGateway, `bad gateway`, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.SignUp(context.Background(), "x@y.cl", "pw")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
