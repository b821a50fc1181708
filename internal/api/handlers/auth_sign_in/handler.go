package auth_sign_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"
)

const (
	msgInvalidRequestBody  = "cuerpo de la solicitud inválido"
	msgInvalidCredentials  = "correo o contraseña incorrectos"
	msgRateLimited         = "demasiados intentos, espera un momento"
	msgProviderUnavailable = "el servicio de autenticación no está disponible"
)

type Handler struct {
	client AuthClient
	logger Logger
}

func NewHandler(client AuthClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle POST /api/v1/auth/sign-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/sign-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authprovider.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/sign-in - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, authprovider.ErrRateLimited):
			handlers.RespondTooManyRequests(w, msgRateLimited, 0)

		case errors.Is(err, authprovider.ErrUnavailable):
			h.logger.Error("POST /auth/sign-in - Provider unavailable: %v", err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("POST /auth/sign-in - Failed to sign in: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/sign-in - Signed in: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}
