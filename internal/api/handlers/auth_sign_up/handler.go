package auth_sign_up

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"
)

const (
	msgInvalidRequestBody  = "cuerpo de la solicitud inválido"
	msgUserExists          = "ya existe una cuenta con ese correo"
	msgWeakPassword        = "la contraseña o el correo no cumplen los requisitos"
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

// Handle POST /api/v1/auth/sign-up
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/sign-up - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.client.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authprovider.ErrUserAlreadyExists):
			handlers.RespondConflict(w, msgUserExists)

		case errors.Is(err, authprovider.ErrWeakPassword):
			handlers.RespondUnprocessableEntity(w, msgWeakPassword)

		case errors.Is(err, authprovider.ErrRateLimited):
			handlers.RespondTooManyRequests(w, msgRateLimited, 0)

		case errors.Is(err, authprovider.ErrUnavailable):
			h.logger.Error("POST /auth/sign-up - Provider unavailable: %v", err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("POST /auth/sign-up - Failed to sign up: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromSession(req.Email, session)

	h.logger.Info("POST /auth/sign-up - Signed up: email=%s, confirmation_required=%t", response.Email, response.ConfirmationRequired)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
