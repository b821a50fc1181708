package auth_sign_up

import "github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"

// SignUpRequest HTTP request model
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignUpResponse ответ регистрации
// Если провайдер требует подтверждения email, токена нет и ConfirmationRequired = true
type SignUpResponse struct {
	UserID               string `json:"userId,omitempty"`
	Email                string `json:"email"`
	AccessToken          string `json:"accessToken,omitempty"`
	ExpiresIn            int    `json:"expiresIn,omitempty"`
	ConfirmationRequired bool   `json:"confirmationRequired"`
}

func FromSession(email string, s *authprovider.Session) *SignUpResponse {
	resp := &SignUpResponse{
		Email:                email,
		AccessToken:          s.AccessToken,
		ExpiresIn:            s.ExpiresIn,
		ConfirmationRequired: s.AccessToken == "",
	}
	if s.User != nil {
		resp.UserID = s.User.ID
		if s.User.Email != "" {
			resp.Email = s.User.Email
		}
	}
	return resp
}
