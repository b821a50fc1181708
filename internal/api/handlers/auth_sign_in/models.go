package auth_sign_in

import "github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"

// SignInRequest HTTP request model
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       string `json:"userId,omitempty"`
	Email        string `json:"email,omitempty"`
}

func FromSession(s *authprovider.Session) *SessionResponse {
	resp := &SessionResponse{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		ExpiresIn:    s.ExpiresIn,
		RefreshToken: s.RefreshToken,
	}
	if s.User != nil {
		resp.UserID = s.User.ID
		resp.Email = s.User.Email
	}
	return resp
}
