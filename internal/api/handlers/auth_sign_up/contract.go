package auth_sign_up

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"
)

type AuthClient interface {
	SignUp(ctx context.Context, email, password string) (*authprovider.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
