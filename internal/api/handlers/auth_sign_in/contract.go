package auth_sign_in

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/integrations/authprovider"
)

type AuthClient interface {
	SignIn(ctx context.Context, email, password string) (*authprovider.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
