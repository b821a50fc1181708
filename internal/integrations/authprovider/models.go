package authprovider

// Credentials тело запросов входа и регистрации
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User пользователь провайдера
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Role             string `json:"role,omitempty"`
	EmailConfirmedAt string `json:"email_confirmed_at,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// Session сессия, выданная провайдером
// При регистрации с подтверждением email провайдер возвращает только пользователя, без токенов
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// ErrorResponse ошибка провайдера, поля отличаются у разных эндпоинтов
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
}

func (e ErrorResponse) message() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	default:
		return e.Error
	}
}
