package authprovider

import "errors"

var (
	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("authprovider client: invalid credentials")

	// ErrUserAlreadyExists пользователь с таким email уже зарегистрирован
	ErrUserAlreadyExists = errors.New("authprovider client: user already exists")

	// ErrWeakPassword провайдер отклонил пароль или email
	ErrWeakPassword = errors.New("authprovider client: password or email rejected")

	// ErrRateLimited провайдер ограничил частоту запросов
	ErrRateLimited = errors.New("authprovider client: rate limited")

	ErrInternal        = errors.New("authprovider client: internal error")
	ErrInvalidResponse = errors.New("authprovider client: invalid response")
	ErrUnavailable     = errors.New("authprovider client: provider unavailable")
)
