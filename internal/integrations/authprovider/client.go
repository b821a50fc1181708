package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client клиент GoTrue-совместимого провайдера аутентификации
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SignIn выполняет вход по email и паролю
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	c.log.Info("Auth provider sign-in for email=%s", email)

	session, err := c.post(ctx, "/token?grant_type=password", Credentials{Email: email, Password: password})
	if err != nil {
		c.log.Warn("Auth provider sign-in failed for email=%s: %v", email, err)
		return nil, err
	}
	return session, nil
}

// SignUp регистрирует нового пользователя
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	c.log.Info("Auth provider sign-up for email=%s", email)

	session, err := c.post(ctx, "/signup", Credentials{Email: email, Password: password})
	if err != nil {
		c.log.Warn("Auth provider sign-up failed for email=%s: %v", email, err)
		return nil, err
	}
	return session, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Auth provider request %s failed: %v", path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	default:
		return nil, c.mapError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	// Парсим ответ
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Регистрация с подтверждением email возвращает пользователя на верхнем уровне
	if session.User == nil && session.AccessToken == "" {
		var user User
		if err := json.Unmarshal(raw, &user); err == nil && user.ID != "" {
			session.User = &user
		}
	}

	return &session, nil
}

func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var e ErrorResponse
	_ = json.Unmarshal(raw, &e)
	msg := e.message()

	switch {
	case e.Error == "invalid_grant" || e.ErrorCode == "invalid_credentials":
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	case e.ErrorCode == "user_already_exists" || strings.Contains(strings.ToLower(msg), "already registered"):
		return fmt.Errorf("%w: %s", ErrUserAlreadyExists, msg)
	case resp.StatusCode == http.StatusUnprocessableEntity || e.ErrorCode == "weak_password":
		return fmt.Errorf("%w: %s", ErrWeakPassword, msg)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}
