package userdir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/frontandrew/sales/internal/domain"
)

// Client - интерфейс для работы с сервисом пользователей
type Client interface {
	// GetUser возвращает пользователя по ID.
	// Если пользователя нет, возвращает domain.ErrUserNotFound.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// Health проверяет доступность сервиса пользователей
	Health(ctx context.Context) error
}

// httpClient - HTTP реализация клиента сервиса пользователей
type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient создает клиент с ограничением времени на каждый запрос.
// baseURL - префикс, к которому дописывается ID пользователя (например http://users:8080/users/).
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return NewHTTPClientWith(baseURL, &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	})
}

// NewHTTPClientWith создает клиент поверх готового *http.Client
func NewHTTPClientWith(baseURL string, client *http.Client) Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &httpClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// GetUser запрашивает пользователя. Повторов нет: процесс покупки ждет не дольше таймаута.
func (c *httpClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	url := c.baseURL + strconv.FormatInt(userID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUserServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrUserServiceUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	default:
		return nil, fmt.Errorf("%w: user service returned status %d: %s",
			domain.ErrUserServiceUnavailable, resp.StatusCode, string(body))
	}

	// Пустое тело или null означают, что пользователя нет
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, domain.ErrUserNotFound
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %v", domain.ErrUserServiceUnavailable, err)
	}

	return &user, nil
}

// Health проверяет доступность сервиса пользователей
func (c *httpClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
