package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/barkeeper/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI is the remote contract used by services, the sync manager and auth.
type ClientAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	ListBars(ctx context.Context) ([]api.Bar, error)
	CreateBar(ctx context.Context, key string, req api.CreateBarRequest) (*api.Bar, error)
	UpdateBar(ctx context.Context, key, barID string, req api.UpdateBarRequest) (*api.Bar, error)

	ListMappings(ctx context.Context, barID string) ([]api.ServerMapping, error)
	UpsertMapping(ctx context.Context, key string, req api.UpsertMappingRequest) (*api.ServerMapping, error)
	DeleteMapping(ctx context.Context, key, barID, serverName string) error

	ListTickets(ctx context.Context, barID string) ([]api.Ticket, error)
	CreateTicket(ctx context.Context, key string, req api.CreateTicketRequest) (*api.Ticket, error)
	PayTicket(ctx context.Context, key string, req api.PayTicketRequest) (*api.Ticket, error)

	ListSales(ctx context.Context, barID string) ([]api.Sale, error)
	CreateSale(ctx context.Context, key string, req api.CreateSaleRequest) (*api.Sale, error)

	Probe(ctx context.Context) error
}

// TokenSource returns the bearer token for authenticated calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Observer receives the outcome of every round trip.
// The network monitor implements it.
type Observer interface {
	ReportSuccess()
	ReportFailure(err error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	observer   Observer
	logger     *slog.Logger
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithObserver sets the round trip observer.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/signup", "", false, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/login", "", false, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// ListBars возвращает бары, доступные пользователю
func (c *Client) ListBars(ctx context.Context) ([]api.Bar, error) {
	var bars []api.Bar
	if err := c.doRequest(ctx, http.MethodGet, "/rest/v1/bars", "", true, nil, &bars); err != nil {
		return nil, fmt.Errorf("list bars failed: %w", err)
	}
	return bars, nil
}

// CreateBar создает бар
func (c *Client) CreateBar(ctx context.Context, key string, req api.CreateBarRequest) (*api.Bar, error) {
	var bar api.Bar
	if err := c.doRequest(ctx, http.MethodPost, "/rest/v1/bars", key, true, req, &bar); err != nil {
		return nil, fmt.Errorf("create bar failed: %w", err)
	}
	return &bar, nil
}

// UpdateBar частично обновляет бар
func (c *Client) UpdateBar(ctx context.Context, key, barID string, req api.UpdateBarRequest) (*api.Bar, error) {
	var bar api.Bar
	path := "/rest/v1/bars/" + url.PathEscape(barID)
	if err := c.doRequest(ctx, http.MethodPatch, path, key, true, req, &bar); err != nil {
		return nil, fmt.Errorf("update bar failed: %w", err)
	}
	return &bar, nil
}

// ListMappings возвращает привязки официантов бара
func (c *Client) ListMappings(ctx context.Context, barID string) ([]api.ServerMapping, error) {
	var mappings []api.ServerMapping
	path := "/rest/v1/server_mappings?" + url.Values{"bar_id": {barID}}.Encode()
	if err := c.doRequest(ctx, http.MethodGet, path, "", true, nil, &mappings); err != nil {
		return nil, fmt.Errorf("list server mappings failed: %w", err)
	}
	return mappings, nil
}

// UpsertMapping создает или обновляет привязку
func (c *Client) UpsertMapping(ctx context.Context, key string, req api.UpsertMappingRequest) (*api.ServerMapping, error) {
	var mapping api.ServerMapping
	if err := c.doRequest(ctx, http.MethodPut, "/rest/v1/server_mappings", key, true, req, &mapping); err != nil {
		return nil, fmt.Errorf("upsert server mapping failed: %w", err)
	}
	return &mapping, nil
}

// DeleteMapping удаляет привязку по имени официанта
func (c *Client) DeleteMapping(ctx context.Context, key, barID, serverName string) error {
	path := "/rest/v1/server_mappings?" + url.Values{"bar_id": {barID}, "server_name": {serverName}}.Encode()
	if err := c.doRequest(ctx, http.MethodDelete, path, key, true, nil, nil); err != nil {
		return fmt.Errorf("delete server mapping failed: %w", err)
	}
	return nil
}

// ListTickets возвращает счета бара
func (c *Client) ListTickets(ctx context.Context, barID string) ([]api.Ticket, error) {
	var tickets []api.Ticket
	path := "/rest/v1/tickets?" + url.Values{"bar_id": {barID}}.Encode()
	if err := c.doRequest(ctx, http.MethodGet, path, "", true, nil, &tickets); err != nil {
		return nil, fmt.Errorf("list tickets failed: %w", err)
	}
	return tickets, nil
}

// CreateTicket открывает счёт через rpc create_ticket
func (c *Client) CreateTicket(ctx context.Context, key string, req api.CreateTicketRequest) (*api.Ticket, error) {
	var ticket api.Ticket
	if err := c.doRequest(ctx, http.MethodPost, "/rpc/v1/create_ticket", key, true, req, &ticket); err != nil {
		return nil, fmt.Errorf("create ticket failed: %w", err)
	}
	return &ticket, nil
}

// PayTicket оплачивает счёт через rpc pay_ticket
func (c *Client) PayTicket(ctx context.Context, key string, req api.PayTicketRequest) (*api.Ticket, error) {
	var ticket api.Ticket
	if err := c.doRequest(ctx, http.MethodPost, "/rpc/v1/pay_ticket", key, true, req, &ticket); err != nil {
		return nil, fmt.Errorf("pay ticket failed: %w", err)
	}
	return &ticket, nil
}

// ListSales возвращает продажи бара
func (c *Client) ListSales(ctx context.Context, barID string) ([]api.Sale, error) {
	var sales []api.Sale
	path := "/rest/v1/sales?" + url.Values{"bar_id": {barID}}.Encode()
	if err := c.doRequest(ctx, http.MethodGet, path, "", true, nil, &sales); err != nil {
		return nil, fmt.Errorf("list sales failed: %w", err)
	}
	return sales, nil
}

// CreateSale создает продажу через rpc create_sale
func (c *Client) CreateSale(ctx context.Context, key string, req api.CreateSaleRequest) (*api.Sale, error) {
	var sale api.Sale
	if err := c.doRequest(ctx, http.MethodPost, "/rpc/v1/create_sale", key, true, req, &sale); err != nil {
		return nil, fmt.Errorf("create sale failed: %w", err)
	}
	return &sale, nil
}

// Probe performs a health round trip. Implements network.Prober.
func (c *Client) Probe(ctx context.Context) error {
	var resp api.HealthResponse
	return c.doRequest(ctx, http.MethodGet, "/health", "", false, nil, &resp)
}

// doRequest выполняет HTTP запрос и сообщает наблюдателю о результате
func (c *Client) doRequest(
	ctx context.Context,
	method, path, idempotencyKey string,
	auth bool,
	body, result any,
) error {
	err := c.roundTrip(ctx, method, path, idempotencyKey, auth, body, result)
	c.observe(err)
	return err
}

func (c *Client) roundTrip(
	ctx context.Context,
	method, path, idempotencyKey string,
	auth bool,
	body, result any,
) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(api.IdempotencyKeyHeader, idempotencyKey)
	}
	if auth && c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to get access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: string(respBody)}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			apiErr.Code = errResp.Error
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) observe(err error) {
	if c.observer == nil {
		return
	}

	switch {
	case err == nil:
		c.observer.ReportSuccess()
	case errors.Is(err, context.Canceled), errors.Is(err, ErrNoCredentials):
		// Запрос не дошёл до сети, состояние сети не меняем
	case IsTransient(err):
		c.observer.ReportFailure(err)
	default:
		// Ответ получен, значит сеть работает
		c.observer.ReportSuccess()
	}
}
