// Package telegram provides a client for the Telegram Bot API
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/interfaces"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	DefaultTimeout = 30 * time.Second
)

// Client implements the BotClient interface
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Telegram Bot API client
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a Telegram Bot API error
type APIError struct {
	StatusCode  int
	Description string
	Method      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Telegram API error: %s (status: %d, method: %s)", e.Description, e.StatusCode, e.Method)
}

// apiResponse is the envelope every Bot API method returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// post performs a JSON POST to a Bot API method
func (c *Client) post(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("method", method).Msg("Telegram API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !apiResp.OK {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Description: apiResp.Description,
			Method:      method,
		}
	}

	return nil
}

// SendMessage delivers a text reply to a chat
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload := struct {
		ChatID int64  `json:"chat_id"`
		Text   string `json:"text"`
	}{
		ChatID: chatID,
		Text:   text,
	}
	return c.post(ctx, "sendMessage", payload)
}

// SetWebhook registers the public URL Telegram should push updates to
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	payload := struct {
		URL string `json:"url"`
	}{
		URL: url,
	}
	return c.post(ctx, "setWebhook", payload)
}

// Ensure Client implements BotClient
var _ interfaces.BotClient = (*Client)(nil)
