// Package cmc provides a client for the CoinMarketCap API
package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/interfaces"
	"github.com/hodlwatch/hodlwatch/internal/models"
)

const (
	DefaultBaseURL   = "https://pro-api.coinmarketcap.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// providerIDs maps display symbols to the identifiers CoinMarketCap expects.
// The mapping is internal to this client; callers only ever see display symbols.
var providerIDs = map[string]string{
	"BTC": "BTC",
	"ETH": "ETH",
	"SOL": "SOL",
	"ARB": "ARB",
	"TON": "TON",
}

// Client implements the QuoteClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
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

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new CoinMarketCap client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a quote provider error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("CoinMarketCap API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("CoinMarketCap API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quotesResponse represents the /v1/cryptocurrency/quotes/latest payload
type quotesResponse struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data map[string]struct {
		Quote map[string]struct {
			Price float64 `json:"price"`
		} `json:"quote"`
	} `json:"data"`
}

// GetQuotes retrieves current USD spot prices for the given display symbols.
// One provider call per invocation; any failure is returned as-is, never a
// partial map.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (models.PriceQuote, error) {
	ids := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		id, ok := providerIDs[symbol]
		if !ok {
			return nil, fmt.Errorf("unsupported symbol %q", symbol)
		}
		ids = append(ids, id)
	}

	params := url.Values{}
	params.Set("symbol", strings.Join(ids, ","))
	params.Set("convert", "USD")

	var resp quotesResponse
	if err := c.get(ctx, "/v1/cryptocurrency/quotes/latest", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status.ErrorCode != 0 {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    resp.Status.ErrorMessage,
			Endpoint:   "/v1/cryptocurrency/quotes/latest",
		}
	}

	quotes := make(models.PriceQuote, len(symbols))
	for _, symbol := range symbols {
		entry, ok := resp.Data[providerIDs[symbol]]
		if !ok {
			return nil, fmt.Errorf("quote for %s missing from response", symbol)
		}
		usd, ok := entry.Quote["USD"]
		if !ok {
			return nil, fmt.Errorf("USD quote for %s missing from response", symbol)
		}
		quotes[symbol] = math.Round(usd.Price*100) / 100
	}

	c.logger.Debug().Int("symbols", len(quotes)).Msg("CoinMarketCap quotes fetched")

	return quotes, nil
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
