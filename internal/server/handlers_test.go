package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodlwatch/hodlwatch/internal/app"
	"github.com/hodlwatch/hodlwatch/internal/bot"
	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/models"
)

// mockStore implements interfaces.PortfolioStore.
type mockStore struct {
	portfolio *models.Portfolio
	err       error
}

func (m *mockStore) Load(ctx context.Context) (*models.Portfolio, error) {
	return m.portfolio, m.err
}

// mockQuotes implements interfaces.QuoteClient.
type mockQuotes struct {
	quotes models.PriceQuote
	err    error
}

func (m *mockQuotes) GetQuotes(ctx context.Context, symbols []string) (models.PriceQuote, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quotes, nil
}

// mockBot implements interfaces.BotClient and records sent messages.
type mockBot struct {
	sent    []sentMessage
	sendErr error
}

type sentMessage struct {
	chatID int64
	text   string
}

func (m *mockBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text})
	return m.sendErr
}

func (m *mockBot) SetWebhook(ctx context.Context, url string) error {
	return nil
}

func newTestServer(store *mockStore, quotes *mockQuotes, botClient *mockBot) *Server {
	logger := common.NewSilentLogger()
	a := &app.App{
		Config: common.NewDefaultConfig(),
		Logger: logger,
		Store:  store,
		Quotes: quotes,
		Bot:    botClient,
		Router: bot.NewRouter(store, quotes, logger),
	}
	return NewServer(a)
}

func webhookBody(t *testing.T, chatID int64, text string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"update_id": 1,
		"message": map[string]interface{}{
			"message_id": 10,
			"text":       text,
			"chat":       map[string]interface{}{"id": chatID},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHandleWebhook_RepliesToCommand(t *testing.T) {
	store := &mockStore{portfolio: &models.Portfolio{Entries: []models.Holding{
		{Symbol: "BTC", Amount: 1, BuyUSD: 10000},
	}}}
	quotes := &mockQuotes{quotes: models.PriceQuote{"BTC": 12000}}
	botClient := &mockBot{}

	srv := newTestServer(store, quotes, botClient)

	req := httptest.NewRequest(http.MethodPost, "/", webhookBody(t, 42, "/профит"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, botClient.sent, 1)
	assert.Equal(t, int64(42), botClient.sent[0].chatID)
	assert.Equal(t, "💰 Доходность портфеля:\n\nBTC: +20.00% 📈", botClient.sent[0].text)
}

func TestHandleWebhook_UnrecognizedText(t *testing.T) {
	botClient := &mockBot{}
	srv := newTestServer(&mockStore{}, &mockQuotes{}, botClient)

	req := httptest.NewRequest(http.MethodPost, "/", webhookBody(t, 7, "лунные прогнозы"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, botClient.sent, 1)
	assert.Equal(t, bot.FormatUnrecognized(), botClient.sent[0].text)
}

func TestHandleWebhook_ProviderFailureStillAcks(t *testing.T) {
	quotes := &mockQuotes{err: errors.New("dial tcp: connection refused")}
	botClient := &mockBot{}
	srv := newTestServer(&mockStore{}, quotes, botClient)

	req := httptest.NewRequest(http.MethodPost, "/", webhookBody(t, 7, "/рынок"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	// Failures surface in the reply text, never in the HTTP status
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, botClient.sent, 1)
	assert.Equal(t, "❌ Не удалось получить цены с CoinGecko.", botClient.sent[0].text)
}

func TestHandleWebhook_UndecodableBodyAcks(t *testing.T) {
	botClient := &mockBot{}
	srv := newTestServer(&mockStore{}, &mockQuotes{}, botClient)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, botClient.sent)
}

func TestHandleWebhook_UpdateWithoutMessageAcks(t *testing.T) {
	botClient := &mockBot{}
	srv := newTestServer(&mockStore{}, &mockQuotes{}, botClient)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"update_id":5}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, botClient.sent)
}

func TestHandleWebhook_SendFailureStillAcks(t *testing.T) {
	botClient := &mockBot{sendErr: errors.New("chat not found")}
	srv := newTestServer(&mockStore{}, &mockQuotes{}, botClient)

	req := httptest.NewRequest(http.MethodPost, "/", webhookBody(t, 7, "/start"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleWebhook_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&mockStore{}, &mockQuotes{}, &mockBot{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleWebhook_UnknownPath(t *testing.T) {
	srv := newTestServer(&mockStore{}, &mockQuotes{}, &mockBot{})

	req := httptest.NewRequest(http.MethodPost, "/somewhere", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&mockStore{}, &mockQuotes{}, &mockBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(&mockStore{}, &mockQuotes{}, &mockBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["version"])
}

func TestHandleWebhook_CorrelationIDHeader(t *testing.T) {
	srv := newTestServer(&mockStore{}, &mockQuotes{}, &mockBot{})

	req := httptest.NewRequest(http.MethodPost, "/", webhookBody(t, 7, "/start"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
