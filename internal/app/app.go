// Package app wires configuration, clients, and services into one container.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hodlwatch/hodlwatch/internal/bot"
	"github.com/hodlwatch/hodlwatch/internal/clients/cmc"
	"github.com/hodlwatch/hodlwatch/internal/clients/telegram"
	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/interfaces"
	"github.com/hodlwatch/hodlwatch/internal/storage"
)

// App holds all initialized services and clients. It is the shared core
// behind cmd/hodlwatch-server and the server package's tests.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.PortfolioStore
	Quotes      interfaces.QuoteClient
	Bot         interfaces.BotClient
	Router      *bot.Router
	StartupTime time.Time
}

// NewApp initializes configuration, logging, clients, and the command router.
// configPath may be empty, in which case HODL_CONFIG and the default path
// are tried in order.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("HODL_CONFIG")
	}
	if configPath == "" {
		configPath = "config/hodlwatch.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	if config.Clients.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}
	if config.Clients.CoinMarketCap.APIKey == "" {
		logger.Warn().Msg("CoinMarketCap API key not configured - market and profit commands will fail")
	}

	store := storage.NewPortfolioStore(logger, config.Portfolio.Path)

	quotes := cmc.NewClient(config.Clients.CoinMarketCap.APIKey,
		cmc.WithBaseURL(config.Clients.CoinMarketCap.BaseURL),
		cmc.WithLogger(logger),
		cmc.WithRateLimit(config.Clients.CoinMarketCap.RateLimit),
		cmc.WithTimeout(config.Clients.CoinMarketCap.GetTimeout()),
	)

	botClient := telegram.NewClient(config.Clients.Telegram.Token,
		telegram.WithBaseURL(config.Clients.Telegram.BaseURL),
		telegram.WithLogger(logger),
		telegram.WithTimeout(config.Clients.Telegram.GetTimeout()),
	)

	router := bot.NewRouter(store, quotes, logger)

	return &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Quotes:      quotes,
		Bot:         botClient,
		Router:      router,
		StartupTime: time.Now(),
	}, nil
}

// RegisterWebhook points Telegram at the configured public URL. Skipped with
// a warning when no URL is configured (local development).
func (a *App) RegisterWebhook(ctx context.Context) error {
	url := a.Config.Clients.Telegram.WebhookURL
	if url == "" {
		a.Logger.Warn().Msg("No webhook URL configured - skipping webhook registration")
		return nil
	}

	if err := a.Bot.SetWebhook(ctx, url); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}

	a.Logger.Info().Str("url", url).Msg("Webhook registered")
	return nil
}
