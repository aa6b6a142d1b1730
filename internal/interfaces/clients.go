// Package interfaces defines service contracts for Hodlwatch
package interfaces

import (
	"context"

	"github.com/hodlwatch/hodlwatch/internal/models"
)

// QuoteClient provides current spot prices from the market-data provider.
type QuoteClient interface {
	// GetQuotes retrieves current USD prices for the given display symbols.
	// A single provider call per invocation; any failure is terminal for the
	// request and no partial map is returned.
	GetQuotes(ctx context.Context, symbols []string) (models.PriceQuote, error)
}

// BotClient is the outbound side of the messaging transport.
type BotClient interface {
	// SendMessage delivers a reply to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SetWebhook registers the public URL Telegram should push updates to.
	SetWebhook(ctx context.Context, url string) error
}
