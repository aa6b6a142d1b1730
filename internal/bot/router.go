package bot

import (
	"context"

	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/interfaces"
	"github.com/hodlwatch/hodlwatch/internal/models"
	"github.com/hodlwatch/hodlwatch/internal/services/valuation"
)

// Router dispatches classified commands to their data sources and formatter.
// It holds no per-message state; the store and quote client are re-invoked on
// every command, so concurrent webhook deliveries never share anything.
type Router struct {
	store  interfaces.PortfolioStore
	quotes interfaces.QuoteClient
	logger *common.Logger
}

// NewRouter creates a router with its injected dependencies.
func NewRouter(store interfaces.PortfolioStore, quotes interfaces.QuoteClient, logger *common.Logger) *Router {
	return &Router{
		store:  store,
		quotes: quotes,
		logger: logger,
	}
}

// Reply classifies the inbound text and produces the full reply. Store and
// provider failures are logged and converted into the fixed failure lines
// here — they never escape to the transport as faults.
func (r *Router) Reply(ctx context.Context, text string) string {
	cmd := Classify(text)

	r.logger.Debug().Str("command", cmd.String()).Msg("Dispatching command")

	switch cmd {
	case CmdStart:
		return FormatStart()

	case CmdShowPortfolio:
		portfolio, err := r.store.Load(ctx)
		if err != nil {
			r.logger.Error().Err(err).Msg("Portfolio load failed")
			return replyPortfolioFailed
		}
		return FormatPortfolio(portfolio)

	case CmdShowMarket:
		quotes, err := r.quotes.GetQuotes(ctx, models.TrackedSymbols)
		if err != nil {
			r.logger.Error().Err(err).Msg("Quote fetch failed")
			return replyMarketFailed
		}
		return FormatMarket(quotes)

	case CmdShowProfit:
		portfolio, err := r.store.Load(ctx)
		if err != nil {
			r.logger.Error().Err(err).Msg("Portfolio load failed")
			return replyProfitFailed
		}
		quotes, err := r.quotes.GetQuotes(ctx, models.TrackedSymbols)
		if err != nil {
			r.logger.Error().Err(err).Msg("Quote fetch failed")
			return replyQuotesFailed
		}
		return FormatProfit(valuation.ComputeProfit(portfolio, quotes))

	case CmdShowNftPulse:
		return FormatNftPulse()

	default:
		return FormatUnrecognized()
	}
}
