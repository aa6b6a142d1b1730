package models

// TrackedSymbols is the fixed set of quoted assets, in display order.
var TrackedSymbols = []string{"BTC", "ETH", "SOL", "ARB", "TON"}

// PriceQuote maps a display symbol to its current USD price, rounded to two
// decimals. Produced fresh per request, never persisted.
type PriceQuote map[string]float64

// Trend markers attached to profit percentages.
const (
	TrendUp   = "📈"
	TrendDown = "📉"
)

// ProfitLine is the per-asset return against the recorded purchase price.
type ProfitLine struct {
	Symbol  string
	Percent float64
	Trend   string
}
