package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodlwatch/hodlwatch/internal/models"
)

func TestFormatStart(t *testing.T) {
	reply := FormatStart()

	assert.True(t, strings.HasPrefix(reply, "Привет, брат 👋"))
	assert.Contains(t, reply, "/портфель — показать активы")
	assert.Contains(t, reply, "/рынок — анализ ситуации")
	assert.Contains(t, reply, "/нфт — NFT-пульс")
}

func TestFormatPortfolio_TemplatePerCategory(t *testing.T) {
	portfolio := &models.Portfolio{Entries: []models.Holding{
		{Symbol: "BTC", Amount: 0.5, BuyUSD: 10000},
		{Symbol: "USDT", Amount: 500, Staking: 5},
		{Symbol: "NFT", Name: "VALA", BuyFloorSOL: 1.2},
	}}

	reply := FormatPortfolio(portfolio)
	lines := strings.Split(strings.TrimRight(reply, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "📊 Портфель:", lines[0])
	assert.Equal(t, "BTC: 0.5 — куплено на $10000", lines[1])
	assert.Equal(t, "USDT (Bybit): $500 — стейкинг 5%", lines[2])
	assert.Equal(t, "NFT: 🎴 VALA (вход: 1.2 SOL)", lines[3])
}

func TestFormatPortfolio_StableUsesStableTemplate(t *testing.T) {
	// A stable entry must never render through the standard-asset template
	portfolio := &models.Portfolio{Entries: []models.Holding{
		{Symbol: "USDT", Amount: 500, Staking: 5},
	}}

	reply := FormatPortfolio(portfolio)

	assert.Contains(t, reply, "USDT (Bybit): $500 — стейкинг 5%")
	assert.NotContains(t, reply, "куплено")
}

func TestFormatMarket_FixedSymbolOrder(t *testing.T) {
	quotes := models.PriceQuote{
		"TON": 6.79, "ARB": 1.04, "SOL": 144.5, "ETH": 3100.99, "BTC": 64123.46,
	}

	reply := FormatMarket(quotes)
	lines := strings.Split(reply, "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "📊 Актуальные курсы:", lines[0])
	assert.Equal(t, "BTC: $64123.46", lines[1])
	assert.Equal(t, "ETH: $3100.99", lines[2])
	assert.Equal(t, "SOL: $144.50", lines[3])
	assert.Equal(t, "ARB: $1.04", lines[4])
	assert.Equal(t, "TON: $6.79", lines[5])
}

func TestFormatMarket_RoundTripSymbolOrder(t *testing.T) {
	// Re-parsing a market reply recovers the five symbols in fixed order
	quotes := models.PriceQuote{"BTC": 1, "ETH": 2, "SOL": 3, "ARB": 4, "TON": 5}

	reply := FormatMarket(quotes)

	var symbols []string
	for _, line := range strings.Split(reply, "\n")[1:] {
		symbol, _, found := strings.Cut(line, ": $")
		require.True(t, found, "line %q", line)
		symbols = append(symbols, symbol)
	}

	assert.Equal(t, models.TrackedSymbols, symbols)
}

func TestFormatProfit(t *testing.T) {
	lines := []models.ProfitLine{
		{Symbol: "BTC", Percent: 20, Trend: models.TrendUp},
		{Symbol: "ETH", Percent: -12.5, Trend: models.TrendDown},
	}

	reply := FormatProfit(lines)

	assert.True(t, strings.HasPrefix(reply, "💰 Доходность портфеля:\n\n"))
	assert.Contains(t, reply, "BTC: +20.00% 📈")
	assert.Contains(t, reply, "ETH: -12.50% 📉")
}

func TestFormatProfit_SignedZero(t *testing.T) {
	lines := []models.ProfitLine{
		{Symbol: "SOL", Percent: 0, Trend: models.TrendDown},
	}

	reply := FormatProfit(lines)

	assert.Contains(t, reply, "SOL: +0.00% 📉")
}

func TestFormatNftPulse(t *testing.T) {
	assert.Equal(t, "🖼 NFT-пульс: VALA в портфеле. Следим за Rogues Dead", FormatNftPulse())
}

func TestFormatUnrecognized(t *testing.T) {
	reply := FormatUnrecognized()
	assert.Contains(t, reply, "/портфель")
	assert.Contains(t, reply, "/рынок")
	assert.Contains(t, reply, "/нфт")
}
