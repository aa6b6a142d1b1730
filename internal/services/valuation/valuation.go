// Package valuation computes per-asset returns against recorded purchase prices.
package valuation

import (
	"math"

	"github.com/hodlwatch/hodlwatch/internal/models"
)

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeProfit derives one ProfitLine per portfolio entry that has both a
// current quote and a non-zero purchase price, in portfolio entry order.
// Entries without a quote are skipped silently; a zero purchase price is a
// defined skip, not a fault. Only a strictly positive return gets the up
// marker — a flat position reads as down.
func ComputeProfit(portfolio *models.Portfolio, quotes models.PriceQuote) []models.ProfitLine {
	if portfolio == nil {
		return nil
	}

	lines := make([]models.ProfitLine, 0, len(portfolio.Entries))
	for i := range portfolio.Entries {
		entry := &portfolio.Entries[i]

		current, ok := quotes[entry.Symbol]
		if !ok {
			continue
		}
		if entry.BuyUSD == 0 {
			continue
		}

		percent := Round2(((current - entry.BuyUSD) / entry.BuyUSD) * 100)

		trend := models.TrendDown
		if percent > 0 {
			trend = models.TrendUp
		}

		lines = append(lines, models.ProfitLine{
			Symbol:  entry.Symbol,
			Percent: percent,
			Trend:   trend,
		})
	}

	return lines
}
