package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hodlwatch/hodlwatch/internal/models"
)

// Fixed failure lines. A failed command gets one of these and nothing else —
// never a half-built reply mixing real data with an error.
const (
	replyPortfolioFailed = "Ошибка при чтении портфеля."
	replyMarketFailed    = "❌ Не удалось получить цены с CoinGecko."
	replyQuotesFailed    = "❌ Не удалось получить цены."
	replyProfitFailed    = "⚠️ Ошибка при расчёте доходности."
)

// formatAmount renders a quantity without trailing zeros (1.5, not 1.50).
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatStart renders the greeting and command list.
func FormatStart() string {
	return "Привет, брат 👋 Я готов к бою!\n\n" +
		"Доступные команды:\n" +
		"/портфель — показать активы\n" +
		"/рынок — анализ ситуации\n" +
		"/нфт — NFT-пульс"
}

// FormatPortfolio renders one line per holding. The three templates are
// mutually exclusive, selected by the entry's category.
func FormatPortfolio(portfolio *models.Portfolio) string {
	var sb strings.Builder
	sb.WriteString("📊 Портфель:\n")

	for i := range portfolio.Entries {
		h := &portfolio.Entries[i]
		switch h.Category() {
		case models.CategoryStable:
			sb.WriteString(fmt.Sprintf("USDT (Bybit): $%s — стейкинг %s%%\n",
				formatAmount(h.Amount), formatAmount(h.Staking)))
		case models.CategoryNFT:
			sb.WriteString(fmt.Sprintf("NFT: 🎴 %s (вход: %s SOL)\n",
				h.Name, formatAmount(h.BuyFloorSOL)))
		default:
			sb.WriteString(fmt.Sprintf("%s: %s — куплено на $%s\n",
				h.Symbol, formatAmount(h.Amount), formatAmount(h.BuyUSD)))
		}
	}

	return sb.String()
}

// FormatMarket renders current prices for the tracked symbols in their fixed
// display order.
func FormatMarket(quotes models.PriceQuote) string {
	lines := make([]string, 0, len(models.TrackedSymbols)+1)
	lines = append(lines, "📊 Актуальные курсы:")
	for _, symbol := range models.TrackedSymbols {
		lines = append(lines, fmt.Sprintf("%s: $%.2f", symbol, quotes[symbol]))
	}
	return strings.Join(lines, "\n")
}

// FormatProfit renders the per-asset return lines in valuation order.
func FormatProfit(lines []models.ProfitLine) string {
	var sb strings.Builder
	sb.WriteString("💰 Доходность портфеля:\n\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s: %+.2f%% %s", line.Symbol, line.Percent, line.Trend))
	}
	return sb.String()
}

// FormatNftPulse renders the static NFT watch line.
func FormatNftPulse() string {
	return "🖼 NFT-пульс: VALA в портфеле. Следим за Rogues Dead"
}

// FormatUnrecognized renders the help line for unknown input.
func FormatUnrecognized() string {
	return "🤔 Брат, не понял 🧠 Попробуй: /портфель, /рынок или /нфт"
}
