package feeds

import (
	"strings"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

// commonNames maps casual asset mentions to trading symbols.
var commonNames = map[string]string{
	"bitcoin":  "BTCUSDT",
	"btc":      "BTCUSDT",
	"ethereum": "ETHUSDT",
	"eth":      "ETHUSDT",
	"solana":   "SOLUSDT",
	"sol":      "SOLUSDT",
	"binance":  "BNBUSDT",
	"bnb":      "BNBUSDT",
	"cardano":  "ADAUSDT",
	"ada":      "ADAUSDT",
	"ripple":   "XRPUSDT",
	"xrp":      "XRPUSDT",
}

// ExtractSymbols returns the trading symbols mentioned in text,
// restricted to allowed when non-empty. Text mentioning no known symbol
// yields ["MARKET"] so it still feeds the market-wide aggregate.
func ExtractSymbols(text string, allowed []string) []string {
	lower := strings.ToLower(text)

	mentioned := make([]string, 0, 2)
	seen := make(map[string]bool)

	for keyword, symbol := range commonNames {
		if !strings.Contains(lower, keyword) || seen[symbol] {
			continue
		}
		if len(allowed) > 0 && !contains(allowed, symbol) {
			continue
		}
		seen[symbol] = true
		mentioned = append(mentioned, symbol)
	}

	if len(mentioned) == 0 {
		return []string{models.MarketSymbol}
	}

	return mentioned
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
