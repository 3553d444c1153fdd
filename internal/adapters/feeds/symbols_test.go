package feeds

import (
	"sort"
	"testing"

	"github.com/zenith-trading/zenith-bot/pkg/models"
)

func TestExtractSymbols(t *testing.T) {
	allowed := []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "common name",
			text: "Bitcoin breaks new highs as ETF inflows continue",
			want: []string{"BTCUSDT"},
		},
		{
			name: "ticker and name deduped",
			text: "ETH rally: Ethereum fees drop after upgrade",
			want: []string{"ETHUSDT"},
		},
		{
			name: "multiple symbols",
			text: "BTC and Solana both up double digits",
			want: []string{"BTCUSDT", "SOLUSDT"},
		},
		{
			name: "outside allowed list falls back to market",
			text: "Cardano announces new roadmap",
			want: []string{models.MarketSymbol},
		},
		{
			name: "no mention falls back to market",
			text: "Fed holds rates steady",
			want: []string{models.MarketSymbol},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSymbols(tt.text, allowed)
			sort.Strings(got)
			sort.Strings(tt.want)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractSymbols() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractSymbols() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParsePubDate(t *testing.T) {
	ts := parsePubDate("Mon, 02 Jan 2006 15:04:05 -0700")
	if ts.Year() != 2006 {
		t.Errorf("expected RFC1123Z date to parse, got %v", ts)
	}

	// Garbage dates fall back to now rather than the zero time.
	if parsePubDate("not a date").IsZero() {
		t.Error("expected fallback timestamp for unparsable date")
	}
}

func TestStripHTML(t *testing.T) {
	got := stripHTML(`<p>Bitcoin <b>surges</b> past $100k</p>`)
	if got != "Bitcoin surges past $100k" {
		t.Errorf("stripHTML() = %q", got)
	}

	plain := stripHTML("no markup here")
	if plain != "no markup here" {
		t.Errorf("stripHTML() = %q", plain)
	}
}
