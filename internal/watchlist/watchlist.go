// Package watchlist defines the static instrument universe: which symbols
// are monitored in each market group. The built-in table can be replaced by
// a YAML file at startup; it is read-only afterwards.
package watchlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Market group tags. These are also the top-level keys of the aggregate
// snapshot JSON.
const (
	GroupUSStocks = "us_stocks"
	GroupCrypto   = "crypto"
	GroupCNStocks = "cn_stocks"
)

// Instrument is one watched symbol.
type Instrument struct {
	Symbol  string `yaml:"symbol"`
	Name    string `yaml:"name"`
	Sector  string `yaml:"sector,omitempty"`
	Display string `yaml:"display,omitempty"` // short display alias (crypto)
}

// Key returns the identifier instruments of this entry are keyed by in the
// aggregate snapshot: the display alias when set, else the raw symbol.
func (i Instrument) Key() string {
	if i.Display != "" {
		return i.Display
	}
	return i.Symbol
}

// Watchlist is the full instrument universe across all market groups.
type Watchlist struct {
	USStocks []Instrument `yaml:"us_stocks"`
	Crypto   []Instrument `yaml:"crypto"`
	CNStocks []Instrument `yaml:"cn_stocks"`
}

// Default returns the built-in instrument table.
func Default() *Watchlist {
	return &Watchlist{
		USStocks: []Instrument{
			{Symbol: "AAPL", Name: "Apple", Sector: "Tech"},
			{Symbol: "MSFT", Name: "Microsoft", Sector: "Tech"},
			{Symbol: "GOOGL", Name: "Alphabet", Sector: "Tech"},
			{Symbol: "AMZN", Name: "Amazon", Sector: "Tech"},
			{Symbol: "NVDA", Name: "NVIDIA", Sector: "Semis"},
			{Symbol: "META", Name: "Meta", Sector: "Tech"},
			{Symbol: "TSLA", Name: "Tesla", Sector: "Auto"},
			{Symbol: "TSM", Name: "TSMC", Sector: "Semis"},
		},
		Crypto: []Instrument{
			{Symbol: "BTCUSDT", Name: "Bitcoin", Display: "BTC"},
			{Symbol: "ETHUSDT", Name: "Ethereum", Display: "ETH"},
			{Symbol: "SOLUSDT", Name: "Solana", Display: "SOL"},
			{Symbol: "BNBUSDT", Name: "BNB", Display: "BNB"},
		},
		CNStocks: []Instrument{
			{Symbol: "600519.SS", Name: "Kweichow Moutai", Sector: "Consumer"},
			{Symbol: "000858.SZ", Name: "Wuliangye", Sector: "Consumer"},
			{Symbol: "601318.SS", Name: "Ping An Insurance", Sector: "Financials"},
			{Symbol: "000001.SZ", Name: "Ping An Bank", Sector: "Financials"},
			{Symbol: "600036.SS", Name: "China Merchants Bank", Sector: "Financials"},
			{Symbol: "002594.SZ", Name: "BYD", Sector: "Auto"},
		},
	}
}

// Load reads a watchlist from a YAML file. An empty path returns Default().
func Load(path string) (*Watchlist, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("watchlist: read %s: %w", path, err)
	}
	var w Watchlist
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("watchlist: parse %s: %w", path, err)
	}
	if len(w.USStocks)+len(w.Crypto)+len(w.CNStocks) == 0 {
		return nil, fmt.Errorf("watchlist: %s defines no instruments", path)
	}
	return &w, nil
}

// GroupTags returns every market group tag in dependency-free order.
func (w *Watchlist) GroupTags() []string {
	return []string{GroupUSStocks, GroupCrypto, GroupCNStocks}
}

// Group returns the instruments of a market group ("" tag → nil).
func (w *Watchlist) Group(tag string) []Instrument {
	switch tag {
	case GroupUSStocks:
		return w.USStocks
	case GroupCrypto:
		return w.Crypto
	case GroupCNStocks:
		return w.CNStocks
	}
	return nil
}

// LookupCrypto resolves a raw upstream symbol (e.g. "BTCUSDT") to its
// watchlist entry. ok is false when the symbol is not watched.
func (w *Watchlist) LookupCrypto(symbol string) (Instrument, bool) {
	for _, inst := range w.Crypto {
		if inst.Symbol == symbol {
			return inst, true
		}
	}
	return Instrument{}, false
}

// CryptoSymbols returns the raw crypto symbols in watchlist order.
func (w *Watchlist) CryptoSymbols() []string {
	out := make([]string, len(w.Crypto))
	for i, inst := range w.Crypto {
		out[i] = inst.Symbol
	}
	return out
}
