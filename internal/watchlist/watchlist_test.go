package watchlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultGroups(t *testing.T) {
	w := Default()
	if len(w.USStocks) != 8 || len(w.Crypto) != 4 || len(w.CNStocks) != 6 {
		t.Errorf("group sizes = %d/%d/%d", len(w.USStocks), len(w.Crypto), len(w.CNStocks))
	}
	for _, inst := range w.Crypto {
		if inst.Display == "" {
			t.Errorf("crypto entry %s has no display alias", inst.Symbol)
		}
	}
}

func TestInstrumentKey(t *testing.T) {
	if got := (Instrument{Symbol: "BTCUSDT", Display: "BTC"}).Key(); got != "BTC" {
		t.Errorf("Key = %q, want the display alias", got)
	}
	if got := (Instrument{Symbol: "AAPL"}).Key(); got != "AAPL" {
		t.Errorf("Key = %q, want the symbol", got)
	}
}

func TestLookupCrypto(t *testing.T) {
	w := Default()
	inst, ok := w.LookupCrypto("ETHUSDT")
	if !ok || inst.Display != "ETH" {
		t.Errorf("LookupCrypto = %+v/%v", inst, ok)
	}
	if _, ok := w.LookupCrypto("DOGEUSDT"); ok {
		t.Error("unknown symbol must not resolve")
	}
}

func TestGroupTagsCoverAllGroups(t *testing.T) {
	w := Default()
	total := 0
	for _, tag := range w.GroupTags() {
		total += len(w.Group(tag))
	}
	if total != 18 {
		t.Errorf("tags cover %d instruments, want 18", total)
	}
	if w.Group("bonds") != nil {
		t.Error("unknown tag must return nil")
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	body := `
us_stocks:
  - symbol: IBM
    name: IBM
crypto:
  - symbol: DOGEUSDT
    name: Dogecoin
    display: DOGE
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.USStocks) != 1 || w.USStocks[0].Symbol != "IBM" {
		t.Errorf("us_stocks = %+v", w.USStocks)
	}
	if len(w.CNStocks) != 0 {
		t.Error("omitted group must stay empty, not inherit defaults")
	}
	if inst, ok := w.LookupCrypto("DOGEUSDT"); !ok || inst.Key() != "DOGE" {
		t.Errorf("crypto override not applied: %+v/%v", inst, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("missing file must error")
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("a watchlist with no instruments must error")
	}

	if w, err := Load(""); err != nil || len(w.USStocks) == 0 {
		t.Error("empty path must fall back to the default table")
	}
}
