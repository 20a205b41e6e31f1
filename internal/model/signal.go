package model

// Signal actions.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Signal is one directional trading signal derived from a snapshot's
// indicators. Signals live only as long as the aggregate that produced them.
type Signal struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"` // indicator that fired: "RSI", "MACD", "BB"
	Action   string `json:"action"`
	Desc     string `json:"desc"`
	Strength int    `json:"strength"`
}
