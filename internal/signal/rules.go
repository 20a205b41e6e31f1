// Package signal derives BUY/SELL trading signals from an instrument
// snapshot. Each rule inspects only the most recent one or two indicator
// points; rules fire independently and are never deduplicated.
package signal

import (
	"fmt"

	"trading-monitor/internal/model"
)

// RSI thresholds: strictly above/below, so exactly 70 or 30 stays quiet.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0
)

// Generate applies every rule to the snapshot and returns the signals that
// fired, tagged with the given symbol and display name. A nil snapshot or
// one with fewer than two RSI points yields nothing.
func Generate(snap *model.Snapshot, symbol, name string) []model.Signal {
	var signals []model.Signal
	if snap == nil || len(snap.RSI) < 2 {
		return signals
	}

	if lastRSI, ok := snap.RSI.Last(); ok {
		switch {
		case lastRSI > rsiOverbought:
			signals = append(signals, model.Signal{
				Symbol: symbol, Name: name, Type: "RSI", Action: model.ActionSell,
				Desc:     fmt.Sprintf("RSI overbought (%.1f)", lastRSI),
				Strength: 2,
			})
		case lastRSI < rsiOversold:
			signals = append(signals, model.Signal{
				Symbol: symbol, Name: name, Type: "RSI", Action: model.ActionBuy,
				Desc:     fmt.Sprintf("RSI oversold (%.1f)", lastRSI),
				Strength: 2,
			})
		}
	}

	signals = append(signals, macdCross(snap, symbol, name)...)
	signals = append(signals, bollingerBreak(snap, symbol, name)...)
	return signals
}

// macdCross detects a golden/death cross from the last two MACD points.
func macdCross(snap *model.Snapshot, symbol, name string) []model.Signal {
	lastMACD, okLast := snap.MACD.MACD.Last()
	prevMACD, okPrev := snap.MACD.MACD.Prev()
	if !okLast || !okPrev {
		return nil
	}
	lastSignal, _ := snap.MACD.Signal.Last()
	prevSignal, _ := snap.MACD.Signal.Prev()

	switch {
	case prevMACD < prevSignal && lastMACD > lastSignal:
		return []model.Signal{{
			Symbol: symbol, Name: name, Type: "MACD", Action: model.ActionBuy,
			Desc: "MACD golden cross", Strength: 2,
		}}
	case prevMACD > prevSignal && lastMACD < lastSignal:
		return []model.Signal{{
			Symbol: symbol, Name: name, Type: "MACD", Action: model.ActionSell,
			Desc: "MACD death cross", Strength: 2,
		}}
	}
	return nil
}

// bollingerBreak fires when the current price sits outside the bands.
// Requires both bands defined and non-zero.
func bollingerBreak(snap *model.Snapshot, symbol, name string) []model.Signal {
	upper, okU := snap.Bollinger.Upper.Last()
	lower, okL := snap.Bollinger.Lower.Last()
	if !okU || !okL || upper == 0 || lower == 0 {
		return nil
	}

	switch {
	case snap.CurrentPrice > upper:
		return []model.Signal{{
			Symbol: symbol, Name: name, Type: "BB", Action: model.ActionSell,
			Desc: "broke above upper Bollinger band", Strength: 1,
		}}
	case snap.CurrentPrice < lower:
		return []model.Signal{{
			Symbol: symbol, Name: name, Type: "BB", Action: model.ActionBuy,
			Desc: "broke below lower Bollinger band", Strength: 1,
		}}
	}
	return nil
}
