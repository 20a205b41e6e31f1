package model

import (
	"encoding/json"
	"time"
)

// AggregateSnapshot is the process-wide snapshot across every market group,
// plus the merged signal list and the generation timestamp. A single cached
// instance is owned by the aggregator and replaced wholesale on refresh.
type AggregateSnapshot struct {
	// Groups maps a market group tag ("us_stocks", "crypto", "cn_stocks")
	// to its per-symbol snapshots.
	Groups    map[string]map[string]*Snapshot
	Signals   []Signal
	Timestamp time.Time
}

// NewAggregateSnapshot returns an empty aggregate with the given group tags
// pre-created so sparse groups still serialize as objects, not null.
func NewAggregateSnapshot(groupTags []string, ts time.Time) *AggregateSnapshot {
	groups := make(map[string]map[string]*Snapshot, len(groupTags))
	for _, tag := range groupTags {
		groups[tag] = make(map[string]*Snapshot)
	}
	return &AggregateSnapshot{
		Groups:    groups,
		Signals:   []Signal{},
		Timestamp: ts,
	}
}

// MarshalJSON inlines the group maps at the top level so the wire format is
// {"us_stocks":{...},"crypto":{...},"cn_stocks":{...},"signals":[...],"timestamp":"..."}.
func (a *AggregateSnapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Groups)+2)
	for tag, snaps := range a.Groups {
		out[tag] = snaps
	}
	out["signals"] = a.Signals
	out["timestamp"] = a.Timestamp.UTC()
	return json.Marshal(out)
}
