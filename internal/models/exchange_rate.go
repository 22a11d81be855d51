package models

import (
	"strings"
	"time"
)

// Rate sources reported alongside a resolved rate.
const (
	SourceIdentity = "identity"
	SourceCache    = "cache"
	SourceLive     = "live"
	SourceFallback = "fallback"
	SourceDefault  = "default"
)

type ExchangeRate struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Rate        float64   `json:"rate"`
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source,omitempty"`
}

// PairKey is the ordered-pair key shared by Kafka events and Redis snapshots.
func PairKey(from, to string) string {
	return "exchange:" + strings.ToLower(from) + "_" + strings.ToLower(to)
}
