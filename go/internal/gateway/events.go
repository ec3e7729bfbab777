package gateway

import (
	"encoding/json"
	"time"
)

// TradeEvent is the wire format pushed to WebSocket clients. Data is
// the domain event's payload, passed through untouched.
type TradeEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	TeamIDs   []string        `json:"team_ids"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}
