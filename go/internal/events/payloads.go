package events

import (
	"time"
)

// Event payload types shared between the core components and the gateway

// PickTransferredPayload is the payload for a PickTransferred event
type PickTransferredPayload struct {
	OriginalTeamID string    `json:"original_team_id"`
	Year           int       `json:"year"`
	Round          int       `json:"round"`
	FromTeamID     string    `json:"from_team_id"`
	ToTeamID       string    `json:"to_team_id"`
	TransferredAt  time.Time `json:"transferred_at"`
}

// TradeExecutedPayload is the payload for a TradeExecuted event
type TradeExecutedPayload struct {
	TradeID    string    `json:"trade_id"`
	TeamIDs    []string  `json:"team_ids"`
	AssetCount int       `json:"asset_count"`
	ExecutedAt time.Time `json:"executed_at"`
}

// TradeVetoedPayload is the payload for a TradeVetoed event
type TradeVetoedPayload struct {
	ProposalID string    `json:"proposal_id"`
	Rationale  string    `json:"rationale"`
	VetoedAt   time.Time `json:"vetoed_at"`
}

// OfferCreatedPayload is the payload for an OfferCreated event
type OfferCreatedPayload struct {
	OfferID        string    `json:"offer_id"`
	OfferingTeamID string    `json:"offering_team_id"`
	TargetTeamID   string    `json:"target_team_id"`
	Message        string    `json:"message"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// OfferExpiredPayload is the payload for an OfferExpired event
type OfferExpiredPayload struct {
	OfferID   string    `json:"offer_id"`
	ExpiredAt time.Time `json:"expired_at"`
}

// NegotiationStartedPayload is the payload for a NegotiationStarted event
type NegotiationStartedPayload struct {
	SessionID   string    `json:"session_id"`
	InitiatorID string    `json:"initiator_id"`
	TeamIDs     []string  `json:"team_ids"`
	StartedAt   time.Time `json:"started_at"`
}

// NegotiationUpdatedPayload is the payload for a NegotiationUpdated event
type NegotiationUpdatedPayload struct {
	SessionID string    `json:"session_id"`
	Round     int       `json:"round"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NegotiationCompletedPayload is the payload for a NegotiationCompleted event
type NegotiationCompletedPayload struct {
	SessionID   string    `json:"session_id"`
	Status      string    `json:"status"`
	Rounds      int       `json:"rounds"`
	CompletedAt time.Time `json:"completed_at"`
}

// CounterReceivedPayload is the payload for a CounterReceived event
type CounterReceivedPayload struct {
	SessionID      string    `json:"session_id"`
	CounteringTeam string    `json:"countering_team"`
	Round          int       `json:"round"`
	ReceivedAt     time.Time `json:"received_at"`
}

// TradeLeakedPayload is the payload for a TradeLeaked event
type TradeLeakedPayload struct {
	SessionID     string    `json:"session_id"`
	LeakingTeamID string    `json:"leaking_team_id"`
	Headline      string    `json:"headline"`
	Accuracy      string    `json:"accuracy"`
	LeakedAt      time.Time `json:"leaked_at"`
}
