package models

import (
	"time"

	"github.com/google/uuid"
)

// NegotiationStatus is the protocol state of a negotiation session.
type NegotiationStatus string

const (
	NegotiationInitiated        NegotiationStatus = "initiated"
	NegotiationAwaitingResponse NegotiationStatus = "awaiting_response"
	NegotiationCounterReceived  NegotiationStatus = "counter_received"
	NegotiationInDiscussion     NegotiationStatus = "in_discussion"
	NegotiationAccepted         NegotiationStatus = "accepted"
	NegotiationRejected         NegotiationStatus = "rejected"
	NegotiationWithdrawn        NegotiationStatus = "withdrawn"
	NegotiationExpired          NegotiationStatus = "expired"
	NegotiationLeakedToMedia    NegotiationStatus = "leaked_to_media"
)

// Active reports whether the session can still take protocol actions.
func (s NegotiationStatus) Active() bool {
	switch s {
	case NegotiationInitiated, NegotiationAwaitingResponse, NegotiationCounterReceived, NegotiationInDiscussion:
		return true
	}
	return false
}

// RoundType labels one entry in a session's round log.
type RoundType string

const (
	RoundInitialOffer RoundType = "initial_offer"
	RoundCounterOffer RoundType = "counter_offer"
	RoundAcceptance   RoundType = "acceptance"
	RoundRejection    RoundType = "rejection"
	RoundWithdrawal   RoundType = "withdrawal"
	RoundTeamAdded    RoundType = "team_added"
)

// NegotiationRound is one appended entry in the session's ordered log.
type NegotiationRound struct {
	Number   int            `json:"number"`
	Type     RoundType      `json:"type"`
	TeamID   uuid.UUID      `json:"team_id"`
	Proposal *TradeProposal `json:"proposal,omitempty"`
	Note     string         `json:"note,omitempty"`
	At       time.Time      `json:"at"`
}

// LeakAccuracy is how faithfully a media leak reflects the talks.
type LeakAccuracy string

const (
	LeakAccurate          LeakAccuracy = "accurate"
	LeakPartiallyAccurate LeakAccuracy = "partially_accurate"
)

// MediaLeak records a negotiation reaching the press.
type MediaLeak struct {
	SessionID     uuid.UUID    `json:"session_id"`
	LeakingTeamID uuid.UUID    `json:"leaking_team_id"`
	Headline      string       `json:"headline"`
	Accuracy      LeakAccuracy `json:"accuracy"`
	RevealsAll    bool         `json:"reveals_all"` // all involved teams vs. a single team
	NamedPlayerID *uuid.UUID   `json:"named_player_id,omitempty"`
	LeakedAt      time.Time    `json:"leaked_at"`
}

// NegotiationSession is a multi-round trade negotiation between the
// initiating team and one or more counterparties.
type NegotiationSession struct {
	ID              uuid.UUID          `json:"id"`
	InitiatorID     uuid.UUID          `json:"initiator_id"`
	TeamIDs         []uuid.UUID        `json:"team_ids"`
	Rounds          []NegotiationRound `json:"rounds"`
	CurrentProposal TradeProposal      `json:"current_proposal"`
	LastCounter     *TradeProposal     `json:"last_counter,omitempty"`
	Status          NegotiationStatus  `json:"status"`
	Leak            *MediaLeak         `json:"leak,omitempty"`
	StartedAt       time.Time          `json:"started_at"`
	LastActivityAt  time.Time          `json:"last_activity_at"`
	ExpiresAt       time.Time          `json:"expires_at"`
}

// Involves reports whether the team is a party to the session.
func (s *NegotiationSession) Involves(teamID uuid.UUID) bool {
	for _, id := range s.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
