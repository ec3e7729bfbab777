package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferStatus tracks an unsolicited incoming offer's lifecycle.
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusCountered OfferStatus = "countered"
	OfferStatusExpired   OfferStatus = "expired"
)

// IncomingTradeOffer is an AI-originated proposal toward the user's
// team, created by the daily offer generator and retained in history
// indefinitely once resolved.
type IncomingTradeOffer struct {
	ID         uuid.UUID     `json:"id"`
	Proposal   TradeProposal `json:"proposal"`
	Message    string        `json:"message"`
	ReceivedAt time.Time     `json:"received_at"`
	ExpiresAt  time.Time     `json:"expires_at"`
	Status     OfferStatus   `json:"status"`
}

// Pending reports whether the offer is still open for a response.
func (o *IncomingTradeOffer) Pending() bool {
	return o.Status == OfferStatusPending
}
