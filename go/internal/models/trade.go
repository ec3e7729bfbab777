package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetKind discriminates the TradeAsset union.
type AssetKind string

const (
	AssetKindPlayer    AssetKind = "player"
	AssetKindDraftPick AssetKind = "draft_pick"
	AssetKindCash      AssetKind = "cash"
)

// TradeAsset is one movable piece of a trade. Exactly one of the
// kind-specific field groups is populated, per Kind.
type TradeAsset struct {
	Kind       AssetKind `json:"kind"`
	FromTeamID uuid.UUID `json:"from_team_id"`
	ToTeamID   uuid.UUID `json:"to_team_id"`

	// Kind == AssetKindPlayer
	PlayerID *uuid.UUID `json:"player_id,omitempty"`
	Salary   int64      `json:"salary,omitempty"`

	// Kind == AssetKindDraftPick
	Pick        *PickKey         `json:"pick,omitempty"`
	Protections []ProtectionRule `json:"protections,omitempty"`
	SwapRight   bool             `json:"swap_right,omitempty"`

	// Kind == AssetKindCash
	CashAmount int64 `json:"cash_amount,omitempty"`
}

// TradeProposal is an ordered list of assets moving between two or
// more teams. It is consumed exactly once by the execution engine.
type TradeProposal struct {
	ID          uuid.UUID    `json:"id"`
	InitiatorID uuid.UUID    `json:"initiator_id"`
	Assets      []TradeAsset `json:"assets"`
	CreatedAt   time.Time    `json:"created_at"`
}

// InvolvedTeams returns every team sending or receiving an asset, in
// first-appearance order.
func (p *TradeProposal) InvolvedTeams() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var teams []uuid.UUID
	for _, a := range p.Assets {
		if !seen[a.FromTeamID] {
			seen[a.FromTeamID] = true
			teams = append(teams, a.FromTeamID)
		}
		if !seen[a.ToTeamID] {
			seen[a.ToTeamID] = true
			teams = append(teams, a.ToTeamID)
		}
	}
	return teams
}

// OutgoingSalary sums the salary a team is sending out.
func (p *TradeProposal) OutgoingSalary(teamID uuid.UUID) int64 {
	var total int64
	for _, a := range p.Assets {
		if a.Kind == AssetKindPlayer && a.FromTeamID == teamID {
			total += a.Salary
		}
	}
	return total
}

// IncomingSalary sums the salary a team is taking back.
func (p *TradeProposal) IncomingSalary(teamID uuid.UUID) int64 {
	var total int64
	for _, a := range p.Assets {
		if a.Kind == AssetKindPlayer && a.ToTeamID == teamID {
			total += a.Salary
		}
	}
	return total
}

// OutgoingPlayers lists the player IDs a team is sending out.
func (p *TradeProposal) OutgoingPlayers(teamID uuid.UUID) []uuid.UUID {
	var players []uuid.UUID
	for _, a := range p.Assets {
		if a.Kind == AssetKindPlayer && a.FromTeamID == teamID && a.PlayerID != nil {
			players = append(players, *a.PlayerID)
		}
	}
	return players
}

// OutgoingAssets lists every asset a team is sending out.
func (p *TradeProposal) OutgoingAssets(teamID uuid.UUID) []TradeAsset {
	var assets []TradeAsset
	for _, a := range p.Assets {
		if a.FromTeamID == teamID {
			assets = append(assets, a)
		}
	}
	return assets
}

// FirstRoundPickCount counts first-round picks moving in the trade.
func (p *TradeProposal) FirstRoundPickCount() int {
	count := 0
	for _, a := range p.Assets {
		if a.Kind == AssetKindDraftPick && a.Pick != nil && a.Pick.Round == 1 {
			count++
		}
	}
	return count
}

// MaxPlayerSalary returns the largest single salary moving in the trade.
func (p *TradeProposal) MaxPlayerSalary() int64 {
	var max int64
	for _, a := range p.Assets {
		if a.Kind == AssetKindPlayer && a.Salary > max {
			max = a.Salary
		}
	}
	return max
}

// TradeStatus is the outcome of running a proposal through the
// execution pipeline.
type TradeStatus string

const (
	TradeStatusInvalid               TradeStatus = "invalid"
	TradeStatusAwaitingPlayerConsent TradeStatus = "awaiting_player_consent"
	TradeStatusRejected              TradeStatus = "rejected"
	TradeStatusVetoed                TradeStatus = "vetoed"
	TradeStatusApproved              TradeStatus = "approved"
	TradeStatusExecuted              TradeStatus = "executed"
)

// TradeRecord archives an executed trade.
type TradeRecord struct {
	ID         uuid.UUID     `json:"id"`
	Proposal   TradeProposal `json:"proposal"`
	Status     TradeStatus   `json:"status"`
	ExecutedAt time.Time     `json:"executed_at"`
}

// VetoRiskTier is the deterministic preview of commissioner veto
// exposure for a proposal.
type VetoRiskTier string

const (
	VetoRiskNone   VetoRiskTier = "none"
	VetoRiskLow    VetoRiskTier = "low"
	VetoRiskMedium VetoRiskTier = "medium"
	VetoRiskHigh   VetoRiskTier = "high"
)
