package models

import (
	"time"

	"github.com/google/uuid"
)

// PickKey is the globally unique identity of a draft pick right.
// A pick is always named after the team whose draft slot it is, no
// matter who owns it now.
type PickKey struct {
	OriginalTeamID uuid.UUID `json:"original_team_id"`
	Year           int       `json:"year"`
	Round          int       `json:"round"` // 1 or 2
}

// ProtectionRule makes conveyance conditional on the original team's
// draft position. A pick landing at or inside TopProtected stays with
// the original team.
type ProtectionRule struct {
	TopProtected int `json:"top_protected"`
}

// Applies reports whether the rule would keep the pick at the given
// projected draft position.
func (r ProtectionRule) Applies(position int) bool {
	return position > 0 && position <= r.TopProtected
}

// DraftPickRight is the canonical record of one draft pick: who it
// originally belongs to, who owns it now, and any conditions attached.
type DraftPickRight struct {
	OriginalTeamID  uuid.UUID        `json:"original_team_id"`
	Year            int              `json:"year"`
	Round           int              `json:"round"`
	CurrentOwnerID  uuid.UUID        `json:"current_owner_id"`
	Protections     []ProtectionRule `json:"protections,omitempty"` // ordered, most binding first
	SwapRight       bool             `json:"swap_right"`
	SwapBeneficiary *uuid.UUID       `json:"swap_beneficiary,omitempty"`
	Conveyance      string           `json:"conveyance,omitempty"` // final outcome, empty until resolved
}

// Key returns the pick's composite identity.
func (p DraftPickRight) Key() PickKey {
	return PickKey{OriginalTeamID: p.OriginalTeamID, Year: p.Year, Round: p.Round}
}

// PickTransferRecord is an append-only audit entry for an ownership
// change. Records are never mutated or deleted.
type PickTransferRecord struct {
	ID            uuid.UUID `json:"id"`
	Pick          PickKey   `json:"pick"`
	FromTeamID    uuid.UUID `json:"from_team_id"`
	ToTeamID      uuid.UUID `json:"to_team_id"`
	TransferredAt time.Time `json:"transferred_at"`
}

// PickValueTier buckets a pick by its projected draft position.
type PickValueTier string

const (
	PickTierElite           PickValueTier = "elite"   // projected top 5
	PickTierLottery         PickValueTier = "lottery" // projected 6-14
	PickTierMid             PickValueTier = "mid"     // projected 15-22
	PickTierLate            PickValueTier = "late"    // projected 23+
	PickTierSecondRound     PickValueTier = "second_round"
	PickTierLikelyProtected PickValueTier = "likely_protected"
)

// StepienStatus is an advisory view of a team's first-round pick
// holdings across the tracked horizon. It is a signal for the UI and
// the offer generator, not itself a compliance gate.
type StepienStatus struct {
	TeamID         uuid.UUID         `json:"team_id"`
	YearOwners     map[int]uuid.UUID `json:"year_owners"`     // year -> current owner of this team's original first
	OwnedYears     []int             `json:"owned_years"`     // years where the team owns any first, sorted
	TradeableYears []int             `json:"tradeable_years"` // years the team could move without obvious risk
}
