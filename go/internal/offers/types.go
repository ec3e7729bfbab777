package offers

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/trade"
)

// PlayerDirectory defines what the generator needs from the player
// directory service.
type PlayerDirectory interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
}

// ContractStore defines what the generator needs from the contract
// service.
type ContractStore interface {
	GetContract(ctx context.Context, playerID uuid.UUID) (*models.Contract, error)
}

// Valuation defines what the generator needs from the asset valuation
// service.
type Valuation interface {
	AssessPlayer(ctx context.Context, player models.Player, contract models.Contract, evaluatingTeamID uuid.UUID) (models.ValueAssessment, error)
}

// PickLedger defines what the generator needs from the draft pick
// ledger.
type PickLedger interface {
	CurrentYear() int
	GetPicksOwnedBy(teamID uuid.UUID) []models.DraftPickRight
	GetPickValueTier(key models.PickKey) models.PickValueTier
}

// ProfileProvider defines what the generator needs from the
// front-office profile registry.
type ProfileProvider interface {
	Profile(teamID uuid.UUID) (*models.FrontOfficeProfile, bool)
	Profiles() []models.FrontOfficeProfile
}

// TradeExecutor defines what offer responses need from the execution
// engine.
type TradeExecutor interface {
	ProposeTrade(ctx context.Context, proposal *models.TradeProposal, executeIfValid bool) (*trade.Result, error)
}

// Target is a desirable player on the user's roster, from the
// offering team's point of view.
type Target struct {
	Player   models.Player
	Contract models.Contract
	Value    models.ValueAssessment
}

// Config holds the generator's tunable policy constants.
type Config struct {
	BaseOfferProbability float64 `yaml:"base_offer_probability"` // daily Bernoulli base
	OfferTTLHours        int     `yaml:"offer_ttl_hours"`
	MaxPendingOffers     int     `yaml:"max_pending_offers"`
}

// DefaultConfig returns the generator defaults.
func DefaultConfig() Config {
	return Config{
		BaseOfferProbability: 0.15,
		OfferTTLHours:        48,
		MaxPendingOffers:     3,
	}
}

// minTargetSalary disqualifies a player from being a trade target no
// matter how well they score otherwise.
const minTargetSalary int64 = 3_000_000

// aggressionWeight is the team-selection weight factor per aggression
// tier. Zero-weight teams never originate offers.
func aggressionWeight(tier models.AggressionTier) float64 {
	switch tier {
	case models.AggressionConservative:
		return 0.4
	case models.AggressionBalanced:
		return 1.0
	case models.AggressionAggressive:
		return 1.7
	default:
		return 0
	}
}

// situationWeight is the team-selection weight factor per situation
// tier.
func situationWeight(tier models.SituationTier) float64 {
	switch tier {
	case models.SituationRebuilding:
		return 1.2
	case models.SituationRetooling:
		return 1.0
	case models.SituationContending:
		return 1.4
	default:
		return 0
	}
}

// pickFaceValue is a pick's undiscounted value on the trade balance
// scale, by tier.
func pickFaceValue(tier models.PickValueTier) float64 {
	switch tier {
	case models.PickTierElite:
		return 40
	case models.PickTierLottery:
		return 25
	case models.PickTierMid:
		return 15
	case models.PickTierLate:
		return 10
	case models.PickTierLikelyProtected:
		return 12
	case models.PickTierSecondRound:
		return 5
	default:
		return 0
	}
}
