package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// PickLedger defines what the engine needs from the draft pick ledger
type PickLedger interface {
	TransferPick(originalTeamID uuid.UUID, year, round int, from, to uuid.UUID) bool
}

// ValidationResult is the structural verdict on a proposal.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Validator defines what the engine needs from the external trade
// validation service.
type Validator interface {
	ValidateStructure(ctx context.Context, proposal *models.TradeProposal) (*ValidationResult, error)
	ConsentRequirements(ctx context.Context, proposal *models.TradeProposal) ([]uuid.UUID, error)
	EstimateBalance(ctx context.Context, proposal *models.TradeProposal, teamID uuid.UUID) (float64, error)
}

// ContractStore defines what the engine needs from the contract and
// salary-cap service.
type ContractStore interface {
	GetCapStatus(ctx context.Context, teamID uuid.UUID) (models.CapStatus, error)
	TransferContract(ctx context.Context, playerID, toTeamID uuid.UUID) error
	CreateTradeException(ctx context.Context, teamID uuid.UUID, amount int64, anchorPlayerID uuid.UUID) error
}

// Result is the outcome of one trip through the execution pipeline.
type Result struct {
	Status          models.TradeStatus
	Reason          string
	BlockingPlayers []uuid.UUID // set when Status is AwaitingPlayerConsent
	RejectingTeamID *uuid.UUID  // set when Status is Rejected
	VetoRationale   string      // set when Status is Vetoed
	Record          *models.TradeRecord
}

// VetoRisk is the deterministic, side-effect-free veto preview for
// UI display.
type VetoRisk struct {
	Tier          models.VetoRiskTier
	LosingTeamID  *uuid.UUID
	WorstBalance  float64
	StarInvolved  bool
	HeavyPickLoad bool
}

// Config holds the engine's tunable policy constants.
type Config struct {
	VetoEnabled   bool    `yaml:"veto_enabled"`
	VetoThreshold float64 `yaml:"veto_threshold"` // most-negative balance that draws league scrutiny
	VetoBandBase  float64 `yaml:"veto_band_base"` // veto probability just past the threshold

	// AI acceptance thresholds by cap status. Teams deeper in the tax
	// accept more lopsided deals to shed salary.
	AcceptUnderCap  float64 `yaml:"accept_under_cap"`
	AcceptOverCap   float64 `yaml:"accept_over_cap"`
	AcceptLuxuryTax float64 `yaml:"accept_luxury_tax"`
	AcceptApron     float64 `yaml:"accept_apron"`

	StarSalary int64 `yaml:"star_salary"` // salary that marks a star player for veto math
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		VetoEnabled:     true,
		VetoThreshold:   -30,
		VetoBandBase:    0.15,
		AcceptUnderCap:  -12,
		AcceptOverCap:   -18,
		AcceptLuxuryTax: -25,
		AcceptApron:     -35,
		StarSalary:      30_000_000,
	}
}

func (c Config) acceptanceThreshold(status models.CapStatus) float64 {
	switch status {
	case models.CapStatusApron:
		return c.AcceptApron
	case models.CapStatusLuxuryTax:
		return c.AcceptLuxuryTax
	case models.CapStatusOverCap:
		return c.AcceptOverCap
	default:
		return c.AcceptUnderCap
	}
}
