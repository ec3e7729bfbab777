package negotiation

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/trade"
)

// Verdict is an AI evaluator's read on a proposal for one team.
// AdjustedBalance is signed on the trade balance scale; negative means
// the deal is unfavorable to the evaluating team.
type Verdict struct {
	Acceptable      bool
	AdjustedBalance float64
	Reasoning       string
}

// CounterKind discriminates a counter request's outcome.
type CounterKind string

const (
	CounterKindCounter CounterKind = "counter"
	CounterKindReject  CounterKind = "reject"
)

// CounterResponse is an evaluator's answer to a counter request. The
// Proposal is set only when Kind is CounterKindCounter.
type CounterResponse struct {
	Kind      CounterKind
	Proposal  *models.TradeProposal
	Reasoning string
}

// TradeEvaluator defines what the orchestrator needs from the external
// AI evaluation service.
type TradeEvaluator interface {
	Evaluate(ctx context.Context, proposal *models.TradeProposal, teamID uuid.UUID) (*Verdict, error)
	RequestCounter(ctx context.Context, proposal *models.TradeProposal, teamID uuid.UUID) (*CounterResponse, error)
}

// TradeExecutor defines what accepted negotiations need from the
// execution engine.
type TradeExecutor interface {
	ProposeTrade(ctx context.Context, proposal *models.TradeProposal, executeIfValid bool) (*trade.Result, error)
}

// ProfileProvider defines what the leak mechanic needs from the
// front-office profile registry.
type ProfileProvider interface {
	Profile(teamID uuid.UUID) (*models.FrontOfficeProfile, bool)
}

// PlayerDirectory defines what leak headlines need from the player
// directory service.
type PlayerDirectory interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// UserAction is the user's dispatch choice when responding to a
// counter-offer.
type UserAction string

const (
	ActionAccept   UserAction = "accept"
	ActionCounter  UserAction = "counter"
	ActionReject   UserAction = "reject"
	ActionWithdraw UserAction = "withdraw"
	ActionAddTeam  UserAction = "add_team"
)

// Response carries a user action plus its action-specific argument.
type Response struct {
	Action      UserAction
	Counter     *models.TradeProposal // ActionCounter
	AddedTeamID *uuid.UUID            // ActionAddTeam
}

// Config holds the orchestrator's tunable policy constants.
type Config struct {
	SessionTTLHours    int     `yaml:"session_ttl_hours"`
	SoftTolerance      float64 `yaml:"soft_tolerance"`       // adjusted balance above which a team counters instead of rejecting
	ThirdTeamTolerance float64 `yaml:"third_team_tolerance"` // looser bound used when pitching a third team
	LeakStarSalary     int64   `yaml:"leak_star_salary"`     // salary that marks a star for leak risk
	DeadlineWindowDays int     `yaml:"deadline_window_days"` // days before the trade deadline that count as proximity
}

// DefaultConfig returns the orchestrator defaults.
func DefaultConfig() Config {
	return Config{
		SessionTTLHours:    72,
		SoftTolerance:      -20,
		ThirdTeamTolerance: -10,
		LeakStarSalary:     25_000_000,
		DeadlineWindowDays: 14,
	}
}
