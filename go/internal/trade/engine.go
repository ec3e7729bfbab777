package trade

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/random"
	"github.com/rs/zerolog/log"
)

// Engine validates, evaluates, optionally vetoes, and executes trade
// proposals.
type Engine struct {
	ledger    PickLedger
	validator Validator
	contracts ContractStore
	clock     clockwork.Clock
	rng       random.Source
	events    events.Publisher
	cfg       Config

	mu      sync.Mutex
	records []models.TradeRecord
}

// NewEngine creates a trade execution Engine.
func NewEngine(ledger PickLedger, validator Validator, contracts ContractStore, clock clockwork.Clock, rng random.Source, bus events.Publisher, cfg Config) *Engine {
	return &Engine{
		ledger:    ledger,
		validator: validator,
		contracts: contracts,
		clock:     clock,
		rng:       rng,
		events:    bus,
		cfg:       cfg,
	}
}

// ProposeTrade runs the proposal through the five-stage pipeline,
// short-circuiting on the first failing stage. With executeIfValid
// false the pipeline stops after the veto stage and returns Approved
// without mutating any state.
func (e *Engine) ProposeTrade(ctx context.Context, proposal *models.TradeProposal, executeIfValid bool) (*Result, error) {
	// Stage 1: structural validation
	validation, err := e.validator.ValidateStructure(ctx, proposal)
	if err != nil {
		return nil, fmt.Errorf("failed to validate proposal: %w", err)
	}
	if !validation.Valid {
		log.Info().
			Str("proposal_id", proposal.ID.String()).
			Str("reason", validation.Reason).
			Msg("trade proposal structurally invalid")
		return &Result{Status: models.TradeStatusInvalid, Reason: validation.Reason}, nil
	}

	// Stage 2: player consent
	blocking, err := e.validator.ConsentRequirements(ctx, proposal)
	if err != nil {
		return nil, fmt.Errorf("failed to check consent requirements: %w", err)
	}
	if len(blocking) > 0 {
		return &Result{
			Status:          models.TradeStatusAwaitingPlayerConsent,
			Reason:          "one or more players must consent before this trade can proceed",
			BlockingPlayers: blocking,
		}, nil
	}

	// Stage 3: per-team AI acceptance
	for _, teamID := range proposal.InvolvedTeams() {
		if teamID == proposal.InitiatorID {
			continue
		}
		balance, err := e.validator.EstimateBalance(ctx, proposal, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate balance for team %s: %w", teamID, err)
		}
		capStatus, err := e.contracts.GetCapStatus(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to get cap status for team %s: %w", teamID, err)
		}
		threshold := e.cfg.acceptanceThreshold(capStatus)
		if balance < threshold {
			id := teamID
			return &Result{
				Status:          models.TradeStatusRejected,
				Reason:          rejectionReason(threshold - balance),
				RejectingTeamID: &id,
			}, nil
		}
	}

	// Stage 4: commissioner veto
	if e.cfg.VetoEnabled {
		if result := e.runVeto(ctx, proposal); result != nil {
			return result, nil
		}
	}

	if !executeIfValid {
		return &Result{Status: models.TradeStatusApproved}, nil
	}

	// Stage 5: execute
	record := e.execute(ctx, proposal)
	return &Result{Status: models.TradeStatusExecuted, Record: record}, nil
}

// rejectionReason maps how far the package falls below a team's
// acceptance threshold onto a tiered explanation.
func rejectionReason(shortfall float64) string {
	switch {
	case shortfall < 10:
		return "the package falls slightly short of fair value"
	case shortfall < 25:
		return "the package is clearly unfavorable and the front office passed"
	default:
		return "the package is lopsided; the front office did not take it seriously"
	}
}

// execute transfers every asset and records the trade. A missing or
// invalid individual asset is skipped and logged; the remainder of the
// trade still completes.
func (e *Engine) execute(ctx context.Context, proposal *models.TradeProposal) *models.TradeRecord {
	for i, asset := range proposal.Assets {
		switch asset.Kind {
		case models.AssetKindPlayer:
			if asset.PlayerID == nil {
				log.Warn().Int("asset", i).Msg("skipping player asset with no player id")
				continue
			}
			if err := e.contracts.TransferContract(ctx, *asset.PlayerID, asset.ToTeamID); err != nil {
				log.Warn().
					Err(err).
					Str("player_id", asset.PlayerID.String()).
					Msg("skipping player asset: contract transfer failed")
			}
		case models.AssetKindDraftPick:
			if asset.Pick == nil {
				log.Warn().Int("asset", i).Msg("skipping pick asset with no pick reference")
				continue
			}
			ok := e.ledger.TransferPick(asset.Pick.OriginalTeamID, asset.Pick.Year, asset.Pick.Round, asset.FromTeamID, asset.ToTeamID)
			if !ok {
				log.Warn().
					Str("original_team_id", asset.Pick.OriginalTeamID.String()).
					Int("year", asset.Pick.Year).
					Int("round", asset.Pick.Round).
					Msg("skipping pick asset: ledger refused the transfer")
			}
		case models.AssetKindCash:
			log.Debug().
				Int64("amount", asset.CashAmount).
				Str("from", asset.FromTeamID.String()).
				Str("to", asset.ToTeamID.String()).
				Msg("cash consideration noted")
		}
	}

	// Teams sending out more salary than they take back earn a
	// salary-matching exception anchored to their first outgoing player.
	for _, teamID := range proposal.InvolvedTeams() {
		out := proposal.OutgoingSalary(teamID)
		in := proposal.IncomingSalary(teamID)
		if out <= in {
			continue
		}
		players := proposal.OutgoingPlayers(teamID)
		if len(players) == 0 {
			continue
		}
		if err := e.contracts.CreateTradeException(ctx, teamID, out-in, players[0]); err != nil {
			log.Warn().
				Err(err).
				Str("team_id", teamID.String()).
				Msg("failed to create salary-matching exception")
		}
	}

	now := e.clock.Now()
	record := models.TradeRecord{
		ID:         uuid.New(),
		Proposal:   *proposal,
		Status:     models.TradeStatusExecuted,
		ExecutedAt: now,
	}

	e.mu.Lock()
	e.records = append(e.records, record)
	e.mu.Unlock()

	teamIDs := proposal.InvolvedTeams()
	teamIDStrs := make([]string, len(teamIDs))
	for i, id := range teamIDs {
		teamIDStrs[i] = id.String()
	}
	e.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeTradeExecuted,
		TeamIDs:    teamIDs,
		OccurredAt: now,
		Payload: events.TradeExecutedPayload{
			TradeID:    record.ID.String(),
			TeamIDs:    teamIDStrs,
			AssetCount: len(proposal.Assets),
			ExecutedAt: now,
		},
	})

	log.Info().
		Str("trade_id", record.ID.String()).
		Int("assets", len(proposal.Assets)).
		Int("teams", len(teamIDs)).
		Msg("trade executed")

	return &record
}

// GetTradeHistory returns a copy of all executed trade records.
func (e *Engine) GetTradeHistory() []models.TradeRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := make([]models.TradeRecord, len(e.records))
	copy(records, e.records)
	return records
}
