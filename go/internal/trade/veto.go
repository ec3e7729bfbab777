package trade

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// veto probability bands, relative to |VetoThreshold|. The base band
// (past the threshold but under 1.5x) lives in Config.
const (
	vetoBandLow    = 0.30 // >= 1.5x
	vetoBandMid    = 0.60 // >= 2x
	vetoBandHigh   = 0.90 // >= 3x
	vetoBonusStar  = 0.10 // a star-salary player is moving
	vetoBonusPicks = 0.10 // three or more first-round picks moving
	vetoCap        = 0.95
)

// runVeto finds the most disadvantaged team, computes a veto
// probability from the imbalance severity, and draws once. Returns a
// Vetoed result on trigger, nil to let the pipeline continue.
func (e *Engine) runVeto(ctx context.Context, proposal *models.TradeProposal) *Result {
	losingTeam, worst, err := e.worstBalance(ctx, proposal)
	if err != nil {
		log.Warn().Err(err).Msg("veto review skipped: balance estimates unavailable")
		return nil
	}
	if losingTeam == nil {
		return nil
	}

	probability := e.vetoProbability(math.Abs(worst), proposal)
	if probability == 0 {
		return nil
	}

	if e.rng.Float64() >= probability {
		log.Debug().
			Str("proposal_id", proposal.ID.String()).
			Float64("probability", probability).
			Msg("veto review passed")
		return nil
	}

	rationale := vetoRationale(*losingTeam, worst, proposal, e.cfg.StarSalary)
	e.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeTradeVetoed,
		TeamIDs:    proposal.InvolvedTeams(),
		OccurredAt: e.clock.Now(),
		Payload: events.TradeVetoedPayload{
			ProposalID: proposal.ID.String(),
			Rationale:  rationale,
			VetoedAt:   e.clock.Now(),
		},
	})

	log.Info().
		Str("proposal_id", proposal.ID.String()).
		Str("losing_team", losingTeam.String()).
		Float64("balance", worst).
		Msg("trade vetoed by league office")

	id := *losingTeam
	return &Result{
		Status:          models.TradeStatusVetoed,
		Reason:          rationale,
		RejectingTeamID: &id,
		VetoRationale:   rationale,
	}
}

// worstBalance returns the team with the most negative estimated
// balance, or nil if no team is below the veto threshold.
func (e *Engine) worstBalance(ctx context.Context, proposal *models.TradeProposal) (*uuid.UUID, float64, error) {
	var losing *uuid.UUID
	worst := 0.0
	for _, teamID := range proposal.InvolvedTeams() {
		balance, err := e.validator.EstimateBalance(ctx, proposal, teamID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to estimate balance for team %s: %w", teamID, err)
		}
		if balance < worst {
			id := teamID
			losing = &id
			worst = balance
		}
	}
	if losing == nil || worst >= e.cfg.VetoThreshold {
		return nil, 0, nil
	}
	return losing, worst, nil
}

// vetoProbability maps imbalance magnitude onto the severity bands and
// applies the star-player and pick-volume bonuses. Monotonically
// non-decreasing in magnitude.
func (e *Engine) vetoProbability(magnitude float64, proposal *models.TradeProposal) float64 {
	threshold := math.Abs(e.cfg.VetoThreshold)
	if threshold == 0 || magnitude <= threshold {
		return 0
	}

	var probability float64
	switch {
	case magnitude >= threshold*3:
		probability = vetoBandHigh
	case magnitude >= threshold*2:
		probability = vetoBandMid
	case magnitude >= threshold*1.5:
		probability = vetoBandLow
	default:
		probability = e.cfg.VetoBandBase
	}

	if proposal.MaxPlayerSalary() >= e.cfg.StarSalary {
		probability += vetoBonusStar
	}
	if proposal.FirstRoundPickCount() >= 3 {
		probability += vetoBonusPicks
	}
	if probability > vetoCap {
		probability = vetoCap
	}
	return probability
}

func vetoRationale(losingTeam uuid.UUID, balance float64, proposal *models.TradeProposal, starSalary int64) string {
	rationale := fmt.Sprintf(
		"the league office reviewed the transaction and found the return for team %s (%.0f) far below fair value",
		losingTeam, balance)
	if proposal.MaxPlayerSalary() >= starSalary {
		rationale += "; moving a franchise-level contract under these terms raised additional concern"
	}
	if proposal.FirstRoundPickCount() >= 3 {
		rationale += "; the volume of first-round capital changing hands was also flagged"
	}
	return rationale
}

// AnalyzeVetoRisk previews veto exposure without randomness or side
// effects, using the same balance math as the veto stage.
func (e *Engine) AnalyzeVetoRisk(ctx context.Context, proposal *models.TradeProposal) (*VetoRisk, error) {
	risk := &VetoRisk{
		Tier:          models.VetoRiskNone,
		StarInvolved:  proposal.MaxPlayerSalary() >= e.cfg.StarSalary,
		HeavyPickLoad: proposal.FirstRoundPickCount() >= 3,
	}

	var losing *uuid.UUID
	worst := 0.0
	for _, teamID := range proposal.InvolvedTeams() {
		balance, err := e.validator.EstimateBalance(ctx, proposal, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate balance for team %s: %w", teamID, err)
		}
		if balance < worst {
			id := teamID
			losing = &id
			worst = balance
		}
	}
	risk.LosingTeamID = losing
	risk.WorstBalance = worst

	threshold := math.Abs(e.cfg.VetoThreshold)
	if threshold == 0 {
		return risk, nil
	}
	magnitude := math.Abs(worst)
	switch {
	case magnitude >= threshold*2:
		risk.Tier = models.VetoRiskHigh
	case magnitude >= threshold*1.5:
		risk.Tier = models.VetoRiskMedium
	case magnitude > threshold:
		risk.Tier = models.VetoRiskLow
	}
	return risk, nil
}
