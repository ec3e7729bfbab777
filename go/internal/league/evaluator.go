package league

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/negotiation"
)

// ProfileProvider defines what the evaluator needs from the
// front-office profile registry.
type ProfileProvider interface {
	Profile(teamID uuid.UUID) (*models.FrontOfficeProfile, bool)
}

// PickOwner defines what counter construction needs from the draft
// pick ledger.
type PickOwner interface {
	GetPicksOwnedBy(teamID uuid.UUID) []models.DraftPickRight
}

// TradeEvaluator is the AI evaluation collaborator: it judges
// proposals per team and generates counter-offers. Deterministic given
// the directory and ledger state.
type TradeEvaluator struct {
	validator *TradeValidator
	profiles  ProfileProvider
	picks     PickOwner
}

// NewTradeEvaluator creates a TradeEvaluator.
func NewTradeEvaluator(validator *TradeValidator, profiles ProfileProvider, picks PickOwner) *TradeEvaluator {
	return &TradeEvaluator{validator: validator, profiles: profiles, picks: picks}
}

// Evaluate judges the proposal from one team's perspective. The raw
// balance is adjusted for the front office's situation: rebuilders
// credit incoming picks, contenders credit incoming players.
func (e *TradeEvaluator) Evaluate(ctx context.Context, proposal *models.TradeProposal, teamID uuid.UUID) (*negotiation.Verdict, error) {
	balance, err := e.validator.EstimateBalance(ctx, proposal, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate balance: %w", err)
	}

	adjusted := balance
	if profile, ok := e.profiles.Profile(teamID); ok {
		incomingPicks, incomingPlayers := 0, 0
		for _, asset := range proposal.Assets {
			if asset.ToTeamID != teamID {
				continue
			}
			switch asset.Kind {
			case models.AssetKindDraftPick:
				incomingPicks++
			case models.AssetKindPlayer:
				incomingPlayers++
			}
		}
		switch profile.Situation {
		case models.SituationRebuilding:
			adjusted += 5 * float64(incomingPicks)
		case models.SituationContending:
			adjusted += 3 * float64(incomingPlayers)
		}
	}

	verdict := &negotiation.Verdict{AdjustedBalance: adjusted}
	switch {
	case adjusted >= 0:
		verdict.Acceptable = true
		verdict.Reasoning = "the package meets our asking price"
	case adjusted >= -20:
		verdict.Reasoning = "close, but we need more coming back"
	default:
		verdict.Reasoning = "the package falls well short of our valuation"
	}
	return verdict, nil
}

// RequestCounter builds a counter-offer by asking the initiator for a
// pick sweetener on top of the existing package. When the initiator
// has no picks left to ask for, the team rejects instead.
func (e *TradeEvaluator) RequestCounter(ctx context.Context, proposal *models.TradeProposal, teamID uuid.UUID) (*negotiation.CounterResponse, error) {
	alreadyMoving := make(map[models.PickKey]bool)
	for _, asset := range proposal.Assets {
		if asset.Kind == models.AssetKindDraftPick && asset.Pick != nil {
			alreadyMoving[*asset.Pick] = true
		}
	}

	available := e.picks.GetPicksOwnedBy(proposal.InitiatorID)
	sort.Slice(available, func(i, j int) bool {
		// Ask for the cheapest sweetener first: later rounds, then
		// nearer years.
		if available[i].Round != available[j].Round {
			return available[i].Round > available[j].Round
		}
		return available[i].Year < available[j].Year
	})

	for _, pick := range available {
		key := pick.Key()
		if alreadyMoving[key] {
			continue
		}
		counter := *proposal
		counter.ID = uuid.New()
		counter.Assets = append(append([]models.TradeAsset(nil), proposal.Assets...), models.TradeAsset{
			Kind:        models.AssetKindDraftPick,
			FromTeamID:  proposal.InitiatorID,
			ToTeamID:    teamID,
			Pick:        &key,
			Protections: pick.Protections,
			SwapRight:   pick.SwapRight,
		})
		return &negotiation.CounterResponse{
			Kind:      negotiation.CounterKindCounter,
			Proposal:  &counter,
			Reasoning: fmt.Sprintf("add the %d round %d pick and we have a deal", key.Year, key.Round),
		}, nil
	}

	return &negotiation.CounterResponse{
		Kind:      negotiation.CounterKindReject,
		Reasoning: "no sweetener available to close the gap",
	}, nil
}
