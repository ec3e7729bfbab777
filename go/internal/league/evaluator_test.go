package league

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/negotiation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	profiles map[uuid.UUID]models.FrontOfficeProfile
}

func (p *stubProfiles) Profile(teamID uuid.UUID) (*models.FrontOfficeProfile, bool) {
	profile, ok := p.profiles[teamID]
	if !ok {
		return nil, false
	}
	return &profile, true
}

type evaluatorFixture struct {
	*validatorFixture
	profiles  *stubProfiles
	evaluator *TradeEvaluator
}

func newEvaluatorFixture() *evaluatorFixture {
	f := &evaluatorFixture{
		validatorFixture: newValidatorFixture(),
		profiles:         &stubProfiles{profiles: make(map[uuid.UUID]models.FrontOfficeProfile)},
	}
	f.evaluator = NewTradeEvaluator(f.validator, f.profiles, f.ledger)
	return f
}

func TestEvaluateRebuilderCreditsIncomingPicks(t *testing.T) {
	f := newEvaluatorFixture()
	teamA, teamB := uuid.New(), uuid.New()
	f.profiles.profiles[teamB] = models.FrontOfficeProfile{TeamID: teamB, Situation: models.SituationRebuilding}

	// Team B ships a 70-value player for a late first (10).
	outgoing := f.addPlayer(teamB, 70, 70, 27, 15_000_000, false)
	pickKey := f.ledger.addPick(teamA, 2027, 1, teamA)

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindPlayer, FromTeamID: teamB, ToTeamID: teamA, PlayerID: &outgoing, Salary: 15_000_000},
			{Kind: models.AssetKindDraftPick, FromTeamID: teamA, ToTeamID: teamB, Pick: &pickKey},
		},
	}

	verdict, err := f.evaluator.Evaluate(context.Background(), proposal, teamB)
	require.NoError(t, err)
	// Raw -60, pick credit +5.
	assert.InDelta(t, -55, verdict.AdjustedBalance, 1e-9)
	assert.False(t, verdict.Acceptable)
	assert.Equal(t, "the package falls well short of our valuation", verdict.Reasoning)
}

func TestEvaluateContenderCreditsIncomingPlayers(t *testing.T) {
	f := newEvaluatorFixture()
	teamA, teamB := uuid.New(), uuid.New()
	f.profiles.profiles[teamB] = models.FrontOfficeProfile{TeamID: teamB, Situation: models.SituationContending}

	incoming := f.addPlayer(teamA, 70, 70, 27, 15_000_000, false)
	pickKey := f.ledger.addPick(teamB, 2027, 1, teamB)
	f.ledger.tiers[pickKey] = models.PickTierMid // 15

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindPlayer, FromTeamID: teamA, ToTeamID: teamB, PlayerID: &incoming, Salary: 15_000_000},
			{Kind: models.AssetKindDraftPick, FromTeamID: teamB, ToTeamID: teamA, Pick: &pickKey},
			{Kind: models.AssetKindCash, FromTeamID: teamB, ToTeamID: teamA, CashAmount: 50_000_000},
		},
	}

	verdict, err := f.evaluator.Evaluate(context.Background(), proposal, teamB)
	require.NoError(t, err)
	// Raw 70-15-50 = 5, player credit +3.
	assert.InDelta(t, 8, verdict.AdjustedBalance, 1e-9)
	assert.True(t, verdict.Acceptable)
	assert.Equal(t, "the package meets our asking price", verdict.Reasoning)
}

func TestEvaluateMidBandReasoning(t *testing.T) {
	f := newEvaluatorFixture()
	teamA, teamB := uuid.New(), uuid.New()

	// No profile: raw balance only. Team B sends $12M cash for nothing.
	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindCash, FromTeamID: teamB, ToTeamID: teamA, CashAmount: 12_000_000},
		},
	}

	verdict, err := f.evaluator.Evaluate(context.Background(), proposal, teamB)
	require.NoError(t, err)
	assert.InDelta(t, -12, verdict.AdjustedBalance, 1e-9)
	assert.False(t, verdict.Acceptable)
	assert.Equal(t, "close, but we need more coming back", verdict.Reasoning)
}

func TestRequestCounterAsksForCheapestPickFirst(t *testing.T) {
	f := newEvaluatorFixture()
	teamA, teamB := uuid.New(), uuid.New()

	f.ledger.addPick(teamA, 2027, 1, teamA)
	f.ledger.addPick(teamA, 2028, 2, teamA)
	f.ledger.addPick(teamA, 2026, 2, teamA)

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindCash, FromTeamID: teamA, ToTeamID: teamB, CashAmount: 1_000_000},
		},
	}

	counter, err := f.evaluator.RequestCounter(context.Background(), proposal, teamB)
	require.NoError(t, err)
	assert.Equal(t, negotiation.CounterKindCounter, counter.Kind)
	require.NotNil(t, counter.Proposal)
	assert.NotEqual(t, proposal.ID, counter.Proposal.ID)

	added := counter.Proposal.Assets[len(counter.Proposal.Assets)-1]
	require.Equal(t, models.AssetKindDraftPick, added.Kind)
	// The nearest second-rounder before any first.
	assert.Equal(t, 2026, added.Pick.Year)
	assert.Equal(t, 2, added.Pick.Round)
	assert.Equal(t, teamA, added.FromTeamID)
	assert.Equal(t, teamB, added.ToTeamID)

	// The original proposal's asset list is untouched.
	assert.Len(t, proposal.Assets, 1)
}

func TestRequestCounterSkipsPicksAlreadyMoving(t *testing.T) {
	f := newEvaluatorFixture()
	teamA, teamB := uuid.New(), uuid.New()

	moving := f.ledger.addPick(teamA, 2026, 2, teamA)
	f.ledger.addPick(teamA, 2027, 2, teamA)

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindDraftPick, FromTeamID: teamA, ToTeamID: teamB, Pick: &moving},
		},
	}

	counter, err := f.evaluator.RequestCounter(context.Background(), proposal, teamB)
	require.NoError(t, err)
	require.Equal(t, negotiation.CounterKindCounter, counter.Kind)
	added := counter.Proposal.Assets[len(counter.Proposal.Assets)-1]
	assert.Equal(t, 2027, added.Pick.Year)
}

func TestRequestCounterRejectsWithNoPicksLeft(t *testing.T) {
	f := newEvaluatorFixture()
	teamA, teamB := uuid.New(), uuid.New()

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindCash, FromTeamID: teamA, ToTeamID: teamB, CashAmount: 1_000_000},
		},
	}

	counter, err := f.evaluator.RequestCounter(context.Background(), proposal, teamB)
	require.NoError(t, err)
	assert.Equal(t, negotiation.CounterKindReject, counter.Kind)
	assert.Nil(t, counter.Proposal)
}
