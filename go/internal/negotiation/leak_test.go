package negotiation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) setLeakBehavior(behavior models.LeakBehavior) {
	profile := f.profiles.profiles[f.aiTeam]
	profile.LeakBehavior = behavior
	f.profiles.profiles[f.aiTeam] = profile
}

func TestMaybeLeakTightLippedNeverLeaks(t *testing.T) {
	f := newFixture(t)
	f.evaluator.verdicts[f.aiTeam] = &Verdict{Acceptable: true, AdjustedBalance: 1}

	// A zero roll would trigger any nonzero probability.
	f.rng.floats = []float64{0.0}

	session, err := f.app.InitiateNegotiation(context.Background(), f.proposalBetween(f.userTeam, f.aiTeam, 30_000_000))
	require.NoError(t, err)
	assert.Nil(t, session.Leak)
	assert.Zero(t, f.bus.countOf(events.TypeTradeLeaked))
}

func TestMaybeLeakLeakyTeamLeaksAndNamesStar(t *testing.T) {
	f := newFixture(t)
	f.setLeakBehavior(models.LeakBehaviorLeaky)
	f.evaluator.verdicts[f.aiTeam] = &Verdict{Acceptable: true, AdjustedBalance: 1}

	// Trigger (under 0.20+0.15 star boost), reveal-all, accurate, name
	// the star.
	f.rng.floats = []float64{0.30, 0.10, 0.10, 0.10}

	proposal := f.proposalBetween(f.userTeam, f.aiTeam, 30_000_000)
	starID := *proposal.Assets[0].PlayerID

	session, err := f.app.InitiateNegotiation(context.Background(), proposal)
	require.NoError(t, err)

	require.NotNil(t, session.Leak)
	leak := session.Leak
	assert.Equal(t, f.aiTeam, leak.LeakingTeamID)
	assert.True(t, leak.RevealsAll)
	assert.Equal(t, models.LeakAccurate, leak.Accuracy)
	require.NotNil(t, leak.NamedPlayerID)
	assert.Equal(t, starID, *leak.NamedPlayerID)
	assert.Contains(t, leak.Headline, "Marquee Name")

	assert.Equal(t, 1, f.bus.countOf(events.TypeTradeLeaked))
	leaks := f.app.RecentLeaks(10)
	require.Len(t, leaks, 1)
	assert.Equal(t, session.ID, leaks[0].SessionID)

	// Leaking does not kill the talks; the team still accepted.
	assert.Equal(t, models.NegotiationAccepted, session.Status)
	assert.Equal(t, 1, f.executor.calls)
}

func TestMaybeLeakCautiousBaseRateBlocksModestRoll(t *testing.T) {
	f := newFixture(t)
	f.setLeakBehavior(models.LeakBehaviorCautious)
	f.evaluator.verdicts[f.aiTeam] = &Verdict{Acceptable: true, AdjustedBalance: 1}

	// No star, no deadline: probability is the cautious base 0.05.
	f.rng.floats = []float64{0.10}

	session, err := f.app.InitiateNegotiation(context.Background(), f.proposalBetween(f.userTeam, f.aiTeam, 10_000_000))
	require.NoError(t, err)
	assert.Nil(t, session.Leak)
}

func TestMaybeLeakDeadlineProximityBoostsRisk(t *testing.T) {
	f := newFixture(t)
	f.setLeakBehavior(models.LeakBehaviorCautious)
	f.evaluator.verdicts[f.aiTeam] = &Verdict{Acceptable: true, AdjustedBalance: 1}
	f.app.SetTradeDeadline(f.clock.Now().Add(10 * 24 * time.Hour))

	// 0.10 clears 0.05+0.15 but would have failed the bare base rate.
	// Partially accurate, no reveal-all, no star to name.
	f.rng.floats = []float64{0.10, 0.90, 0.90}

	session, err := f.app.InitiateNegotiation(context.Background(), f.proposalBetween(f.userTeam, f.aiTeam, 10_000_000))
	require.NoError(t, err)

	require.NotNil(t, session.Leak)
	assert.False(t, session.Leak.RevealsAll)
	assert.Equal(t, models.LeakPartiallyAccurate, session.Leak.Accuracy)
	assert.Nil(t, session.Leak.NamedPlayerID)
	assert.Equal(t, "Rumor mill: a front office is shopping for a deal", session.Leak.Headline)
}

func TestMaybeLeakFarFromDeadlineNoBoost(t *testing.T) {
	f := newFixture(t)
	f.setLeakBehavior(models.LeakBehaviorCautious)
	f.evaluator.verdicts[f.aiTeam] = &Verdict{Acceptable: true, AdjustedBalance: 1}
	f.app.SetTradeDeadline(f.clock.Now().Add(60 * 24 * time.Hour))

	f.rng.floats = []float64{0.10}

	session, err := f.app.InitiateNegotiation(context.Background(), f.proposalBetween(f.userTeam, f.aiTeam, 10_000_000))
	require.NoError(t, err)
	assert.Nil(t, session.Leak)
}

func TestMaybeLeakAtMostOncePerSession(t *testing.T) {
	f := newFixture(t)
	first := uuid.New()
	second := f.aiTeam
	f.profiles.profiles[first] = models.FrontOfficeProfile{TeamID: first, LeakBehavior: models.LeakBehaviorLeaky}
	f.setLeakBehavior(models.LeakBehaviorLeaky)

	// The first team leaks and its counter is then dropped by the
	// inactive-session guard; the second would leak on any roll but the
	// session already carries one.
	f.evaluator.verdicts[first] = &Verdict{Acceptable: false, AdjustedBalance: -15}
	f.evaluator.counters[first] = &CounterResponse{
		Kind:     CounterKindCounter,
		Proposal: f.proposalBetween(first, f.userTeam, 8_000_000),
	}
	f.evaluator.verdicts[second] = &Verdict{Acceptable: true, AdjustedBalance: 2}

	playerID := uuid.New()
	f.directory.players[playerID] = models.Player{ID: playerID, FullName: "Role Player", TeamID: first}
	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: f.userTeam,
		Assets: []models.TradeAsset{
			{Kind: models.AssetKindPlayer, FromTeamID: first, ToTeamID: f.userTeam, PlayerID: &playerID, Salary: 10_000_000},
			{Kind: models.AssetKindCash, FromTeamID: f.userTeam, ToTeamID: second, CashAmount: 1_000_000},
		},
		CreatedAt: f.clock.Now(),
	}

	// Leak trigger for the first team (no reveal-all, accurate); the
	// trailing zeros would trigger a second leak if one were rolled.
	f.rng.floats = []float64{0.0, 0.90, 0.10, 0.0, 0.0, 0.0}

	session, err := f.app.InitiateNegotiation(context.Background(), proposal)
	require.NoError(t, err)

	require.NotNil(t, session.Leak)
	assert.Equal(t, first, session.Leak.LeakingTeamID)
	assert.Equal(t, 1, f.bus.countOf(events.TypeTradeLeaked))
	assert.Len(t, f.app.RecentLeaks(10), 1)

	// The second team still evaluated and accepted on the same pass.
	assert.Equal(t, models.NegotiationAccepted, session.Status)
	assert.Equal(t, 1, f.executor.calls)
}

func TestMaybeLeakThenCounterFinalizesAsLeaked(t *testing.T) {
	f := newFixture(t)
	f.setLeakBehavior(models.LeakBehaviorLeaky)
	f.evaluator.verdicts[f.aiTeam] = &Verdict{Acceptable: false, AdjustedBalance: -15}
	f.evaluator.counters[f.aiTeam] = &CounterResponse{
		Kind:     CounterKindCounter,
		Proposal: f.proposalBetween(f.aiTeam, f.userTeam, 8_000_000),
	}

	f.rng.floats = []float64{0.0, 0.90, 0.10}
	session, err := f.app.InitiateNegotiation(context.Background(), f.proposalBetween(f.userTeam, f.aiTeam, 10_000_000))
	require.NoError(t, err)

	// The leaked session is terminal, so the counter was dropped and
	// the session retired with the leak status.
	require.NotNil(t, session.Leak)
	assert.Equal(t, models.NegotiationLeakedToMedia, session.Status)
	assert.Nil(t, session.LastCounter)
	assert.Empty(t, f.app.ActiveNegotiationsForTeam(f.userTeam))

	history := f.app.HistoryForTeam(f.userTeam)
	require.Len(t, history, 1)
	assert.Equal(t, models.NegotiationLeakedToMedia, history[0].Status)
}
