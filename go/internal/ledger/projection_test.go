package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standingsFixture(t *testing.T, teams int) (*App, []uuid.UUID) {
	t.Helper()
	app, ids, _ := newTestApp(t, teams)

	standings := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		standings[id] = i + 1
	}
	app.UpdateStandings(standings)
	return app, ids
}

func TestGetProjectedPositionCurrentYearInvertsStanding(t *testing.T) {
	app, ids := standingsFixture(t, 30)

	// Best record picks last, worst record picks first.
	assert.Equal(t, 30, app.GetProjectedPosition(ids[0], 2025))
	assert.Equal(t, 1, app.GetProjectedPosition(ids[29], 2025))
	assert.Equal(t, 16, app.GetProjectedPosition(ids[14], 2025))
}

func TestGetProjectedPositionRegressesTowardAverage(t *testing.T) {
	app, ids := standingsFixture(t, 30)
	worst := ids[29] // position 1 this year

	// 15 + (1-15)*0.8 = 3.8 -> 4
	assert.Equal(t, 4, app.GetProjectedPosition(worst, 2026))
	// 15 + (1-15)*0.64 = 6.04 -> 6
	assert.Equal(t, 6, app.GetProjectedPosition(worst, 2027))
	// Far enough out everything sits near league average.
	assert.Equal(t, 12, app.GetProjectedPosition(worst, 2032))

	best := ids[0] // position 30 this year
	// 15 + (30-15)*0.8 = 27
	assert.Equal(t, 27, app.GetProjectedPosition(best, 2026))
}

func TestGetProjectedPositionUnknownTeamAssumesMidPack(t *testing.T) {
	app, _ := standingsFixture(t, 30)

	stranger := uuid.New()
	// (30+1)/2 = 15 -> position 30+1-15 = 16
	assert.Equal(t, 16, app.GetProjectedPosition(stranger, 2025))
}

func TestGetProjectedPositionClampsToTeamCount(t *testing.T) {
	app, ids := standingsFixture(t, 4)

	pos := app.GetProjectedPosition(ids[3], 2025)
	assert.GreaterOrEqual(t, pos, 1)
	assert.LessOrEqual(t, pos, 4)

	// Future projections regress toward 15, well past a 4-team league.
	assert.Equal(t, 4, app.GetProjectedPosition(ids[0], 2030))
}

func TestGetPickValueTierBands(t *testing.T) {
	app, ids := standingsFixture(t, 30)

	cases := []struct {
		name string
		team uuid.UUID
		want models.PickValueTier
	}{
		{"worst record is elite", ids[29], models.PickTierElite},
		{"lottery team", ids[20], models.PickTierLottery},
		{"mid pack", ids[10], models.PickTierMid},
		{"contender is late", ids[0], models.PickTierLate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key := models.PickKey{OriginalTeamID: tc.team, Year: 2025, Round: 1}
			assert.Equal(t, tc.want, app.GetPickValueTier(key))
		})
	}
}

func TestGetPickValueTierWithoutStandingsIsLate(t *testing.T) {
	team := uuid.New()
	app := NewApp(clockwork.NewFakeClock(), &capturingBus{})

	// A snapshot can carry picks without a team count; the projection
	// yields no position and the pick must not read as elite.
	key := models.PickKey{OriginalTeamID: team, Year: 2025, Round: 1}
	app.Restore(Snapshot{
		StartYear: 2025,
		Picks: []models.DraftPickRight{{
			OriginalTeamID: team, Year: 2025, Round: 1, CurrentOwnerID: team,
		}},
	})

	assert.Equal(t, 0, app.GetProjectedPosition(team, 2025))
	assert.Equal(t, models.PickTierLate, app.GetPickValueTier(key))
}

func TestGetPickValueTierSecondRound(t *testing.T) {
	app, ids := standingsFixture(t, 30)
	key := models.PickKey{OriginalTeamID: ids[29], Year: 2025, Round: 2}
	assert.Equal(t, models.PickTierSecondRound, app.GetPickValueTier(key))
}

func TestGetPickValueTierLikelyProtected(t *testing.T) {
	teamA, teamB := uuid.New(), uuid.New()
	dataset := &PickOwnershipDataset{Entries: []PickOwnershipEntry{{
		OriginalTeamID: teamA.String(),
		Year:           2025,
		Round:          1,
		OwnerID:        teamB.String(),
		Protections:    []models.ProtectionRule{{TopProtected: 14}},
	}}}

	app := NewApp(clockwork.NewFakeClock(), &capturingBus{})
	app.InitializeForSeason(2025, []uuid.UUID{teamA, teamB}, dataset)
	app.UpdateStandings(map[uuid.UUID]int{teamA: 2, teamB: 1})

	// Team A projects to pick 1 of 2: inside top-14 protection.
	key := models.PickKey{OriginalTeamID: teamA, Year: 2025, Round: 1}
	assert.Equal(t, models.PickTierLikelyProtected, app.GetPickValueTier(key))

	pick, ok := app.GetPick(key)
	require.True(t, ok)
	assert.Equal(t, teamB, pick.CurrentOwnerID)
}
