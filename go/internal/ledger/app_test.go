package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingBus struct {
	published []events.Event
}

func (b *capturingBus) Publish(event events.Event) {
	b.published = append(b.published, event)
}

func newTestApp(t *testing.T, teams int) (*App, []uuid.UUID, *capturingBus) {
	t.Helper()

	ids := make([]uuid.UUID, teams)
	for i := range ids {
		ids[i] = uuid.New()
	}
	bus := &capturingBus{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	app := NewApp(clock, bus)
	app.InitializeForSeason(2025, ids, nil)
	return app, ids, bus
}

func TestInitializeForSeasonCreatesFullHorizon(t *testing.T) {
	app, teams, _ := newTestApp(t, 2)

	for _, teamID := range teams {
		for year := 2025; year <= 2025+horizonYears; year++ {
			for round := 1; round <= 2; round++ {
				key := models.PickKey{OriginalTeamID: teamID, Year: year, Round: round}
				pick, ok := app.GetPick(key)
				require.True(t, ok, "missing pick for year %d round %d", year, round)
				assert.Equal(t, teamID, pick.CurrentOwnerID)
			}
		}
	}
	// 2 teams x 8 years x 2 rounds
	assert.Len(t, app.GetPicksOwnedBy(teams[0]), 16)
}

func TestTransferPickMovesOwnership(t *testing.T) {
	app, teams, bus := newTestApp(t, 2)
	teamA, teamB := teams[0], teams[1]

	ok := app.TransferPick(teamA, 2026, 1, teamA, teamB)
	require.True(t, ok)

	var found bool
	for _, pick := range app.GetPicksOwnedBy(teamB) {
		if pick.OriginalTeamID == teamA && pick.Year == 2026 && pick.Round == 1 {
			found = true
		}
	}
	assert.True(t, found, "team B should own team A's 2026 first")

	history := app.GetTransferHistory()
	require.Len(t, history, 1)
	assert.Equal(t, teamA, history[0].FromTeamID)
	assert.Equal(t, teamB, history[0].ToTeamID)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.TypePickTransferred, bus.published[0].Type)
}

func TestTransferPickRejectsNonOwner(t *testing.T) {
	app, teams, bus := newTestApp(t, 3)
	teamA, teamB, teamC := teams[0], teams[1], teams[2]

	// Team B does not own team A's pick.
	ok := app.TransferPick(teamA, 2026, 1, teamB, teamC)
	assert.False(t, ok)

	pick, found := app.GetPick(models.PickKey{OriginalTeamID: teamA, Year: 2026, Round: 1})
	require.True(t, found)
	assert.Equal(t, teamA, pick.CurrentOwnerID, "ownership must be unchanged")
	assert.Empty(t, app.GetTransferHistory())
	assert.Empty(t, bus.published)
}

func TestTransferPickRejectsUnknownPick(t *testing.T) {
	app, teams, _ := newTestApp(t, 2)

	ok := app.TransferPick(teams[0], 2050, 1, teams[0], teams[1])
	assert.False(t, ok)
	assert.Empty(t, app.GetTransferHistory())
}

func TestProcessDraftCompletionRemovesYear(t *testing.T) {
	app, teams, _ := newTestApp(t, 2)

	app.ProcessDraftCompletion(2025)

	_, ok := app.GetPick(models.PickKey{OriginalTeamID: teams[0], Year: 2025, Round: 1})
	assert.False(t, ok)
	_, ok = app.GetPick(models.PickKey{OriginalTeamID: teams[0], Year: 2026, Round: 1})
	assert.True(t, ok, "other years must survive")
}

func TestSnapshotRoundTrip(t *testing.T) {
	app, teams, _ := newTestApp(t, 2)
	teamA, teamB := teams[0], teams[1]
	require.True(t, app.TransferPick(teamA, 2027, 2, teamA, teamB))

	snap := app.Save()
	assert.Equal(t, 2025, snap.StartYear)
	assert.Equal(t, 2, snap.TeamCount)
	assert.Len(t, snap.Transfers, 1)

	restored := NewApp(clockwork.NewFakeClock(), &capturingBus{})
	restored.Restore(snap)

	pick, ok := restored.GetPick(models.PickKey{OriginalTeamID: teamA, Year: 2027, Round: 2})
	require.True(t, ok)
	assert.Equal(t, teamB, pick.CurrentOwnerID)
	assert.Len(t, restored.GetTransferHistory(), 1)
}

func TestDatasetEntriesAppliedAndBadOnesSkipped(t *testing.T) {
	teamA, teamB := uuid.New(), uuid.New()
	dataset := &PickOwnershipDataset{
		Entries: []PickOwnershipEntry{
			{
				OriginalTeamID: teamA.String(),
				Year:           2026,
				Round:          1,
				OwnerID:        teamB.String(),
				Protections:    []models.ProtectionRule{{TopProtected: 10}},
			},
			{OriginalTeamID: "not-a-uuid", Year: 2026, Round: 1, OwnerID: teamB.String()},
			{OriginalTeamID: teamA.String(), Year: 2099, Round: 1, OwnerID: teamB.String()},
		},
	}

	app := NewApp(clockwork.NewFakeClock(), &capturingBus{})
	app.InitializeForSeason(2025, []uuid.UUID{teamA, teamB}, dataset)

	pick, ok := app.GetPick(models.PickKey{OriginalTeamID: teamA, Year: 2026, Round: 1})
	require.True(t, ok)
	assert.Equal(t, teamB, pick.CurrentOwnerID)
	require.Len(t, pick.Protections, 1)
	assert.Equal(t, 10, pick.Protections[0].TopProtected)
}
