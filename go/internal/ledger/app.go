package ledger

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// horizonYears is how many seasons past the current one the ledger
// tracks pick rights for.
const horizonYears = 7

// App owns the canonical draft-pick ledger: every pick right, every
// ownership transfer, and the league-rule compliance checks built on
// top of them.
type App struct {
	store  *pickStore
	clock  clockwork.Clock
	events events.Publisher

	mu        sync.Mutex
	transfers []models.PickTransferRecord
	standings map[uuid.UUID]int
	teamCount int
	startYear int
}

// NewApp creates a ledger App.
func NewApp(clock clockwork.Clock, bus events.Publisher) *App {
	return &App{
		store:     newPickStore(),
		clock:     clock,
		events:    bus,
		standings: make(map[uuid.UUID]int),
	}
}

// InitializeForSeason creates one round-1 and one round-2 pick per
// team for every year from year through year+horizonYears, then
// applies the optional external ownership dataset. Bad dataset entries
// are logged and skipped; initialization never aborts on them.
func (a *App) InitializeForSeason(year int, teams []uuid.UUID, dataset *PickOwnershipDataset) {
	a.mu.Lock()
	a.startYear = year
	a.teamCount = len(teams)
	a.mu.Unlock()

	for y := year; y <= year+horizonYears; y++ {
		for _, teamID := range teams {
			for round := 1; round <= 2; round++ {
				a.store.put(models.DraftPickRight{
					OriginalTeamID: teamID,
					Year:           y,
					Round:          round,
					CurrentOwnerID: teamID,
				})
			}
		}
	}

	log.Info().
		Int("start_year", year).
		Int("teams", len(teams)).
		Int("pick_records", a.store.len()).
		Msg("pick ledger initialized")

	if dataset == nil {
		return
	}
	a.applyDataset(dataset)
}

// UpdateStandings refreshes the cached standings used for pick
// position projections. Standing 1 is the best record.
func (a *App) UpdateStandings(standings map[uuid.UUID]int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.standings = make(map[uuid.UUID]int, len(standings))
	for id, s := range standings {
		a.standings[id] = s
	}
}

// TransferPick moves ownership of a pick from one team to another. It
// returns false with no state change unless the pick exists and is
// currently owned by from. On success it appends an immutable transfer
// record and emits a PickTransferred event.
func (a *App) TransferPick(originalTeamID uuid.UUID, year, round int, from, to uuid.UUID) bool {
	key := models.PickKey{OriginalTeamID: originalTeamID, Year: year, Round: round}

	if _, ok := a.store.get(key); !ok {
		log.Warn().
			Str("original_team_id", originalTeamID.String()).
			Int("year", year).
			Int("round", round).
			Msg("transfer of unknown pick ignored")
		return false
	}

	if !a.store.compareAndTransfer(key, from, to) {
		log.Warn().
			Str("original_team_id", originalTeamID.String()).
			Int("year", year).
			Int("round", round).
			Str("claimed_from", from.String()).
			Msg("transfer rejected: claimed sender is not the current owner")
		return false
	}

	now := a.clock.Now()
	record := models.PickTransferRecord{
		ID:            uuid.New(),
		Pick:          key,
		FromTeamID:    from,
		ToTeamID:      to,
		TransferredAt: now,
	}

	a.mu.Lock()
	a.transfers = append(a.transfers, record)
	a.mu.Unlock()

	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypePickTransferred,
		TeamIDs:    []uuid.UUID{from, to},
		OccurredAt: now,
		Payload: events.PickTransferredPayload{
			OriginalTeamID: originalTeamID.String(),
			Year:           year,
			Round:          round,
			FromTeamID:     from.String(),
			ToTeamID:       to.String(),
			TransferredAt:  now,
		},
	})

	log.Info().
		Str("original_team_id", originalTeamID.String()).
		Int("year", year).
		Int("round", round).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("pick transferred")

	return true
}

// GetPick returns a copy of one pick record.
func (a *App) GetPick(key models.PickKey) (models.DraftPickRight, bool) {
	return a.store.get(key)
}

// GetPicksOwnedBy returns every pick the team currently owns.
func (a *App) GetPicksOwnedBy(teamID uuid.UUID) []models.DraftPickRight {
	return a.store.ownedBy(teamID)
}

// GetTransferHistory returns a copy of the full transfer audit log.
func (a *App) GetTransferHistory() []models.PickTransferRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	history := make([]models.PickTransferRecord, len(a.transfers))
	copy(history, a.transfers)
	return history
}

// ProcessDraftCompletion removes all pick records for a completed
// draft year. Terminal cleanup, not reversible.
func (a *App) ProcessDraftCompletion(year int) {
	removed := a.store.removeYear(year)
	log.Info().
		Int("year", year).
		Int("removed", removed).
		Msg("draft year completed, pick records removed")
}

// CurrentYear reports the season year the ledger was initialized or
// restored with.
func (a *App) CurrentYear() int {
	return a.currentYear()
}

func (a *App) currentYear() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startYear
}
