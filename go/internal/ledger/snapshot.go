package ledger

import (
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// Snapshot is the flat save/restore form of the ledger: every pick
// record plus the full transfer history.
type Snapshot struct {
	StartYear int                         `json:"start_year"`
	TeamCount int                         `json:"team_count"`
	Picks     []models.DraftPickRight     `json:"picks"`
	Transfers []models.PickTransferRecord `json:"transfers"`
}

// Save captures the current ledger state.
func (a *App) Save() Snapshot {
	a.mu.Lock()
	transfers := make([]models.PickTransferRecord, len(a.transfers))
	copy(transfers, a.transfers)
	startYear := a.startYear
	teamCount := a.teamCount
	a.mu.Unlock()

	return Snapshot{
		StartYear: startYear,
		TeamCount: teamCount,
		Picks:     a.store.all(),
		Transfers: transfers,
	}
}

// Restore replaces the ledger state with the snapshot's contents.
func (a *App) Restore(snap Snapshot) {
	a.store.reset(snap.Picks)

	a.mu.Lock()
	a.startYear = snap.StartYear
	a.teamCount = snap.TeamCount
	a.transfers = make([]models.PickTransferRecord, len(snap.Transfers))
	copy(a.transfers, snap.Transfers)
	a.mu.Unlock()
}
