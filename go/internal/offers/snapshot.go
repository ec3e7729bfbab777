package offers

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// Snapshot is a point-in-time copy of every offer the App tracks,
// ordered by receipt time.
type Snapshot struct {
	Offers []models.IncomingTradeOffer `json:"offers"`
}

// Save captures the App's offers for persistence.
func (a *App) Save() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{Offers: make([]models.IncomingTradeOffer, 0, len(a.offers))}
	for _, offer := range a.offers {
		snap.Offers = append(snap.Offers, *offer)
	}
	sort.Slice(snap.Offers, func(i, j int) bool {
		return snap.Offers[i].ReceivedAt.Before(snap.Offers[j].ReceivedAt)
	})
	return snap
}

// Restore replaces the App's offers with the snapshot's.
func (a *App) Restore(snap Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.offers = make(map[uuid.UUID]*models.IncomingTradeOffer, len(snap.Offers))
	for i := range snap.Offers {
		offer := snap.Offers[i]
		a.offers[offer.ID] = &offer
	}
}
