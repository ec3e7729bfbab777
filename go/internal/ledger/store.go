package ledger

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// pickStore is the indexed container holding every DraftPickRight,
// keyed by the pick's composite identity. All access goes through
// query/command methods; callers never iterate live map state, so a
// remove can never race an iteration.
type pickStore struct {
	mu    sync.Mutex
	picks map[models.PickKey]*models.DraftPickRight
}

func newPickStore() *pickStore {
	return &pickStore{
		picks: make(map[models.PickKey]*models.DraftPickRight),
	}
}

// put inserts or replaces a pick record.
func (s *pickStore) put(pick models.DraftPickRight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pick
	s.picks[pick.Key()] = &p
}

// get returns a copy of the pick record, if present.
func (s *pickStore) get(key models.PickKey) (models.DraftPickRight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.picks[key]
	if !ok {
		return models.DraftPickRight{}, false
	}
	return *p, true
}

// compareAndTransfer commits an ownership change only if the current
// owner still equals from. The check and the write happen under one
// lock so concurrent transfers cannot both win.
func (s *pickStore) compareAndTransfer(key models.PickKey, from, to uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.picks[key]
	if !ok || p.CurrentOwnerID != from {
		return false
	}
	p.CurrentOwnerID = to
	return true
}

// ownedBy returns copies of every pick currently owned by the team,
// ordered by year then round then original team.
func (s *pickStore) ownedBy(teamID uuid.UUID) []models.DraftPickRight {
	s.mu.Lock()
	defer s.mu.Unlock()
	var owned []models.DraftPickRight
	for _, p := range s.picks {
		if p.CurrentOwnerID == teamID {
			owned = append(owned, *p)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].Year != owned[j].Year {
			return owned[i].Year < owned[j].Year
		}
		if owned[i].Round != owned[j].Round {
			return owned[i].Round < owned[j].Round
		}
		return owned[i].OriginalTeamID.String() < owned[j].OriginalTeamID.String()
	})
	return owned
}

// firstRoundYearCounts returns, per year, how many first-round picks
// the team currently owns.
func (s *pickStore) firstRoundYearCounts(teamID uuid.UUID) map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int]int)
	for _, p := range s.picks {
		if p.Round == 1 && p.CurrentOwnerID == teamID {
			counts[p.Year]++
		}
	}
	return counts
}

// originalFirstOwners maps, for the team's own first-round slots,
// draft year to whichever team owns that slot now.
func (s *pickStore) originalFirstOwners(teamID uuid.UUID) map[int]uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	owners := make(map[int]uuid.UUID)
	for _, p := range s.picks {
		if p.Round == 1 && p.OriginalTeamID == teamID {
			owners[p.Year] = p.CurrentOwnerID
		}
	}
	return owners
}

// removeYear deletes every pick record for the given draft year and
// returns how many were removed. Keys are collected before any delete.
func (s *pickStore) removeYear(year int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []models.PickKey
	for k := range s.picks {
		if k.Year == year {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		delete(s.picks, k)
	}
	return len(keys)
}

// all returns copies of every pick record.
func (s *pickStore) all() []models.DraftPickRight {
	s.mu.Lock()
	defer s.mu.Unlock()
	picks := make([]models.DraftPickRight, 0, len(s.picks))
	for _, p := range s.picks {
		picks = append(picks, *p)
	}
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Year != picks[j].Year {
			return picks[i].Year < picks[j].Year
		}
		if picks[i].Round != picks[j].Round {
			return picks[i].Round < picks[j].Round
		}
		return picks[i].OriginalTeamID.String() < picks[j].OriginalTeamID.String()
	})
	return picks
}

func (s *pickStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.picks)
}

// reset replaces the entire store contents.
func (s *pickStore) reset(picks []models.DraftPickRight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picks = make(map[models.PickKey]*models.DraftPickRight, len(picks))
	for _, pick := range picks {
		p := pick
		s.picks[p.Key()] = &p
	}
}
