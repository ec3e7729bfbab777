package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// ValidateStepienRule checks whether the team would remain compliant
// with the league's future-first-round-pick rule after sending out the
// proposed picks. The check is pure: it simulates the removal against
// a copy of the team's holdings and never mutates ledger state, so it
// can back speculative what-if checks before a trade commits.
func (a *App) ValidateStepienRule(teamID uuid.UUID, proposedOutgoing []models.PickKey) bool {
	counts := a.store.firstRoundYearCounts(teamID)

	for _, key := range proposedOutgoing {
		if key.Round != 1 {
			continue
		}
		pick, ok := a.store.get(key)
		if !ok || pick.CurrentOwnerID != teamID {
			continue
		}
		counts[key.Year]--
		if counts[key.Year] <= 0 {
			delete(counts, key.Year)
		}
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	// Two fully missing drafts between owned firsts breaks the rule.
	for i := 1; i < len(years); i++ {
		if years[i]-years[i-1] > 2 {
			return false
		}
	}

	// Every 2-year window across the near horizon must hold a first.
	owned := make(map[int]bool, len(years))
	for _, y := range years {
		owned[y] = true
	}
	current := a.currentYear()
	for w := current; w < current+4; w += 2 {
		if !owned[w] && !owned[w+1] {
			return false
		}
	}

	return true
}

// GetStepienStatus builds an advisory view of the team's first-round
// holdings: who owns each of its original firsts, which years it owns
// a first in, and which of those years look safe to trade away.
func (a *App) GetStepienStatus(teamID uuid.UUID) models.StepienStatus {
	status := models.StepienStatus{
		TeamID:     teamID,
		YearOwners: a.store.originalFirstOwners(teamID),
	}

	counts := a.store.firstRoundYearCounts(teamID)
	for y := range counts {
		status.OwnedYears = append(status.OwnedYears, y)
	}
	sort.Ints(status.OwnedYears)

	owned := make(map[int]bool, len(status.OwnedYears))
	for _, y := range status.OwnedYears {
		owned[y] = true
	}

	// A year is tradeable when an adjacent draft still carries a first,
	// or when the team holds firsts in more than half the horizon.
	deepStock := len(status.OwnedYears) > (horizonYears+1)/2
	for _, y := range status.OwnedYears {
		if deepStock || owned[y-1] || owned[y+1] {
			status.TradeableYears = append(status.TradeableYears, y)
		}
	}

	return status
}
