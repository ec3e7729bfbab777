package ledger

import (
	"math"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// leagueAverageLotteryPosition is what future draft positions
	// regress toward.
	leagueAverageLotteryPosition = 15.0
	// projectionDecay is how much of the distance from average
	// survives each year further out.
	projectionDecay = 0.8
)

// GetProjectedPosition projects where a team's pick would land in the
// given draft year, from cached standings. The current year maps the
// standing directly; future years regress toward the league-average
// lottery position, clamped to the valid range.
func (a *App) GetProjectedPosition(teamID uuid.UUID, year int) int {
	a.mu.Lock()
	standing, ok := a.standings[teamID]
	teamCount := a.teamCount
	startYear := a.startYear
	a.mu.Unlock()

	if teamCount == 0 {
		return 0
	}
	if !ok {
		log.Debug().
			Str("team_id", teamID.String()).
			Msg("no cached standing for team, assuming mid-pack")
		standing = (teamCount + 1) / 2
	}

	position := float64(teamCount + 1 - standing)
	if year > startYear {
		yearsOut := float64(year - startYear)
		position = leagueAverageLotteryPosition +
			(position-leagueAverageLotteryPosition)*math.Pow(projectionDecay, yearsOut)
	}

	projected := int(math.Round(position))
	if projected < 1 {
		projected = 1
	}
	if projected > teamCount {
		projected = teamCount
	}
	return projected
}

// GetPickValueTier buckets a pick by projected position. A pick whose
// protection would apply at its projected position is flagged likely
// protected instead of getting a positional tier.
func (a *App) GetPickValueTier(key models.PickKey) models.PickValueTier {
	pick, ok := a.store.get(key)
	if !ok {
		return models.PickTierLate
	}
	if pick.Round == 2 {
		return models.PickTierSecondRound
	}

	position := a.GetProjectedPosition(pick.OriginalTeamID, pick.Year)
	if position < 1 {
		// No standings cached to project from.
		return models.PickTierLate
	}
	for _, rule := range pick.Protections {
		if rule.Applies(position) {
			return models.PickTierLikelyProtected
		}
	}

	switch {
	case position <= 5:
		return models.PickTierElite
	case position <= 14:
		return models.PickTierLottery
	case position <= 22:
		return models.PickTierMid
	default:
		return models.PickTierLate
	}
}
