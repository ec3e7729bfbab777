package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Leak trigger probabilities by front-office behavior, before risk
// signal boosts. Tight-lipped offices never leak.
const (
	leakBaseCautious = 0.05
	leakBaseLeaky    = 0.20
	leakSignalBoost  = 0.15

	leakRevealAllChance = 0.70
	leakNameStarChance  = 0.80
	leakAccurateChance  = 0.70
)

// maybeLeak rolls the leak check for one counterparty. It runs before
// the evaluation verdict on every pass: a team can leak talks it then
// goes on to accept or reject. At most one leak per session.
func (a *App) maybeLeak(ctx context.Context, session *models.NegotiationSession, teamID uuid.UUID) {
	if session.Leak != nil {
		return
	}
	profile, ok := a.profiles.Profile(teamID)
	if !ok {
		log.Warn().Str("team_id", teamID.String()).Msg("no front office profile, skipping leak check")
		return
	}

	var probability float64
	switch profile.LeakBehavior {
	case models.LeakBehaviorLeaky:
		probability = leakBaseLeaky
	case models.LeakBehaviorCautious:
		probability = leakBaseCautious
	default:
		return
	}

	starID := a.starPlayer(session)
	if starID != nil {
		probability += leakSignalBoost
	}
	if a.nearDeadline() {
		probability += leakSignalBoost
	}

	if a.rng.Float64() >= probability {
		return
	}

	now := a.clock.Now()
	leak := models.MediaLeak{
		SessionID:     session.ID,
		LeakingTeamID: teamID,
		RevealsAll:    a.rng.Float64() < leakRevealAllChance,
		Accuracy:      models.LeakAccurate,
		LeakedAt:      now,
	}
	if a.rng.Float64() >= leakAccurateChance {
		leak.Accuracy = models.LeakPartiallyAccurate
	}
	if starID != nil && a.rng.Float64() < leakNameStarChance {
		leak.NamedPlayerID = starID
	}
	leak.Headline = a.headline(ctx, session, leak)

	session.Leak = &leak
	session.Status = models.NegotiationLeakedToMedia
	a.store.addLeak(leak)

	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeTradeLeaked,
		TeamIDs:    session.TeamIDs,
		OccurredAt: now,
		Payload: events.TradeLeakedPayload{
			SessionID:     session.ID.String(),
			LeakingTeamID: teamID.String(),
			Headline:      leak.Headline,
			Accuracy:      string(leak.Accuracy),
			LeakedAt:      now,
		},
	})

	log.Info().
		Str("session_id", session.ID.String()).
		Str("leaking_team", teamID.String()).
		Str("headline", leak.Headline).
		Msg("negotiation leaked to media")
}

// starPlayer returns the highest-salary player in the current proposal
// at or above the leak star threshold, or nil.
func (a *App) starPlayer(session *models.NegotiationSession) *uuid.UUID {
	var starID *uuid.UUID
	var best int64
	for _, asset := range session.CurrentProposal.Assets {
		if asset.Kind != models.AssetKindPlayer || asset.PlayerID == nil {
			continue
		}
		if asset.Salary >= a.cfg.LeakStarSalary && asset.Salary > best {
			id := *asset.PlayerID
			starID = &id
			best = asset.Salary
		}
	}
	return starID
}

func (a *App) nearDeadline() bool {
	if a.deadline.IsZero() {
		return false
	}
	now := a.clock.Now()
	window := time.Duration(a.cfg.DeadlineWindowDays) * 24 * time.Hour
	return !now.After(a.deadline) && a.deadline.Sub(now) <= window
}

func (a *App) headline(ctx context.Context, session *models.NegotiationSession, leak models.MediaLeak) string {
	if leak.NamedPlayerID != nil {
		player, err := a.directory.GetPlayer(ctx, *leak.NamedPlayerID)
		if err == nil {
			return fmt.Sprintf("League sources: %s at the center of trade talks", player.FullName)
		}
		log.Warn().Err(err).Str("player_id", leak.NamedPlayerID.String()).Msg("failed to resolve leaked player name")
	}
	if leak.RevealsAll {
		return fmt.Sprintf("Report: %d teams engaged in trade discussions", len(session.TeamIDs))
	}
	return "Rumor mill: a front office is shopping for a deal"
}
