package negotiation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/random"
	"github.com/rs/zerolog/log"
)

// App orchestrates multi-round trade negotiation sessions.
type App struct {
	store     *sessionStore
	evaluator TradeEvaluator
	executor  TradeExecutor
	profiles  ProfileProvider
	directory PlayerDirectory
	clock     clockwork.Clock
	rng       random.Source
	events    events.Publisher
	cfg       Config

	deadline time.Time
}

// NewApp creates a negotiation App.
func NewApp(
	evaluator TradeEvaluator,
	executor TradeExecutor,
	profiles ProfileProvider,
	directory PlayerDirectory,
	clock clockwork.Clock,
	rng random.Source,
	bus events.Publisher,
	cfg Config,
) *App {
	return &App{
		store:     newSessionStore(),
		evaluator: evaluator,
		executor:  executor,
		profiles:  profiles,
		directory: directory,
		clock:     clock,
		rng:       rng,
		events:    bus,
		cfg:       cfg,
	}
}

// SetTradeDeadline installs the season's trade deadline, which feeds
// the leak proximity signal. A zero deadline disables the signal.
func (a *App) SetTradeDeadline(deadline time.Time) {
	a.deadline = deadline
}

// InitiateNegotiation opens a session for the proposal, records the
// initial offer as round 1, then synchronously runs every
// non-initiating team's AI evaluation.
func (a *App) InitiateNegotiation(ctx context.Context, proposal *models.TradeProposal) (*models.NegotiationSession, error) {
	now := a.clock.Now()
	session := &models.NegotiationSession{
		ID:              uuid.New(),
		InitiatorID:     proposal.InitiatorID,
		TeamIDs:         proposal.InvolvedTeams(),
		CurrentProposal: *proposal,
		Status:          models.NegotiationInitiated,
		StartedAt:       now,
		LastActivityAt:  now,
		ExpiresAt:       now.Add(time.Duration(a.cfg.SessionTTLHours) * time.Hour),
	}
	a.appendRound(session, models.RoundInitialOffer, proposal.InitiatorID, proposal, "")
	a.store.put(session)

	teamIDs := make([]string, len(session.TeamIDs))
	for i, id := range session.TeamIDs {
		teamIDs[i] = id.String()
	}
	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeNegotiationStarted,
		TeamIDs:    session.TeamIDs,
		OccurredAt: now,
		Payload: events.NegotiationStartedPayload{
			SessionID:   session.ID.String(),
			InitiatorID: session.InitiatorID.String(),
			TeamIDs:     teamIDs,
			StartedAt:   now,
		},
	})

	log.Info().
		Str("session_id", session.ID.String()).
		Str("initiator_id", session.InitiatorID.String()).
		Int("team_count", len(session.TeamIDs)).
		Msg("negotiation initiated")

	if err := a.evaluateCounterparties(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// evaluateCounterparties runs the per-team AI evaluation for every
// non-initiating team. The leak check runs unconditionally before the
// verdict branch. Evaluation stops once any team has moved the session
// off its starting status.
func (a *App) evaluateCounterparties(ctx context.Context, session *models.NegotiationSession) error {
	entry := session.Status
	for _, teamID := range session.TeamIDs {
		if teamID == session.InitiatorID {
			continue
		}
		if session.Status != entry && session.Status != models.NegotiationLeakedToMedia {
			break
		}
		if err := a.evaluateTeam(ctx, session, teamID); err != nil {
			return err
		}
	}
	if !session.Status.Active() {
		a.finalize(session)
	}
	return nil
}

func (a *App) evaluateTeam(ctx context.Context, session *models.NegotiationSession, teamID uuid.UUID) error {
	a.maybeLeak(ctx, session, teamID)

	verdict, err := a.evaluator.Evaluate(ctx, &session.CurrentProposal, teamID)
	if err != nil {
		return fmt.Errorf("failed to evaluate proposal for team %s: %w", teamID, err)
	}

	switch {
	case verdict.Acceptable:
		return a.accept(ctx, session, teamID)
	case verdict.AdjustedBalance >= a.cfg.SoftTolerance:
		counter, err := a.evaluator.RequestCounter(ctx, &session.CurrentProposal, teamID)
		if err != nil {
			return fmt.Errorf("failed to request counter from team %s: %w", teamID, err)
		}
		if counter.Kind == CounterKindCounter && counter.Proposal != nil {
			a.SubmitCounterOffer(session.ID, teamID, counter.Proposal)
			return nil
		}
		a.reject(session, teamID, counter.Reasoning)
	default:
		a.reject(session, teamID, verdict.Reasoning)
	}
	return nil
}

// accept closes the session as Accepted and sends the current proposal
// through the execution engine exactly once.
func (a *App) accept(ctx context.Context, session *models.NegotiationSession, teamID uuid.UUID) error {
	a.appendRound(session, models.RoundAcceptance, teamID, nil, "")
	session.Status = models.NegotiationAccepted

	result, err := a.executor.ProposeTrade(ctx, &session.CurrentProposal, true)
	if err != nil {
		// The deal fell through at execution; retire the session so it
		// does not linger in the active set.
		a.finalize(session)
		return fmt.Errorf("failed to execute accepted trade: %w", err)
	}
	log.Info().
		Str("session_id", session.ID.String()).
		Str("accepting_team", teamID.String()).
		Str("trade_status", string(result.Status)).
		Msg("negotiation accepted")
	return nil
}

func (a *App) reject(session *models.NegotiationSession, teamID uuid.UUID, reasoning string) {
	a.appendRound(session, models.RoundRejection, teamID, nil, reasoning)
	session.Status = models.NegotiationRejected

	log.Info().
		Str("session_id", session.ID.String()).
		Str("rejecting_team", teamID.String()).
		Str("reason", reasoning).
		Msg("negotiation rejected")
}

// SubmitCounterOffer installs a counter-proposal from the given team:
// the current proposal becomes the last counter, a round is appended,
// and the session moves to CounterReceived. No-op on inactive sessions.
func (a *App) SubmitCounterOffer(sessionID uuid.UUID, teamID uuid.UUID, counter *models.TradeProposal) bool {
	session := a.store.get(sessionID)
	if session == nil || !session.Status.Active() {
		log.Debug().Str("session_id", sessionID.String()).Msg("ignoring counter for inactive session")
		return false
	}

	previous := session.CurrentProposal
	session.LastCounter = &previous
	session.CurrentProposal = *counter
	a.appendRound(session, models.RoundCounterOffer, teamID, counter, "")
	session.Status = models.NegotiationCounterReceived

	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeCounterReceived,
		TeamIDs:    session.TeamIDs,
		OccurredAt: a.clock.Now(),
		Payload: events.CounterReceivedPayload{
			SessionID:      session.ID.String(),
			CounteringTeam: teamID.String(),
			Round:          len(session.Rounds),
			ReceivedAt:     a.clock.Now(),
		},
	})
	return true
}

// RespondToCounter dispatches the user's response to a pending counter.
// Inactive or unknown sessions are a logged no-op.
func (a *App) RespondToCounter(ctx context.Context, sessionID uuid.UUID, response Response) (*models.NegotiationSession, error) {
	session := a.store.get(sessionID)
	if session == nil || !session.Status.Active() {
		log.Debug().Str("session_id", sessionID.String()).Msg("ignoring response for inactive session")
		return nil, nil
	}

	switch response.Action {
	case ActionAccept:
		if err := a.accept(ctx, session, session.InitiatorID); err != nil {
			return nil, err
		}
		a.finalize(session)
	case ActionCounter:
		if response.Counter == nil {
			return nil, fmt.Errorf("counter action requires a proposal")
		}
		previous := session.CurrentProposal
		session.LastCounter = &previous
		session.CurrentProposal = *response.Counter
		a.appendRound(session, models.RoundCounterOffer, session.InitiatorID, response.Counter, "")
		session.Status = models.NegotiationInDiscussion
		if err := a.evaluateCounterparties(ctx, session); err != nil {
			return nil, err
		}
	case ActionReject:
		a.reject(session, session.InitiatorID, "declined the counter-offer")
		a.finalize(session)
	case ActionWithdraw:
		a.appendRound(session, models.RoundWithdrawal, session.InitiatorID, nil, "")
		session.Status = models.NegotiationWithdrawn
		a.finalize(session)
	case ActionAddTeam:
		if response.AddedTeamID == nil {
			return nil, fmt.Errorf("add_team action requires a team id")
		}
		if _, err := a.SuggestThirdTeam(ctx, sessionID, *response.AddedTeamID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown negotiation action %q", response.Action)
	}
	return session, nil
}

// SuggestThirdTeam pitches the session's current asset list, unchanged,
// to a new team under a looser acceptance bound. On interest the team
// joins the session; asset flows are not restructured here.
func (a *App) SuggestThirdTeam(ctx context.Context, sessionID uuid.UUID, teamID uuid.UUID) (bool, error) {
	session := a.store.get(sessionID)
	if session == nil || !session.Status.Active() {
		return false, nil
	}
	if session.Involves(teamID) {
		return false, nil
	}

	verdict, err := a.evaluator.Evaluate(ctx, &session.CurrentProposal, teamID)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate proposal for third team %s: %w", teamID, err)
	}
	if !verdict.Acceptable && verdict.AdjustedBalance < a.cfg.ThirdTeamTolerance {
		log.Info().
			Str("session_id", session.ID.String()).
			Str("team_id", teamID.String()).
			Float64("adjusted_balance", verdict.AdjustedBalance).
			Msg("third team declined to join negotiation")
		return false, nil
	}

	session.TeamIDs = append(session.TeamIDs, teamID)
	a.appendRound(session, models.RoundTeamAdded, teamID, nil, verdict.Reasoning)
	session.Status = models.NegotiationInDiscussion

	a.publishUpdated(session)
	log.Info().
		Str("session_id", session.ID.String()).
		Str("team_id", teamID.String()).
		Msg("third team joined negotiation")
	return true, nil
}

// ProcessExpirations forces every active session past its expiry to
// Expired and finalizes it.
func (a *App) ProcessExpirations() {
	now := a.clock.Now()
	for _, id := range a.store.activeIDs() {
		session := a.store.get(id)
		if session == nil || !now.After(session.ExpiresAt) {
			continue
		}
		session.Status = models.NegotiationExpired
		a.finalize(session)
		log.Info().Str("session_id", session.ID.String()).Msg("negotiation expired")
	}
}

// ActiveNegotiationsForTeam lists the team's open sessions, oldest
// first.
func (a *App) ActiveNegotiationsForTeam(teamID uuid.UUID) []models.NegotiationSession {
	return a.store.activeForTeam(teamID)
}

// HistoryForTeam lists the team's finalized sessions.
func (a *App) HistoryForTeam(teamID uuid.UUID) []models.NegotiationSession {
	return a.store.historyFor(teamID)
}

// RecentLeaks lists the newest media leaks, at most limit of them.
func (a *App) RecentLeaks(limit int) []models.MediaLeak {
	return a.store.recentLeaks(limit)
}

// finalize retires the session: it leaves the active set exactly once
// and fans out to every involved team's history.
func (a *App) finalize(session *models.NegotiationSession) {
	if !a.store.finalize(session.ID) {
		return
	}
	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeNegotiationCompleted,
		TeamIDs:    session.TeamIDs,
		OccurredAt: a.clock.Now(),
		Payload: events.NegotiationCompletedPayload{
			SessionID:   session.ID.String(),
			Status:      string(session.Status),
			Rounds:      len(session.Rounds),
			CompletedAt: a.clock.Now(),
		},
	})
}

func (a *App) appendRound(session *models.NegotiationSession, roundType models.RoundType, teamID uuid.UUID, proposal *models.TradeProposal, note string) {
	round := models.NegotiationRound{
		Number: len(session.Rounds) + 1,
		Type:   roundType,
		TeamID: teamID,
		Note:   note,
		At:     a.clock.Now(),
	}
	if proposal != nil {
		copied := *proposal
		round.Proposal = &copied
	}
	session.Rounds = append(session.Rounds, round)
	session.LastActivityAt = round.At
}

func (a *App) publishUpdated(session *models.NegotiationSession) {
	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeNegotiationUpdated,
		TeamIDs:    session.TeamIDs,
		OccurredAt: a.clock.Now(),
		Payload: events.NegotiationUpdatedPayload{
			SessionID: session.ID.String(),
			Round:     len(session.Rounds),
			Status:    string(session.Status),
			UpdatedAt: a.clock.Now(),
		},
	})
}
