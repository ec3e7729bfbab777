package negotiation

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// sessionStore holds active sessions keyed by id, plus per-team history
// and the league-wide leak log. Queries return copies; callers never see
// store-owned pointers.
type sessionStore struct {
	mu      sync.Mutex
	active  map[uuid.UUID]*models.NegotiationSession
	history map[uuid.UUID][]models.NegotiationSession
	leaks   []models.MediaLeak
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		active:  make(map[uuid.UUID]*models.NegotiationSession),
		history: make(map[uuid.UUID][]models.NegotiationSession),
	}
}

func (s *sessionStore) put(session *models.NegotiationSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[session.ID] = session
}

func (s *sessionStore) get(id uuid.UUID) *models.NegotiationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[id]
}

// finalize removes the session from the active set and fans a copy out
// to every involved team's history. Finalizing a session that is no
// longer active is a no-op; the first caller wins.
func (s *sessionStore) finalize(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.active[id]
	if !ok {
		return false
	}
	delete(s.active, id)
	for _, teamID := range session.TeamIDs {
		s.history[teamID] = append(s.history[teamID], *session)
	}
	return true
}

func (s *sessionStore) activeForTeam(teamID uuid.UUID) []models.NegotiationSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sessions []models.NegotiationSession
	for _, session := range s.active {
		if session.Involves(teamID) {
			sessions = append(sessions, *session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions
}

func (s *sessionStore) historyFor(teamID uuid.UUID) []models.NegotiationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NegotiationSession(nil), s.history[teamID]...)
}

// activeIDs snapshots the active session ids so sweeps never iterate
// the live map while finalizing.
func (s *sessionStore) activeIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	return ids
}

func (s *sessionStore) addLeak(leak models.MediaLeak) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaks = append(s.leaks, leak)
}

// recentLeaks returns the newest leaks first, at most limit of them.
func (s *sessionStore) recentLeaks(limit int) []models.MediaLeak {
	s.mu.Lock()
	defer s.mu.Unlock()

	leaks := append([]models.MediaLeak(nil), s.leaks...)
	sort.Slice(leaks, func(i, j int) bool {
		return leaks[i].LeakedAt.After(leaks[j].LeakedAt)
	})
	if limit > 0 && len(leaks) > limit {
		leaks = leaks[:limit]
	}
	return leaks
}
