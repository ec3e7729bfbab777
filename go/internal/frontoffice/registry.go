package frontoffice

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Registry holds every team's AI trade personality. Profiles are
// loaded once at startup and read-only afterward.
type Registry struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]models.FrontOfficeProfile
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[uuid.UUID]models.FrontOfficeProfile)}
}

// Register installs or replaces a team's profile.
func (r *Registry) Register(profile models.FrontOfficeProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.TeamID] = profile
}

// Profile looks up one team's profile.
func (r *Registry) Profile(teamID uuid.UUID) (*models.FrontOfficeProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[teamID]
	if !ok {
		return nil, false
	}
	return &profile, true
}

// Profiles lists every registered profile in stable team-id order.
func (r *Registry) Profiles() []models.FrontOfficeProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]models.FrontOfficeProfile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].TeamID.String() < profiles[j].TeamID.String()
	})
	return profiles
}

// ProfileEntry is one externally sourced front-office personality.
type ProfileEntry struct {
	TeamID              string `json:"team_id"`
	Aggression          string `json:"aggression"`
	Situation           string `json:"situation"`
	LeakBehavior        string `json:"leak_behavior"`
	WillTradeDraftPicks bool   `json:"will_trade_draft_picks"`
}

// ProfileDataset is the JSON-shaped bulk dataset of team personalities.
type ProfileDataset struct {
	Profiles []ProfileEntry `json:"profiles"`
}

// LoadProfileDataset reads a profile dataset file. Callers treat a
// missing file as non-fatal.
func LoadProfileDataset(path string) (*ProfileDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read front office dataset: %w", err)
	}

	var dataset ProfileDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse front office dataset: %w", err)
	}
	return &dataset, nil
}

// ApplyDataset registers every well-formed entry. Malformed entries are
// logged and skipped.
func (r *Registry) ApplyDataset(dataset *ProfileDataset) {
	applied := 0
	for i, entry := range dataset.Profiles {
		teamID, err := uuid.Parse(entry.TeamID)
		if err != nil {
			log.Warn().Err(err).Int("entry", i).Msg("skipping profile entry: bad team id")
			continue
		}

		profile := models.FrontOfficeProfile{
			TeamID:              teamID,
			Aggression:          models.AggressionTier(entry.Aggression),
			Situation:           models.SituationTier(entry.Situation),
			LeakBehavior:        models.LeakBehavior(entry.LeakBehavior),
			WillTradeDraftPicks: entry.WillTradeDraftPicks,
		}
		if profile.Aggression == "" {
			profile.Aggression = models.AggressionBalanced
		}
		if profile.Situation == "" {
			profile.Situation = models.SituationRetooling
		}
		if profile.LeakBehavior == "" {
			profile.LeakBehavior = models.LeakBehaviorCautious
		}

		r.Register(profile)
		applied++
	}

	log.Info().
		Int("entries", len(dataset.Profiles)).
		Int("applied", applied).
		Msg("front office dataset applied")
}
