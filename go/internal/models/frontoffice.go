package models

import (
	"github.com/google/uuid"
)

// AggressionTier is how actively a front office hunts for trades.
type AggressionTier string

const (
	AggressionConservative AggressionTier = "conservative"
	AggressionBalanced     AggressionTier = "balanced"
	AggressionAggressive   AggressionTier = "aggressive"
)

// SituationTier is where a front office believes it sits in its
// competitive cycle.
type SituationTier string

const (
	SituationRebuilding SituationTier = "rebuilding"
	SituationRetooling  SituationTier = "retooling"
	SituationContending SituationTier = "contending"
)

// LeakBehavior is how likely a front office is to leak talks to media.
type LeakBehavior string

const (
	LeakBehaviorTightLipped LeakBehavior = "tight_lipped"
	LeakBehaviorCautious    LeakBehavior = "cautious"
	LeakBehaviorLeaky       LeakBehavior = "leaky"
)

// FrontOfficeProfile is a team's AI trade personality. Read-only from
// the core's point of view; profiles are loaded from an external
// dataset at startup.
type FrontOfficeProfile struct {
	TeamID              uuid.UUID      `json:"team_id"`
	Aggression          AggressionTier `json:"aggression"`
	Situation           SituationTier  `json:"situation"`
	LeakBehavior        LeakBehavior   `json:"leak_behavior"`
	WillTradeDraftPicks bool           `json:"will_trade_draft_picks"`
}
