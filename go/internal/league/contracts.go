package league

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Cap thresholds in dollars. Teams above each line accept worse deals
// to shed salary.
type CapThresholds struct {
	SalaryCap int64 `yaml:"salary_cap"`
	LuxuryTax int64 `yaml:"luxury_tax"`
	Apron     int64 `yaml:"apron"`
}

// DefaultCapThresholds returns the league defaults.
func DefaultCapThresholds() CapThresholds {
	return CapThresholds{
		SalaryCap: 140_000_000,
		LuxuryTax: 170_000_000,
		Apron:     190_000_000,
	}
}

// TradeException is a salary-matching allowance created when a team
// sends out more salary than it takes back.
type TradeException struct {
	ID             uuid.UUID `json:"id"`
	TeamID         uuid.UUID `json:"team_id"`
	Amount         int64     `json:"amount"`
	AnchorPlayerID uuid.UUID `json:"anchor_player_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ContractService is the opaque salary-cap collaborator: cap status
// lookups, contract moves, and trade exception bookkeeping on top of
// the Directory.
type ContractService struct {
	directory  *Directory
	thresholds CapThresholds
	clock      clockwork.Clock

	mu         sync.Mutex
	exceptions map[uuid.UUID][]TradeException
}

// NewContractService creates a ContractService over the directory.
func NewContractService(directory *Directory, thresholds CapThresholds, clock clockwork.Clock) *ContractService {
	return &ContractService{
		directory:  directory,
		thresholds: thresholds,
		clock:      clock,
		exceptions: make(map[uuid.UUID][]TradeException),
	}
}

// GetCapStatus classifies a team's payroll against the cap lines.
func (s *ContractService) GetCapStatus(ctx context.Context, teamID uuid.UUID) (models.CapStatus, error) {
	payroll := s.directory.TeamPayroll(teamID)
	switch {
	case payroll >= s.thresholds.Apron:
		return models.CapStatusApron, nil
	case payroll >= s.thresholds.LuxuryTax:
		return models.CapStatusLuxuryTax, nil
	case payroll >= s.thresholds.SalaryCap:
		return models.CapStatusOverCap, nil
	default:
		return models.CapStatusUnderCap, nil
	}
}

// TransferContract moves a player's contract to the receiving team.
func (s *ContractService) TransferContract(ctx context.Context, playerID, toTeamID uuid.UUID) error {
	if !s.directory.moveTo(playerID, toTeamID) {
		return fmt.Errorf("player %s not found", playerID)
	}
	return nil
}

// CreateTradeException records a salary-matching exception for the
// team, anchored to the named outgoing player.
func (s *ContractService) CreateTradeException(ctx context.Context, teamID uuid.UUID, amount int64, anchorPlayerID uuid.UUID) error {
	exception := TradeException{
		ID:             uuid.New(),
		TeamID:         teamID,
		Amount:         amount,
		AnchorPlayerID: anchorPlayerID,
		CreatedAt:      s.clock.Now(),
	}

	s.mu.Lock()
	s.exceptions[teamID] = append(s.exceptions[teamID], exception)
	s.mu.Unlock()

	log.Info().
		Str("team_id", teamID.String()).
		Int64("amount", amount).
		Msg("trade exception created")
	return nil
}

// TradeExceptions lists a team's open exceptions.
func (s *ContractService) TradeExceptions(teamID uuid.UUID) []TradeException {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TradeException(nil), s.exceptions[teamID]...)
}
