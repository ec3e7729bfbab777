package league

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// ValuationService produces deterministic player value assessments on
// the 0-100 trade balance scale.
type ValuationService struct{}

// NewValuationService creates a ValuationService.
func NewValuationService() *ValuationService {
	return &ValuationService{}
}

// AssessPlayer scores a player for the evaluating team. OverallValue
// blends current ability with upside and penalizes age past the prime
// window; ContractValue measures surplus relative to salary in
// millions.
func (s *ValuationService) AssessPlayer(ctx context.Context, player models.Player, contract models.Contract, evaluatingTeamID uuid.UUID) (models.ValueAssessment, error) {
	value := 0.7*float64(player.Rating) + 0.3*float64(player.Potential)
	if player.Age > 30 {
		value -= float64(player.Age-30) * 2
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	// Market salary scales linearly with value; the difference, in
	// millions, is the contract's surplus or dead weight.
	marketSalary := value * 500_000
	contractValue := (marketSalary - float64(contract.Salary)) / 1_000_000

	return models.ValueAssessment{
		PlayerID:      player.ID,
		OverallValue:  value,
		ContractValue: contractValue,
	}, nil
}
