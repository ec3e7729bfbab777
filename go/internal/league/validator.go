package league

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/trade"
)

// PickLedger defines what the validator needs from the draft pick
// ledger.
type PickLedger interface {
	GetPick(key models.PickKey) (models.DraftPickRight, bool)
	GetPickValueTier(key models.PickKey) models.PickValueTier
	ValidateStepienRule(teamID uuid.UUID, proposedOutgoing []models.PickKey) bool
}

// TradeValidator is the structural rule checker and balance estimator
// the execution engine consumes.
type TradeValidator struct {
	directory *Directory
	valuation *ValuationService
	ledger    PickLedger
}

// NewTradeValidator creates a TradeValidator.
func NewTradeValidator(directory *Directory, valuation *ValuationService, ledger PickLedger) *TradeValidator {
	return &TradeValidator{directory: directory, valuation: valuation, ledger: ledger}
}

// ValidateStructure checks a proposal's structural rules: at least two
// teams, well-formed assets, pick assets owned by their sender, and
// first-round pick departures that keep every sender Stepien compliant.
func (v *TradeValidator) ValidateStructure(ctx context.Context, proposal *models.TradeProposal) (*trade.ValidationResult, error) {
	if len(proposal.Assets) == 0 {
		return &trade.ValidationResult{Reason: "proposal has no assets"}, nil
	}
	if len(proposal.InvolvedTeams()) < 2 {
		return &trade.ValidationResult{Reason: "proposal involves fewer than two teams"}, nil
	}

	outgoingFirsts := make(map[uuid.UUID][]models.PickKey)
	for i, asset := range proposal.Assets {
		if asset.FromTeamID == asset.ToTeamID {
			return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d moves within one team", i)}, nil
		}
		switch asset.Kind {
		case models.AssetKindPlayer:
			if asset.PlayerID == nil {
				return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d has no player reference", i)}, nil
			}
		case models.AssetKindDraftPick:
			if asset.Pick == nil {
				return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d has no pick reference", i)}, nil
			}
			pick, ok := v.ledger.GetPick(*asset.Pick)
			if !ok {
				return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d references an unknown pick", i)}, nil
			}
			if pick.CurrentOwnerID != asset.FromTeamID {
				return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d pick is not owned by its sender", i)}, nil
			}
			if asset.Pick.Round == 1 {
				outgoingFirsts[asset.FromTeamID] = append(outgoingFirsts[asset.FromTeamID], *asset.Pick)
			}
		case models.AssetKindCash:
			if asset.CashAmount <= 0 {
				return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d has a non-positive cash amount", i)}, nil
			}
		default:
			return &trade.ValidationResult{Reason: fmt.Sprintf("asset %d has unknown kind %q", i, asset.Kind)}, nil
		}
	}

	for teamID, picks := range outgoingFirsts {
		if !v.ledger.ValidateStepienRule(teamID, picks) {
			return &trade.ValidationResult{
				Reason: fmt.Sprintf("team %s would violate the Stepien rule", teamID),
			}, nil
		}
	}

	return &trade.ValidationResult{Valid: true}, nil
}

// ConsentRequirements lists players whose no-trade clause blocks the
// proposal until they consent.
func (v *TradeValidator) ConsentRequirements(ctx context.Context, proposal *models.TradeProposal) ([]uuid.UUID, error) {
	var blocking []uuid.UUID
	for _, asset := range proposal.Assets {
		if asset.Kind != models.AssetKindPlayer || asset.PlayerID == nil {
			continue
		}
		contract, err := v.directory.GetContract(ctx, *asset.PlayerID)
		if err != nil {
			continue
		}
		if contract.NoTradeClause {
			blocking = append(blocking, *asset.PlayerID)
		}
	}
	return blocking, nil
}

// EstimateBalance computes the proposal's signed value for one team:
// incoming asset value minus outgoing asset value on the 0-100 scale.
func (v *TradeValidator) EstimateBalance(ctx context.Context, proposal *models.TradeProposal, teamID uuid.UUID) (float64, error) {
	var balance float64
	for _, asset := range proposal.Assets {
		value, err := v.assetValue(ctx, asset)
		if err != nil {
			return 0, err
		}
		switch {
		case asset.ToTeamID == teamID:
			balance += value
		case asset.FromTeamID == teamID:
			balance -= value
		}
	}
	return balance, nil
}

func (v *TradeValidator) assetValue(ctx context.Context, asset models.TradeAsset) (float64, error) {
	switch asset.Kind {
	case models.AssetKindPlayer:
		if asset.PlayerID == nil {
			return 0, nil
		}
		player, err := v.directory.GetPlayer(ctx, *asset.PlayerID)
		if err != nil {
			return 0, fmt.Errorf("failed to value player asset: %w", err)
		}
		contract, err := v.directory.GetContract(ctx, *asset.PlayerID)
		if err != nil {
			return 0, fmt.Errorf("failed to value player asset: %w", err)
		}
		assessment, err := v.valuation.AssessPlayer(ctx, *player, *contract, asset.ToTeamID)
		if err != nil {
			return 0, err
		}
		return assessment.OverallValue, nil
	case models.AssetKindDraftPick:
		if asset.Pick == nil {
			return 0, nil
		}
		return pickTierValue(v.ledger.GetPickValueTier(*asset.Pick)), nil
	case models.AssetKindCash:
		return float64(asset.CashAmount) / 1_000_000, nil
	default:
		return 0, nil
	}
}

func pickTierValue(tier models.PickValueTier) float64 {
	switch tier {
	case models.PickTierElite:
		return 40
	case models.PickTierLottery:
		return 25
	case models.PickTierMid:
		return 15
	case models.PickTierLate:
		return 10
	case models.PickTierLikelyProtected:
		return 12
	case models.PickTierSecondRound:
		return 5
	default:
		return 0
	}
}
