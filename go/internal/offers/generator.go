package offers

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// generateOffer originates one AI trade offer toward the user's team.
// It returns nil with no error when no team, target, or viable package
// can be found.
func (a *App) generateOffer(ctx context.Context) (*models.IncomingTradeOffer, error) {
	profile := a.selectOfferingTeam()
	if profile == nil {
		return nil, nil
	}

	targets, err := a.IdentifyDesirablePlayers(ctx, *profile)
	if err != nil {
		return nil, fmt.Errorf("failed to identify targets: %w", err)
	}
	if len(targets) == 0 {
		return nil, nil
	}

	// Chase the most valuable target the profile likes.
	target := targets[0]
	for _, t := range targets[1:] {
		if t.Value.OverallValue > target.Value.OverallValue {
			target = t
		}
	}

	proposal, err := a.BuildTradeProposal(ctx, *profile, target)
	if err != nil {
		return nil, fmt.Errorf("failed to build proposal: %w", err)
	}
	if proposal == nil {
		return nil, nil
	}

	now := a.clock.Now()
	offer := &models.IncomingTradeOffer{
		ID:         uuid.New(),
		Proposal:   *proposal,
		Message:    narrativeFor(*profile, target.Player.FullName),
		ReceivedAt: now,
		ExpiresAt:  now.Add(a.offerTTL()),
		Status:     models.OfferStatusPending,
	}
	a.addOffer(offer)

	a.events.Publish(events.Event{
		ID:         uuid.New(),
		Type:       events.TypeOfferCreated,
		TeamIDs:    []uuid.UUID{profile.TeamID, a.userTeamID},
		OccurredAt: now,
		Payload: events.OfferCreatedPayload{
			OfferID:        offer.ID.String(),
			OfferingTeamID: profile.TeamID.String(),
			TargetTeamID:   a.userTeamID.String(),
			Message:        offer.Message,
			ExpiresAt:      offer.ExpiresAt,
		},
	})

	log.Info().
		Str("offer_id", offer.ID.String()).
		Str("offering_team", profile.TeamID.String()).
		Str("target_player", target.Player.FullName).
		Msg("incoming trade offer generated")

	return offer, nil
}

// selectOfferingTeam draws a non-user team by cumulative weight, where
// weight is the product of aggression and situation multipliers.
// Zero-weight teams are excluded outright.
func (a *App) selectOfferingTeam() *models.FrontOfficeProfile {
	type weighted struct {
		profile models.FrontOfficeProfile
		weight  float64
	}

	var candidates []weighted
	total := 0.0
	for _, profile := range a.profiles.Profiles() {
		if profile.TeamID == a.userTeamID {
			continue
		}
		weight := aggressionWeight(profile.Aggression) * situationWeight(profile.Situation)
		if weight <= 0 {
			continue
		}
		candidates = append(candidates, weighted{profile: profile, weight: weight})
		total += weight
	}
	if len(candidates) == 0 {
		return nil
	}

	roll := a.rng.Float64() * total
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += c.weight
		if roll < cumulative {
			p := c.profile
			return &p
		}
	}
	p := candidates[len(candidates)-1].profile
	return &p
}

// IdentifyDesirablePlayers scores the user's roster from the offering
// team's point of view. A player below the minimum target salary is
// never desirable, regardless of any other criterion.
func (a *App) IdentifyDesirablePlayers(ctx context.Context, profile models.FrontOfficeProfile) ([]Target, error) {
	roster, err := a.directory.ListRoster(ctx, a.userTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user roster: %w", err)
	}

	var targets []Target
	for _, player := range roster {
		contract, err := a.contracts.GetContract(ctx, player.ID)
		if err != nil {
			log.Warn().Err(err).Str("player_id", player.ID.String()).Msg("skipping player with no contract")
			continue
		}
		if contract.Salary < minTargetSalary {
			continue
		}

		assessment, err := a.valuation.AssessPlayer(ctx, player, *contract, profile.TeamID)
		if err != nil {
			log.Warn().Err(err).Str("player_id", player.ID.String()).Msg("skipping player with no valuation")
			continue
		}

		desirable := false
		switch profile.Situation {
		case models.SituationContending:
			desirable = player.Rating >= 75 && player.Age <= 32
		case models.SituationRebuilding:
			desirable = player.Age <= 24 && player.Potential >= 70
		}
		if assessment.ContractValue >= 10 {
			desirable = true
		}
		if !desirable {
			continue
		}

		targets = append(targets, Target{Player: player, Contract: *contract, Value: assessment})
	}
	return targets, nil
}

// BuildTradeProposal assembles the offering team's package for the
// target: own players by descending salary (skipping anyone worth more
// than 80% of the target, so the AI never guts itself), then up to two
// draft picks if value is still short and the profile allows moving
// picks. Returns nil when the offering team would contribute nothing.
func (a *App) BuildTradeProposal(ctx context.Context, profile models.FrontOfficeProfile, target Target) (*models.TradeProposal, error) {
	targetValue := target.Value.OverallValue
	targetSalary := target.Contract.Salary

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: profile.TeamID,
		CreatedAt:   a.clock.Now(),
	}
	playerID := target.Player.ID
	proposal.Assets = append(proposal.Assets, models.TradeAsset{
		Kind:       models.AssetKindPlayer,
		FromTeamID: a.userTeamID,
		ToTeamID:   profile.TeamID,
		PlayerID:   &playerID,
		Salary:     targetSalary,
	})

	roster, err := a.directory.ListRoster(ctx, profile.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offering roster: %w", err)
	}

	type priced struct {
		player   models.Player
		contract models.Contract
		value    float64
	}
	var pool []priced
	for _, player := range roster {
		contract, err := a.contracts.GetContract(ctx, player.ID)
		if err != nil {
			continue
		}
		assessment, err := a.valuation.AssessPlayer(ctx, player, *contract, profile.TeamID)
		if err != nil {
			continue
		}
		pool = append(pool, priced{player: player, contract: *contract, value: assessment.OverallValue})
	}
	sort.Slice(pool, func(i, j int) bool {
		return pool[i].contract.Salary > pool[j].contract.Salary
	})

	matchedValue := 0.0
	var matchedSalary int64
	contributed := 0
	for _, candidate := range pool {
		if matchedValue >= targetValue*0.90 && float64(matchedSalary) >= float64(targetSalary)*0.80 {
			break
		}
		if candidate.value > targetValue*0.80 {
			continue
		}
		id := candidate.player.ID
		proposal.Assets = append(proposal.Assets, models.TradeAsset{
			Kind:       models.AssetKindPlayer,
			FromTeamID: profile.TeamID,
			ToTeamID:   a.userTeamID,
			PlayerID:   &id,
			Salary:     candidate.contract.Salary,
		})
		matchedValue += candidate.value
		matchedSalary += candidate.contract.Salary
		contributed++
	}

	if matchedValue < targetValue*0.95 && profile.WillTradeDraftPicks {
		contributed += a.addPickSweeteners(proposal, profile.TeamID, targetValue, &matchedValue)
	}

	if contributed == 0 {
		log.Debug().
			Str("offering_team", profile.TeamID.String()).
			Msg("no viable package: offering team would contribute nothing")
		return nil, nil
	}
	return proposal, nil
}

// addPickSweeteners appends up to two of the team's own draft picks,
// nearest years first and second-rounders ahead of firsts within a
// year, each discounted by distance from the current season year.
// Returns how many picks were added.
func (a *App) addPickSweeteners(proposal *models.TradeProposal, teamID uuid.UUID, targetValue float64, matchedValue *float64) int {
	picks := a.ledger.GetPicksOwnedBy(teamID)
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].Year != picks[j].Year {
			return picks[i].Year < picks[j].Year
		}
		return picks[i].Round > picks[j].Round
	})

	currentYear := a.ledger.CurrentYear()

	added := 0
	for _, pick := range picks {
		if added >= 2 || *matchedValue >= targetValue*0.95 {
			break
		}
		face := pickFaceValue(a.ledger.GetPickValueTier(pick.Key()))
		discount := 1.0 - 0.1*float64(pick.Year-currentYear)
		if discount < 0.3 {
			discount = 0.3
		}

		key := pick.Key()
		proposal.Assets = append(proposal.Assets, models.TradeAsset{
			Kind:        models.AssetKindDraftPick,
			FromTeamID:  teamID,
			ToTeamID:    a.userTeamID,
			Pick:        &key,
			Protections: pick.Protections,
			SwapRight:   pick.SwapRight,
		})
		*matchedValue += face * discount
		added++
	}
	return added
}
