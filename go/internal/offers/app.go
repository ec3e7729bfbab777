package offers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/random"
	"github.com/rs/zerolog/log"
)

// App owns the incoming-offer pipeline: the daily origination tick,
// the pending-offer set, and user responses to offers.
type App struct {
	directory PlayerDirectory
	contracts ContractStore
	valuation Valuation
	ledger    PickLedger
	profiles  ProfileProvider
	executor  TradeExecutor
	clock     clockwork.Clock
	rng       random.Source
	events    events.Publisher
	cfg       Config

	userTeamID uuid.UUID

	mu     sync.Mutex
	offers map[uuid.UUID]*models.IncomingTradeOffer
}

// NewApp creates an offers App for the given user-controlled team.
func NewApp(
	directory PlayerDirectory,
	contracts ContractStore,
	valuation Valuation,
	ledger PickLedger,
	profiles ProfileProvider,
	executor TradeExecutor,
	clock clockwork.Clock,
	rng random.Source,
	bus events.Publisher,
	cfg Config,
	userTeamID uuid.UUID,
) *App {
	return &App{
		directory:  directory,
		contracts:  contracts,
		valuation:  valuation,
		ledger:     ledger,
		profiles:   profiles,
		executor:   executor,
		clock:      clock,
		rng:        rng,
		events:     bus,
		cfg:        cfg,
		userTeamID: userTeamID,
		offers:     make(map[uuid.UUID]*models.IncomingTradeOffer),
	}
}

// DailyTick expires stale pending offers, then decides whether to
// originate a new one. The origination probability halves once an
// offer is already pending and drops to zero at the pending cap.
func (a *App) DailyTick(ctx context.Context) error {
	a.ExpireStaleOffers()

	pending := len(a.PendingOffers())
	probability := a.cfg.BaseOfferProbability
	switch {
	case pending >= a.cfg.MaxPendingOffers:
		probability = 0
	case pending >= 1:
		probability /= 2
	}

	if probability == 0 || a.rng.Float64() >= probability {
		return nil
	}

	offer, err := a.generateOffer(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate incoming offer: %w", err)
	}
	if offer == nil {
		log.Debug().Msg("offer generation produced no viable package")
	}
	return nil
}

// ExpireStaleOffers marks every pending offer past its expiry as
// Expired and emits an OfferExpired event for each.
func (a *App) ExpireStaleOffers() {
	now := a.clock.Now()

	a.mu.Lock()
	var expired []*models.IncomingTradeOffer
	for _, offer := range a.offers {
		if offer.Pending() && !now.Before(offer.ExpiresAt) {
			offer.Status = models.OfferStatusExpired
			expired = append(expired, offer)
		}
	}
	a.mu.Unlock()

	for _, offer := range expired {
		a.events.Publish(events.Event{
			ID:         uuid.New(),
			Type:       events.TypeOfferExpired,
			TeamIDs:    []uuid.UUID{a.userTeamID},
			OccurredAt: now,
			Payload: events.OfferExpiredPayload{
				OfferID:   offer.ID.String(),
				ExpiredAt: now,
			},
		})
		log.Info().Str("offer_id", offer.ID.String()).Msg("incoming offer expired")
	}
}

// PendingOffers returns pending offers ordered by receipt time.
func (a *App) PendingOffers() []models.IncomingTradeOffer {
	a.mu.Lock()
	defer a.mu.Unlock()
	var pending []models.IncomingTradeOffer
	for _, offer := range a.offers {
		if offer.Pending() {
			pending = append(pending, *offer)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ReceivedAt.Before(pending[j].ReceivedAt)
	})
	return pending
}

// OfferHistory returns every offer ever received, ordered by receipt
// time.
func (a *App) OfferHistory() []models.IncomingTradeOffer {
	a.mu.Lock()
	defer a.mu.Unlock()
	history := make([]models.IncomingTradeOffer, 0, len(a.offers))
	for _, offer := range a.offers {
		history = append(history, *offer)
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].ReceivedAt.Before(history[j].ReceivedAt)
	})
	return history
}

// AcceptOffer executes a pending offer's proposal through the trade
// engine. The offer is marked Accepted only when execution succeeds.
func (a *App) AcceptOffer(ctx context.Context, offerID uuid.UUID) (models.TradeStatus, error) {
	a.mu.Lock()
	offer, ok := a.offers[offerID]
	if !ok || !offer.Pending() {
		a.mu.Unlock()
		log.Warn().Str("offer_id", offerID.String()).Msg("accept ignored: no pending offer with that id")
		return "", nil
	}
	proposal := offer.Proposal
	a.mu.Unlock()

	result, err := a.executor.ProposeTrade(ctx, &proposal, true)
	if err != nil {
		return "", fmt.Errorf("failed to execute accepted offer: %w", err)
	}

	if result.Status == models.TradeStatusExecuted {
		a.mu.Lock()
		offer.Status = models.OfferStatusAccepted
		a.mu.Unlock()
	}
	return result.Status, nil
}

// RejectOffer declines a pending offer.
func (a *App) RejectOffer(offerID uuid.UUID) {
	a.setStatus(offerID, models.OfferStatusRejected)
}

// MarkCountered records that the user answered the offer with a
// counter; the negotiation itself runs elsewhere.
func (a *App) MarkCountered(offerID uuid.UUID) {
	a.setStatus(offerID, models.OfferStatusCountered)
}

func (a *App) setStatus(offerID uuid.UUID, status models.OfferStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	offer, ok := a.offers[offerID]
	if !ok || !offer.Pending() {
		log.Warn().Str("offer_id", offerID.String()).Msg("response ignored: no pending offer with that id")
		return
	}
	offer.Status = status
}

func (a *App) addOffer(offer *models.IncomingTradeOffer) {
	a.mu.Lock()
	a.offers[offer.ID] = offer
	a.mu.Unlock()
}

func (a *App) offerTTL() time.Duration {
	return time.Duration(a.cfg.OfferTTLHours) * time.Hour
}
