package season

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// OfferTicker is the daily incoming-offer process.
type OfferTicker interface {
	DailyTick(ctx context.Context) error
}

// ExpirationSweeper retires negotiations past their deadline.
type ExpirationSweeper interface {
	ProcessExpirations()
}

// Driver advances the simulated calendar one day at a time, running
// the trade economy's daily processes in a fixed order: offer tick
// (which expires stale offers first), then the negotiation sweep.
type Driver struct {
	clock  clockwork.Clock
	offers OfferTicker
	sweeps ExpirationSweeper

	day int
}

// NewDriver creates a season Driver.
func NewDriver(clock clockwork.Clock, offers OfferTicker, sweeps ExpirationSweeper) *Driver {
	return &Driver{clock: clock, offers: offers, sweeps: sweeps}
}

// AdvanceDay runs one simulated day. The fake clock, when present, is
// advanced 24 hours before the daily processes run so expiry
// comparisons see the new date.
func (d *Driver) AdvanceDay(ctx context.Context) error {
	if fake, ok := d.clock.(*clockwork.FakeClock); ok {
		fake.Advance(24 * time.Hour)
	}
	d.day++

	if err := d.offers.DailyTick(ctx); err != nil {
		return fmt.Errorf("failed to run daily offer tick: %w", err)
	}
	d.sweeps.ProcessExpirations()

	log.Debug().Int("day", d.day).Time("date", d.clock.Now()).Msg("season day advanced")
	return nil
}

// AdvanceDays runs several simulated days in sequence.
func (d *Driver) AdvanceDays(ctx context.Context, days int) error {
	for i := 0; i < days; i++ {
		if err := d.AdvanceDay(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Day returns how many days have been simulated.
func (d *Driver) Day() int {
	return d.day
}
