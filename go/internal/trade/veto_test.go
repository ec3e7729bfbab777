package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVetoProbabilityBands(t *testing.T) {
	f := newEngineFixture(DefaultConfig()) // threshold -30
	plain := &models.TradeProposal{ID: uuid.New()}

	cases := []struct {
		name      string
		magnitude float64
		want      float64
	}{
		{"at threshold", 30, 0},
		{"just past threshold", 31, DefaultConfig().VetoBandBase},
		{"one and a half times", 45, vetoBandLow},
		{"double", 60, vetoBandMid},
		{"triple", 90, vetoBandHigh},
		{"far past", 200, vetoBandHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.engine.vetoProbability(tc.magnitude, plain))
		})
	}
}

func TestVetoProbabilityBandBaseConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VetoBandBase = 0.05
	f := newEngineFixture(cfg)
	plain := &models.TradeProposal{ID: uuid.New()}

	assert.Equal(t, 0.05, f.engine.vetoProbability(31, plain))
}

func TestVetoProbabilityMonotone(t *testing.T) {
	f := newEngineFixture(DefaultConfig())
	plain := &models.TradeProposal{ID: uuid.New()}

	prev := 0.0
	for magnitude := 0.0; magnitude <= 120; magnitude += 5 {
		p := f.engine.vetoProbability(magnitude, plain)
		assert.GreaterOrEqual(t, p, prev, "probability dropped at magnitude %.0f", magnitude)
		prev = p
	}
}

func TestVetoProbabilityBonusesAndCap(t *testing.T) {
	f := newEngineFixture(DefaultConfig())
	teamA, teamB := uuid.New(), uuid.New()

	loaded := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			playerAsset(uuid.New(), teamA, teamB, 35_000_000),
			pickAsset(teamA, 2026, 1, teamA, teamB),
			pickAsset(teamA, 2028, 1, teamA, teamB),
			pickAsset(teamA, 2030, 1, teamA, teamB),
		},
	}

	// Base band plus both bonuses.
	assert.InDelta(t, f.engine.cfg.VetoBandBase+vetoBonusStar+vetoBonusPicks, f.engine.vetoProbability(31, loaded), 1e-9)
	// The high band with both bonuses would exceed the cap.
	assert.Equal(t, vetoCap, f.engine.vetoProbability(95, loaded))
}

func TestAnalyzeVetoRiskTiers(t *testing.T) {
	cases := []struct {
		name    string
		balance float64
		want    models.VetoRiskTier
	}{
		{"balanced", -10, models.VetoRiskNone},
		{"at threshold", -30, models.VetoRiskNone},
		{"past threshold", -35, models.VetoRiskLow},
		{"well past", -46, models.VetoRiskMedium},
		{"egregious", -65, models.VetoRiskHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newEngineFixture(DefaultConfig())
			teamA, teamB := uuid.New(), uuid.New()
			f.validator.balances[teamB] = tc.balance

			proposal := &models.TradeProposal{
				ID:          uuid.New(),
				InitiatorID: teamA,
				Assets:      []models.TradeAsset{playerAsset(uuid.New(), teamA, teamB, 10_000_000)},
			}

			risk, err := f.engine.AnalyzeVetoRisk(context.Background(), proposal)
			require.NoError(t, err)
			assert.Equal(t, tc.want, risk.Tier)
			assert.Equal(t, tc.balance, risk.WorstBalance)
			if tc.balance < 0 {
				require.NotNil(t, risk.LosingTeamID)
				assert.Equal(t, teamB, *risk.LosingTeamID)
			}
		})
	}
}

func TestAnalyzeVetoRiskFlags(t *testing.T) {
	f := newEngineFixture(DefaultConfig())
	teamA, teamB := uuid.New(), uuid.New()

	proposal := &models.TradeProposal{
		ID:          uuid.New(),
		InitiatorID: teamA,
		Assets: []models.TradeAsset{
			playerAsset(uuid.New(), teamA, teamB, 32_000_000),
			pickAsset(teamA, 2026, 1, teamA, teamB),
			pickAsset(teamA, 2028, 1, teamA, teamB),
			pickAsset(teamB, 2027, 1, teamB, teamA),
		},
	}

	risk, err := f.engine.AnalyzeVetoRisk(context.Background(), proposal)
	require.NoError(t, err)
	assert.True(t, risk.StarInvolved)
	assert.True(t, risk.HeavyPickLoad)
	assert.Equal(t, models.VetoRiskNone, risk.Tier)
	assert.Nil(t, risk.LosingTeamID)
}
