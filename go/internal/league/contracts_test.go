package league

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContractService(directory *Directory) *ContractService {
	return NewContractService(directory, DefaultCapThresholds(), clockwork.NewFakeClock())
}

func seedPayroll(directory *Directory, teamID uuid.UUID, salaries ...int64) {
	for _, salary := range salaries {
		id := uuid.New()
		directory.AddPlayer(
			models.Player{ID: id, TeamID: teamID, FullName: "Roster Player"},
			models.Contract{PlayerID: id, TeamID: teamID, Salary: salary},
		)
	}
}

func TestGetCapStatusBands(t *testing.T) {
	cases := []struct {
		name    string
		payroll int64
		want    models.CapStatus
	}{
		{"under cap", 120_000_000, models.CapStatusUnderCap},
		{"over cap", 150_000_000, models.CapStatusOverCap},
		{"luxury tax", 175_000_000, models.CapStatusLuxuryTax},
		{"apron", 195_000_000, models.CapStatusApron},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			directory := NewDirectory()
			teamID := uuid.New()
			seedPayroll(directory, teamID, tc.payroll)

			status, err := newContractService(directory).GetCapStatus(context.Background(), teamID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestTransferContractMovesPlayerAndPayroll(t *testing.T) {
	directory := NewDirectory()
	teamA, teamB := uuid.New(), uuid.New()
	playerID := uuid.New()
	directory.AddPlayer(
		models.Player{ID: playerID, TeamID: teamA, FullName: "Traded Player"},
		models.Contract{PlayerID: playerID, TeamID: teamA, Salary: 18_000_000},
	)
	svc := newContractService(directory)

	require.NoError(t, svc.TransferContract(context.Background(), playerID, teamB))

	player, err := directory.GetPlayer(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, teamB, player.TeamID)
	assert.Equal(t, int64(18_000_000), directory.TeamPayroll(teamB))
	assert.Zero(t, directory.TeamPayroll(teamA))

	roster, err := directory.ListRoster(context.Background(), teamB)
	require.NoError(t, err)
	require.Len(t, roster, 1)

	assert.Error(t, svc.TransferContract(context.Background(), uuid.New(), teamB))
}

func TestCreateTradeException(t *testing.T) {
	directory := NewDirectory()
	svc := newContractService(directory)
	teamID, anchor := uuid.New(), uuid.New()

	require.NoError(t, svc.CreateTradeException(context.Background(), teamID, 7_000_000, anchor))

	exceptions := svc.TradeExceptions(teamID)
	require.Len(t, exceptions, 1)
	assert.Equal(t, int64(7_000_000), exceptions[0].Amount)
	assert.Equal(t, anchor, exceptions[0].AnchorPlayerID)
	assert.Empty(t, svc.TradeExceptions(uuid.New()))
}

func TestListRosterOrderedBySalary(t *testing.T) {
	directory := NewDirectory()
	teamID := uuid.New()
	seedPayroll(directory, teamID, 5_000_000, 30_000_000, 12_000_000)

	roster, err := directory.ListRoster(context.Background(), teamID)
	require.NoError(t, err)
	require.Len(t, roster, 3)

	var prev int64 = 1 << 62
	for _, player := range roster {
		contract, err := directory.GetContract(context.Background(), player.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, contract.Salary, prev)
		prev = contract.Salary
	}
}
