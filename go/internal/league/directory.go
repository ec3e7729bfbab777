package league

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
)

// Directory is the in-memory player directory and contract store. It
// backs the external-collaborator interfaces the trade core consumes
// when no dedicated roster service is wired in.
type Directory struct {
	mu        sync.RWMutex
	players   map[uuid.UUID]models.Player
	contracts map[uuid.UUID]models.Contract
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		players:   make(map[uuid.UUID]models.Player),
		contracts: make(map[uuid.UUID]models.Contract),
	}
}

// AddPlayer registers a player and their active contract.
func (d *Directory) AddPlayer(player models.Player, contract models.Contract) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.players[player.ID] = player
	d.contracts[player.ID] = contract
}

// GetPlayer fetches a player by id.
func (d *Directory) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	player, ok := d.players[id]
	if !ok {
		return nil, fmt.Errorf("player %s not found", id)
	}
	return &player, nil
}

// ListRoster lists a team's players sorted by descending salary.
func (d *Directory) ListRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var roster []models.Player
	for _, player := range d.players {
		if player.TeamID == teamID {
			roster = append(roster, player)
		}
	}
	sort.Slice(roster, func(i, j int) bool {
		return d.contracts[roster[i].ID].Salary > d.contracts[roster[j].ID].Salary
	})
	return roster, nil
}

// GetContract fetches a player's active contract.
func (d *Directory) GetContract(ctx context.Context, playerID uuid.UUID) (*models.Contract, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	contract, ok := d.contracts[playerID]
	if !ok {
		return nil, fmt.Errorf("contract for player %s not found", playerID)
	}
	return &contract, nil
}

// TeamPayroll sums a team's committed salary.
func (d *Directory) TeamPayroll(teamID uuid.UUID) int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var total int64
	for id, contract := range d.contracts {
		if d.players[id].TeamID == teamID {
			total += contract.Salary
		}
	}
	return total
}

// moveTo reassigns a player and their contract to a new team. Returns
// false when the player is unknown.
func (d *Directory) moveTo(playerID, toTeamID uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, ok := d.players[playerID]
	if !ok {
		return false
	}
	player.TeamID = toTeamID
	d.players[playerID] = player

	contract := d.contracts[playerID]
	contract.TeamID = toTeamID
	d.contracts[playerID] = contract
	return true
}
