package models

import (
	"github.com/google/uuid"
)

// Player represents a rostered player in the league
type Player struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	TeamID    uuid.UUID `json:"team_id"`
	Position  string    `json:"position"`
	Age       int       `json:"age"`
	Rating    int       `json:"rating"`    // 0-99 current ability
	Potential int       `json:"potential"` // 0-99 hidden ceiling
}

// Contract represents a player's active contract
type Contract struct {
	PlayerID       uuid.UUID `json:"player_id"`
	TeamID         uuid.UUID `json:"team_id"`
	Salary         int64     `json:"salary"` // annual salary in dollars
	YearsRemaining int       `json:"years_remaining"`
	NoTradeClause  bool      `json:"no_trade_clause"`
}

// ValueAssessment is a valuation service's read on a player for one
// evaluating team. OverallValue is on the same 0-100 scale as trade
// balance math; ContractValue measures surplus relative to salary.
type ValueAssessment struct {
	PlayerID      uuid.UUID `json:"player_id"`
	OverallValue  float64   `json:"overall_value"`
	ContractValue float64   `json:"contract_value"`
}
