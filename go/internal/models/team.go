package models

import (
	"github.com/google/uuid"
)

// Team represents a franchise in the league
type Team struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	City     string    `json:"city"`
	Standing int       `json:"standing"` // 1 = best record
}

// CapStatus describes where a team sits against the salary cap
type CapStatus string

const (
	CapStatusUnderCap  CapStatus = "under_cap"
	CapStatusOverCap   CapStatus = "over_cap"
	CapStatusLuxuryTax CapStatus = "luxury_tax"
	CapStatusApron     CapStatus = "apron"
)
