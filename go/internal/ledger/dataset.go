package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/rs/zerolog/log"
)

// PickOwnershipEntry is one externally sourced ownership override:
// a pick that starts the season owned by someone other than its
// original team, optionally protected or swap-encumbered.
type PickOwnershipEntry struct {
	OriginalTeamID  string                  `json:"original_team_id"`
	Year            int                     `json:"year"`
	Round           int                     `json:"round"`
	OwnerID         string                  `json:"owner_id"`
	Protections     []models.ProtectionRule `json:"protections,omitempty"`
	SwapRight       bool                    `json:"swap_right,omitempty"`
	SwapBeneficiary string                  `json:"swap_beneficiary,omitempty"`
}

// PickOwnershipDataset is the JSON-shaped bulk dataset applied after
// season initialization.
type PickOwnershipDataset struct {
	Entries []PickOwnershipEntry `json:"entries"`
}

// LoadPickOwnershipDataset reads a dataset file. Callers treat a
// missing file as non-fatal.
func LoadPickOwnershipDataset(path string) (*PickOwnershipDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pick ownership dataset: %w", err)
	}

	var dataset PickOwnershipDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse pick ownership dataset: %w", err)
	}

	return &dataset, nil
}

// applyDataset reassigns owners and attaches protections and swap
// rights per dataset entry. Malformed or unmatched entries are logged
// and skipped.
func (a *App) applyDataset(dataset *PickOwnershipDataset) {
	applied := 0
	for i, entry := range dataset.Entries {
		originalTeamID, err := uuid.Parse(entry.OriginalTeamID)
		if err != nil {
			log.Warn().Err(err).Int("entry", i).Msg("skipping dataset entry: bad original team id")
			continue
		}
		ownerID, err := uuid.Parse(entry.OwnerID)
		if err != nil {
			log.Warn().Err(err).Int("entry", i).Msg("skipping dataset entry: bad owner id")
			continue
		}

		key := models.PickKey{OriginalTeamID: originalTeamID, Year: entry.Year, Round: entry.Round}
		pick, ok := a.store.get(key)
		if !ok {
			log.Warn().
				Int("entry", i).
				Int("year", entry.Year).
				Int("round", entry.Round).
				Msg("skipping dataset entry: no matching pick record")
			continue
		}

		pick.CurrentOwnerID = ownerID
		pick.Protections = entry.Protections
		pick.SwapRight = entry.SwapRight
		if entry.SwapBeneficiary != "" {
			beneficiary, err := uuid.Parse(entry.SwapBeneficiary)
			if err != nil {
				log.Warn().Err(err).Int("entry", i).Msg("dataset entry has bad swap beneficiary, ignoring swap")
				pick.SwapRight = false
			} else {
				pick.SwapBeneficiary = &beneficiary
			}
		}
		a.store.put(pick)
		applied++
	}

	log.Info().
		Int("entries", len(dataset.Entries)).
		Int("applied", applied).
		Msg("pick ownership dataset applied")
}
