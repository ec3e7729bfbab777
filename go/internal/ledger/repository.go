package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// Repository persists ledger snapshots to Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a ledger Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type queries struct {
	tx *sql.Tx
}

func newQueries(tx *sql.Tx) *queries {
	return &queries{tx: tx}
}

// SaveSnapshot replaces the stored snapshot with the given one, in a
// single transaction.
func (r *Repository) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	return sqlutil.Run(ctx, r.db, newQueries, func(q *queries) error {
		if err := q.clear(ctx); err != nil {
			return err
		}
		if err := q.insertMeta(ctx, snap.StartYear, snap.TeamCount); err != nil {
			return err
		}
		for _, pick := range snap.Picks {
			if err := q.insertPick(ctx, pick); err != nil {
				return err
			}
		}
		for _, transfer := range snap.Transfers {
			if err := q.insertTransfer(ctx, transfer); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSnapshot reads the stored snapshot. Returns sql.ErrNoRows
// wrapped if nothing has been saved yet.
func (r *Repository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	row := r.db.QueryRowContext(ctx, `SELECT start_year, team_count FROM ledger_meta WHERE id = 1`)
	if err := row.Scan(&snap.StartYear, &snap.TeamCount); err != nil {
		return nil, fmt.Errorf("failed to load ledger meta: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT original_team_id, year, round, current_owner_id, protections, swap_right, swap_beneficiary, conveyance
		FROM pick_rights
		ORDER BY year, round, original_team_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick rights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pick models.DraftPickRight
		var protections pqtype.NullRawMessage
		var beneficiary uuid.NullUUID
		if err := rows.Scan(
			&pick.OriginalTeamID,
			&pick.Year,
			&pick.Round,
			&pick.CurrentOwnerID,
			&protections,
			&pick.SwapRight,
			&beneficiary,
			&pick.Conveyance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pick right: %w", err)
		}
		if protections.Valid {
			if err := json.Unmarshal(protections.RawMessage, &pick.Protections); err != nil {
				return nil, fmt.Errorf("failed to decode protections: %w", err)
			}
		}
		pick.SwapBeneficiary = sqlutil.FromNullUUID(beneficiary)
		snap.Picks = append(snap.Picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pick rights: %w", err)
	}

	transferRows, err := r.db.QueryContext(ctx, `
		SELECT id, original_team_id, year, round, from_team_id, to_team_id, transferred_at
		FROM pick_transfers
		ORDER BY transferred_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick transfers: %w", err)
	}
	defer transferRows.Close()

	for transferRows.Next() {
		var t models.PickTransferRecord
		if err := transferRows.Scan(
			&t.ID,
			&t.Pick.OriginalTeamID,
			&t.Pick.Year,
			&t.Pick.Round,
			&t.FromTeamID,
			&t.ToTeamID,
			&t.TransferredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pick transfer: %w", err)
		}
		snap.Transfers = append(snap.Transfers, t)
	}
	if err := transferRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pick transfers: %w", err)
	}

	return &snap, nil
}

func (q *queries) clear(ctx context.Context) error {
	for _, table := range []string{"pick_transfers", "pick_rights", "ledger_meta"} {
		if _, err := q.tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (q *queries) insertMeta(ctx context.Context, startYear, teamCount int) error {
	_, err := q.tx.ExecContext(ctx,
		`INSERT INTO ledger_meta (id, start_year, team_count) VALUES (1, $1, $2)`,
		startYear, teamCount)
	if err != nil {
		return fmt.Errorf("failed to insert ledger meta: %w", err)
	}
	return nil
}

func (q *queries) insertPick(ctx context.Context, pick models.DraftPickRight) error {
	var protections pqtype.NullRawMessage
	if len(pick.Protections) > 0 {
		raw, err := json.Marshal(pick.Protections)
		if err != nil {
			return fmt.Errorf("failed to encode protections: %w", err)
		}
		protections = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO pick_rights (original_team_id, year, round, current_owner_id, protections, swap_right, swap_beneficiary, conveyance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pick.OriginalTeamID, pick.Year, pick.Round, pick.CurrentOwnerID,
		protections, pick.SwapRight, sqlutil.ToNullUUID(pick.SwapBeneficiary), pick.Conveyance)
	if err != nil {
		return fmt.Errorf("failed to insert pick right: %w", err)
	}
	return nil
}

func (q *queries) insertTransfer(ctx context.Context, t models.PickTransferRecord) error {
	_, err := q.tx.ExecContext(ctx, `
		INSERT INTO pick_transfers (id, original_team_id, year, round, from_team_id, to_team_id, transferred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Pick.OriginalTeamID, t.Pick.Year, t.Pick.Round,
		t.FromTeamID, t.ToTeamID, t.TransferredAt)
	if err != nil {
		return fmt.Errorf("failed to insert pick transfer: %w", err)
	}
	return nil
}
