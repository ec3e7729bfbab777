package offers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/mcdev12/frontoffice/go/internal/sqlutil"
)

// Repository persists offer snapshots to Postgres. Proposals are stored
// as JSONB since the engine only ever reads them back whole.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an offers Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type queries struct {
	tx *sql.Tx
}

func newQueries(tx *sql.Tx) *queries {
	return &queries{tx: tx}
}

// SaveSnapshot replaces the stored offers with the snapshot's, in a
// single transaction.
func (r *Repository) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	return sqlutil.Run(ctx, r.db, newQueries, func(q *queries) error {
		if _, err := q.tx.ExecContext(ctx, `DELETE FROM incoming_offers`); err != nil {
			return fmt.Errorf("failed to clear incoming offers: %w", err)
		}
		for _, offer := range snap.Offers {
			if err := q.insertOffer(ctx, offer); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSnapshot reads the stored offers.
func (r *Repository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, proposal, message, received_at, expires_at, status
		FROM incoming_offers
		ORDER BY received_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load incoming offers: %w", err)
	}
	defer rows.Close()

	var snap Snapshot
	for rows.Next() {
		var offer models.IncomingTradeOffer
		var proposal []byte
		if err := rows.Scan(
			&offer.ID,
			&proposal,
			&offer.Message,
			&offer.ReceivedAt,
			&offer.ExpiresAt,
			&offer.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan incoming offer: %w", err)
		}
		if err := json.Unmarshal(proposal, &offer.Proposal); err != nil {
			return nil, fmt.Errorf("failed to decode offer proposal: %w", err)
		}
		snap.Offers = append(snap.Offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incoming offers: %w", err)
	}
	return &snap, nil
}

func (q *queries) insertOffer(ctx context.Context, offer models.IncomingTradeOffer) error {
	proposal, err := json.Marshal(offer.Proposal)
	if err != nil {
		return fmt.Errorf("failed to encode offer proposal: %w", err)
	}
	_, err = q.tx.ExecContext(ctx, `
		INSERT INTO incoming_offers (id, proposal, message, received_at, expires_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		offer.ID, proposal, offer.Message, offer.ReceivedAt, offer.ExpiresAt, offer.Status)
	if err != nil {
		return fmt.Errorf("failed to insert incoming offer: %w", err)
	}
	return nil
}
