package offers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffer(t *testing.T) models.IncomingTradeOffer {
	t.Helper()
	received := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return models.IncomingTradeOffer{
		ID: uuid.New(),
		Proposal: models.TradeProposal{
			ID:          uuid.New(),
			InitiatorID: uuid.New(),
		},
		Message:    "we like your wing",
		ReceivedAt: received,
		ExpiresAt:  received.Add(48 * time.Hour),
		Status:     models.OfferStatusPending,
	}
}

func TestRepositorySaveSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	offer := sampleOffer(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM incoming_offers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO incoming_offers").
		WithArgs(offer.ID, sqlmock.AnyArg(), offer.Message, offer.ReceivedAt, offer.ExpiresAt, offer.Status).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewRepository(db)
	err = repo.SaveSnapshot(context.Background(), Snapshot{Offers: []models.IncomingTradeOffer{offer}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySaveSnapshotRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	offer := sampleOffer(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM incoming_offers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO incoming_offers").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewRepository(db)
	err = repo.SaveSnapshot(context.Background(), Snapshot{Offers: []models.IncomingTradeOffer{offer}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryLoadSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	offer := sampleOffer(t)
	proposal, err := json.Marshal(offer.Proposal)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "proposal", "message", "received_at", "expires_at", "status"}).
		AddRow(offer.ID.String(), proposal, offer.Message, offer.ReceivedAt, offer.ExpiresAt, string(offer.Status))
	mock.ExpectQuery("SELECT id, proposal, message, received_at, expires_at, status").
		WillReturnRows(rows)

	repo := NewRepository(db)
	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Offers, 1)
	assert.Equal(t, offer.ID, snap.Offers[0].ID)
	assert.Equal(t, offer.Proposal.ID, snap.Offers[0].Proposal.ID)
	assert.Equal(t, models.OfferStatusPending, snap.Offers[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
