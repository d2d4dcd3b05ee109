package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
)

func seedTransaction(t *testing.T, repo *TransactionRepository, senderID, receiverID uuid.UUID, amount int64, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &entities.Transaction{
		ID:               id,
		SenderID:         senderID,
		ReceiverID:       receiverID,
		SenderWalletID:   uuid.New(),
		ReceiverWalletID: uuid.New(),
		Amount:           amount,
		Currency:         "IDR",
		Status:           entities.TransactionStatusCompleted,
		Description:      "lunch money",
		CreatedAt:        createdAt,
		CompletedAt:      null.TimeFrom(createdAt),
	}))
	return id
}

func TestTransactionRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	senderID := uuid.New()
	receiverID := uuid.New()
	id := seedTransaction(t, repo, senderID, receiverID, 25000, time.Now())

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, senderID, got.SenderID)
	assert.Equal(t, receiverID, got.ReceiverID)
	assert.Equal(t, int64(25000), got.Amount)
	assert.Equal(t, entities.TransactionStatusCompleted, got.Status)
	assert.Equal(t, "lunch money", got.Description)
	assert.True(t, got.CompletedAt.Valid)
}

func TestTransactionRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransactionRepository_ListByUserID_SenderOrReceiver(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	base := time.Now()
	sentID := seedTransaction(t, repo, alice, bob, 10000, base.Add(-2*time.Hour))
	receivedID := seedTransaction(t, repo, carol, alice, 20000, base.Add(-time.Hour))
	seedTransaction(t, repo, bob, carol, 30000, base)

	txs, total, err := repo.ListByUserID(ctx, alice, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, txs, 2)
	// Newest first
	assert.Equal(t, receivedID, txs[0].ID)
	assert.Equal(t, sentID, txs[1].ID)
}

func TestTransactionRepository_ListByUserID_Pagination(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	base := time.Now()
	for i := 0; i < 5; i++ {
		seedTransaction(t, repo, alice, bob, int64(1000*(i+1)), base.Add(time.Duration(i)*time.Minute))
	}

	page, total, err := repo.ListByUserID(ctx, alice, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}

func TestTransactionRepository_List_AllUsers(t *testing.T) {
	db := newTestDB(t)
	createTransactionTable(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	seedTransaction(t, repo, uuid.New(), uuid.New(), 10000, time.Now())
	seedTransaction(t, repo, uuid.New(), uuid.New(), 20000, time.Now())

	txs, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, txs, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
