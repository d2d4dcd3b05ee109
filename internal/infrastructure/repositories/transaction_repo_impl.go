package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/infrastructure/models"
)

// TransactionRepository implements transaction data operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a transaction record
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	m := &models.Transaction{
		ID:               tx.ID,
		SenderID:         tx.SenderID,
		ReceiverID:       tx.ReceiverID,
		SenderWalletID:   tx.SenderWalletID,
		ReceiverWalletID: tx.ReceiverWalletID,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		Status:           string(tx.Status),
		Description:      tx.Description,
		CreatedAt:        tx.CreatedAt,
	}
	if tx.CompletedAt.Valid {
		t := tx.CompletedAt.Time
		m.CompletedAt = &t
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toTransactionEntity(&m), nil
}

// ListByUserID lists transactions where the user is sender or receiver
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Transaction{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var txModels []models.Transaction
	if err := query.Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	var txs []*entities.Transaction
	for _, m := range txModels {
		model := m
		txs = append(txs, toTransactionEntity(&model))
	}
	return txs, total, nil
}

// List lists all transactions (admin)
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var txModels []models.Transaction
	if err := query.Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	var txs []*entities.Transaction
	for _, m := range txModels {
		model := m
		txs = append(txs, toTransactionEntity(&model))
	}
	return txs, total, nil
}

// Count counts transactions
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).Count(&count).Error
	return count, err
}

func toTransactionEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:               m.ID,
		SenderID:         m.SenderID,
		ReceiverID:       m.ReceiverID,
		SenderWalletID:   m.SenderWalletID,
		ReceiverWalletID: m.ReceiverWalletID,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Status:           entities.TransactionStatus(m.Status),
		Description:      m.Description,
		CreatedAt:        m.CreatedAt,
		CompletedAt:      null.TimeFromPtr(m.CompletedAt),
	}
}
