package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	m := &models.Wallet{
		ID:           wallet.ID,
		UserID:       wallet.UserID,
		WalletNumber: wallet.WalletNumber,
		Name:         wallet.Name,
		Currency:     wallet.Currency,
		WalletType:   string(wallet.WalletType),
		Balance:      wallet.Balance,
		CreatedAt:    wallet.CreatedAt,
		UpdatedAt:    wallet.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a wallet by ID
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// GetByNumber gets a wallet by its wallet number
func (r *WalletRepository) GetByNumber(ctx context.Context, walletNumber string) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("wallet_number = ?", walletNumber).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// GetByUserAndType gets a user's wallet of the given type
func (r *WalletRepository) GetByUserAndType(ctx context.Context, userID uuid.UUID, walletType entities.WalletType) (*entities.Wallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND wallet_type = ?", userID, string(walletType)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// GetMainByEmail gets the MAIN wallet of the user owning the given email
func (r *WalletRepository) GetMainByEmail(ctx context.Context, email string) (*entities.Wallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Joins("JOIN users ON users.id = wallets.user_id").
		Where("users.email = ? AND users.deleted_at IS NULL AND wallets.wallet_type = ?", email, string(entities.WalletTypeMain)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// ListByUserID lists a user's wallets
func (r *WalletRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	var walletModels []models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&walletModels).Error
	if err != nil {
		return nil, err
	}

	var wallets []*entities.Wallet
	for _, m := range walletModels {
		model := m
		wallets = append(wallets, toWalletEntity(&model))
	}
	return wallets, nil
}

// Credit atomically increments a wallet balance
func (r *WalletRepository) Credit(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return domainerrors.ErrInvalidInput
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Debit atomically decrements a wallet balance. The decrement is
// conditional on the current balance covering the amount, so two
// concurrent debits can never drive the balance negative.
func (r *WalletRepository) Debit(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return domainerrors.ErrInvalidInput
	}
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", id, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing wallet from an uncovered amount.
		var count int64
		if err := db.WithContext(ctx).Model(&models.Wallet{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInsufficientFunds
	}
	return nil
}

// SoftDelete soft deletes a wallet
func (r *WalletRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Wallet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count counts live wallets
func (r *WalletRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).Count(&count).Error
	return count, err
}

// TotalBalance sums all live wallet balances
func (r *WalletRepository) TotalBalance(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Wallet{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return total, err
}

func toWalletEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:           m.ID,
		UserID:       m.UserID,
		WalletNumber: m.WalletNumber,
		Name:         m.Name,
		Currency:     m.Currency,
		WalletType:   entities.WalletType(m.WalletType),
		Balance:      m.Balance,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
