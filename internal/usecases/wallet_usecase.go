package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/domain/repositories"
	"saldoku.backend/pkg/utils"
)

// walletNumberRetries bounds retries on a wallet-number collision.
const walletNumberRetries = 3

// WalletUsecase resolves and manages wallets. Resolution of a caller's
// own wallet always verifies ownership; counterparty resolution (by
// wallet number or owner email) deliberately does not.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	currency   string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.WalletRepository, currency string) *WalletUsecase {
	return &WalletUsecase{walletRepo: walletRepo, currency: currency}
}

// ResolveOwned resolves a wallet by ID and verifies the caller owns it.
// Soft-deleted wallets fall out as ErrNotFound at the repository.
func (u *WalletUsecase) ResolveOwned(ctx context.Context, userID, walletID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	return wallet, nil
}

// ResolveOwnedByType resolves the caller's wallet of the given type.
func (u *WalletUsecase) ResolveOwnedByType(ctx context.Context, userID uuid.UUID, walletType entities.WalletType) (*entities.Wallet, error) {
	return u.walletRepo.GetByUserAndType(ctx, userID, walletType)
}

// ResolveDestination resolves a counterparty wallet from a selector.
// Exactly one of walletNumber or email must be set; by-email resolves
// the counterparty's MAIN wallet.
func (u *WalletUsecase) ResolveDestination(ctx context.Context, selector entities.WalletSelector) (*entities.Wallet, error) {
	switch {
	case selector.WalletNumber != "" && selector.Email != "":
		return nil, domainerrors.NewError("destination must be a wallet number or an email, not both", domainerrors.ErrInvalidInput)
	case selector.WalletNumber != "":
		return u.walletRepo.GetByNumber(ctx, selector.WalletNumber)
	case selector.Email != "":
		return u.walletRepo.GetMainByEmail(ctx, selector.Email)
	default:
		return nil, domainerrors.NewError("destination wallet is required", domainerrors.ErrInvalidInput)
	}
}

// CreateWallet creates a wallet of the given type for a user, retrying
// on a generated wallet-number collision.
func (u *WalletUsecase) CreateWallet(ctx context.Context, userID uuid.UUID, name string, walletType entities.WalletType) (*entities.Wallet, error) {
	var lastErr error
	for i := 0; i < walletNumberRetries; i++ {
		number, err := utils.GenerateWalletNumber()
		if err != nil {
			return nil, err
		}

		now := time.Now()
		wallet := &entities.Wallet{
			ID:           utils.GenerateUUIDv7(),
			UserID:       userID,
			WalletNumber: number,
			Name:         name,
			Currency:     u.currency,
			WalletType:   walletType,
			Balance:      0,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := u.walletRepo.Create(ctx, wallet); err != nil {
			lastErr = err
			if isDuplicateKey(err) {
				continue
			}
			return nil, err
		}
		return wallet, nil
	}
	return nil, lastErr
}

// CreateSecondaryWallet creates an additional named wallet for a user
func (u *WalletUsecase) CreateSecondaryWallet(ctx context.Context, userID uuid.UUID, input *entities.CreateWalletInput) (*entities.Wallet, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrBadRequest
	}
	return u.CreateWallet(ctx, userID, input.Name, entities.WalletTypeSecondary)
}

// GetWallets lists all wallets for a user
func (u *WalletUsecase) GetWallets(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error) {
	return u.walletRepo.ListByUserID(ctx, userID)
}

// DeleteWallet soft deletes a SECONDARY wallet. MAIN and SAVINGS
// wallets back the ledger and cannot be removed.
func (u *WalletUsecase) DeleteWallet(ctx context.Context, userID, walletID uuid.UUID) error {
	wallet, err := u.ResolveOwned(ctx, userID, walletID)
	if err != nil {
		return err
	}
	if wallet.WalletType != entities.WalletTypeSecondary {
		return domainerrors.NewError("only secondary wallets can be deleted", domainerrors.ErrInvalidInput)
	}
	if wallet.Balance != 0 {
		return domainerrors.NewError("wallet must be empty before deletion", domainerrors.ErrInvalidInput)
	}
	return u.walletRepo.SoftDelete(ctx, walletID)
}

func isDuplicateKey(err error) bool {
	type coder interface{ SQLState() string }
	var c coder
	if errors.As(err, &c) {
		return c.SQLState() == "23505"
	}
	return false
}
