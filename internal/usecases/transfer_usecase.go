package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"saldoku.backend/internal/config"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/domain/repositories"
	"saldoku.backend/pkg/utils"
)

// TransferUsecase moves money between two wallets. The debit, the
// credit and the transaction record commit inside one unit of work, so
// a transfer either happens entirely or leaves no trace.
type TransferUsecase struct {
	uow             repositories.UnitOfWork
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	walletUsecase   *WalletUsecase
	auditSink       *AuditSink
	ledgerCfg       config.LedgerConfig
}

// NewTransferUsecase creates a new transfer usecase
func NewTransferUsecase(
	uow repositories.UnitOfWork,
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	walletUsecase *WalletUsecase,
	auditSink *AuditSink,
	ledgerCfg config.LedgerConfig,
) *TransferUsecase {
	return &TransferUsecase{
		uow:             uow,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		walletUsecase:   walletUsecase,
		auditSink:       auditSink,
		ledgerCfg:       ledgerCfg,
	}
}

// Transfer executes a peer-to-peer transfer from one of the caller's
// wallets to a destination wallet resolved by number or owner email.
func (u *TransferUsecase) Transfer(ctx context.Context, callerID uuid.UUID, input *entities.TransferInput) (*entities.Transaction, error) {
	if input.Amount < u.ledgerCfg.TransferMin {
		return nil, domainerrors.NewError(
			fmt.Sprintf("transfer amount must be at least %d %s", u.ledgerCfg.TransferMin, u.ledgerCfg.Currency),
			domainerrors.ErrInvalidInput,
		)
	}

	sourceID, err := uuid.Parse(input.SourceWalletID)
	if err != nil {
		return nil, domainerrors.NewError("invalid source wallet id", domainerrors.ErrInvalidInput)
	}

	source, err := u.walletUsecase.ResolveOwned(ctx, callerID, sourceID)
	if err != nil {
		return nil, err
	}

	destination, err := u.walletUsecase.ResolveDestination(ctx, input.Destination)
	if err != nil {
		return nil, err
	}

	if source.ID == destination.ID {
		return nil, domainerrors.ErrSelfTransfer
	}

	now := time.Now()
	transaction := &entities.Transaction{
		ID:               utils.GenerateUUIDv7(),
		SenderID:         source.UserID,
		ReceiverID:       destination.UserID,
		SenderWalletID:   source.ID,
		ReceiverWalletID: destination.ID,
		Amount:           input.Amount,
		Currency:         u.ledgerCfg.Currency,
		Status:           entities.TransactionStatusCompleted,
		Description:      input.Description,
		CreatedAt:        now,
		CompletedAt:      null.TimeFrom(now),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.walletRepo.Debit(ctx, source.ID, input.Amount); err != nil {
			return err
		}
		if err := u.walletRepo.Credit(ctx, destination.ID, input.Amount); err != nil {
			return err
		}
		return u.transactionRepo.Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	u.auditSink.Notify(ctx, AuditEvent{
		UserID:  &callerID,
		Action:  entities.ActionTransfer,
		Entity:  "transaction:" + transaction.ID.String(),
		Details: fmt.Sprintf("transferred %d %s from wallet %s to wallet %s", input.Amount, u.ledgerCfg.Currency, source.WalletNumber, destination.WalletNumber),
		Level:   entities.LogLevelSuccess,
	})

	return transaction, nil
}

// GetTransaction returns one transaction if the caller participated in it
func (u *TransferUsecase) GetTransaction(ctx context.Context, callerID, transactionID uuid.UUID) (*entities.Transaction, error) {
	transaction, err := u.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.SenderID != callerID && transaction.ReceiverID != callerID {
		return nil, domainerrors.ErrForbidden
	}
	return transaction, nil
}

// GetHistory lists the caller's transactions, newest first
func (u *TransferUsecase) GetHistory(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	return u.transactionRepo.ListByUserID(ctx, callerID, limit, offset)
}
