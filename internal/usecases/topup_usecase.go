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

// TopupUsecase handles the top-up request lifecycle: a user files a
// request, an admin settles it exactly once. Settlement rides a
// PENDING-guarded conditional update, so two concurrent approvals
// credit the wallet at most once.
type TopupUsecase struct {
	uow             repositories.UnitOfWork
	topupRepo       repositories.TopupRequestRepository
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	walletUsecase   *WalletUsecase
	auditSink       *AuditSink
	ledgerCfg       config.LedgerConfig
}

// NewTopupUsecase creates a new top-up usecase
func NewTopupUsecase(
	uow repositories.UnitOfWork,
	topupRepo repositories.TopupRequestRepository,
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	walletUsecase *WalletUsecase,
	auditSink *AuditSink,
	ledgerCfg config.LedgerConfig,
) *TopupUsecase {
	return &TopupUsecase{
		uow:             uow,
		topupRepo:       topupRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		walletUsecase:   walletUsecase,
		auditSink:       auditSink,
		ledgerCfg:       ledgerCfg,
	}
}

// CreateRequest files a top-up request against one of the caller's
// wallets. No money moves until an admin approves it.
func (u *TopupUsecase) CreateRequest(ctx context.Context, userID uuid.UUID, input *entities.CreateTopupInput) (*entities.TopupRequest, error) {
	walletID, err := uuid.Parse(input.WalletID)
	if err != nil {
		return nil, domainerrors.NewError("invalid wallet id", domainerrors.ErrInvalidInput)
	}

	if _, err := u.walletUsecase.ResolveOwned(ctx, userID, walletID); err != nil {
		return nil, err
	}

	request := &entities.TopupRequest{
		ID:            utils.GenerateUUIDv7(),
		UserID:        userID,
		WalletID:      walletID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Status:        entities.TopupStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := u.topupRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	u.auditSink.Notify(ctx, AuditEvent{
		UserID:  &userID,
		Action:  entities.ActionTopupRequested,
		Entity:  "topup_request:" + request.ID.String(),
		Details: fmt.Sprintf("requested top-up of %d %s via %s", input.Amount, u.ledgerCfg.Currency, input.PaymentMethod),
		Level:   entities.LogLevelInfo,
	})

	return request, nil
}

// GetMyRequests lists the caller's top-up requests
func (u *TopupUsecase) GetMyRequests(ctx context.Context, userID uuid.UUID) ([]*entities.TopupRequest, error) {
	return u.topupRepo.ListByUserID(ctx, userID)
}

// GetPendingRequests lists all requests awaiting an admin decision
func (u *TopupUsecase) GetPendingRequests(ctx context.Context, callerRole entities.UserRole) ([]*entities.TopupRequest, error) {
	if !callerRole.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	return u.topupRepo.ListPending(ctx)
}

// Settle applies an admin decision to a pending request. Approval
// credits the wallet and records a transaction in the same unit of
// work as the status flip; rejection only flips the status. A request
// that is no longer PENDING returns ErrAlreadySettled.
//
// The funds come from outside the ledger, so the approving admin and
// their MAIN wallet stand in as the nominal sender on the recorded
// transaction.
func (u *TopupUsecase) Settle(ctx context.Context, adminID uuid.UUID, adminRole entities.UserRole, requestID uuid.UUID, input *entities.SettleTopupInput) (*entities.TopupRequest, error) {
	if !adminRole.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if input.Decision != entities.TopupStatusApproved && input.Decision != entities.TopupStatusRejected {
		return nil, domainerrors.NewError("decision must be APPROVED or REJECTED", domainerrors.ErrInvalidInput)
	}

	request, err := u.topupRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.topupRepo.SettleIfPending(ctx, requestID, input.Decision, adminID); err != nil {
			return err
		}
		if input.Decision != entities.TopupStatusApproved {
			return nil
		}
		if err := u.walletRepo.Credit(ctx, request.WalletID, request.Amount); err != nil {
			return err
		}
		adminWallet, err := u.walletUsecase.ResolveOwnedByType(ctx, adminID, entities.WalletTypeMain)
		if err != nil {
			return err
		}
		now := time.Now()
		return u.transactionRepo.Create(ctx, &entities.Transaction{
			ID:               utils.GenerateUUIDv7(),
			SenderID:         adminID,
			ReceiverID:       request.UserID,
			SenderWalletID:   adminWallet.ID,
			ReceiverWalletID: request.WalletID,
			Amount:           request.Amount,
			Currency:         u.ledgerCfg.Currency,
			Status:           entities.TransactionStatusCompleted,
			Description:      "top-up via " + request.PaymentMethod,
			CreatedAt:        now,
			CompletedAt:      null.TimeFrom(now),
		})
	})
	if err != nil {
		return nil, err
	}

	action := entities.ActionTopupApproved
	level := entities.LogLevelSuccess
	if input.Decision == entities.TopupStatusRejected {
		action = entities.ActionTopupRejected
		level = entities.LogLevelWarning
	}
	u.auditSink.Notify(ctx, AuditEvent{
		UserID:  &adminID,
		Action:  action,
		Entity:  "topup_request:" + request.ID.String(),
		Details: fmt.Sprintf("settled top-up of %d %s for user %s", request.Amount, u.ledgerCfg.Currency, request.UserID),
		Level:   level,
	})

	return u.topupRepo.GetByID(ctx, requestID)
}
