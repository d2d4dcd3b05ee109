package usecases

import (
	"context"
	"errors"
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

// SavingsUsecase manages savings plans and the money moving in and out
// of their backing SAVINGS wallet. Each user has at most one SAVINGS
// wallet, created lazily with their first plan; a plan's currentAmount
// and the wallet balance only ever move together in one unit of work.
type SavingsUsecase struct {
	uow             repositories.UnitOfWork
	planRepo        repositories.SavingsPlanRepository
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	walletUsecase   *WalletUsecase
	auditSink       *AuditSink
	ledgerCfg       config.LedgerConfig
}

// NewSavingsUsecase creates a new savings usecase
func NewSavingsUsecase(
	uow repositories.UnitOfWork,
	planRepo repositories.SavingsPlanRepository,
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	walletUsecase *WalletUsecase,
	auditSink *AuditSink,
	ledgerCfg config.LedgerConfig,
) *SavingsUsecase {
	return &SavingsUsecase{
		uow:             uow,
		planRepo:        planRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		walletUsecase:   walletUsecase,
		auditSink:       auditSink,
		ledgerCfg:       ledgerCfg,
	}
}

// CreatePlan creates a savings plan, creating the user's SAVINGS wallet
// first if they do not have one yet. Wallet and plan commit together.
func (u *SavingsUsecase) CreatePlan(ctx context.Context, userID uuid.UUID, input *entities.CreateSavingsPlanInput) (*entities.SavingsPlan, error) {
	if !input.TargetDate.After(time.Now()) {
		return nil, domainerrors.NewError("target date must be in the future", domainerrors.ErrInvalidInput)
	}

	now := time.Now()
	plan := &entities.SavingsPlan{
		ID:            utils.GenerateUUIDv7(),
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		GoalAmount:    input.GoalAmount,
		CurrentAmount: 0,
		TargetDate:    input.TargetDate,
		Status:        entities.SavingsPlanActive,
		Category:      input.Category,
		Priority:      input.Priority,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.walletUsecase.ResolveOwnedByType(ctx, userID, entities.WalletTypeSavings)
		if errors.Is(err, domainerrors.ErrNotFound) {
			wallet, err = u.walletUsecase.CreateWallet(ctx, userID, "Savings", entities.WalletTypeSavings)
		}
		if err != nil {
			return err
		}
		plan.WalletID = wallet.ID
		return u.planRepo.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan returns one of the caller's plans
func (u *SavingsUsecase) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*entities.SavingsPlan, error) {
	plan, err := u.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	return plan, nil
}

// GetPlans lists the caller's plans
func (u *SavingsUsecase) GetPlans(ctx context.Context, userID uuid.UUID) ([]*entities.SavingsPlan, error) {
	return u.planRepo.ListByUserID(ctx, userID)
}

// UpdatePlan updates plan metadata. CurrentAmount is untouchable here;
// it only moves through Move.
func (u *SavingsUsecase) UpdatePlan(ctx context.Context, userID, planID uuid.UUID, input *entities.UpdateSavingsPlanInput) (*entities.SavingsPlan, error) {
	plan, err := u.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		plan.Title = *input.Title
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.GoalAmount != nil {
		plan.GoalAmount = *input.GoalAmount
	}
	if input.TargetDate != nil {
		if !input.TargetDate.After(time.Now()) {
			return nil, domainerrors.NewError("target date must be in the future", domainerrors.ErrInvalidInput)
		}
		plan.TargetDate = *input.TargetDate
	}
	if input.Category != nil {
		plan.Category = *input.Category
	}
	if input.Priority != nil {
		plan.Priority = *input.Priority
	}
	plan.UpdatedAt = time.Now()

	if err := u.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan soft deletes a plan. A plan still holding money cannot be
// deleted; the user must redeem it first.
func (u *SavingsUsecase) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	plan, err := u.GetPlan(ctx, userID, planID)
	if err != nil {
		return err
	}
	if plan.CurrentAmount > 0 {
		return domainerrors.NewError("plan still holds funds, redeem before deleting", domainerrors.ErrInvalidInput)
	}
	return u.planRepo.SoftDelete(ctx, planID)
}

// Move moves money between the caller's MAIN wallet and a plan's
// backing SAVINGS wallet. TOPUP requires an ACTIVE plan; REDEEM is
// allowed in any state so money is never stranded. The wallet movement,
// the plan delta and the transaction record commit atomically.
func (u *SavingsUsecase) Move(ctx context.Context, userID, planID uuid.UUID, input *entities.SavingsMovementInput) (*entities.SavingsPlan, error) {
	direction, ok := entities.ParseSavingsDirection(input.Direction)
	if !ok {
		return nil, domainerrors.ErrInvalidDirection
	}

	plan, err := u.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if direction == entities.SavingsDirectionTopup && plan.Status != entities.SavingsPlanActive {
		return nil, domainerrors.NewError("can only top up an active plan", domainerrors.ErrInvalidInput)
	}

	mainWallet, err := u.walletUsecase.ResolveOwnedByType(ctx, userID, entities.WalletTypeMain)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transaction := &entities.Transaction{
		ID:          utils.GenerateUUIDv7(),
		SenderID:    userID,
		ReceiverID:  userID,
		Amount:      input.Amount,
		Currency:    u.ledgerCfg.Currency,
		Status:      entities.TransactionStatusCompleted,
		CreatedAt:   now,
		CompletedAt: null.TimeFrom(now),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		switch direction {
		case entities.SavingsDirectionTopup:
			transaction.SenderWalletID = mainWallet.ID
			transaction.ReceiverWalletID = plan.WalletID
			transaction.Description = "savings top-up: " + plan.Title
			if err := u.walletRepo.Debit(ctx, mainWallet.ID, input.Amount); err != nil {
				return err
			}
			if err := u.walletRepo.Credit(ctx, plan.WalletID, input.Amount); err != nil {
				return err
			}
			if err := u.planRepo.AddToCurrent(ctx, plan.ID, input.Amount); err != nil {
				return err
			}
		case entities.SavingsDirectionRedeem:
			transaction.SenderWalletID = plan.WalletID
			transaction.ReceiverWalletID = mainWallet.ID
			transaction.Description = "savings redeem: " + plan.Title
			if err := u.planRepo.AddToCurrent(ctx, plan.ID, -input.Amount); err != nil {
				return err
			}
			if err := u.walletRepo.Debit(ctx, plan.WalletID, input.Amount); err != nil {
				return err
			}
			if err := u.walletRepo.Credit(ctx, mainWallet.ID, input.Amount); err != nil {
				return err
			}
		}
		return u.transactionRepo.Create(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	action := entities.ActionSavingsTopup
	if direction == entities.SavingsDirectionRedeem {
		action = entities.ActionSavingsRedeem
	}
	u.auditSink.Notify(ctx, AuditEvent{
		UserID:  &userID,
		Action:  action,
		Entity:  "savings_plan:" + plan.ID.String(),
		Details: fmt.Sprintf("%s %d %s on plan %q", direction, input.Amount, u.ledgerCfg.Currency, plan.Title),
		Level:   entities.LogLevelSuccess,
	})

	return u.planRepo.GetByID(ctx, plan.ID)
}
