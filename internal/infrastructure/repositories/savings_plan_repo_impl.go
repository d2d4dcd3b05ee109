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

// SavingsPlanRepository implements savings plan data operations
type SavingsPlanRepository struct {
	db *gorm.DB
}

// NewSavingsPlanRepository creates a new savings plan repository
func NewSavingsPlanRepository(db *gorm.DB) *SavingsPlanRepository {
	return &SavingsPlanRepository{db: db}
}

// Create creates a new savings plan
func (r *SavingsPlanRepository) Create(ctx context.Context, plan *entities.SavingsPlan) error {
	m := &models.SavingsPlan{
		ID:            plan.ID,
		UserID:        plan.UserID,
		WalletID:      plan.WalletID,
		Title:         plan.Title,
		Description:   plan.Description,
		GoalAmount:    plan.GoalAmount,
		CurrentAmount: plan.CurrentAmount,
		TargetDate:    plan.TargetDate,
		Status:        string(plan.Status),
		Category:      plan.Category,
		Priority:      plan.Priority,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a savings plan by ID
func (r *SavingsPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SavingsPlan, error) {
	var m models.SavingsPlan
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toSavingsPlanEntity(&m), nil
}

// ListByUserID lists a user's savings plans
func (r *SavingsPlanRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.SavingsPlan, error) {
	var planModels []models.SavingsPlan
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&planModels).Error
	if err != nil {
		return nil, err
	}

	var plans []*entities.SavingsPlan
	for _, m := range planModels {
		model := m
		plans = append(plans, toSavingsPlanEntity(&model))
	}
	return plans, nil
}

// Update updates plan metadata; currentAmount is untouchable here
func (r *SavingsPlanRepository) Update(ctx context.Context, plan *entities.SavingsPlan) error {
	updates := map[string]interface{}{
		"title":       plan.Title,
		"description": plan.Description,
		"goal_amount": plan.GoalAmount,
		"target_date": plan.TargetDate,
		"category":    plan.Category,
		"priority":    plan.Priority,
		"updated_at":  time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.SavingsPlan{}).Where("id = ?", plan.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus updates a plan's lifecycle status
func (r *SavingsPlanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SavingsPlanStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.SavingsPlan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
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

// AddToCurrent applies a signed delta to currentAmount as one
// conditional update; a negative delta never undershoots zero.
func (r *SavingsPlanRepository) AddToCurrent(ctx context.Context, id uuid.UUID, delta int64) error {
	if delta == 0 {
		return domainerrors.ErrInvalidInput
	}
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Model(&models.SavingsPlan{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("current_amount >= ?", -delta)
	}
	result := query.Updates(map[string]interface{}{
		"current_amount": gorm.Expr("current_amount + ?", delta),
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.SavingsPlan{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInsufficientFunds
	}
	return nil
}

// SoftDelete soft deletes a savings plan
func (r *SavingsPlanRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.SavingsPlan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListCompletable lists ACTIVE plans whose goal has been reached
func (r *SavingsPlanRepository) ListCompletable(ctx context.Context) ([]*entities.SavingsPlan, error) {
	var planModels []models.SavingsPlan
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND current_amount >= goal_amount", string(entities.SavingsPlanActive)).
		Find(&planModels).Error
	if err != nil {
		return nil, err
	}

	var plans []*entities.SavingsPlan
	for _, m := range planModels {
		model := m
		plans = append(plans, toSavingsPlanEntity(&model))
	}
	return plans, nil
}

func toSavingsPlanEntity(m *models.SavingsPlan) *entities.SavingsPlan {
	return &entities.SavingsPlan{
		ID:            m.ID,
		UserID:        m.UserID,
		WalletID:      m.WalletID,
		Title:         m.Title,
		Description:   m.Description,
		GoalAmount:    m.GoalAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		Status:        entities.SavingsPlanStatus(m.Status),
		Category:      m.Category,
		Priority:      m.Priority,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
