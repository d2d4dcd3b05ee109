package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/infrastructure/models"
)

// TopupRequestRepository implements top-up request data operations
type TopupRequestRepository struct {
	db *gorm.DB
}

// NewTopupRequestRepository creates a new top-up request repository
func NewTopupRequestRepository(db *gorm.DB) *TopupRequestRepository {
	return &TopupRequestRepository{db: db}
}

// Create creates a new top-up request
func (r *TopupRequestRepository) Create(ctx context.Context, req *entities.TopupRequest) error {
	m := &models.TopupRequest{
		ID:            req.ID,
		UserID:        req.UserID,
		WalletID:      req.WalletID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a top-up request by ID
func (r *TopupRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TopupRequest, error) {
	var m models.TopupRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toTopupRequestEntity(&m), nil
}

// ListByUserID lists a user's top-up requests
func (r *TopupRequestRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.TopupRequest, error) {
	var reqModels []models.TopupRequest
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqModels).Error
	if err != nil {
		return nil, err
	}
	return toTopupRequestEntities(reqModels), nil
}

// ListPending lists all pending top-up requests (admin queue)
func (r *TopupRequestRepository) ListPending(ctx context.Context) ([]*entities.TopupRequest, error) {
	var reqModels []models.TopupRequest
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ?", string(entities.TopupStatusPending)).
		Order("created_at ASC").
		Find(&reqModels).Error
	if err != nil {
		return nil, err
	}
	return toTopupRequestEntities(reqModels), nil
}

// SettleIfPending moves a request out of PENDING exactly once. The
// guard lives in the WHERE clause, so a concurrent second settlement
// loses the race and gets ErrAlreadySettled.
func (r *TopupRequestRepository) SettleIfPending(ctx context.Context, id uuid.UUID, status entities.TopupStatus, settledBy uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.TopupRequest{}).
		Where("id = ? AND status = ?", id, string(entities.TopupStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"settled_by": settledBy,
			"settled_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.TopupRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrAlreadySettled
	}
	return nil
}

func toTopupRequestEntities(reqModels []models.TopupRequest) []*entities.TopupRequest {
	var reqs []*entities.TopupRequest
	for _, m := range reqModels {
		model := m
		reqs = append(reqs, toTopupRequestEntity(&model))
	}
	return reqs
}

func toTopupRequestEntity(m *models.TopupRequest) *entities.TopupRequest {
	return &entities.TopupRequest{
		ID:            m.ID,
		UserID:        m.UserID,
		WalletID:      m.WalletID,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		Status:        entities.TopupStatus(m.Status),
		SettledBy:     m.SettledBy,
		SettledAt:     null.TimeFromPtr(m.SettledAt),
		CreatedAt:     m.CreatedAt,
	}
}
