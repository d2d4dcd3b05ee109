package repositories

import (
	"context"

	"gorm.io/gorm"
	"saldoku.backend/internal/domain/entities"
	domainRepos "saldoku.backend/internal/domain/repositories"
	"saldoku.backend/internal/infrastructure/models"
)

// LogRepository implements audit log data operations
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create appends an audit record. Runs on the base DB, never inside a
// unit of work: an audit failure must not roll back the operation and
// an operation rollback must not take the audit trail with it.
func (r *LogRepository) Create(ctx context.Context, log *entities.Log) error {
	m := &models.Log{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Entity:    log.Entity,
		Details:   log.Details,
		Level:     string(log.Level),
		CreatedAt: log.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// List lists audit records, newest first
func (r *LogRepository) List(ctx context.Context, filter domainRepos.LogFilter, limit, offset int) ([]*entities.Log, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.Log{})

	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Level != "" {
		db = db.Where("level = ?", string(filter.Level))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var logModels []models.Log
	if err := query.Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	var logs []*entities.Log
	for _, m := range logModels {
		model := m
		logs = append(logs, &entities.Log{
			ID:        model.ID,
			UserID:    model.UserID,
			Action:    model.Action,
			Entity:    model.Entity,
			Details:   model.Details,
			Level:     entities.LogLevel(model.Level),
			CreatedAt: model.CreatedAt,
		})
	}
	return logs, total, nil
}
