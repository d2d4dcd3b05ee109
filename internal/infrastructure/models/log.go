package models

import (
	"time"

	"github.com/google/uuid"
)

type Log struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(50);not null;index"`
	Entity    string     `gorm:"type:varchar(50);not null"`
	Details   string     `gorm:"type:text"`
	Level     string     `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
}
