package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MotorcycleModel is a bike a part can be compatible with.
type MotorcycleModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Brand     string    `gorm:"column:brand;not null"`
	Name      string    `gorm:"column:name;not null"`
	YearStart int       `gorm:"column:year_start;not null"`
	YearEnd   int       `gorm:"column:year_end;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *MotorcycleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
