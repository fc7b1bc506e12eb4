package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/enums"
)

// SupportTicket is an open customer request handled by the back office.
type SupportTicket struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	SessionID uuid.UUID          `gorm:"column:session_id;type:uuid;not null;index"`
	Email     string             `gorm:"column:email;not null"`
	Subject   string             `gorm:"column:subject;not null"`
	Message   string             `gorm:"column:message;not null"`
	Status    enums.TicketStatus `gorm:"column:status;not null;default:open"`
	Reply     *string            `gorm:"column:reply"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (t *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
