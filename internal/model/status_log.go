package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MissionStatusLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	MissionID uuid.UUID      `gorm:"type:uuid;not null" json:"mission_id"`
	OldStatus *MissionStatus `gorm:"type:varchar(32)" json:"old_status"`
	NewStatus MissionStatus  `gorm:"type:varchar(32);not null" json:"new_status"`
	Note      string         `gorm:"type:text" json:"note"`
	ChangedBy *uuid.UUID     `gorm:"type:uuid" json:"changed_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (MissionStatusLog) TableName() string {
	return "mission_status_log"
}

func (l *MissionStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
