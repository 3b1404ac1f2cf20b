// file: internals/features/activity/model/activity_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Model: activity_logs
   Append-only — tidak pernah dibaca untuk keputusan bisnis.
   ========================= */

type ActivityLog struct {
	ActivityLogID uuid.UUID `json:"activity_log_id" gorm:"column:activity_log_id;type:uuid;primaryKey"`

	// tenant scope
	ActivityLogMessID uuid.UUID `json:"activity_log_mess_id" gorm:"column:activity_log_mess_id;type:uuid;not null;index"`

	ActivityLogEntity   string    `json:"activity_log_entity"    gorm:"column:activity_log_entity;type:varchar(40);not null"`
	ActivityLogEntityID uuid.UUID `json:"activity_log_entity_id" gorm:"column:activity_log_entity_id;type:uuid;not null;index"`
	ActivityLogAction   string    `json:"activity_log_action"    gorm:"column:activity_log_action;type:varchar(40);not null"`

	ActivityLogPerformedBy uuid.UUID      `json:"activity_log_performed_by" gorm:"column:activity_log_performed_by;type:uuid;not null"`
	ActivityLogMetadata    datatypes.JSON `json:"activity_log_metadata,omitempty" gorm:"column:activity_log_metadata;type:jsonb"`

	ActivityLogCreatedAt time.Time `json:"activity_log_created_at" gorm:"column:activity_log_created_at;autoCreateTime;not null"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ActivityLogID == uuid.Nil {
		l.ActivityLogID = uuid.New()
	}
	return nil
}
