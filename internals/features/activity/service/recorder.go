// file: internals/features/activity/service/recorder.go
package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"messku_backend/internals/features/activity/model"
)

// Entry: satu kejadian audit.
type Entry struct {
	MessID      uuid.UUID
	Entity      string
	EntityID    uuid.UUID
	Action      string
	PerformedBy uuid.UUID
	Metadata    any // opsional, diserialisasi ke JSONB
}

// Record menulis satu baris audit memakai koneksi/tx pemanggil,
// supaya audit ikut commit/abort bersama mutasi yang dia catat.
func Record(tx *gorm.DB, e Entry) error {
	row := model.ActivityLog{
		ActivityLogMessID:      e.MessID,
		ActivityLogEntity:      e.Entity,
		ActivityLogEntityID:    e.EntityID,
		ActivityLogAction:      e.Action,
		ActivityLogPerformedBy: e.PerformedBy,
	}
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			row.ActivityLogMetadata = datatypes.JSON(b)
		}
	}
	return tx.Create(&row).Error
}
