// file: internals/features/messes/model/mess_counter_model.go
package model

/* =========================
   Model: mess_counters
   Satu baris (counter_id=1) sebagai sequence kode mess.
   ========================= */

type MessCounter struct {
	MessCounterID  int   `json:"mess_counter_id"  gorm:"column:mess_counter_id;primaryKey"`
	MessCounterSeq int64 `json:"mess_counter_seq" gorm:"column:mess_counter_seq;not null;default:0"`
}

func (MessCounter) TableName() string { return "mess_counters" }
