// file: internals/features/meals/model/meal_record_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipe slot makan. Urutan tampil selalu breakfast, lunch, dinner.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
)

var SlotTypes = []string{SlotBreakfast, SlotLunch, SlotDinner}

func IsValidSlotType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

// Slot: representasi satu slot untuk DTO/service.
// Di tabel, ketiga slot diratakan jadi kolom bertipe tegas
// supaya agregasi laporan cukup SUM(CASE ...) tanpa unwind.
type Slot struct {
	SlotType  string `json:"slot_type"`
	IsActive  bool   `json:"is_active"`
	MealCount int    `json:"number_of_meals"`
}

/* =========================
   Model: meal_records
   Maks. satu baris per (member, mess, tanggal) — partial unique index.
   ========================= */

type MealRecord struct {
	MealRecordID uuid.UUID `json:"meal_record_id" gorm:"column:meal_record_id;type:uuid;primaryKey"`

	// tenant scope
	MealRecordMessID   uuid.UUID `json:"meal_record_mess_id"   gorm:"column:meal_record_mess_id;type:uuid;not null;uniqueIndex:uq_meal_record_day,where:meal_record_deleted_at IS NULL"`
	MealRecordMemberID uuid.UUID `json:"meal_record_member_id" gorm:"column:meal_record_member_id;type:uuid;not null;uniqueIndex:uq_meal_record_day,where:meal_record_deleted_at IS NULL"`

	// tanggal kalender, jam selalu 00:00 UTC
	MealRecordDate time.Time `json:"meal_record_date" gorm:"column:meal_record_date;type:date;not null;uniqueIndex:uq_meal_record_day,where:meal_record_deleted_at IS NULL"`

	MealRecordBreakfastActive bool `json:"meal_record_breakfast_active" gorm:"column:meal_record_breakfast_active;not null;default:true"`
	MealRecordBreakfastMeals  int  `json:"meal_record_breakfast_meals"  gorm:"column:meal_record_breakfast_meals;not null;default:0"`

	MealRecordLunchActive bool `json:"meal_record_lunch_active" gorm:"column:meal_record_lunch_active;not null;default:true"`
	MealRecordLunchMeals  int  `json:"meal_record_lunch_meals"  gorm:"column:meal_record_lunch_meals;not null;default:0"`

	MealRecordDinnerActive bool `json:"meal_record_dinner_active" gorm:"column:meal_record_dinner_active;not null;default:true"`
	MealRecordDinnerMeals  int  `json:"meal_record_dinner_meals"  gorm:"column:meal_record_dinner_meals;not null;default:0"`

	MealRecordCreatedAt time.Time  `json:"meal_record_created_at" gorm:"column:meal_record_created_at;autoCreateTime;not null"`
	MealRecordUpdatedAt time.Time  `json:"meal_record_updated_at" gorm:"column:meal_record_updated_at;autoUpdateTime;not null"`
	MealRecordDeletedAt *time.Time `json:"meal_record_deleted_at,omitempty" gorm:"column:meal_record_deleted_at"`
}

func (MealRecord) TableName() string { return "meal_records" }

func (m *MealRecord) BeforeCreate(tx *gorm.DB) error {
	if m.MealRecordID == uuid.Nil {
		m.MealRecordID = uuid.New()
	}
	return nil
}

// ApplySlots menimpa kolom slot dari daftar slot request.
// Slot yang tidak disebut dibiarkan apa adanya.
func (m *MealRecord) ApplySlots(slots []Slot) {
	for _, s := range slots {
		switch strings.ToLower(strings.TrimSpace(s.SlotType)) {
		case SlotBreakfast:
			m.MealRecordBreakfastActive = s.IsActive
			m.MealRecordBreakfastMeals = s.MealCount
		case SlotLunch:
			m.MealRecordLunchActive = s.IsActive
			m.MealRecordLunchMeals = s.MealCount
		case SlotDinner:
			m.MealRecordDinnerActive = s.IsActive
			m.MealRecordDinnerMeals = s.MealCount
		}
	}
}

// SlotsView mengembalikan ketiga slot dalam urutan tetap.
func (m *MealRecord) SlotsView() []Slot {
	return []Slot{
		{SlotType: SlotBreakfast, IsActive: m.MealRecordBreakfastActive, MealCount: m.MealRecordBreakfastMeals},
		{SlotType: SlotLunch, IsActive: m.MealRecordLunchActive, MealCount: m.MealRecordLunchMeals},
		{SlotType: SlotDinner, IsActive: m.MealRecordDinnerActive, MealCount: m.MealRecordDinnerMeals},
	}
}

// DefaultRecord: baris default generator bulanan — semua slot aktif, jumlah 0.
func DefaultRecord(messID, memberID uuid.UUID, date time.Time) MealRecord {
	return MealRecord{
		MealRecordMessID:          messID,
		MealRecordMemberID:        memberID,
		MealRecordDate:            date,
		MealRecordBreakfastActive: true,
		MealRecordLunchActive:     true,
		MealRecordDinnerActive:    true,
	}
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("meal_record_deleted_at IS NULL")
}
