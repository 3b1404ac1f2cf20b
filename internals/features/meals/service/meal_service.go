// file: internals/features/meals/service/meal_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	activity "messku_backend/internals/features/activity/service"
	"messku_backend/internals/features/meals/model"
	memberService "messku_backend/internals/features/members/service"
	messModel "messku_backend/internals/features/messes/model"
	"messku_backend/internals/helpers/dates"
	"messku_backend/internals/helpers/errs"
)

// Actor: identitas caller yang sudah diresolve boundary layer.
type Actor struct {
	MemberID   uuid.UUID
	MessID     uuid.UUID
	Privileged bool
}

type MealService struct {
	DB      *gorm.DB
	Members *memberService.Directory

	// Now injectable supaya pengecekan "tanggal lampau" deterministik di test.
	Now func() time.Time
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{
		DB:      db,
		Members: memberService.NewDirectory(db),
		Now:     time.Now,
	}
}

func (s *MealService) today() time.Time {
	return dates.TruncateToDay(s.Now())
}

/* =========================
   Create satu hari
   ========================= */

type CreateMealInput struct {
	MemberID uuid.UUID
	MessID   uuid.UUID
	Date     time.Time
	Slots    []model.Slot
}

func (s *MealService) CreateMeal(actor Actor, in CreateMealInput) (*model.MealRecord, error) {
	if err := validateSlots(in.Slots); err != nil {
		return nil, err
	}
	if err := s.canManage(actor, in.MemberID, in.MessID); err != nil {
		return nil, err
	}

	date := dates.TruncateToDay(in.Date)
	if date.Before(s.today()) {
		return nil, errs.InvalidDate("tidak bisa membuat catatan makan di tanggal lampau")
	}

	var rec *model.MealRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireAliveMess(tx, in.MessID); err != nil {
			return err
		}
		if _, err := s.Members.RequireApprovedOfMess(tx, in.MemberID, in.MessID); err != nil {
			return err
		}

		r := model.DefaultRecord(in.MessID, in.MemberID, date)
		r.ApplySlots(in.Slots)
		if err := tx.Create(&r).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.Conflict("catatan makan untuk tanggal ini sudah ada")
			}
			return err
		}
		rec = &r
		return activity.Record(tx, activity.Entry{
			MessID:      in.MessID,
			Entity:      "meal_record",
			EntityID:    r.MealRecordID,
			Action:      "created",
			PerformedBy: actor.MemberID,
			Metadata:    map[string]any{"date": dates.FormatYMD(date)},
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

/* =========================
   Toggle rentang tanggal
   ========================= */

type ToggleRangeInput struct {
	MemberID  uuid.UUID
	MessID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Slots     []model.Slot
}

// ToggleRange: upsert per-hari dalam SATU transaction. Gagal di tengah
// membatalkan semua hari yang sudah diproses pada panggilan ini
// (beda dengan generator bulanan yang best-effort).
func (s *MealService) ToggleRange(actor Actor, in ToggleRangeInput) ([]model.MealRecord, error) {
	if err := validateSlots(in.Slots); err != nil {
		return nil, err
	}
	if err := s.canManage(actor, in.MemberID, in.MessID); err != nil {
		return nil, err
	}

	start := dates.TruncateToDay(in.StartDate)
	end := dates.TruncateToDay(in.EndDate)
	if start.After(end) {
		return nil, errs.InvalidDateRange("tanggal mulai melewati tanggal akhir")
	}
	if start.Before(s.today()) {
		return nil, errs.InvalidDate("tidak bisa mengubah catatan makan di tanggal lampau")
	}

	var touched []model.MealRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireAliveMess(tx, in.MessID); err != nil {
			return err
		}
		if _, err := s.Members.RequireApprovedOfMess(tx, in.MemberID, in.MessID); err != nil {
			return err
		}

		// Iterasi ascending → hasil otomatis terurut naik per tanggal.
		if err := dates.EachDay(start, end, func(day time.Time) error {
			var r model.MealRecord
			err := model.ScopeAlive(tx).
				Where("meal_record_member_id = ? AND meal_record_mess_id = ? AND meal_record_date = ?",
					in.MemberID, in.MessID, day).
				First(&r).Error
			switch {
			case err == nil:
				r.ApplySlots(in.Slots)
				if err := tx.Save(&r).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				r = model.DefaultRecord(in.MessID, in.MemberID, day)
				r.ApplySlots(in.Slots)
				if err := tx.Create(&r).Error; err != nil {
					return err
				}
			default:
				return err
			}
			touched = append(touched, r)
			return nil
		}); err != nil {
			return err
		}

		// audit ringkas satu entry per panggilan, ikut commit/rollback
		// bersama perubahan yang dicatatnya
		return activity.Record(tx, activity.Entry{
			MessID:      in.MessID,
			Entity:      "meal_record",
			EntityID:    in.MemberID,
			Action:      "range_toggled",
			PerformedBy: actor.MemberID,
			Metadata: map[string]any{
				"start": dates.FormatYMD(start),
				"end":   dates.FormatYMD(end),
				"days":  len(touched),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return touched, nil
}

/* =========================
   Update / Delete satu record
   ========================= */

type UpdateMealInput struct {
	Date  *time.Time
	Slots []model.Slot
}

func (s *MealService) UpdateMeal(actor Actor, mealID uuid.UUID, in UpdateMealInput) (*model.MealRecord, error) {
	if err := validateSlots(in.Slots); err != nil {
		return nil, err
	}

	var rec model.MealRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := model.ScopeAlive(tx).First(&rec, "meal_record_id = ?", mealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("catatan makan tidak ditemukan")
			}
			return err
		}
		if err := s.canManage(actor, rec.MealRecordMemberID, rec.MealRecordMessID); err != nil {
			return err
		}

		if in.Date != nil {
			newDate := dates.TruncateToDay(*in.Date)
			if newDate.Before(s.today()) {
				return errs.InvalidDate("tanggal catatan tidak boleh dipindah ke masa lalu")
			}
			rec.MealRecordDate = newDate
		}
		rec.ApplySlots(in.Slots)

		if err := tx.Save(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.Conflict("catatan makan untuk tanggal tujuan sudah ada")
			}
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      rec.MealRecordMessID,
			Entity:      "meal_record",
			EntityID:    rec.MealRecordID,
			Action:      "updated",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MealService) DeleteMeal(actor Actor, mealID uuid.UUID) error {
	if !actor.Privileged {
		return errs.Forbidden("hanya admin/manager yang boleh menghapus catatan makan")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var rec model.MealRecord
		if err := model.ScopeAlive(tx).First(&rec, "meal_record_id = ?", mealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("catatan makan tidak ditemukan")
			}
			return err
		}
		if err := tx.Model(&rec).Update("meal_record_deleted_at", s.Now()).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      rec.MealRecordMessID,
			Entity:      "meal_record",
			EntityID:    rec.MealRecordID,
			Action:      "deleted",
			PerformedBy: actor.MemberID,
		})
	})
}

/* =========================
   internal
   ========================= */

// canManage: pemilik record atau role privileged; non-privileged terkunci di mess-nya.
func (s *MealService) canManage(actor Actor, memberID, messID uuid.UUID) error {
	if actor.Privileged {
		return nil
	}
	if actor.MemberID != memberID {
		return errs.Forbidden("tidak boleh mengelola catatan makan member lain")
	}
	if actor.MessID != messID {
		return errs.Forbidden("tidak boleh mengelola catatan makan mess lain")
	}
	return nil
}

func (s *MealService) requireAliveMess(tx *gorm.DB, messID uuid.UUID) error {
	var m messModel.Mess
	if err := messModel.ScopeAlive(tx).First(&m, "mess_id = ?", messID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("mess tidak ditemukan")
		}
		return err
	}
	return nil
}

func validateSlots(slots []model.Slot) error {
	for _, s := range slots {
		if !model.IsValidSlotType(s.SlotType) {
			return errs.InvalidSlotType("tipe slot tidak dikenal: " + s.SlotType)
		}
		if s.MealCount < 0 {
			return errs.InvalidSlotType("jumlah makan tidak boleh negatif")
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
