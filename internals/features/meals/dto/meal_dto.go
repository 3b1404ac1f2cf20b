// file: internals/features/meals/dto/meal_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"messku_backend/internals/features/meals/model"
	"messku_backend/internals/helpers/dates"
)

/* =========================================================
   Shared slot payload
   ========================================================= */

type SlotPayload struct {
	SlotType  string `json:"slot_type" validate:"required"`
	IsActive  bool   `json:"is_active"`
	MealCount int    `json:"number_of_meals" validate:"gte=0"`
}

func toModelSlots(in []SlotPayload) []model.Slot {
	out := make([]model.Slot, 0, len(in))
	for _, s := range in {
		out = append(out, model.Slot{SlotType: s.SlotType, IsActive: s.IsActive, MealCount: s.MealCount})
	}
	return out
}

/* =========================================================
   REQUEST: Create (satu hari)
   ========================================================= */

type CreateMealRequest struct {
	MealRecordMemberID uuid.UUID     `json:"meal_record_member_id" validate:"required"`
	MealRecordMessID   uuid.UUID     `json:"meal_record_mess_id"   validate:"required"`
	MealRecordDate     string        `json:"meal_record_date"      validate:"required,datetime=2006-01-02"`
	Slots              []SlotPayload `json:"slots" validate:"omitempty,max=3,dive"`
}

func (r *CreateMealRequest) ToInput() (memberID, messID uuid.UUID, date time.Time, slots []model.Slot, err error) {
	date, err = dates.ParseYMD(r.MealRecordDate)
	if err != nil {
		return
	}
	return r.MealRecordMemberID, r.MealRecordMessID, date, toModelSlots(r.Slots), nil
}

/* =========================================================
   REQUEST: Toggle rentang
   ========================================================= */

type ToggleRangeRequest struct {
	MealRecordMemberID uuid.UUID     `json:"meal_record_member_id" validate:"required"`
	MealRecordMessID   uuid.UUID     `json:"meal_record_mess_id"   validate:"required"`
	StartDate          string        `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string        `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Slots              []SlotPayload `json:"slots" validate:"required,min=1,max=3,dive"`
}

func (r *ToggleRangeRequest) ToInput() (start, end time.Time, slots []model.Slot, err error) {
	start, err = dates.ParseYMD(r.StartDate)
	if err != nil {
		return
	}
	end, err = dates.ParseYMD(r.EndDate)
	if err != nil {
		return
	}
	return start, end, toModelSlots(r.Slots), nil
}

/* =========================================================
   REQUEST: Update satu record
   ========================================================= */

type UpdateMealRequest struct {
	MealRecordDate *string       `json:"meal_record_date" validate:"omitempty,datetime=2006-01-02"`
	Slots          []SlotPayload `json:"slots" validate:"omitempty,max=3,dive"`
}

func (r *UpdateMealRequest) ToInput() (date *time.Time, slots []model.Slot, err error) {
	if r.MealRecordDate != nil {
		d, perr := dates.ParseYMD(*r.MealRecordDate)
		if perr != nil {
			err = perr
			return
		}
		date = &d
	}
	return date, toModelSlots(r.Slots), nil
}

/* =========================================================
   RESPONSE
   ========================================================= */

type MealRecordResponse struct {
	MealRecordID       uuid.UUID    `json:"meal_record_id"`
	MealRecordMessID   uuid.UUID    `json:"meal_record_mess_id"`
	MealRecordMemberID uuid.UUID    `json:"meal_record_member_id"`
	MealRecordDate     string       `json:"meal_record_date"`
	Slots              []model.Slot `json:"slots"`
	MealRecordUpdated  time.Time    `json:"meal_record_updated_at"`
}

func FromModelMealRecord(m *model.MealRecord) MealRecordResponse {
	return MealRecordResponse{
		MealRecordID:       m.MealRecordID,
		MealRecordMessID:   m.MealRecordMessID,
		MealRecordMemberID: m.MealRecordMemberID,
		MealRecordDate:     dates.FormatYMD(m.MealRecordDate),
		Slots:              m.SlotsView(),
		MealRecordUpdated:  m.MealRecordUpdatedAt,
	}
}

func FromModelMealRecords(rows []model.MealRecord) []MealRecordResponse {
	out := make([]MealRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModelMealRecord(&rows[i]))
	}
	return out
}
