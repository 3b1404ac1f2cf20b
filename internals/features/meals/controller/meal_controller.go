// file: internals/features/meals/controller/meal_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"messku_backend/internals/features/meals/dto"
	"messku_backend/internals/features/meals/model"
	mealService "messku_backend/internals/features/meals/service"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
	"messku_backend/internals/helpers/dates"
)

type MealController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *mealService.MealService
}

func NewMealController(db *gorm.DB) *MealController {
	return &MealController{
		DB:        db,
		Validator: validator.New(),
		Service:   mealService.NewMealService(db),
	}
}

func serviceActor(a helperAuth.Actor) mealService.Actor {
	return mealService.Actor{
		MemberID:   a.MemberID,
		MessID:     a.MessID,
		Privileged: a.IsPrivileged(),
	}
}

// ========== Create (satu hari) ==========
func (ctl *MealController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	memberID, messID, date, slots, err := req.ToInput()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "meal_record_date invalid")
	}

	rec, err := ctl.Service.CreateMeal(serviceActor(actor), mealService.CreateMealInput{
		MemberID: memberID,
		MessID:   messID,
		Date:     date,
		Slots:    slots,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "catatan makan dibuat", dto.FromModelMealRecord(rec))
}

// ========== Toggle rentang tanggal ==========
func (ctl *MealController) ToggleRange(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.ToggleRangeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	start, end, slots, err := req.ToInput()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "tanggal invalid")
	}

	touched, err := ctl.Service.ToggleRange(serviceActor(actor), mealService.ToggleRangeInput{
		MemberID:  req.MealRecordMemberID,
		MessID:    req.MealRecordMessID,
		StartDate: start,
		EndDate:   end,
		Slots:     slots,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "catatan makan diperbarui", dto.FromModelMealRecords(touched))
}

// ========== List milik member ==========
func (ctl *MealController) List(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	memberID := actor.MemberID
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id invalid")
		}
		if id != actor.MemberID && !actor.IsPrivileged() {
			return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat catatan member lain")
		}
		memberID = id
	}

	q := model.ScopeAlive(ctl.DB.Model(&model.MealRecord{})).
		Where("meal_record_member_id = ?", memberID)

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := dates.ParseYMD(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from invalid")
		}
		q = q.Where("meal_record_date >= ?", from)
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := dates.ParseYMD(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to invalid")
		}
		q = q.Where("meal_record_date <= ?", to)
	}

	paging := helper.ResolvePaging(c, 31, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.MealRecord
	if err := q.Order("meal_record_date asc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelMealRecords(rows), &p)
}

// ========== Get by ID ==========
func (ctl *MealController) GetByID(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "meal_record_id invalid")
	}

	var rec model.MealRecord
	if err := model.ScopeAlive(ctl.DB).First(&rec, "meal_record_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "catatan makan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// member biasa hanya boleh melihat catatan miliknya sendiri
	if rec.MealRecordMemberID != actor.MemberID && !actor.IsPrivileged() {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat catatan member lain")
	}
	return helper.JsonOK(c, "", dto.FromModelMealRecord(&rec))
}

// ========== Patch ==========
func (ctl *MealController) Patch(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "meal_record_id invalid")
	}

	var req dto.UpdateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date, slots, err := req.ToInput()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "meal_record_date invalid")
	}

	rec, err := ctl.Service.UpdateMeal(serviceActor(actor), id, mealService.UpdateMealInput{
		Date:  date,
		Slots: slots,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "catatan makan diperbarui", dto.FromModelMealRecord(rec))
}

// ========== Delete ==========
func (ctl *MealController) Delete(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "meal_record_id invalid")
	}

	if err := ctl.Service.DeleteMeal(serviceActor(actor), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "catatan makan dihapus", fiber.Map{"meal_record_id": id})
}
