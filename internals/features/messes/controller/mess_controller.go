// file: internals/features/messes/controller/mess_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activity "messku_backend/internals/features/activity/service"
	"messku_backend/internals/features/messes/dto"
	"messku_backend/internals/features/messes/model"
	messService "messku_backend/internals/features/messes/service"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
)

type MessController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewMessController(db *gorm.DB) *MessController {
	return &MessController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ========== Create ==========
// Kode mess dialokasikan atomik di dalam transaction yang sama dengan insert.
func (ctl *MessController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsureAdmin(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateMessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		code, err := messService.NextMessCode(tx)
		if err != nil {
			return err
		}
		m.MessCode = code
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      m.MessID,
			Entity:      "mess",
			EntityID:    m.MessID,
			Action:      "created",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "nama mess sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "mess dibuat", dto.FromModelMess(m))
}

// ========== Get by ID ==========
func (ctl *MessController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "mess_id invalid")
	}

	var m model.Mess
	if err := model.ScopeAlive(ctl.DB).First(&m, "mess_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "mess tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.FromModelMess(&m))
}

// ========== List ==========
func (ctl *MessController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := model.ScopeAlive(ctl.DB.Model(&model.Mess{}))
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("mess_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Mess
	if err := q.Order("mess_code asc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelMesses(rows), &p)
}

// ========== Patch ==========
func (ctl *MessController) Patch(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsureAdmin(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "mess_id invalid")
	}

	var req dto.PatchMessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.Mess
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := model.ScopeAlive(tx).First(&m, "mess_id = ?", id).Error; err != nil {
			return err
		}
		req.ApplyTo(&m)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      m.MessID,
			Entity:      "mess",
			EntityID:    m.MessID,
			Action:      "updated",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "mess tidak ditemukan")
		}
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "nama mess sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "mess diperbarui", dto.FromModelMess(&m))
}

// ========== Delete (soft delete) ==========
func (ctl *MessController) Delete(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsureAdmin(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "mess_id invalid")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Mess{}).
			Where("mess_id = ? AND mess_deleted_at IS NULL", id).
			Update("mess_deleted_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return activity.Record(tx, activity.Entry{
			MessID:      id,
			Entity:      "mess",
			EntityID:    id,
			Action:      "deleted",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "mess tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "mess dihapus", fiber.Map{"mess_id": id})
}

/* =========================
   internal
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

// Deteksi unique violation Postgres (kode "23505")
func isUniqueViolation(err error) bool {
	// tanpa import pgx/pgconn biar portable: cek substring
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
