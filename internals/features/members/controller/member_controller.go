// file: internals/features/members/controller/member_controller.go
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
	"messku_backend/internals/features/members/dto"
	"messku_backend/internals/features/members/model"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
)

type MemberController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db, Validator: validator.New()}
}

// ========== Create ==========
func (ctl *MemberController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsurePrivileged(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Tenant guard: non-admin hanya boleh menambah anggota mess-nya sendiri
	if !actor.IsAdmin() && req.MemberMessID != actor.MessID {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh menambah anggota mess lain")
	}

	m := req.ToModel()
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      m.MemberMessID,
			Entity:      "member",
			EntityID:    m.MemberID,
			Action:      "created",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "member dibuat", dto.FromModelMember(m))
}

// ========== Get by ID ==========
func (ctl *MemberController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_id invalid")
	}

	var m model.Member
	if err := model.ScopeAlive(ctl.DB).First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.FromModelMember(&m))
}

// ========== List per mess ==========
func (ctl *MemberController) ListByMess(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	messID := actor.MessID
	if raw := strings.TrimSpace(c.Query("mess_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "mess_id invalid")
		}
		if id != actor.MessID && !actor.IsPrivileged() {
			return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat anggota mess lain")
		}
		messID = id
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := model.ScopeAlive(ctl.DB.Model(&model.Member{})).Where("member_mess_id = ?", messID)

	if raw := strings.TrimSpace(c.Query("approved")); raw != "" {
		q = q.Where("member_is_approved = ?", raw == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Member
	if err := q.Order("member_name asc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelMembers(rows), &p)
}

// ========== Patch ==========
func (ctl *MemberController) Patch(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsurePrivileged(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_id invalid")
	}

	var req dto.PatchMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.Member
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := model.ScopeAlive(tx).First(&m, "member_id = ?", id).Error; err != nil {
			return err
		}
		if !actor.IsAdmin() && m.MemberMessID != actor.MessID {
			return fiber.NewError(fiber.StatusForbidden, "tidak boleh mengubah anggota mess lain")
		}
		req.ApplyTo(&m)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      m.MemberMessID,
			Entity:      "member",
			EntityID:    m.MemberID,
			Action:      "updated",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member tidak ditemukan")
		}
		return helper.JsonAppError(c, err)
	}

	return helper.JsonUpdated(c, "member diperbarui", dto.FromModelMember(&m))
}

// ========== Status transitions: approve / verify / block ==========

func (ctl *MemberController) Approve(c *fiber.Ctx) error {
	return ctl.setFlag(c, "member_is_approved", true, "approved")
}

func (ctl *MemberController) Verify(c *fiber.Ctx) error {
	return ctl.setFlag(c, "member_is_verified", true, "verified")
}

func (ctl *MemberController) Block(c *fiber.Ctx) error {
	return ctl.setFlag(c, "member_is_blocked", true, "blocked")
}

func (ctl *MemberController) Unblock(c *fiber.Ctx) error {
	return ctl.setFlag(c, "member_is_blocked", false, "unblocked")
}

func (ctl *MemberController) setFlag(c *fiber.Ctx, column string, value bool, action string) error {
	actor, err := helperAuth.EnsurePrivileged(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_id invalid")
	}

	var m model.Member
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := model.ScopeAlive(tx).First(&m, "member_id = ?", id).Error; err != nil {
			return err
		}
		if !actor.IsAdmin() && m.MemberMessID != actor.MessID {
			return fiber.NewError(fiber.StatusForbidden, "tidak boleh mengubah anggota mess lain")
		}
		if err := tx.Model(&m).Update(column, value).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      m.MemberMessID,
			Entity:      "member",
			EntityID:    m.MemberID,
			Action:      action,
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member tidak ditemukan")
		}
		return helper.JsonAppError(c, err)
	}

	return helper.JsonUpdated(c, "status member diperbarui", fiber.Map{"member_id": m.MemberID, "action": action})
}

// ========== Delete (soft delete) ==========
func (ctl *MemberController) Delete(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsureAdmin(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "member_id invalid")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var m model.Member
		if err := model.ScopeAlive(tx).First(&m, "member_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Update("member_deleted_at", time.Now()).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      m.MemberMessID,
			Entity:      "member",
			EntityID:    m.MemberID,
			Action:      "deleted",
			PerformedBy: actor.MemberID,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "member tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "member dihapus", fiber.Map{"member_id": id})
}

/* =========================
   internal
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
