// file: internals/features/expenses/controller/expense_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	activity "messku_backend/internals/features/activity/service"
	"messku_backend/internals/features/expenses/dto"
	"messku_backend/internals/features/expenses/model"
	memberService "messku_backend/internals/features/members/service"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
	"messku_backend/internals/helpers/dates"
)

type ExpenseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Members   *memberService.Directory
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{
		DB:        db,
		Validator: validator.New(),
		Members:   memberService.NewDirectory(db),
	}
}

// ========== Create ==========
func (ctl *ExpenseController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// member biasa hanya boleh mencatat pengeluaran mess sendiri
	if req.ExpenseMessID != actor.MessID && !actor.IsPrivileged() {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh mencatat pengeluaran mess lain")
	}

	row, err := req.ToModel(actor.MemberID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "expense_date invalid")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := ctl.Members.RequireApprovedOfMess(tx, actor.MemberID, row.ExpenseMessID); err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      row.ExpenseMessID,
			Entity:      "expense",
			EntityID:    row.ExpenseID,
			Action:      "created",
			PerformedBy: actor.MemberID,
		})
	}); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "pengeluaran dicatat", dto.FromModelExpense(row))
}

// ========== Get by ID ==========
func (ctl *ExpenseController) GetByID(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "expense_id invalid")
	}

	var row model.Expense
	if err := model.ScopeAlive(ctl.DB).First(&row, "expense_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "pengeluaran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if row.ExpenseMessID != actor.MessID && !actor.IsPrivileged() {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat pengeluaran mess lain")
	}
	return helper.JsonOK(c, "", dto.FromModelExpense(&row))
}

// ========== List per mess ==========
func (ctl *ExpenseController) List(c *fiber.Ctx) error {
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
			return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat pengeluaran mess lain")
		}
		messID = id
	}

	q := model.ScopeAlive(ctl.DB.Model(&model.Expense{})).
		Where("expense_mess_id = ?", messID)

	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		if !model.IsValidExpenseCategory(cat) {
			return helper.JsonError(c, fiber.StatusBadRequest, "category invalid")
		}
		q = q.Where("expense_category = ?", cat)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		if !model.IsValidExpenseStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status invalid")
		}
		q = q.Where("expense_status = ?", st)
	}
	if tag := strings.ToLower(strings.TrimSpace(c.Query("tag"))); tag != "" {
		q = q.Where("expense_tags @> ?", pq.StringArray{tag})
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := dates.ParseYMD(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from invalid")
		}
		q = q.Where("expense_date >= ?", from)
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := dates.ParseYMD(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to invalid")
		}
		q = q.Where("expense_date <= ?", to)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Expense
	if err := q.Order("expense_date desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelExpenses(rows), &p)
}

// ========== Patch (hanya selama pending) ==========
func (ctl *ExpenseController) Patch(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "expense_id invalid")
	}

	var req dto.PatchExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var out *model.Expense
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row model.Expense
		if err := model.ScopeAlive(tx).First(&row, "expense_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "pengeluaran tidak ditemukan")
			}
			return err
		}

		if row.ExpenseCreatedBy != actor.MemberID && !actor.IsPrivileged() {
			return fiber.NewError(fiber.StatusForbidden, "hanya pencatat atau admin/manager yang boleh mengubah")
		}
		if !row.IsPending() {
			return fiber.NewError(fiber.StatusConflict, "pengeluaran sudah direview, tidak bisa diubah")
		}

		if err := req.ApplyTo(&row); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "expense_date invalid")
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		if err := activity.Record(tx, activity.Entry{
			MessID:      row.ExpenseMessID,
			Entity:      "expense",
			EntityID:    row.ExpenseID,
			Action:      "updated",
			PerformedBy: actor.MemberID,
		}); err != nil {
			return err
		}
		out = &row
		return nil
	}); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "pengeluaran diperbarui", dto.FromModelExpense(out))
}

// ========== Approve / Reject ==========
func (ctl *ExpenseController) Approve(c *fiber.Ctx) error {
	return ctl.review(c, model.ExpenseStatusApproved, "approved")
}

func (ctl *ExpenseController) Reject(c *fiber.Ctx) error {
	return ctl.review(c, model.ExpenseStatusRejected, "rejected")
}

func (ctl *ExpenseController) review(c *fiber.Ctx, status, action string) error {
	actor, err := helperAuth.EnsurePrivileged(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "expense_id invalid")
	}

	var out *model.Expense
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row model.Expense
		if err := model.ScopeAlive(tx).First(&row, "expense_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "pengeluaran tidak ditemukan")
			}
			return err
		}
		if !row.IsPending() {
			return fiber.NewError(fiber.StatusConflict, "pengeluaran sudah direview")
		}

		row.ExpenseStatus = status
		row.ExpenseReviewedBy = &actor.MemberID
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		if err := activity.Record(tx, activity.Entry{
			MessID:      row.ExpenseMessID,
			Entity:      "expense",
			EntityID:    row.ExpenseID,
			Action:      action,
			PerformedBy: actor.MemberID,
		}); err != nil {
			return err
		}
		out = &row
		return nil
	}); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "pengeluaran "+action, dto.FromModelExpense(out))
}

// ========== Delete (soft) ==========
func (ctl *ExpenseController) Delete(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsurePrivileged(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "expense_id invalid")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var row model.Expense
		if err := model.ScopeAlive(tx).First(&row, "expense_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "pengeluaran tidak ditemukan")
			}
			return err
		}

		if err := tx.Model(&model.Expense{}).
			Where("expense_id = ?", row.ExpenseID).
			Update("expense_deleted_at", tx.NowFunc()).Error; err != nil {
			return err
		}
		return activity.Record(tx, activity.Entry{
			MessID:      row.ExpenseMessID,
			Entity:      "expense",
			EntityID:    row.ExpenseID,
			Action:      "deleted",
			PerformedBy: actor.MemberID,
		})
	}); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "pengeluaran dihapus", fiber.Map{"expense_id": id})
}
