// file: internals/features/ledger/controller/ledger_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"messku_backend/internals/features/ledger/dto"
	"messku_backend/internals/features/ledger/model"
	ledgerService "messku_backend/internals/features/ledger/service"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
)

type LedgerController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *ledgerService.LedgerService
}

func NewLedgerController(db *gorm.DB) *LedgerController {
	return &LedgerController{
		DB:        db,
		Validator: validator.New(),
		Service:   ledgerService.NewLedgerService(db),
	}
}

func serviceActor(a helperAuth.Actor) ledgerService.Actor {
	return ledgerService.Actor{
		MemberID:   a.MemberID,
		MessID:     a.MessID,
		Privileged: a.IsPrivileged(),
		Admin:      a.IsAdmin(),
	}
}

// ========== Create account ==========
func (ctl *LedgerController) CreateAccount(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	acc, err := ctl.Service.CreateAccount(serviceActor(actor), req.AccountMemberID, req.AccountMessID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "account dibuat", dto.FromModelAccount(acc))
}

// ========== Get account ==========
func (ctl *LedgerController) GetAccount(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "account_id invalid")
	}

	var acc model.Account
	if err := model.ScopeAliveAccount(ctl.DB).First(&acc, "account_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "account tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// member biasa hanya boleh melihat account miliknya sendiri
	if !actor.IsPrivileged() && acc.AccountMemberID != actor.MemberID {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat account member lain")
	}
	return helper.JsonOK(c, "", dto.FromModelAccount(&acc))
}

// ========== List accounts per mess ==========
func (ctl *LedgerController) ListAccounts(c *fiber.Ctx) error {
	actor, err := helperAuth.EnsurePrivileged(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	messID := actor.MessID
	if raw := strings.TrimSpace(c.Query("mess_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "mess_id invalid")
		}
		messID = id
	}

	q := model.ScopeAliveAccount(ctl.DB.Model(&model.Account{})).
		Where("account_mess_id = ?", messID)

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Account
	if err := q.Order("account_created_at asc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelAccounts(rows), &p)
}

// ========== Create transaction ==========
func (ctl *LedgerController) CreateTransaction(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date, err := req.Date(ctl.Service.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "transaction_date invalid")
	}

	trx, err := ctl.Service.CreateTransaction(serviceActor(actor), ledgerService.CreateTransactionInput{
		AccountID:   req.TransactionAccountID,
		Amount:      req.TransactionAmount,
		Type:        req.TransactionType,
		Description: req.TransactionDescription,
		Date:        date,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "transaksi dicatat", dto.FromModelTransaction(trx))
}

// ========== List transactions of an account ==========
func (ctl *LedgerController) ListTransactions(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	accountID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "account_id invalid")
	}

	var acc model.Account
	if err := model.ScopeAliveAccount(ctl.DB).First(&acc, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "account tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !actor.IsPrivileged() && acc.AccountMemberID != actor.MemberID {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak boleh melihat transaksi member lain")
	}

	q := ctl.DB.Model(&model.Transaction{}).
		Where("transaction_account_id = ?", accountID)

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Transaction
	if err := q.Order("transaction_created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelTransactions(rows), &p)
}

// ========== Soft delete account ==========
func (ctl *LedgerController) DeleteAccount(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "account_id invalid")
	}

	if err := ctl.Service.SoftDeleteAccount(serviceActor(actor), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "account dihapus", fiber.Map{"account_id": id})
}
