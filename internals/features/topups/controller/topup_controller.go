// file: internals/features/topups/controller/topup_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberModel "messku_backend/internals/features/members/model"
	"messku_backend/internals/features/topups/dto"
	"messku_backend/internals/features/topups/model"
	topupService "messku_backend/internals/features/topups/service"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
	"messku_backend/internals/helpers/errs"
)

type TopupController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *topupService.TopupService
}

func NewTopupController(db *gorm.DB) *TopupController {
	return &TopupController{
		DB:        db,
		Validator: validator.New(),
		Service:   topupService.NewTopupService(db),
	}
}

// ========== Create top-up & snap token ==========
func (ctl *TopupController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateTopupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := ctl.Service.CreateTopup(topupService.CreateTopupInput{
		MemberID:  actor.MemberID,
		AccountID: req.TopupAccountID,
		Amount:    req.TopupAmount,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var member memberModel.Member
	if err := ctl.DB.First(&member, "member_id = ?", actor.MemberID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	token, err := topupService.GenerateSnapToken(row, member.MemberName, member.MemberEmail)
	if err != nil {
		log.Printf("[TOPUP] snap token gagal order=%s: %v", row.TopupOrderID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "gagal membuat token pembayaran")
	}

	row.TopupPaymentToken = token
	if err := ctl.DB.Model(&model.Topup{}).
		Where("topup_id = ?", row.TopupID).
		Update("topup_payment_token", token).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "top-up dibuat, silakan lanjutkan pembayaran", dto.FromModelTopup(row))
}

// ========== List top-up milik sendiri ==========
func (ctl *TopupController) List(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	q := ctl.DB.Model(&model.Topup{}).
		Where("topup_member_id = ?", actor.MemberID)

	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("topup_status = ?", st)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Topup
	if err := q.Order("topup_created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "", dto.FromModelTopups(rows), &p)
}

// ========== Webhook Midtrans ==========
func (ctl *TopupController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body dto.MidtransNotification
	if err := c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if body.OrderID == "" || body.TransactionStatus == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if err := ctl.Service.SettleByOrderID(body.OrderID, body.TransactionStatus); err != nil {
		var appErr *errs.Error
		if errors.As(err, &appErr) && appErr.Code == errs.CodeNotFound {
			// order asing: balas 200 supaya gateway berhenti retry
			log.Printf("[TOPUP] webhook order tidak dikenal: %s", body.OrderID)
			return c.SendStatus(fiber.StatusOK)
		}
		log.Printf("[TOPUP] webhook gagal order=%s: %v", body.OrderID, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}
