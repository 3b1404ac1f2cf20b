// file: internals/features/reports/controller/report_controller.go
package controller

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reportService "messku_backend/internals/features/reports/service"
	helper "messku_backend/internals/helpers"
	helperAuth "messku_backend/internals/helpers/auth"
	"messku_backend/internals/helpers/dates"
	"messku_backend/internals/helpers/errs"
)

type ReportController struct {
	DB      *gorm.DB
	Service *reportService.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Service: reportService.NewReportService(db)}
}

func serviceActor(a helperAuth.Actor) reportService.Actor {
	return reportService.Actor{
		MemberID:   a.MemberID,
		MessID:     a.MessID,
		Privileged: a.IsPrivileged(),
	}
}

func parseFilters(c *fiber.Ctx) (reportService.ReportFilters, error) {
	var f reportService.ReportFilters

	g, err := reportService.ParseGroupBy(strings.TrimSpace(c.Query("group_by")))
	if err != nil {
		return f, err
	}
	f.GroupBy = g

	if raw := strings.TrimSpace(c.Query("mess_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, errs.InvalidID("mess_id invalid")
		}
		f.MessID = &id
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, errs.InvalidID("user_id invalid")
		}
		f.UserID = &id
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := dates.ParseYMD(raw)
		if err != nil {
			return f, errs.InvalidDate("from invalid")
		}
		f.DateFrom = &from
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := dates.ParseYMD(raw)
		if err != nil {
			return f, errs.InvalidDate("to invalid")
		}
		f.DateTo = &to
	}

	f.Skip, _ = strconv.Atoi(c.Query("skip", "0"))
	f.Limit, _ = strconv.Atoi(c.Query("limit", "0"))
	return f, nil
}

// ========== Laporan meal (group by mess/user/date) ==========
func (ctl *ReportController) MealReport(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	f, err := parseFilters(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	rows, err := ctl.Service.GenerateMealReport(ctx, serviceActor(actor), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// ========== Laporan per user ==========
func (ctl *ReportController) UsersMealReport(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	f, err := parseFilters(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	rows, err := ctl.Service.GenerateUsersMealReport(ctx, serviceActor(actor), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

func contextWithTimeout(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), 30*time.Second)
}
