// file: internals/features/meals/controller/meal_controller_test.go
package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messku_backend/internals/constants"
	"messku_backend/internals/features/meals/model"
	helperAuth "messku_backend/internals/helpers/auth"
	"messku_backend/internals/testutil"
)

// newMealApp merangkai app minimal: middleware yang menyuntik locals
// identitas caller, lalu route get-by-id.
func newMealApp(db *gorm.DB, memberID, messID uuid.UUID, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocMemberID, memberID.String())
		c.Locals(helperAuth.LocMessID, messID.String())
		c.Locals(helperAuth.LocRole, role)
		return c.Next()
	})
	ctl := NewMealController(db)
	app.Get("/meal-records/:id", ctl.GetByID)
	return app
}

func seedMealRecord(t *testing.T, db *gorm.DB, memberID, messID uuid.UUID) *model.MealRecord {
	t.Helper()
	rec := &model.MealRecord{
		MealRecordMessID:          messID,
		MealRecordMemberID:        memberID,
		MealRecordDate:            time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
		MealRecordBreakfastActive: true,
		MealRecordLunchActive:     true,
		MealRecordDinnerActive:    true,
	}
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func TestGetMealByIDForbiddenForOtherMember(t *testing.T) {
	db := testutil.OpenTestDB(t)

	messA := testutil.SeedMess(t, db, "Mess Anggrek", "MESS-0001")
	messB := testutil.SeedMess(t, db, "Mess Beringin", "MESS-0002")
	owner := testutil.SeedMember(t, db, messA.MessID, "Andi", "andi@messku.id", constants.RoleMember)
	outsider := testutil.SeedMember(t, db, messB.MessID, "Budi", "budi@messku.id", constants.RoleMember)

	rec := seedMealRecord(t, db, owner.MemberID, messA.MessID)

	app := newMealApp(db, outsider.MemberID, messB.MessID, constants.RoleMember)
	resp, err := app.Test(httptest.NewRequest("GET", "/meal-records/"+rec.MealRecordID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetMealByIDOwnerAndPrivilegedAllowed(t *testing.T) {
	db := testutil.OpenTestDB(t)

	mess := testutil.SeedMess(t, db, "Mess Anggrek", "MESS-0001")
	owner := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@messku.id", constants.RoleMember)
	manager := testutil.SeedMember(t, db, mess.MessID, "Citra", "citra@messku.id", constants.RoleManager)

	rec := seedMealRecord(t, db, owner.MemberID, mess.MessID)

	// pemilik catatan
	app := newMealApp(db, owner.MemberID, mess.MessID, constants.RoleMember)
	resp, err := app.Test(httptest.NewRequest("GET", "/meal-records/"+rec.MealRecordID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// manager boleh melihat catatan member lain
	app = newMealApp(db, manager.MemberID, mess.MessID, constants.RoleManager)
	resp, err = app.Test(httptest.NewRequest("GET", "/meal-records/"+rec.MealRecordID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
