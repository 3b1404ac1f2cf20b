// file: internals/features/reports/service/report_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messku_backend/internals/constants"
	expenseModel "messku_backend/internals/features/expenses/model"
	mealModel "messku_backend/internals/features/meals/model"
	memberModel "messku_backend/internals/features/members/model"
	messModel "messku_backend/internals/features/messes/model"
	"messku_backend/internals/helpers/errs"
	"messku_backend/internals/testutil"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedMealPattern menanam 12 record satu member dengan pola:
// breakfast 10 aktif / 2 nonaktif, lunch 8/4, dinner 12/0.
func seedMealPattern(t *testing.T, db *gorm.DB, messID, memberID uuid.UUID) {
	t.Helper()
	for i := 0; i < 12; i++ {
		rec := mealModel.MealRecord{
			MealRecordMessID:          messID,
			MealRecordMemberID:        memberID,
			MealRecordDate:            day(2026, time.September, 1+i),
			MealRecordBreakfastActive: i < 10,
			MealRecordLunchActive:     i < 8,
			MealRecordDinnerActive:    true,
		}
		require.NoError(t, db.Create(&rec).Error)
	}
}

func seedExpense(t *testing.T, db *gorm.DB, messID, createdBy uuid.UUID, category, status, amt string, date time.Time) {
	t.Helper()
	d, err := decimal.NewFromString(amt)
	require.NoError(t, err)
	e := expenseModel.Expense{
		ExpenseMessID:    messID,
		ExpenseCategory:  category,
		ExpenseStatus:    status,
		ExpenseAmount:    d,
		ExpenseDate:      date,
		ExpenseCreatedBy: createdBy,
	}
	require.NoError(t, db.Create(&e).Error)
}

func TestMealReportMergeByMess(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	seedMealPattern(t, db, mess.MessID, member.MemberID)

	// 600 grocery approved, ditambah noise yang TIDAK boleh ikut
	seedExpense(t, db, mess.MessID, member.MemberID, "grocery", "approved", "400.00", day(2026, time.September, 3))
	seedExpense(t, db, mess.MessID, member.MemberID, "grocery", "approved", "200.00", day(2026, time.September, 7))
	seedExpense(t, db, mess.MessID, member.MemberID, "grocery", "pending", "999.00", day(2026, time.September, 8))
	seedExpense(t, db, mess.MessID, member.MemberID, "utility", "approved", "500.00", day(2026, time.September, 9))

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	rows, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{GroupBy: GroupByMess})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Mess Cemara", r.MessName)
	assert.Equal(t, "MESS-0001", r.MessCode)
	assert.EqualValues(t, 10, r.Breakfast.Active)
	assert.EqualValues(t, 2, r.Breakfast.Inactive)
	assert.EqualValues(t, 8, r.Lunch.Active)
	assert.EqualValues(t, 4, r.Lunch.Inactive)
	assert.EqualValues(t, 12, r.Dinner.Active)
	assert.EqualValues(t, 0, r.Dinner.Inactive)
	assert.EqualValues(t, 30, r.TotalMeals)
	assert.EqualValues(t, 6, r.TotalInactiveMeals)
	assert.Equal(t, "600.00", r.TotalCost.StringFixed(2))
	assert.Equal(t, "20.00", r.PerMealRate.StringFixed(2))
}

func TestMealReportZeroMealsRateZero(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mess := testutil.SeedMess(t, db, "Mess Sepi", "MESS-0002")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)

	rec := mealModel.MealRecord{
		MealRecordMessID:   mess.MessID,
		MealRecordMemberID: member.MemberID,
		MealRecordDate:     day(2026, time.September, 1),
	}
	require.NoError(t, db.Create(&rec).Error)
	seedExpense(t, db, mess.MessID, member.MemberID, "grocery", "approved", "100.00", day(2026, time.September, 1))

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	rows, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{GroupBy: GroupByMess})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.EqualValues(t, 0, rows[0].TotalMeals)
	assert.Equal(t, "100.00", rows[0].TotalCost.StringFixed(2))
	assert.True(t, rows[0].PerMealRate.IsZero())
}

func TestMealReportRoundingHalfUp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)

	// 1 record, 3 slot aktif; 100 / 3 = 33.333... → 33.33
	rec := mealModel.MealRecord{
		MealRecordMessID:          mess.MessID,
		MealRecordMemberID:        member.MemberID,
		MealRecordDate:            day(2026, time.September, 1),
		MealRecordBreakfastActive: true,
		MealRecordLunchActive:     true,
		MealRecordDinnerActive:    true,
	}
	require.NoError(t, db.Create(&rec).Error)
	seedExpense(t, db, mess.MessID, member.MemberID, "grocery", "approved", "100.00", day(2026, time.September, 1))

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	rows, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{GroupBy: GroupByMess})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "33.33", rows[0].PerMealRate.StringFixed(2))
}

func TestMealReportGroupByDate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	seedMealPattern(t, db, mess.MessID, member.MemberID)
	seedExpense(t, db, mess.MessID, member.MemberID, "grocery", "approved", "90.00", day(2026, time.September, 1))

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	rows, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{GroupBy: GroupByDate})
	require.NoError(t, err)
	require.Len(t, rows, 12)

	// baris pertama (urut tanggal): 2026-09-01, 3 slot aktif, biaya 90 → 30.00
	first := rows[0]
	assert.Equal(t, "2026-09-01", first.Date)
	assert.EqualValues(t, 3, first.TotalMeals)
	assert.Equal(t, "30.00", first.PerMealRate.StringFixed(2))

	// tanggal tanpa expense: biaya 0, tarif 0
	second := rows[1]
	assert.True(t, second.TotalCost.IsZero())
	assert.True(t, second.PerMealRate.IsZero())
}

func TestMealReportCrossMessForbidden(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mine := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	other := testutil.SeedMess(t, db, "Mess Beringin", "MESS-0002")
	member := testutil.SeedMember(t, db, mine.MessID, "Andi", "andi@mess.test", constants.RoleMember)

	actor := Actor{MemberID: member.MemberID, MessID: mine.MessID}
	_, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{
		GroupBy: GroupByMess,
		MessID:  &other.MessID,
	})
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))

	// admin lintas mess boleh
	admin := testutil.SeedMember(t, db, mine.MessID, "Dewi", "dewi@mess.test", constants.RoleAdmin)
	_, err = svc.GenerateMealReport(context.Background(), Actor{
		MemberID:   admin.MemberID,
		MessID:     mine.MessID,
		Privileged: true,
	}, ReportFilters{GroupBy: GroupByMess, MessID: &other.MessID})
	assert.NoError(t, err)
}

func TestMealReportNotApprovedRequester(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	require.NoError(t, db.Model(&memberModel.Member{}).
		Where("member_id = ?", member.MemberID).
		Update("member_is_approved", false).Error)

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	_, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{GroupBy: GroupByMess})
	assert.Equal(t, errs.CodeNotApproved, errs.Code(err))
}

func TestUsersMealReportDropsOrphans(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	seedMealPattern(t, db, mess.MessID, member.MemberID)

	// record dengan member_id yatim (tidak ada di tabel members)
	orphan := mealModel.MealRecord{
		MealRecordMessID:          mess.MessID,
		MealRecordMemberID:        uuid.New(),
		MealRecordDate:            day(2026, time.September, 1),
		MealRecordBreakfastActive: true,
	}
	require.NoError(t, db.Create(&orphan).Error)

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	rows, err := svc.GenerateUsersMealReport(context.Background(), actor, ReportFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Andi", rows[0].UserName)
	assert.Equal(t, "andi@mess.test", rows[0].UserEmail)
}

func TestMealReportSkipLimit(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewReportService(db)

	// tiga mess, admin lintas mess; sort locale-aware by nama mess
	a := testutil.SeedMess(t, db, "Anggrek", "MESS-0001")
	b := testutil.SeedMess(t, db, "Beringin", "MESS-0002")
	c := testutil.SeedMess(t, db, "Cemara", "MESS-0003")
	admin := testutil.SeedMember(t, db, a.MessID, "Dewi", "dewi@mess.test", constants.RoleAdmin)

	for _, m := range []*messModel.Mess{a, b, c} {
		rec := mealModel.MealRecord{
			MealRecordMessID:          m.MessID,
			MealRecordMemberID:        admin.MemberID,
			MealRecordDate:            day(2026, time.September, 1),
			MealRecordBreakfastActive: true,
		}
		require.NoError(t, db.Create(&rec).Error)
	}

	actor := Actor{MemberID: admin.MemberID, MessID: a.MessID, Privileged: true}
	rows, err := svc.GenerateMealReport(context.Background(), actor, ReportFilters{
		GroupBy: GroupByMess,
		Skip:    1,
		Limit:   1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Beringin", rows[0].MessName)

	// skip melewati seluruh hasil → slice kosong, bukan error
	rows, err = svc.GenerateMealReport(context.Background(), actor, ReportFilters{
		GroupBy: GroupByMess,
		Skip:    10,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
