// file: internals/features/meals/service/meal_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messku_backend/internals/constants"
	activityModel "messku_backend/internals/features/activity/model"
	"messku_backend/internals/features/meals/model"
	memberModel "messku_backend/internals/features/members/model"
	"messku_backend/internals/helpers/errs"
	"messku_backend/internals/testutil"
)

func newTestService(t *testing.T) (*MealService, *gorm.DB) {
	db := testutil.OpenTestDB(t)
	svc := NewMealService(db)
	svc.Now = testutil.FixedClock(2026, time.September, 1)
	return svc, db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateMeal(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	rec, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots: []model.Slot{
			{SlotType: model.SlotBreakfast, IsActive: true, MealCount: 1},
			{SlotType: model.SlotLunch, IsActive: false},
		},
	})
	require.NoError(t, err)
	assert.True(t, rec.MealRecordBreakfastActive)
	assert.Equal(t, 1, rec.MealRecordBreakfastMeals)
	assert.False(t, rec.MealRecordLunchActive)
	// dinner tidak disebut di request, ikut default aktif
	assert.True(t, rec.MealRecordDinnerActive)
}

func TestCreateMealPastDate(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	_, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.August, 31),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	})
	assert.Equal(t, errs.CodeInvalidDate, errs.Code(err))
}

func TestCreateMealDuplicate(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	in := CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	}
	_, err := svc.CreateMeal(actor, in)
	require.NoError(t, err)

	_, err = svc.CreateMeal(actor, in)
	assert.Equal(t, errs.CodeConflict, errs.Code(err))

	var count int64
	require.NoError(t, db.Model(&model.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateMealInvalidSlotType(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	_, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: "brunch", IsActive: true}},
	})
	assert.Equal(t, errs.CodeInvalidSlotType, errs.Code(err))
}

func TestCreateMealNotApproved(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	require.NoError(t, db.Model(&memberModel.Member{}).
		Where("member_id = ?", member.MemberID).
		Update("member_is_approved", false).Error)

	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}
	_, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	})
	assert.Equal(t, errs.CodeNotApproved, errs.Code(err))
}

func TestCreateMealOtherMemberForbidden(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	owner := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	other := testutil.SeedMember(t, db, mess.MessID, "Budi", "budi@mess.test", constants.RoleMember)

	actor := Actor{MemberID: other.MemberID, MessID: mess.MessID}
	_, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: owner.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	})
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))

	// manager boleh
	manager := Actor{MemberID: other.MemberID, MessID: mess.MessID, Privileged: true}
	_, err = svc.CreateMeal(manager, CreateMealInput{
		MemberID: owner.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	})
	assert.NoError(t, err)
}

func TestToggleRangeSingleDay(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	touched, err := svc.ToggleRange(actor, ToggleRangeInput{
		MemberID:  member.MemberID,
		MessID:    mess.MessID,
		StartDate: day(2026, time.September, 10),
		EndDate:   day(2026, time.September, 10),
		Slots:     []model.Slot{{SlotType: model.SlotDinner, IsActive: false}},
	})
	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.False(t, touched[0].MealRecordDinnerActive)

	// satu entry audit per panggilan, di-commit bersama perubahan
	var logs []activityModel.ActivityLog
	require.NoError(t, db.Find(&logs, "activity_log_action = ?", "range_toggled").Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "meal_record", logs[0].ActivityLogEntity)
	assert.Equal(t, member.MemberID, logs[0].ActivityLogEntityID)
}

func TestToggleRangeAuditFailureRollsBack(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	// audit gagal → seluruh toggle ikut rollback, bukan cuma lognya
	require.NoError(t, db.Migrator().DropTable(&activityModel.ActivityLog{}))

	_, err := svc.ToggleRange(actor, ToggleRangeInput{
		MemberID:  member.MemberID,
		MessID:    mess.MessID,
		StartDate: day(2026, time.September, 10),
		EndDate:   day(2026, time.September, 12),
		Slots:     []model.Slot{{SlotType: model.SlotDinner, IsActive: false}},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleRangeMixedInsertUpdate(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	// hari 11 sudah ada, hari 10 dan 12 belum
	_, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 11),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true, MealCount: 2}},
	})
	require.NoError(t, err)

	touched, err := svc.ToggleRange(actor, ToggleRangeInput{
		MemberID:  member.MemberID,
		MessID:    mess.MessID,
		StartDate: day(2026, time.September, 10),
		EndDate:   day(2026, time.September, 12),
		Slots:     []model.Slot{{SlotType: model.SlotLunch, IsActive: false}},
	})
	require.NoError(t, err)
	require.Len(t, touched, 3)

	// urut naik per tanggal
	for i := 0; i < 3; i++ {
		assert.Equal(t, day(2026, time.September, 10+i), touched[i].MealRecordDate)
		assert.False(t, touched[i].MealRecordLunchActive)
	}
	// slot lain di record lama tidak tertimpa
	assert.Equal(t, 2, touched[1].MealRecordBreakfastMeals)

	// tetap satu baris per hari
	var count int64
	require.NoError(t, db.Model(&model.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestToggleRangeStartAfterEnd(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	_, err := svc.ToggleRange(actor, ToggleRangeInput{
		MemberID:  member.MemberID,
		MessID:    mess.MessID,
		StartDate: day(2026, time.September, 12),
		EndDate:   day(2026, time.September, 10),
		Slots:     []model.Slot{{SlotType: model.SlotLunch, IsActive: false}},
	})
	assert.Equal(t, errs.CodeInvalidDateRange, errs.Code(err))
}

func TestToggleRangeYesterdayRejected(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	// start = kemarin relatif terhadap clock tetap (2026-09-01)
	_, err := svc.ToggleRange(actor, ToggleRangeInput{
		MemberID:  member.MemberID,
		MessID:    mess.MessID,
		StartDate: day(2026, time.August, 31),
		EndDate:   day(2026, time.September, 2),
		Slots:     []model.Slot{{SlotType: model.SlotLunch, IsActive: false}},
	})
	assert.Equal(t, errs.CodeInvalidDate, errs.Code(err))
}

func TestUpdateMealDateIntoPast(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	rec, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	})
	require.NoError(t, err)

	past := day(2026, time.August, 20)
	_, err = svc.UpdateMeal(actor, rec.MealRecordID, UpdateMealInput{Date: &past})
	assert.Equal(t, errs.CodeInvalidDate, errs.Code(err))
}

func TestDeleteMealPrivilegedOnly(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	actor := Actor{MemberID: member.MemberID, MessID: mess.MessID}

	rec, err := svc.CreateMeal(actor, CreateMealInput{
		MemberID: member.MemberID,
		MessID:   mess.MessID,
		Date:     day(2026, time.September, 5),
		Slots:    []model.Slot{{SlotType: model.SlotBreakfast, IsActive: true}},
	})
	require.NoError(t, err)

	err = svc.DeleteMeal(actor, rec.MealRecordID)
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))

	admin := Actor{MemberID: member.MemberID, MessID: mess.MessID, Privileged: true}
	require.NoError(t, svc.DeleteMeal(admin, rec.MealRecordID))

	var alive int64
	require.NoError(t, model.ScopeAlive(db.Model(&model.MealRecord{})).Count(&alive).Error)
	assert.EqualValues(t, 0, alive)
}

func TestGenerateMonthlyMealsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	testutil.SeedMember(t, db, mess.MessID, "Budi", "budi@mess.test", constants.RoleMember)

	// member tidak eligible: belum diverifikasi
	citra := testutil.SeedMember(t, db, mess.MessID, "Citra", "citra@mess.test", constants.RoleMember)
	require.NoError(t, db.Model(&memberModel.Member{}).
		Where("member_id = ?", citra.MemberID).
		Update("member_is_verified", false).Error)

	// Oktober 2026 = 31 hari, 2 member eligible
	svc.GenerateMonthlyMeals(context.Background())

	var count int64
	require.NoError(t, db.Model(&model.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 62, count)

	// rerun: duplikat di-skip, bukan digandakan
	svc.GenerateMonthlyMeals(context.Background())
	require.NoError(t, db.Model(&model.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 62, count)
}

func TestGenerateMonthlyMealsSkipsInactiveMess(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Tutup", "MESS-0002")
	testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)
	require.NoError(t, db.Model(mess).Update("mess_status", "inactive").Error)

	svc.GenerateMonthlyMeals(context.Background())

	var count int64
	require.NoError(t, db.Model(&model.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
