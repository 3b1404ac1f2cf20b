// file: internals/testutil/db.go
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	activityModel "messku_backend/internals/features/activity/model"
	expenseModel "messku_backend/internals/features/expenses/model"
	ledgerModel "messku_backend/internals/features/ledger/model"
	mealModel "messku_backend/internals/features/meals/model"
	memberModel "messku_backend/internals/features/members/model"
	messModel "messku_backend/internals/features/messes/model"
	topupModel "messku_backend/internals/features/topups/model"
)

// OpenTestDB membuka sqlite in-memory per test dan memigrasi semua
// tabel. Tiap test dapat database terisolasi.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1&mode=memory&name="+uuid.NewString()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&messModel.Mess{},
		&messModel.MessCounter{},
		&memberModel.Member{},
		&mealModel.MealRecord{},
		&ledgerModel.Account{},
		&ledgerModel.Transaction{},
		&expenseModel.Expense{},
		&topupModel.Topup{},
		&activityModel.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

/* =========================
   Seed helpers
   ========================= */

func SeedMess(t *testing.T, db *gorm.DB, name, code string) *messModel.Mess {
	t.Helper()
	m := &messModel.Mess{
		MessName:   name,
		MessCode:   code,
		MessStatus: messModel.MessStatusActive,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed mess: %v", err)
	}
	return m
}

func SeedMember(t *testing.T, db *gorm.DB, messID uuid.UUID, name, email, role string) *memberModel.Member {
	t.Helper()
	m := &memberModel.Member{
		MemberMessID:     messID,
		MemberName:       name,
		MemberEmail:      email,
		MemberRole:       role,
		MemberIsApproved: true,
		MemberIsVerified: true,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

// FixedClock: jam deterministik untuk uji tanggal.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}
}
