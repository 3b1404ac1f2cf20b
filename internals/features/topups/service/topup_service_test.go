// file: internals/features/topups/service/topup_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messku_backend/internals/constants"
	ledgerModel "messku_backend/internals/features/ledger/model"
	ledgerService "messku_backend/internals/features/ledger/service"
	"messku_backend/internals/features/topups/model"
	"messku_backend/internals/helpers/errs"
	"messku_backend/internals/testutil"
)

func newTestService(t *testing.T) (*TopupService, *gorm.DB, *ledgerModel.Account) {
	db := testutil.OpenTestDB(t)

	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	manager := testutil.SeedMember(t, db, mess.MessID, "Dewi", "dewi@mess.test", constants.RoleManager)
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)

	ledger := ledgerService.NewLedgerService(db)
	acc, err := ledger.CreateAccount(ledgerService.Actor{
		MemberID:   manager.MemberID,
		MessID:     mess.MessID,
		Privileged: true,
	}, member.MemberID, mess.MessID)
	require.NoError(t, err)

	svc := NewTopupService(db)
	svc.Now = testutil.FixedClock(2026, time.September, 1)
	return svc, db, acc
}

func TestCreateTopupPending(t *testing.T) {
	svc, db, acc := newTestService(t)

	row, err := svc.CreateTopup(CreateTopupInput{
		MemberID:  acc.AccountMemberID,
		AccountID: acc.AccountID,
		Amount:    decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TopupStatusPending, row.TopupStatus)
	assert.NotEmpty(t, row.TopupOrderID)

	// saldo belum berubah sebelum settlement
	var got ledgerModel.Account
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.True(t, got.AccountBalance.IsZero())
}

func TestCreateTopupForeignAccountForbidden(t *testing.T) {
	svc, db, acc := newTestService(t)

	other := testutil.SeedMember(t, db, acc.AccountMessID, "Budi", "budi@mess.test", constants.RoleMember)
	_, err := svc.CreateTopup(CreateTopupInput{
		MemberID:  other.MemberID,
		AccountID: acc.AccountID,
		Amount:    decimal.NewFromInt(10000),
	})
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))
}

func TestSettleCreditsLedgerOnce(t *testing.T) {
	svc, db, acc := newTestService(t)

	row, err := svc.CreateTopup(CreateTopupInput{
		MemberID:  acc.AccountMemberID,
		AccountID: acc.AccountID,
		Amount:    decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	require.NoError(t, svc.SettleByOrderID(row.TopupOrderID, "settlement"))

	var got ledgerModel.Account
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.Equal(t, "50000.00", got.AccountBalance.StringFixed(2))

	// webhook ganda: idempotent, saldo tidak dobel
	require.NoError(t, svc.SettleByOrderID(row.TopupOrderID, "settlement"))
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.Equal(t, "50000.00", got.AccountBalance.StringFixed(2))

	var trxCount int64
	require.NoError(t, db.Model(&ledgerModel.Transaction{}).Count(&trxCount).Error)
	assert.EqualValues(t, 1, trxCount)
}

func TestSettleFailureDoesNotCredit(t *testing.T) {
	svc, db, acc := newTestService(t)

	row, err := svc.CreateTopup(CreateTopupInput{
		MemberID:  acc.AccountMemberID,
		AccountID: acc.AccountID,
		Amount:    decimal.NewFromInt(25000),
	})
	require.NoError(t, err)

	require.NoError(t, svc.SettleByOrderID(row.TopupOrderID, "expire"))

	var got model.Topup
	require.NoError(t, db.First(&got, "topup_id = ?", row.TopupID).Error)
	assert.Equal(t, model.TopupStatusFailed, got.TopupStatus)

	var accRow ledgerModel.Account
	require.NoError(t, db.First(&accRow, "account_id = ?", acc.AccountID).Error)
	assert.True(t, accRow.AccountBalance.IsZero())
}

func TestSettleUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.SettleByOrderID("TOPUP-404", "settlement")
	assert.Equal(t, errs.CodeNotFound, errs.Code(err))
}
