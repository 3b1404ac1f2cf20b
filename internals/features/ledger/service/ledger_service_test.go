// file: internals/features/ledger/service/ledger_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"messku_backend/internals/constants"
	"messku_backend/internals/features/ledger/model"
	"messku_backend/internals/helpers/errs"
	"messku_backend/internals/testutil"
)

func newTestService(t *testing.T) (*LedgerService, *gorm.DB) {
	db := testutil.OpenTestDB(t)
	svc := NewLedgerService(db)
	svc.Now = testutil.FixedClock(2026, time.September, 1)
	return svc, db
}

func seedAccount(t *testing.T, svc *LedgerService, db *gorm.DB) (*model.Account, Actor) {
	t.Helper()
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	manager := testutil.SeedMember(t, db, mess.MessID, "Dewi", "dewi@mess.test", constants.RoleManager)
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)

	actor := Actor{MemberID: manager.MemberID, MessID: mess.MessID, Privileged: true}
	acc, err := svc.CreateAccount(actor, member.MemberID, mess.MessID)
	require.NoError(t, err)
	return acc, actor
}

func amount(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestCreateAccount(t *testing.T) {
	svc, db := newTestService(t)
	acc, _ := seedAccount(t, svc, db)

	assert.True(t, acc.AccountBalance.IsZero())

	var count int64
	require.NoError(t, model.ScopeAliveAccount(db.Model(&model.Account{})).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateAccountDuplicate(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	_, err := svc.CreateAccount(actor, acc.AccountMemberID, acc.AccountMessID)
	assert.Equal(t, errs.CodeConflict, errs.Code(err))
}

func TestCreateAccountRequiresPrivilege(t *testing.T) {
	svc, db := newTestService(t)
	mess := testutil.SeedMess(t, db, "Mess Cemara", "MESS-0001")
	member := testutil.SeedMember(t, db, mess.MessID, "Andi", "andi@mess.test", constants.RoleMember)

	_, err := svc.CreateAccount(Actor{MemberID: member.MemberID, MessID: mess.MessID}, member.MemberID, mess.MessID)
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))
}

func TestCreateTransactionBalanceInvariant(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	// credit 100, credit 50.25, debit 30 → saldo 120.25
	steps := []struct {
		typ string
		amt string
	}{
		{model.TransactionTypeCredit, "100.00"},
		{model.TransactionTypeCredit, "50.25"},
		{model.TransactionTypeDebit, "30.00"},
	}
	for _, st := range steps {
		_, err := svc.CreateTransaction(actor, CreateTransactionInput{
			AccountID: acc.AccountID,
			Amount:    amount(st.amt),
			Type:      st.typ,
			Date:      svc.Now(),
		})
		require.NoError(t, err)
	}

	var got model.Account
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.Equal(t, "120.25", got.AccountBalance.StringFixed(2))

	// transaksi menyimpan saldo setelah commit
	var trxs []model.Transaction
	require.NoError(t, db.Order("transaction_created_at asc, transaction_balance_after asc").
		Find(&trxs, "transaction_account_id = ?", acc.AccountID).Error)
	require.Len(t, trxs, 3)
	assert.Equal(t, "120.25", trxs[2].TransactionBalanceAfter.StringFixed(2))
}

func TestCreateTransactionInsufficientBalance(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	_, err := svc.CreateTransaction(actor, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("10.00"),
		Type:      model.TransactionTypeDebit,
		Date:      svc.Now(),
	})
	assert.Equal(t, errs.CodeInsufficientBalance, errs.Code(err))

	// tidak ada transaksi yang bocor dan saldo tetap 0
	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var got model.Account
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.True(t, got.AccountBalance.IsZero())
}

func TestCreateTransactionRacedWritesRollBack(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	// saldo awal 100 tanpa gangguan
	_, err := svc.CreateTransaction(actor, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("100.00"),
		Type:      model.TransactionTypeCredit,
		Date:      svc.Now(),
	})
	require.NoError(t, err)

	// penulis lain menggeser saldo tepat setelah baris transaksi ditulis,
	// sebelum update saldo — CAS harus kalah di setiap attempt
	raced := 0
	require.NoError(t, db.Callback().Create().After("gorm:create").
		Register("ledger_test_shift_balance", func(tx *gorm.DB) {
			if tx.Statement.Table != "transactions" {
				return
			}
			raced++
			tx.Session(&gorm.Session{NewDB: true}).
				Exec("UPDATE accounts SET account_balance = account_balance + 1 WHERE account_id = ?", acc.AccountID)
		}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove("ledger_test_shift_balance") })

	_, err = svc.CreateTransaction(actor, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("30.00"),
		Type:      model.TransactionTypeDebit,
		Date:      svc.Now(),
	})
	assert.Equal(t, errs.CodeConflict, errs.Code(err))
	assert.Equal(t, balanceRetries, raced)

	// tidak ada write yang selamat setelah attempt habis: baris transaksi
	// ikut rollback, saldo persis seperti sebelum panggilan
	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var got model.Account
	require.NoError(t, db.First(&got, "account_id = ?", acc.AccountID).Error)
	assert.Equal(t, "100.00", got.AccountBalance.StringFixed(2))
}

func TestCreateTransactionInvalidInputs(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	_, err := svc.CreateTransaction(actor, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("-5.00"),
		Type:      model.TransactionTypeCredit,
		Date:      svc.Now(),
	})
	assert.Equal(t, errs.CodeInvalidStatus, errs.Code(err))

	_, err = svc.CreateTransaction(actor, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("5.00"),
		Type:      "transfer",
		Date:      svc.Now(),
	})
	assert.Equal(t, errs.CodeInvalidStatus, errs.Code(err))
}

func TestCreateTransactionRequiresPrivilege(t *testing.T) {
	svc, db := newTestService(t)
	acc, _ := seedAccount(t, svc, db)

	plain := Actor{MemberID: acc.AccountMemberID, MessID: acc.AccountMessID}
	_, err := svc.CreateTransaction(plain, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("5.00"),
		Type:      model.TransactionTypeCredit,
		Date:      svc.Now(),
	})
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))
}

func TestSoftDeleteAccount(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	// manager (bukan admin) ditolak
	err := svc.SoftDeleteAccount(actor, acc.AccountID)
	assert.Equal(t, errs.CodeForbidden, errs.Code(err))

	admin := Actor{MemberID: actor.MemberID, MessID: actor.MessID, Privileged: true, Admin: true}
	require.NoError(t, svc.SoftDeleteAccount(admin, acc.AccountID))

	// account keluar dari semua query alive
	var count int64
	require.NoError(t, model.ScopeAliveAccount(db.Model(&model.Account{})).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// transaksi ke account terhapus: NotFound
	_, err = svc.CreateTransaction(admin, CreateTransactionInput{
		AccountID: acc.AccountID,
		Amount:    amount("5.00"),
		Type:      model.TransactionTypeCredit,
		Date:      svc.Now(),
	})
	assert.Equal(t, errs.CodeNotFound, errs.Code(err))

	// tidak ada jalur resurrection
	require.NoError(t, db.Unscoped().First(&model.Account{}, "account_id = ?", acc.AccountID).Error)
}

func TestCreateAccountAfterDeleteAllowed(t *testing.T) {
	svc, db := newTestService(t)
	acc, actor := seedAccount(t, svc, db)

	admin := Actor{MemberID: actor.MemberID, MessID: actor.MessID, Privileged: true, Admin: true}
	require.NoError(t, svc.SoftDeleteAccount(admin, acc.AccountID))

	// pasangan (member, mess) boleh dapat account baru setelah yang lama dihapus
	fresh, err := svc.CreateAccount(actor, acc.AccountMemberID, acc.AccountMessID)
	require.NoError(t, err)
	assert.NotEqual(t, acc.AccountID, fresh.AccountID)
	assert.True(t, fresh.AccountBalance.IsZero())
}
