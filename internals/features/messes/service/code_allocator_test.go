// file: internals/features/messes/service/code_allocator_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messku_backend/internals/testutil"
)

func TestNextMessCodeMonotonic(t *testing.T) {
	db := testutil.OpenTestDB(t)

	got := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		code, err := NextMessCode(db)
		require.NoError(t, err)
		got = append(got, code)
	}
	assert.Equal(t, []string{"MESS-0001", "MESS-0002", "MESS-0003"}, got)
}

func TestNextMessCodeRollbackLeavesNoGap(t *testing.T) {
	db := testutil.OpenTestDB(t)

	code, err := NextMessCode(db)
	require.NoError(t, err)
	assert.Equal(t, "MESS-0001", code)

	// increment di dalam tx yang rollback tidak boleh memakan nomor
	tx := db.Begin()
	_, err = NextMessCode(tx)
	require.NoError(t, err)
	tx.Rollback()

	code, err = NextMessCode(db)
	require.NoError(t, err)
	assert.Equal(t, "MESS-0002", code)
}
