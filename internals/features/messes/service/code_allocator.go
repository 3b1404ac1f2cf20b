// file: internals/features/messes/service/code_allocator.go
package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"messku_backend/internals/features/messes/model"
)

const messCounterRow = 1

// NextMessCode menaikkan counter secara atomik dan mengembalikan kode baru.
// Dipanggil DI DALAM transaction pembuatan mess: kalau create gagal,
// increment ikut rollback sehingga kode tidak bolong.
// UPDATE seq = seq + 1 cukup atomik tanpa SELECT FOR UPDATE.
func NextMessCode(tx *gorm.DB) (string, error) {
	res := tx.Model(&model.MessCounter{}).
		Where("mess_counter_id = ?", messCounterRow).
		Update("mess_counter_seq", gorm.Expr("mess_counter_seq + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// baris seed belum ada — buat sekali
		seed := model.MessCounter{MessCounterID: messCounterRow, MessCounterSeq: 1}
		if err := tx.Create(&seed).Error; err != nil {
			return "", err
		}
		return formatMessCode(seed.MessCounterSeq), nil
	}

	var counter model.MessCounter
	if err := tx.First(&counter, "mess_counter_id = ?", messCounterRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("mess counter hilang setelah update")
		}
		return "", err
	}
	return formatMessCode(counter.MessCounterSeq), nil
}

func formatMessCode(seq int64) string {
	return fmt.Sprintf("MESS-%04d", seq)
}
