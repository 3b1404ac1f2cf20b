// file: internals/features/meals/service/monthly_generator.go
package service

import (
	"context"
	"log"

	"gorm.io/gorm/clause"

	"messku_backend/internals/features/meals/model"
	messModel "messku_backend/internals/features/messes/model"
	"messku_backend/internals/helpers/dates"
)

// GenerateMonthlyMeals menyemai catatan makan default (semua slot aktif, jumlah 0)
// untuk BULAN BERIKUTNYA: setiap mess aktif × setiap member eligible × setiap hari.
//
// Sengaja best-effort per mess: insert bulk ON CONFLICT DO NOTHING, jadi
// duplikat (rerun di bulan yang sama) cuma di-skip baris itu — tidak pernah
// menggagalkan satu mess penuh apalagi seluruh run. Idempoten by construction.
func (s *MealService) GenerateMonthlyMeals(ctx context.Context) {
	first, days := dates.NextMonthRange(s.Now())
	log.Printf("[MEAL-GEN] mulai generate %s (%d hari)", first.Format("2006-01"), days)

	var messes []messModel.Mess
	if err := messModel.ScopeAlive(s.DB.WithContext(ctx)).
		Where("mess_status = ?", messModel.MessStatusActive).
		Find(&messes).Error; err != nil {
		log.Printf("[MEAL-GEN ERROR] gagal ambil daftar mess: %v", err)
		return
	}

	totalInserted, totalSkipped := 0, 0
	for _, mess := range messes {
		members, err := s.Members.EligibleMembersOfMess(s.DB.WithContext(ctx), mess.MessID)
		if err != nil {
			log.Printf("[MEAL-GEN ERROR] mess %s: gagal ambil member: %v", mess.MessCode, err)
			continue
		}
		if len(members) == 0 {
			continue
		}

		rows := make([]model.MealRecord, 0, len(members)*days)
		for _, mb := range members {
			for d := 0; d < days; d++ {
				rows = append(rows, model.DefaultRecord(mess.MessID, mb.MemberID, first.AddDate(0, 0, d)))
			}
		}

		res := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(&rows, 500)
		if res.Error != nil {
			// kegagalan satu mess tidak mematikan run
			log.Printf("[MEAL-GEN ERROR] mess %s: %v", mess.MessCode, res.Error)
			continue
		}

		inserted := int(res.RowsAffected)
		skipped := len(rows) - inserted
		totalInserted += inserted
		totalSkipped += skipped
		log.Printf("[MEAL-GEN] mess %s: %d insert, %d skip (sudah ada)", mess.MessCode, inserted, skipped)
	}

	log.Printf("[MEAL-GEN] selesai: %d insert, %d skip", totalInserted, totalSkipped)
}
