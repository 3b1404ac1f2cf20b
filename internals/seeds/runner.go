// file: internals/seeds/runner.go
package seeds

import (
	"log"

	"gorm.io/gorm"

	"messku_backend/internals/constants"
	memberModel "messku_backend/internals/features/members/model"
	messModel "messku_backend/internals/features/messes/model"
	messService "messku_backend/internals/features/messes/service"
)

// RunAllSeeds mengisi data demo untuk pengembangan lokal.
// Aman dipanggil berulang: skip kalau mess demo sudah ada.
func RunAllSeeds(db *gorm.DB) {
	var existing int64
	if err := messModel.ScopeAlive(db.Model(&messModel.Mess{})).
		Where("mess_name = ?", "Mess Demo").
		Count(&existing).Error; err != nil {
		log.Printf("[SEED ERROR] cek mess demo: %v", err)
		return
	}
	if existing > 0 {
		log.Println("[SEED] mess demo sudah ada, skip")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		code, err := messService.NextMessCode(tx)
		if err != nil {
			return err
		}

		mess := messModel.Mess{
			MessName:   "Mess Demo",
			MessCode:   code,
			MessStatus: messModel.MessStatusActive,
		}
		if err := tx.Create(&mess).Error; err != nil {
			return err
		}

		members := []memberModel.Member{
			{
				MemberMessID:     mess.MessID,
				MemberName:       "Admin Demo",
				MemberEmail:      "admin@messku.local",
				MemberRole:       constants.RoleAdmin,
				MemberIsApproved: true,
				MemberIsVerified: true,
			},
			{
				MemberMessID:     mess.MessID,
				MemberName:       "Member Demo",
				MemberEmail:      "member@messku.local",
				MemberRole:       constants.RoleMember,
				MemberIsApproved: true,
				MemberIsVerified: true,
			},
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		log.Printf("[SEED ERROR] seed demo gagal: %v", err)
		return
	}
	log.Println("[SEED] mess demo dibuat")
}
