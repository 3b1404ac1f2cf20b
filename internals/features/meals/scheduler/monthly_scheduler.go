// file: internals/features/meals/scheduler/monthly_scheduler.go
package scheduler

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	mealService "messku_backend/internals/features/meals/service"
)

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// StartMonthlyMealCron menjadwalkan pre-seed catatan makan untuk bulan
// berikutnya. Default: jam 01:00 tanggal 25 tiap bulan, override lewat
// MEAL_GEN_CRON_SCHEDULE.
func StartMonthlyMealCron(db *gorm.DB) {
	schedule := getEnvOrDefault("MEAL_GEN_CRON_SCHEDULE", "0 1 25 * *")
	svc := mealService.NewMealService(db)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		svc.GenerateMonthlyMeals(ctx)
	})
	if err != nil {
		log.Fatalf("[MEAL-GEN] add cron gagal: %v", err)
	}
	log.Printf("[MEAL-GEN] started schedule=%q", schedule)
	c.Start()
}
