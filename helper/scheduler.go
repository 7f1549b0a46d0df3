package helper

import (
	"log"
	"time"

	"nyn_restaurant/database"
	"nyn_restaurant/model"

	"github.com/robfig/cron/v3"
)

var promoScheduler *cron.Cron

// StartPromoExpiryScheduler deactivates promotions past their expiry so the
// validator's "expired" answer matches the stored active flag.
func StartPromoExpiryScheduler() {
	promoScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := promoScheduler.AddFunc("0 * * * *", deactivateExpiredPromotions)
	if err != nil {
		log.Printf("failed to start promotion scheduler: %v", err)
		return
	}

	promoScheduler.Start()
	log.Println("Promotion expiry scheduler started (hourly)")
}

func deactivateExpiredPromotions() {
	result := database.DB.Model(&model.Promotion{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Update("active", false)

	if result.Error != nil {
		log.Printf("failed to deactivate expired promotions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Deactivated %d expired promotions", result.RowsAffected)
	}
}

func StopPromoExpiryScheduler() {
	if promoScheduler != nil {
		promoScheduler.Stop()
	}
}
