package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/database"
)

func InitListingExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		deactivateExpiredListings()
	})

	if err != nil {
		log.Printf("Could not initialize listing expiry cron: %v", err)
		return
	}

	c.Start()
}

// deactivateExpiredListings takes listings whose plan window has lapsed off
// the market. They stay in the database; owners can renew by paying again.
func deactivateExpiredListings() {
	log.Println("Checking for expired listings...")

	result := database.DB.Model(&model.PropertyListing{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Update("is_active", false)

	if result.Error != nil {
		log.Printf("Error deactivating expired listings: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Deactivated %d expired listings", result.RowsAffected)
	}
}
