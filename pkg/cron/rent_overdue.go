package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/database"
)

func InitRentOverdueCron() {
	c := cron.New()

	_, err := c.AddFunc("0 4 * * *", func() {
		markOverdueRentPayments()
	})

	if err != nil {
		log.Printf("Could not initialize rent overdue cron: %v", err)
		return
	}

	c.Start()
}

func markOverdueRentPayments() {
	log.Println("Checking for overdue rent payments...")

	result := database.DB.Model(&model.RentPayment{}).
		Where("status = ? AND due_date < ?", model.RentPaymentPending, time.Now()).
		Update("status", model.RentPaymentOverdue)

	if result.Error != nil {
		log.Printf("Error marking overdue rent payments: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d rent payments overdue", result.RowsAffected)
	}
}
