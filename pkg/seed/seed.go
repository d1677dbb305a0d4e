package seed

import (
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kiraya_backend/internal/model"
)

func SeedPlans(db *gorm.DB) {
	plans := []model.Plan{
		{
			Name:         "Basic",
			Price:        1500,
			DurationDays: 30,
			MaxListings:  1,
			Features:     datatypes.NewJSONSlice([]string{"Standard Listing"}),
		},
		{
			Name:         "Standard",
			Price:        4000,
			DurationDays: 60,
			MaxListings:  5,
			Features:     datatypes.NewJSONSlice([]string{"Standard Listing", "Priority Support"}),
		},
		{
			Name:         "Premium",
			Price:        10000,
			DurationDays: 90,
			MaxListings:  20,
			Features:     datatypes.NewJSONSlice([]string{"Featured Listing", "Priority Support", "Verified Badge"}),
		},
	}

	for _, plan := range plans {
		result := db.FirstOrCreate(&plan, model.Plan{Name: plan.Name})
		if result.Error != nil {
			log.Printf("Error creating plan %s: %v", plan.Name, result.Error)
		}
	}

	log.Println("Plans seeded successfully!")
}
