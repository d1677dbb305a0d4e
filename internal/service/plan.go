package service

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type PlanInput struct {
	Name         string   `json:"name" validate:"required"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	DurationDays int      `json:"duration_days" validate:"required,min=1"`
	MaxListings  int      `json:"max_listings" validate:"required,min=1"`
	Features     []string `json:"features"`
	IsActive     *bool    `json:"is_active"`
}

// ListActivePlans is the public plan catalog.
func ListActivePlans(db *gorm.DB) ([]model.Plan, error) {
	var plans []model.Plan
	err := db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

// GetPlan fetches one plan by id.
func GetPlan(db *gorm.DB, id uint) (*model.Plan, error) {
	var plan model.Plan
	if err := db.First(&plan, id).Error; err != nil {
		return nil, apperror.FromGorm(err, "Plan not found")
	}
	return &plan, nil
}

// CreatePlan is admin-only; plan names are unique.
func CreatePlan(db *gorm.DB, in PlanInput) (*model.Plan, error) {
	plan := model.Plan{
		Name:         in.Name,
		Price:        in.Price,
		DurationDays: in.DurationDays,
		MaxListings:  in.MaxListings,
		Features:     datatypes.NewJSONSlice(in.Features),
		IsActive:     true,
	}
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}

	if err := db.Create(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("A plan with this name already exists")
		}
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan edits a plan in place. Existing payments keep referencing it;
// deactivating a plan blocks further listing creation under it.
func UpdatePlan(db *gorm.DB, id uint, in PlanInput) (*model.Plan, error) {
	var plan model.Plan
	if err := db.First(&plan, id).Error; err != nil {
		return nil, apperror.FromGorm(err, "Plan not found")
	}

	plan.Name = in.Name
	plan.Price = in.Price
	plan.DurationDays = in.DurationDays
	plan.MaxListings = in.MaxListings
	if in.Features != nil {
		plan.Features = datatypes.NewJSONSlice(in.Features)
	}
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}

	if err := db.Save(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("A plan with this name already exists")
		}
		return nil, err
	}
	return &plan, nil
}

// DeletePlan removes a plan from sale.
func DeletePlan(db *gorm.DB, id uint) error {
	var plan model.Plan
	if err := db.First(&plan, id).Error; err != nil {
		return apperror.FromGorm(err, "Plan not found")
	}
	return db.Delete(&plan).Error
}
