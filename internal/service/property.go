package service

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type CreateListingInput struct {
	Title       string `json:"title" validate:"required,min=10,max=100"`
	Description string `json:"description" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	Region      string `json:"region" validate:"required"`

	PropertyType model.PropertyType `json:"property_type" validate:"required,oneof=house office shop"`
	RentAmount   float64            `json:"rent_amount" validate:"required,gt=0"`
	Currency     model.Currency     `json:"currency" validate:"omitempty,oneof=PKR USD EUR GBP"`

	NumberOfBedrooms  int      `json:"number_of_bedrooms" validate:"min=0"`
	NumberOfBathrooms int      `json:"number_of_bathrooms" validate:"min=0"`
	AreaSqFt          int      `json:"area_sq_ft" validate:"min=0"`
	Amenities         []string `json:"amenities"`

	Images []string `json:"images"`
}

type UpdateListingInput struct {
	Title       string `json:"title" validate:"omitempty,min=10,max=100"`
	Description string `json:"description"`

	RentAmount float64        `json:"rent_amount" validate:"omitempty,gt=0"`
	Currency   model.Currency `json:"currency" validate:"omitempty,oneof=PKR USD EUR GBP"`

	NumberOfBedrooms  *int     `json:"number_of_bedrooms"`
	NumberOfBathrooms *int     `json:"number_of_bathrooms"`
	AreaSqFt          *int     `json:"area_sq_ft"`
	Amenities         []string `json:"amenities"`

	AvailabilityStatus model.AvailabilityStatus `json:"availability_status" validate:"omitempty,oneof=available rented pending"`
}

// CreateListing runs the entitlement-gated listing creation: latest
// completed payment -> plan still active -> quota headroom -> create and
// link the listing to the payment. The whole check-then-act sequence runs
// in one transaction so two concurrent creations cannot both pass the
// quota count.
func CreateListing(db *gorm.DB, ownerID uint, in CreateListingInput) (*model.PropertyListing, error) {
	if len(in.Images) > model.MaxPropertyImages {
		return nil, apperror.BadRequest("You can upload a maximum of %d images per property", model.MaxPropertyImages)
	}

	var property model.PropertyListing

	err := db.Transaction(func(tx *gorm.DB) error {
		payment, err := LatestActiveEntitlement(tx, ownerID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.Forbidden("No valid active paid plan found. Please purchase a plan first.")
		}

		var plan model.Plan
		if err := tx.First(&plan, payment.PlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Forbidden("The plan in your payment is no longer active.")
			}
			return err
		}
		if !plan.IsActive {
			return apperror.Forbidden("The plan in your payment is no longer active.")
		}

		var currentListings int64
		if err := tx.Model(&model.PropertyListing{}).
			Where("owner_id = ? AND plan_id = ? AND is_active = ?", ownerID, plan.ID, true).
			Count(&currentListings).Error; err != nil {
			return err
		}
		if currentListings >= int64(plan.MaxListings) {
			return apperror.Forbidden("You have reached your listing limit (%d) for the %s plan.",
				plan.MaxListings, plan.Name)
		}

		currency := in.Currency
		if currency == "" {
			currency = model.CurrencyPKR
		}

		expiresAt := time.Now().Add(time.Duration(plan.DurationDays) * 24 * time.Hour)

		property = model.PropertyListing{
			Title:             in.Title,
			Description:       in.Description,
			Address:           in.Address,
			City:              in.City,
			Region:            in.Region,
			PropertyType:      in.PropertyType,
			RentAmount:        in.RentAmount,
			Currency:          currency,
			NumberOfBedrooms:  in.NumberOfBedrooms,
			NumberOfBathrooms: in.NumberOfBathrooms,
			AreaSqFt:          in.AreaSqFt,
			Amenities:         datatypes.NewJSONSlice(in.Amenities),
			Images:            datatypes.NewJSONSlice(in.Images),
			OwnerID:           ownerID,
			PlanID:            plan.ID,
			ExpiresAt:         &expiresAt,
		}

		if err := tx.Create(&property).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("A listing already exists at this address")
			}
			return err
		}

		payment.PropertyIDs = append(payment.PropertyIDs, property.ID)
		return tx.Model(payment).Update("property_ids", payment.PropertyIDs).Error
	})
	if err != nil {
		return nil, err
	}

	return &property, nil
}

// UpdateListing applies a partial update and appends newImages to the
// existing set, holding the total at the image cap.
func UpdateListing(db *gorm.DB, id uint, in UpdateListingInput, newImages []string) (*model.PropertyListing, error) {
	var property model.PropertyListing
	if err := db.First(&property, id).Error; err != nil {
		return nil, apperror.FromGorm(err, "Property not found")
	}

	if len(newImages) > 0 {
		merged := append([]string(property.Images), newImages...)
		if len(merged) > model.MaxPropertyImages {
			return nil, apperror.BadRequest("You can upload a maximum of %d images per property", model.MaxPropertyImages)
		}
		property.Images = datatypes.NewJSONSlice(merged)
	}

	if in.Title != "" {
		property.Title = in.Title
	}
	if in.Description != "" {
		property.Description = in.Description
	}
	if in.RentAmount > 0 {
		property.RentAmount = in.RentAmount
	}
	if in.Currency != "" {
		property.Currency = in.Currency
	}
	if in.NumberOfBedrooms != nil {
		property.NumberOfBedrooms = *in.NumberOfBedrooms
	}
	if in.NumberOfBathrooms != nil {
		property.NumberOfBathrooms = *in.NumberOfBathrooms
	}
	if in.AreaSqFt != nil {
		property.AreaSqFt = *in.AreaSqFt
	}
	if in.Amenities != nil {
		property.Amenities = datatypes.NewJSONSlice(in.Amenities)
	}
	if in.AvailabilityStatus != "" {
		property.AvailabilityStatus = in.AvailabilityStatus
	}

	if err := db.Save(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("A listing already exists at this address")
		}
		return nil, err
	}

	return &property, nil
}

// PropertyFilters narrows the public catalog. Zero values mean no filter.
type PropertyFilters struct {
	City               string
	Region             string
	PropertyType       model.PropertyType
	AvailabilityStatus model.AvailabilityStatus
	MinRent            float64
	MaxRent            float64
}

// ListActiveProperties is the public catalog view.
func ListActiveProperties(db *gorm.DB, filters PropertyFilters) ([]model.PropertyListing, error) {
	query := db.Where("is_active = ?", true)

	if filters.City != "" {
		query = query.Where("city = ?", filters.City)
	}
	if filters.Region != "" {
		query = query.Where("region = ?", filters.Region)
	}
	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}
	if filters.AvailabilityStatus != "" {
		query = query.Where("availability_status = ?", filters.AvailabilityStatus)
	}
	if filters.MinRent > 0 {
		query = query.Where("rent_amount >= ?", filters.MinRent)
	}
	if filters.MaxRent > 0 {
		query = query.Where("rent_amount <= ?", filters.MaxRent)
	}

	var properties []model.PropertyListing
	err := query.Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// ListPropertiesForOwner returns all of the owner's listings with their
// plans joined.
func ListPropertiesForOwner(db *gorm.DB, ownerID uint) ([]model.PropertyListing, error) {
	var properties []model.PropertyListing
	err := db.Where("owner_id = ?", ownerID).
		Preload("Plan").
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

// GetProperty fetches one listing with owner and plan joined.
func GetProperty(db *gorm.DB, id uint) (*model.PropertyListing, error) {
	var property model.PropertyListing
	if err := db.Preload("Owner").Preload("Plan").First(&property, id).Error; err != nil {
		return nil, apperror.FromGorm(err, "Property not found")
	}
	return &property, nil
}

// VerifyProperty flips the admin verification flag.
func VerifyProperty(db *gorm.DB, id uint) (*model.PropertyListing, error) {
	var property model.PropertyListing
	if err := db.First(&property, id).Error; err != nil {
		return nil, apperror.FromGorm(err, "Property not found")
	}

	property.IsVerified = true
	if err := db.Save(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// DeleteProperty removes a listing.
func DeleteProperty(db *gorm.DB, id uint) error {
	var property model.PropertyListing
	if err := db.First(&property, id).Error; err != nil {
		return apperror.FromGorm(err, "Property not found")
	}
	return db.Delete(&property).Error
}
