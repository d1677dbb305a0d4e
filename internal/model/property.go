package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyTypeHouse  PropertyType = "house"
	PropertyTypeOffice PropertyType = "office"
	PropertyTypeShop   PropertyType = "shop"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityRented    AvailabilityStatus = "rented"
	AvailabilityPending   AvailabilityStatus = "pending"
)

const MaxPropertyImages = 5

// PropertyListing is a rental listing created under a paid plan. The
// address+city+region triple is globally unique; ExpiresAt is stamped at
// creation from the plan's duration.
type PropertyListing struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"type:text;not null"`
	Address     string `json:"address" gorm:"uniqueIndex:idx_address_city_region;not null"`
	City        string `json:"city" gorm:"uniqueIndex:idx_address_city_region;not null"`
	Region      string `json:"region" gorm:"uniqueIndex:idx_address_city_region;not null"`

	PropertyType PropertyType `json:"property_type" gorm:"not null"`
	RentAmount   float64      `json:"rent_amount" gorm:"not null"`
	Currency     Currency     `json:"currency" gorm:"not null;default:'PKR'"`

	NumberOfBedrooms  int                         `json:"number_of_bedrooms"`
	NumberOfBathrooms int                         `json:"number_of_bathrooms"`
	AreaSqFt          int                         `json:"area_sq_ft"`
	Amenities         datatypes.JSONSlice[string] `json:"amenities"`
	Images            datatypes.JSONSlice[string] `json:"images"`

	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"not null;default:'available'"`
	IsVerified         bool               `json:"is_verified" gorm:"default:false"`
	IsActive           bool               `json:"is_active" gorm:"default:true"`

	OwnerID   uint       `json:"owner_id" gorm:"not null;index"`
	PlanID    uint       `json:"plan_id" gorm:"not null;index"`
	ExpiresAt *time.Time `json:"expires_at"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
	Plan  Plan `json:"-" gorm:"foreignKey:PlanID"`
}

// Summary is the projection embedded in booking and payment responses.
func (p *PropertyListing) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"title":       p.Title,
		"address":     p.Address,
		"city":        p.City,
		"region":      p.Region,
		"rent_amount": p.RentAmount,
		"currency":    p.Currency,
		"images":      p.Images,
	}
}
