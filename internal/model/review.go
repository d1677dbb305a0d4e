package model

import "gorm.io/gorm"

// Review is gated on a completed booking: only a tenant holding an approved
// booking for the property may review it, once per booking.
type Review struct {
	gorm.Model
	Review string `json:"review" gorm:"type:text;not null"`
	Rating int    `json:"rating" gorm:"not null"`

	PropertyID uint `json:"property_id" gorm:"not null;index"`
	TenantID   uint `json:"tenant_id" gorm:"not null;uniqueIndex:idx_booking_tenant"`
	BookingID  uint `json:"booking_id" gorm:"not null;uniqueIndex:idx_booking_tenant"`

	Property PropertyListing `json:"-" gorm:"foreignKey:PropertyID"`
	Tenant   User            `json:"-" gorm:"foreignKey:TenantID"`
	Booking  Booking         `json:"-" gorm:"foreignKey:BookingID"`
}
