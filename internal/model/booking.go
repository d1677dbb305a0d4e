package model

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"

	// Present in the data model but not driven by any endpoint yet.
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type LeaseDuration string

const (
	LeaseThreeMonths LeaseDuration = "3 months"
	LeaseSixMonths   LeaseDuration = "6 months"
	LeaseOneYear     LeaseDuration = "1 year"
	LeaseTwoYears    LeaseDuration = "2 years"
	LeaseFlexible    LeaseDuration = "flexible"
)

// Booking is a tenant's request to rent a property. OwnerID is denormalized
// from the property at creation time. At most one pending-or-approved
// booking may exist per (tenant, property) pair.
type Booking struct {
	gorm.Model
	PropertyID uint `json:"property_id" gorm:"not null;index"`
	TenantID   uint `json:"tenant_id" gorm:"not null;index"`
	OwnerID    uint `json:"owner_id" gorm:"not null;index"`

	RequestDate          time.Time     `json:"request_date"`
	DesiredMoveInDate    time.Time     `json:"desired_move_in_date" gorm:"not null"`
	DesiredLeaseDuration LeaseDuration `json:"desired_lease_duration" gorm:"not null;default:'1 year'"`

	Status            BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	MessageFromTenant string        `json:"message_from_tenant"`
	MessageFromOwner  string        `json:"message_from_owner"`

	// Set to true once the owner approves and contact details are revealed.
	ContactInfoShared bool `json:"contact_info_shared" gorm:"default:false"`

	Property PropertyListing `json:"-" gorm:"foreignKey:PropertyID"`
	Tenant   User            `json:"-" gorm:"foreignKey:TenantID"`
	Owner    User            `json:"-" gorm:"foreignKey:OwnerID"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.RequestDate.IsZero() {
		b.RequestDate = time.Now()
	}
	return nil
}
