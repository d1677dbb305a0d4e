package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type CreateBookingInput struct {
	DesiredMoveInDate    time.Time           `json:"desired_move_in_date" validate:"required"`
	DesiredLeaseDuration model.LeaseDuration `json:"desired_lease_duration" validate:"omitempty,oneof='3 months' '6 months' '1 year' '2 years' flexible"`
	MessageFromTenant    string              `json:"message_from_tenant"`
}

// CreateBooking validates tenant eligibility and opens a pending booking.
// The property's owner id is denormalized onto the booking so approval
// checks never need the property row.
func CreateBooking(db *gorm.DB, tenantID, propertyID uint, in CreateBookingInput) (*model.Booking, error) {
	var tenant model.User
	if err := db.First(&tenant, tenantID).Error; err != nil {
		return nil, apperror.FromGorm(err, "User not found")
	}

	if tenant.Role != model.RoleTenant {
		return nil, apperror.Forbidden("Only tenants can create bookings")
	}
	if !tenant.IsVerified {
		return nil, apperror.Unauthorized("Please verify your account via OTP before booking")
	}

	var property model.PropertyListing
	if err := db.First(&property, propertyID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Property is not available")
	}
	if property.AvailabilityStatus != model.AvailabilityAvailable {
		return nil, apperror.NotFound("Property is not available")
	}

	if property.OwnerID == tenant.ID {
		return nil, apperror.BadRequest("You cannot book your own property")
	}

	var existing int64
	if err := db.Model(&model.Booking{}).
		Where("tenant_id = ? AND property_id = ? AND status IN ?",
			tenantID, propertyID, []model.BookingStatus{model.BookingStatusPending, model.BookingStatusApproved}).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperror.Conflict("You already have a pending/approved booking for this property")
	}

	leaseDuration := in.DesiredLeaseDuration
	if leaseDuration == "" {
		leaseDuration = model.LeaseOneYear
	}

	booking := model.Booking{
		PropertyID:           propertyID,
		TenantID:             tenantID,
		OwnerID:              property.OwnerID,
		DesiredMoveInDate:    in.DesiredMoveInDate,
		DesiredLeaseDuration: leaseDuration,
		Status:               model.BookingStatusPending,
		MessageFromTenant:    in.MessageFromTenant,
	}

	if err := db.Create(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

// ApproveBooking moves a pending booking to approved: contact info is
// disclosed and the property comes off the market. Booking update and
// property flip happen in one transaction.
func ApproveBooking(db *gorm.DB, bookingID, actingOwnerID uint) (*model.Booking, error) {
	var booking model.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Booking not found")
	}

	if booking.OwnerID != actingOwnerID {
		return nil, apperror.Forbidden("You are not allowed to approve this booking")
	}
	if booking.Status != model.BookingStatusPending {
		return nil, apperror.BadRequest("Only pending bookings can be approved")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		booking.Status = model.BookingStatusApproved
		booking.ContactInfoShared = true
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return tx.Model(&model.PropertyListing{}).
			Where("id = ?", booking.PropertyID).
			Update("availability_status", model.AvailabilityRented).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// RejectBooking moves a pending booking to rejected. Contact info stays
// hidden and the property's availability is untouched.
func RejectBooking(db *gorm.DB, bookingID, actingOwnerID uint) (*model.Booking, error) {
	var booking model.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Booking not found")
	}

	if booking.OwnerID != actingOwnerID {
		return nil, apperror.Forbidden("You are not allowed to reject this booking")
	}
	if booking.Status != model.BookingStatusPending {
		return nil, apperror.BadRequest("Only pending bookings can be rejected")
	}

	booking.Status = model.BookingStatusRejected
	booking.ContactInfoShared = false
	if err := db.Save(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

// ListBookingsForUser returns a tenant's requests or an owner's incoming
// requests, with property and counterparty rows joined.
func ListBookingsForUser(db *gorm.DB, userID uint, role model.Role) ([]model.Booking, error) {
	column := "owner_id"
	if role == model.RoleTenant {
		column = "tenant_id"
	}

	var bookings []model.Booking
	err := db.Where(column+" = ?", userID).
		Preload("Property").
		Preload("Tenant").
		Preload("Owner").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// BookingStatusProjection is the tenant-facing view of their booking on a
// property; owner contact fields are filled only after approval.
type BookingStatusProjection struct {
	Status            model.BookingStatus `json:"status"`
	ContactInfoShared bool                `json:"contact_info_shared"`
	OwnerName         string              `json:"owner_name,omitempty"`
	OwnerEmail        string              `json:"owner_email,omitempty"`
	OwnerPhone        string              `json:"owner_phone,omitempty"`
}

// BookingForProperty resolves the tenant's booking on a property into a
// status projection, disclosing owner contact details when approved.
func BookingForProperty(db *gorm.DB, tenantID, propertyID uint) (*BookingStatusProjection, error) {
	var booking model.Booking
	err := db.Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("created_at DESC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("No booking found for this property")
	}
	if err != nil {
		return nil, err
	}

	projection := &BookingStatusProjection{
		Status:            booking.Status,
		ContactInfoShared: booking.ContactInfoShared,
	}

	if booking.Status == model.BookingStatusApproved && booking.ContactInfoShared {
		var owner model.User
		if err := db.First(&owner, booking.OwnerID).Error; err != nil {
			return nil, err
		}
		projection.OwnerName = owner.GetFullName()
		projection.OwnerEmail = owner.Email
		projection.OwnerPhone = owner.PhoneNumber
	}

	return projection, nil
}

// GetBooking fetches one booking with all parties joined.
func GetBooking(db *gorm.DB, id uint) (*model.Booking, error) {
	var booking model.Booking
	err := db.Preload("Property").Preload("Tenant").Preload("Owner").First(&booking, id).Error
	if err != nil {
		return nil, apperror.FromGorm(err, "Booking not found")
	}
	return &booking, nil
}
