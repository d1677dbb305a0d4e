package service

import (
	"gorm.io/gorm"

	"kiraya_backend/internal/model"
)

// OwnerDashboard aggregates an owner's marketplace activity.
type OwnerDashboard struct {
	ActiveListings   int64 `json:"active_listings"`
	RentedListings   int64 `json:"rented_listings"`
	PendingBookings  int64 `json:"pending_bookings"`
	ApprovedBookings int64 `json:"approved_bookings"`
	RentPayments     int64 `json:"rent_payments"`
}

func GetOwnerDashboard(db *gorm.DB, ownerID uint) (*OwnerDashboard, error) {
	dashboard := &OwnerDashboard{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&dashboard.ActiveListings, db.Model(&model.PropertyListing{}).
			Where("owner_id = ? AND is_active = ?", ownerID, true)},
		{&dashboard.RentedListings, db.Model(&model.PropertyListing{}).
			Where("owner_id = ? AND availability_status = ?", ownerID, model.AvailabilityRented)},
		{&dashboard.PendingBookings, db.Model(&model.Booking{}).
			Where("owner_id = ? AND status = ?", ownerID, model.BookingStatusPending)},
		{&dashboard.ApprovedBookings, db.Model(&model.Booking{}).
			Where("owner_id = ? AND status = ?", ownerID, model.BookingStatusApproved)},
		{&dashboard.RentPayments, db.Model(&model.RentPayment{}).
			Where("owner_id = ? AND status = ?", ownerID, model.RentPaymentCompleted)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return dashboard, nil
}
