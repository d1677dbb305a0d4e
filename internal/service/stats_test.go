package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiraya_backend/internal/model"
)

func TestOwnerDashboard(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	other := createUser(t, db, "other@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Standard", 5)
	first := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")
	second := createProperty(t, db, owner.ID, plan.ID, "14 Canal Road")

	booking := createPendingBooking(t, db, tenant.ID, first)
	_, err := ApproveBooking(db, booking.ID, owner.ID)
	require.NoError(t, err)

	createPendingBooking(t, db, other.ID, second)

	_, err = InitiateRentPayment(db, tenant.ID, InitiateRentPaymentInput{
		PropertyID:    first.ID,
		Amount:        45000,
		PaymentPeriod: model.PeriodLabel(time.Now()),
		DueDate:       time.Now().AddDate(0, 0, 5),
		TransactionID: "txn_dash_1",
	})
	require.NoError(t, err)

	dashboard, err := GetOwnerDashboard(db, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dashboard.ActiveListings)
	assert.EqualValues(t, 1, dashboard.RentedListings)
	assert.EqualValues(t, 1, dashboard.PendingBookings)
	assert.EqualValues(t, 1, dashboard.ApprovedBookings)
	assert.EqualValues(t, 1, dashboard.RentPayments)
}
