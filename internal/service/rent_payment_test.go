package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

func rentInput(propertyID uint, period, txnID string) InitiateRentPaymentInput {
	return InitiateRentPaymentInput{
		PropertyID:    propertyID,
		Amount:        45000,
		PaymentPeriod: period,
		DueDate:       time.Now().AddDate(0, 0, 5),
		TransactionID: txnID,
	}
}

func TestInitiateRentPayment(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	payment, err := InitiateRentPayment(db, tenant.ID, rentInput(property.ID, "January 2026", "txn_rent_1"))
	require.NoError(t, err)
	assert.Equal(t, model.RentPaymentCompleted, payment.Status)
	assert.Equal(t, owner.ID, payment.OwnerID)
	assert.Equal(t, model.CurrencyPKR, payment.Currency)
}

func TestInitiateRentPaymentDuplicatePeriod(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	_, err := InitiateRentPayment(db, tenant.ID, rentInput(property.ID, "January 2026", "txn_rent_1"))
	require.NoError(t, err)

	_, err = InitiateRentPayment(db, tenant.ID, rentInput(property.ID, "January 2026", "txn_rent_2"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusConflict))
	assert.EqualError(t, err, "Payment for this period already exists")

	_, err = InitiateRentPayment(db, tenant.ID, rentInput(property.ID, "February 2026", "txn_rent_3"))
	require.NoError(t, err)
}

func TestCheckRentStatus(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	status, err := CheckRentStatus(db, property.ID, tenant.ID)
	require.NoError(t, err)
	assert.False(t, status.AlreadyPaid)
	assert.Nil(t, status.Payment)

	currentPeriod := model.PeriodLabel(time.Now())
	_, err = InitiateRentPayment(db, tenant.ID, rentInput(property.ID, currentPeriod, "txn_rent_now"))
	require.NoError(t, err)

	status, err = CheckRentStatus(db, property.ID, tenant.ID)
	require.NoError(t, err)
	assert.True(t, status.AlreadyPaid)
	require.NotNil(t, status.Payment)
	assert.Equal(t, currentPeriod, status.Payment.PaymentPeriod)
}

func TestVerifyRentPaymentOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	stranger := createUser(t, db, "stranger@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	payment, err := InitiateRentPayment(db, tenant.ID, rentInput(property.ID, "January 2026", "txn_rent_1"))
	require.NoError(t, err)

	_, err = VerifyRentPayment(db, payment.ID, stranger.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusNotFound))

	verified, err := VerifyRentPayment(db, payment.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, verified.VerifiedByOwnerID)
	assert.Equal(t, owner.ID, *verified.VerifiedByOwnerID)
	assert.NotNil(t, verified.VerificationDate)
}

func TestRentPaymentHistories(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	other := createUser(t, db, "other@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Standard", 5)
	first := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")
	second := createProperty(t, db, owner.ID, plan.ID, "14 Canal Road")

	_, err := InitiateRentPayment(db, tenant.ID, rentInput(first.ID, "January 2026", "txn_hist_1"))
	require.NoError(t, err)
	_, err = InitiateRentPayment(db, other.ID, rentInput(second.ID, "January 2026", "txn_hist_2"))
	require.NoError(t, err)

	mine, err := ListRentPaymentsForTenant(db, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	received, err := ListRentPaymentsForOwner(db, owner.ID)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	_, err = ListRentPaymentsForProperty(db, first.ID, tenant.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusNotFound))

	byProperty, err := ListRentPaymentsForProperty(db, first.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, byProperty, 1)
}

func TestPeriodLabel(t *testing.T) {
	label := model.PeriodLabel(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "March 2025", label)
}
