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

func listingInput(address string) CreateListingInput {
	return CreateListingInput{
		Title:        "Two bed apartment near " + address,
		Description:  "A bright two bed apartment with parking.",
		Address:      address,
		City:         "Lahore",
		Region:       "Punjab",
		PropertyType: model.PropertyTypeHouse,
		RentAmount:   45000,
	}
}

func TestCreateListingRequiresEntitlement(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)

	_, err := CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusForbidden))
	assert.EqualError(t, err, "No valid active paid plan found. Please purchase a plan first.")
}

func TestCreateListingQuota(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	createEntitlement(t, db, owner.ID, plan.ID, "txn_quota_1")

	_, err := CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.NoError(t, err)

	_, err = CreateListing(db, owner.ID, listingInput("14 Canal Road"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusForbidden))
	assert.EqualError(t, err, "You have reached your listing limit (1) for the Basic plan.")
}

func TestCreateListingInactivePlan(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	createEntitlement(t, db, owner.ID, plan.ID, "txn_inactive_1")

	require.NoError(t, db.Model(plan).Update("is_active", false).Error)

	_, err := CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusForbidden))
	assert.EqualError(t, err, "The plan in your payment is no longer active.")
}

func TestCreateListingStampsExpiryAndLinksPayment(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	payment := createEntitlement(t, db, owner.ID, plan.ID, "txn_link_1")

	property, err := CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.NoError(t, err)

	require.NotNil(t, property.ExpiresAt)
	wantExpiry := time.Now().Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	assert.WithinDuration(t, wantExpiry, *property.ExpiresAt, time.Minute)

	var reloaded model.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	assert.Contains(t, []uint(reloaded.PropertyIDs), property.ID)
}

func TestCreateListingDuplicateAddress(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Standard", 5)
	createEntitlement(t, db, owner.ID, plan.ID, "txn_dup_addr")

	_, err := CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.NoError(t, err)

	_, err = CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusConflict))
}

func TestDeactivatedListingFreesQuota(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	createEntitlement(t, db, owner.ID, plan.ID, "txn_free_quota")

	first, err := CreateListing(db, owner.ID, listingInput("12 Canal Road"))
	require.NoError(t, err)

	require.NoError(t, db.Model(first).Update("is_active", false).Error)

	_, err = CreateListing(db, owner.ID, listingInput("14 Canal Road"))
	require.NoError(t, err)
}

func TestUpdateListingImageCap(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	_, err := UpdateListing(db, property.ID, UpdateListingInput{},
		[]string{"a.webp", "b.webp", "c.webp", "d.webp"})
	require.NoError(t, err)

	_, err = UpdateListing(db, property.ID, UpdateListingInput{}, []string{"e.webp", "f.webp"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusBadRequest))
}

func TestListActivePropertiesFilters(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Standard", 5)

	cheap := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")
	require.NoError(t, db.Model(cheap).Update("rent_amount", 20000).Error)

	expensive := createProperty(t, db, owner.ID, plan.ID, "14 Canal Road")
	require.NoError(t, db.Model(expensive).Update("rent_amount", 90000).Error)

	hidden := createProperty(t, db, owner.ID, plan.ID, "16 Canal Road")
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	all, err := ListActiveProperties(db, PropertyFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	affordable, err := ListActiveProperties(db, PropertyFilters{MaxRent: 50000})
	require.NoError(t, err)
	require.Len(t, affordable, 1)
	assert.Equal(t, cheap.ID, affordable[0].ID)

	elsewhere, err := ListActiveProperties(db, PropertyFilters{City: "Karachi"})
	require.NoError(t, err)
	assert.Empty(t, elsewhere)
}

func TestVerifyProperty(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	require.False(t, property.IsVerified)

	verified, err := VerifyProperty(db, property.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}
