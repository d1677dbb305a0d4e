package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

func TestCreateReviewRequiresApprovedBooking(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	input := CreateReviewInput{Review: "Great place, very responsive owner.", Rating: 5}

	_, err := CreateReview(db, tenant.ID, property.ID, input)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusBadRequest))
	assert.EqualError(t, err, "No approved booking found for this tenant and property.")

	createPendingBooking(t, db, tenant.ID, property)

	_, err = CreateReview(db, tenant.ID, property.ID, input)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusBadRequest))
}

func TestCreateReviewOncePerBooking(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	booking := createPendingBooking(t, db, tenant.ID, property)
	_, err := ApproveBooking(db, booking.ID, owner.ID)
	require.NoError(t, err)

	input := CreateReviewInput{Review: "Great place, very responsive owner.", Rating: 5}

	review, err := CreateReview(db, tenant.ID, property.ID, input)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, review.BookingID)
	assert.Equal(t, tenant.ID, review.TenantID)

	_, err = CreateReview(db, tenant.ID, property.ID, input)
	require.Error(t, err)
	assert.EqualError(t, err, "You have already submitted a review for this booking.")
}

func TestUpdateReviewOnlyAuthorOrAdmin(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	intruder := createUser(t, db, "intruder@example.com", model.RoleTenant)
	admin := createUser(t, db, "admin@example.com", model.RoleAdmin)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	booking := createPendingBooking(t, db, tenant.ID, property)
	_, err := ApproveBooking(db, booking.ID, owner.ID)
	require.NoError(t, err)

	review, err := CreateReview(db, tenant.ID, property.ID,
		CreateReviewInput{Review: "Great place, very responsive owner.", Rating: 5})
	require.NoError(t, err)

	amended := CreateReviewInput{Review: "Still a great place after six months.", Rating: 4}

	_, err = UpdateReview(db, review.ID, intruder.ID, model.RoleTenant, amended)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusForbidden))

	updated, err := UpdateReview(db, review.ID, admin.ID, model.RoleAdmin, amended)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	err = DeleteReview(db, review.ID, intruder.ID, model.RoleTenant)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusForbidden))

	require.NoError(t, DeleteReview(db, review.ID, tenant.ID, model.RoleTenant))

	reviews, err := ListReviewsForProperty(db, property.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
