package service

import (
	"errors"

	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type CreateReviewInput struct {
	Review string `json:"review" validate:"required,min=10,max=1000"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// CreateReview admits a review only from a tenant holding an approved
// booking on the property, once per booking. Property, tenant and booking
// references are stamped server-side; client-supplied values are ignored.
func CreateReview(db *gorm.DB, tenantID, propertyID uint, in CreateReviewInput) (*model.Review, error) {
	var booking model.Booking
	err := db.Where("tenant_id = ? AND property_id = ? AND status = ?",
		tenantID, propertyID, model.BookingStatusApproved).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.BadRequest("No approved booking found for this tenant and property.")
	}
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&model.Review{}).
		Where("tenant_id = ? AND booking_id = ?", tenantID, booking.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperror.BadRequest("You have already submitted a review for this booking.")
	}

	review := model.Review{
		Review:     in.Review,
		Rating:     in.Rating,
		PropertyID: propertyID,
		TenantID:   tenantID,
		BookingID:  booking.ID,
	}

	if err := db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest("You have already submitted a review for this booking.")
		}
		return nil, err
	}

	return &review, nil
}

// ListReviewsForProperty joins each review with its tenant and booking
// summaries.
func ListReviewsForProperty(db *gorm.DB, propertyID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := db.Where("property_id = ?", propertyID).
		Preload("Property").
		Preload("Tenant").
		Preload("Booking").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// UpdateReview lets the authoring tenant or an admin amend text and rating.
func UpdateReview(db *gorm.DB, reviewID, actorID uint, actorRole model.Role, in CreateReviewInput) (*model.Review, error) {
	var review model.Review
	if err := db.First(&review, reviewID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Review not found")
	}

	if review.TenantID != actorID && actorRole != model.RoleAdmin {
		return nil, apperror.Forbidden("You can only update your own reviews")
	}

	review.Review = in.Review
	review.Rating = in.Rating
	if err := db.Save(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review, restricted to its author or an admin.
func DeleteReview(db *gorm.DB, reviewID, actorID uint, actorRole model.Role) error {
	var review model.Review
	if err := db.First(&review, reviewID).Error; err != nil {
		return apperror.FromGorm(err, "Review not found")
	}

	if review.TenantID != actorID && actorRole != model.RoleAdmin {
		return apperror.Forbidden("You can only delete your own reviews")
	}

	return db.Delete(&review).Error
}
