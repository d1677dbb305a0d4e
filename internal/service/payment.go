package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type RecordListingPaymentInput struct {
	Amount        float64           `json:"amount" validate:"required,gt=0"`
	Currency      model.Currency    `json:"currency"`
	PaymentType   model.PaymentType `json:"payment_type"`
	TransactionID string            `json:"transaction_id" validate:"required"`
}

// RecordListingPayment persists a completed listing-fee payment after the
// gateway confirmed the charge. The amount must match the plan price
// exactly; the transaction id must be fresh.
func RecordListingPayment(db *gorm.DB, ownerID, planID uint, in RecordListingPaymentInput) (*model.Payment, error) {
	var plan model.Plan
	if err := db.First(&plan, planID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Plan not found")
	}

	if in.Amount != plan.Price {
		return nil, apperror.BadRequest("Payment amount does not match plan price")
	}

	currency := in.Currency
	if currency == "" {
		currency = model.CurrencyPKR
	}
	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = model.PaymentTypeListingFee
	}

	payment := model.Payment{
		OwnerID:       ownerID,
		PlanID:        plan.ID,
		Amount:        in.Amount,
		Currency:      currency,
		PaymentType:   paymentType,
		TransactionID: in.TransactionID,
		Status:        model.PaymentStatusCompleted,
		PaymentDate:   time.Now(),
	}

	if err := db.Create(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("A payment with this transaction id already exists")
		}
		return nil, err
	}

	return &payment, nil
}

// LatestActiveEntitlement returns the owner's most recent completed
// listing-fee payment, or nil when none exists. Plan activity and expiry
// are the caller's concern.
func LatestActiveEntitlement(db *gorm.DB, ownerID uint) (*model.Payment, error) {
	var payment model.Payment
	err := db.Where("owner_id = ? AND payment_type = ? AND status = ?",
		ownerID, model.PaymentTypeListingFee, model.PaymentStatusCompleted).
		Order("created_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPayment fetches one payment with its plan joined.
func GetPayment(db *gorm.DB, id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := db.Preload("Plan").First(&payment, id).Error; err != nil {
		return nil, apperror.FromGorm(err, "Payment not found")
	}
	return &payment, nil
}

// ListPaymentsForOwner returns the owner's listing-fee payment history,
// newest first.
func ListPaymentsForOwner(db *gorm.DB, ownerID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := db.Where("owner_id = ?", ownerID).
		Preload("Plan").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// ListAllPayments is the admin's ledger view across all owners.
func ListAllPayments(db *gorm.DB) ([]model.Payment, error) {
	var payments []model.Payment
	err := db.Preload("Plan").
		Preload("Owner").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

type AdminUpdatePaymentInput struct {
	Status     model.PaymentStatus `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
	ReceiptURL string              `json:"receipt_url"`
}

// AdminUpdatePayment lets an admin correct a payment record and stamps the
// verification fields when they do.
func AdminUpdatePayment(db *gorm.DB, paymentID, adminID uint, in AdminUpdatePaymentInput) (*model.Payment, error) {
	var payment model.Payment
	if err := db.First(&payment, paymentID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Payment not found")
	}

	if in.Status != "" {
		payment.Status = in.Status
	}
	if in.ReceiptURL != "" {
		payment.ReceiptURL = in.ReceiptURL
	}
	now := time.Now()
	payment.VerifiedByAdminID = &adminID
	payment.VerificationDate = &now

	if err := db.Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// DeletePayment removes a payment record. Listings funded by it are left
// alone; this is an admin bookkeeping correction, not a revocation.
func DeletePayment(db *gorm.DB, paymentID uint) error {
	var payment model.Payment
	if err := db.First(&payment, paymentID).Error; err != nil {
		return apperror.FromGorm(err, "Payment not found")
	}
	return db.Delete(&payment).Error
}
