package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type InitiateRentPaymentInput struct {
	PropertyID    uint           `json:"property_id" validate:"required"`
	Amount        float64        `json:"amount" validate:"required,gt=0"`
	Currency      model.Currency `json:"currency" validate:"omitempty,oneof=PKR USD EUR GBP"`
	PaymentPeriod string         `json:"payment_period" validate:"required"`
	DueDate       time.Time      `json:"due_date" validate:"required"`
	TransactionID string         `json:"transaction_id" validate:"required"`
}

// InitiateRentPayment records one rent cycle as completed. Gateway
// confirmation happens out-of-band before this call; the record trusts the
// supplied transaction id. At most one payment per (tenant, property,
// period).
func InitiateRentPayment(db *gorm.DB, tenantID uint, in InitiateRentPaymentInput) (*model.RentPayment, error) {
	var property model.PropertyListing
	if err := db.First(&property, in.PropertyID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Property not found")
	}

	var existing int64
	if err := db.Model(&model.RentPayment{}).
		Where("tenant_id = ? AND property_id = ? AND payment_period = ?",
			tenantID, in.PropertyID, in.PaymentPeriod).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperror.Conflict("Payment for this period already exists")
	}

	currency := in.Currency
	if currency == "" {
		currency = model.CurrencyPKR
	}

	payment := model.RentPayment{
		TenantID:      tenantID,
		OwnerID:       property.OwnerID,
		PropertyID:    in.PropertyID,
		Amount:        in.Amount,
		Currency:      currency,
		PaymentPeriod: in.PaymentPeriod,
		DueDate:       in.DueDate,
		PaymentDate:   time.Now(),
		Status:        model.RentPaymentCompleted,
		TransactionID: in.TransactionID,
	}

	if err := db.Create(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Payment for this period already exists")
		}
		return nil, err
	}

	return &payment, nil
}

// VerifyRentPayment stamps the owner's confirmation onto a payment they
// received.
func VerifyRentPayment(db *gorm.DB, paymentID, ownerID uint) (*model.RentPayment, error) {
	var payment model.RentPayment
	err := db.Where("id = ? AND owner_id = ?", paymentID, ownerID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Payment not found or you don't have access")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.VerifiedByOwnerID = &ownerID
	payment.VerificationDate = &now
	if err := db.Save(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

// RentStatus reports whether the current calendar period is settled.
type RentStatus struct {
	AlreadyPaid bool               `json:"alreadyPaid"`
	Payment     *model.RentPayment `json:"payment,omitempty"`
}

// CheckRentStatus derives the current period label (e.g. "March 2025") and
// looks for a completed payment matching it.
func CheckRentStatus(db *gorm.DB, propertyID, tenantID uint) (*RentStatus, error) {
	period := model.PeriodLabel(time.Now())

	var payment model.RentPayment
	err := db.Where("property_id = ? AND tenant_id = ? AND payment_period = ? AND status = ?",
		propertyID, tenantID, period, model.RentPaymentCompleted).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &RentStatus{AlreadyPaid: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &RentStatus{AlreadyPaid: true, Payment: &payment}, nil
}

// ListRentPaymentsForTenant is the tenant's payment history, newest first.
func ListRentPaymentsForTenant(db *gorm.DB, tenantID uint) ([]model.RentPayment, error) {
	var payments []model.RentPayment
	err := db.Where("tenant_id = ?", tenantID).
		Preload("Property").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// ListRentPaymentsForOwner is the owner-side history across all their
// properties.
func ListRentPaymentsForOwner(db *gorm.DB, ownerID uint) ([]model.RentPayment, error) {
	var payments []model.RentPayment
	err := db.Where("owner_id = ?", ownerID).
		Preload("Property").
		Preload("Tenant").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// ListRentPaymentsForProperty returns a property's history after checking
// the requesting owner actually owns it.
func ListRentPaymentsForProperty(db *gorm.DB, propertyID, ownerID uint) ([]model.RentPayment, error) {
	var property model.PropertyListing
	err := db.Where("id = ? AND owner_id = ?", propertyID, ownerID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Property not found or you don't have access")
	}
	if err != nil {
		return nil, err
	}

	var payments []model.RentPayment
	err = db.Where("property_id = ?", propertyID).
		Preload("Tenant").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
