package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentType string

const (
	PaymentTypeListingFee      PaymentType = "listing_fee"
	PaymentTypeSecurityDeposit PaymentType = "security_deposit"
	PaymentTypeFirstMonthRent  PaymentType = "first_month_rent"
	PaymentTypePlatformFee     PaymentType = "platform_fee"
	PaymentTypeOther           PaymentType = "other"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Currency string

const (
	CurrencyPKR Currency = "PKR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Payment is a listing-fee entitlement record. A completed payment grants
// the owner the right to create listings under the referenced plan;
// PropertyIDs accumulates the listings funded by this payment.
type Payment struct {
	gorm.Model
	OwnerID     uint                      `json:"owner_id" gorm:"not null;index"`
	PlanID      uint                      `json:"plan_id" gorm:"not null"`
	PropertyIDs datatypes.JSONSlice[uint] `json:"property_ids"`

	Amount      float64       `json:"amount" gorm:"not null"`
	Currency    Currency      `json:"currency" gorm:"not null;default:'PKR'"`
	PaymentType PaymentType   `json:"payment_type" gorm:"not null"`
	Status      PaymentStatus `json:"status" gorm:"not null;default:'pending'"`

	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex"`
	PaymentDate   time.Time `json:"payment_date"`
	ReceiptURL    string    `json:"receipt_url"`

	VerifiedByAdminID *uint      `json:"verified_by_admin_id"`
	VerificationDate  *time.Time `json:"verification_date"`

	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
	Plan  Plan `json:"-" gorm:"foreignKey:PlanID"`
}
