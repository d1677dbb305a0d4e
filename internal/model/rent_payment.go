package model

import (
	"time"

	"gorm.io/gorm"
)

type RentPaymentStatus string

const (
	RentPaymentPending   RentPaymentStatus = "pending"
	RentPaymentCompleted RentPaymentStatus = "completed"
	RentPaymentFailed    RentPaymentStatus = "failed"
	RentPaymentOverdue   RentPaymentStatus = "overdue"
)

// RentPayment records one rent cycle for a tenancy. PaymentPeriod is a
// calendar-month label like "January 2025"; at most one record may exist
// per (tenant, property, period) triple.
type RentPayment struct {
	gorm.Model
	TenantID   uint `json:"tenant_id" gorm:"not null;uniqueIndex:idx_tenant_property_period"`
	OwnerID    uint `json:"owner_id" gorm:"not null;index"`
	PropertyID uint `json:"property_id" gorm:"not null;uniqueIndex:idx_tenant_property_period"`

	Amount        float64           `json:"amount" gorm:"not null"`
	Currency      Currency          `json:"currency" gorm:"not null;default:'PKR'"`
	PaymentPeriod string            `json:"payment_period" gorm:"not null;uniqueIndex:idx_tenant_property_period"`
	DueDate       time.Time         `json:"due_date" gorm:"not null"`
	PaymentDate   time.Time         `json:"payment_date"`
	Status        RentPaymentStatus `json:"status" gorm:"not null;default:'pending'"`

	TransactionID string `json:"transaction_id" gorm:"uniqueIndex"`
	ReceiptURL    string `json:"receipt_url"`

	VerifiedByOwnerID *uint      `json:"verified_by_owner_id"`
	VerificationDate  *time.Time `json:"verification_date"`

	Tenant   User            `json:"-" gorm:"foreignKey:TenantID"`
	Owner    User            `json:"-" gorm:"foreignKey:OwnerID"`
	Property PropertyListing `json:"-" gorm:"foreignKey:PropertyID"`
}

// PeriodLabel formats t as a payment period, e.g. "March 2025".
func PeriodLabel(t time.Time) string {
	return t.Month().String() + " " + t.Format("2006")
}
