package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kiraya_backend/internal/model"
)

var phoneSeq uint64

// newTestDB opens a fresh in-memory database with the full schema. Each
// test gets its own named database so parallel tests cannot see each
// other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Plan{},
		&model.Payment{},
		&model.PropertyListing{},
		&model.Booking{},
		&model.Review{},
		&model.RentPayment{},
		&model.Conversation{},
		&model.Message{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		FirstName:   "Test",
		LastName:    "User",
		Email:       email,
		PhoneNumber: fmt.Sprintf("+92300%07d", atomic.AddUint64(&phoneSeq, 1)),
		Role:        role,
		Password:    "not-a-real-hash",
		IsVerified:  true,
		Active:      true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPlan(t *testing.T, db *gorm.DB, name string, maxListings int) *model.Plan {
	t.Helper()

	plan := &model.Plan{
		Name:         name,
		Price:        1500,
		DurationDays: 30,
		MaxListings:  maxListings,
		IsActive:     true,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func createEntitlement(t *testing.T, db *gorm.DB, ownerID, planID uint, txnID string) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		OwnerID:       ownerID,
		PlanID:        planID,
		Amount:        1500,
		Currency:      model.CurrencyPKR,
		PaymentType:   model.PaymentTypeListingFee,
		Status:        model.PaymentStatusCompleted,
		TransactionID: txnID,
		PaymentDate:   time.Now(),
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func createProperty(t *testing.T, db *gorm.DB, ownerID, planID uint, address string) *model.PropertyListing {
	t.Helper()

	property := &model.PropertyListing{
		Title:              "Two bed apartment near " + address,
		Description:        "A bright two bed apartment with parking.",
		Address:            address,
		City:               "Lahore",
		Region:             "Punjab",
		PropertyType:       model.PropertyTypeHouse,
		RentAmount:         45000,
		Currency:           model.CurrencyPKR,
		AvailabilityStatus: model.AvailabilityAvailable,
		IsActive:           true,
		OwnerID:            ownerID,
		PlanID:             planID,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func createPendingBooking(t *testing.T, db *gorm.DB, tenantID uint, property *model.PropertyListing) *model.Booking {
	t.Helper()

	booking, err := CreateBooking(db, tenantID, property.ID, CreateBookingInput{
		DesiredMoveInDate: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return booking
}
