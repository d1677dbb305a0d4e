package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/validation"
)

type RentPaymentIntentInput struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
}

// CreateRentPaymentIntent opens a gateway charge for one rent cycle. The
// amount comes from the client since rent is negotiated per lease.
func CreateRentPaymentIntent(c *fiber.Ctx) error {
	input := new(RentPaymentIntentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = "pkr"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(input.Amount * 100)),
		Currency: stripe.String(currency),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":       "success",
		"clientSecret": intent.ClientSecret,
	})
}

// InitiateRentPayment records the confirmed charge for a payment period.
func InitiateRentPayment(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(service.InitiateRentPaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	payment, err := service.InitiateRentPayment(database.GetDB(), claims.UserID, *input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"payment": payment,
		},
	})
}

// CheckRentPaymentStatus reports whether the current period's rent on a
// property is already settled by the given tenant.
func CheckRentPaymentStatus(c *fiber.Ctx) error {
	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}
	tenantID, err := c.ParamsInt("tenantId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid tenant id",
		})
	}

	status, err := service.CheckRentStatus(database.GetDB(), uint(propertyID), uint(tenantID))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   status,
	})
}

// VerifyRentPayment lets the owner acknowledge receipt of a payment.
func VerifyRentPayment(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("paymentId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid payment id",
		})
	}

	payment, err := service.VerifyRentPayment(database.GetDB(), uint(id), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"payment": payment,
		},
	})
}

// MyRentPayments is the tenant's rent history.
func MyRentPayments(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	payments, err := service.ListRentPaymentsForTenant(database.GetDB(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(payments),
		"data": fiber.Map{
			"payments": payments,
		},
	})
}

// ReceivedRentPayments is the owner-side view across all their properties.
func ReceivedRentPayments(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	payments, err := service.ListRentPaymentsForOwner(database.GetDB(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(payments),
		"data": fiber.Map{
			"payments": payments,
		},
	})
}

// RentPaymentsByProperty narrows the owner view to one property.
func RentPaymentsByProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	payments, err := service.ListRentPaymentsForProperty(database.GetDB(), uint(propertyID), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(payments),
		"data": fiber.Map{
			"payments": payments,
		},
	})
}
