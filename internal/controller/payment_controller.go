package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/email"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/validation"
)

type PaymentIntentInput struct {
	PlanID   uint   `json:"plan_id" validate:"required"`
	Currency string `json:"currency"`
}

// CreatePaymentIntent asks the gateway for a listing-fee charge matching
// the plan price and hands the client secret back for checkout.
func CreatePaymentIntent(c *fiber.Ctx) error {
	input := new(PaymentIntentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	plan, err := service.GetPlan(database.GetDB(), input.PlanID)
	if err != nil {
		return err
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = "pkr"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(plan.Price * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("plan_id", strconv.FormatUint(uint64(plan.ID), 10))

	intent, err := paymentintent.New(params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":       "success",
		"clientSecret": intent.ClientSecret,
	})
}

// RecordPayment persists the completed listing-fee payment after the
// client confirms the gateway charge.
func RecordPayment(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	planID, err := c.ParamsInt("planId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid plan id",
		})
	}

	input := new(service.RecordListingPaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	payment, err := service.RecordListingPayment(database.GetDB(), claims.UserID, uint(planID), *input)
	if err != nil {
		return err
	}

	populated, err := service.GetPayment(database.GetDB(), payment.ID)
	if err != nil {
		return err
	}

	if email.GlobalEmailService != nil {
		user, userErr := service.GetUser(database.GetDB(), claims.UserID)
		if userErr == nil {
			sendErr := email.GlobalEmailService.SendListingPaymentEmail(user.Email, email.ListingPaymentData{
				Name:         user.GetFullName(),
				PlanName:     populated.Plan.Name,
				Amount:       populated.Amount,
				Currency:     string(populated.Currency),
				MaxListings:  populated.Plan.MaxListings,
				DurationDays: populated.Plan.DurationDays,
				PaidAt:       populated.PaymentDate,
			})
			if sendErr != nil {
				log.Printf("Could not send payment email to %s: %v", user.Email, sendErr)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"payment": populated,
		},
	})
}

// MyPayments is the owner's listing-fee payment history.
func MyPayments(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	payments, err := service.ListPaymentsForOwner(database.GetDB(), claims.UserID)
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

// ListAllPayments is the admin ledger view.
func ListAllPayments(c *fiber.Ctx) error {
	payments, err := service.ListAllPayments(database.GetDB())
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

func GetPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid payment id",
		})
	}

	payment, err := service.GetPayment(database.GetDB(), uint(id))
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

func UpdatePayment(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid payment id",
		})
	}

	input := new(service.AdminUpdatePaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	payment, err := service.AdminUpdatePayment(database.GetDB(), uint(id), claims.UserID, *input)
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

func DeletePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid payment id",
		})
	}

	if err := service.DeletePayment(database.GetDB(), uint(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
