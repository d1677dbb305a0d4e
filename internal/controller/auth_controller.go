package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/email"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/validation"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8"`
}

// Signup creates the account and mails the verification OTP. The account
// stays unverified (and unable to book) until the OTP is confirmed.
func Signup(c *fiber.Ctx) error {
	input := new(service.SignupInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	user, otp, err := service.Signup(database.GetDB(), *input)
	if err != nil {
		return err
	}

	if email.GlobalEmailService != nil {
		if err := email.GlobalEmailService.SendOTPEmail(user.Email, user.GetFullName(), otp); err != nil {
			log.Printf("Could not send OTP email to %s: %v", user.Email, err)
		}
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"token":  token,
		"data": fiber.Map{
			"user": user.GetPublicProfile(),
		},
	})
}

func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	user, err := service.Login(database.GetDB(), input.Email, input.Password)
	if err != nil {
		return err
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
		"data": fiber.Map{
			"user": user.GetPublicProfile(),
		},
	})
}

func VerifyOTP(c *fiber.Ctx) error {
	input := new(OTPInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	user, err := service.VerifyOTP(database.GetDB(), input.Email, input.OTP)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Account verified successfully",
		"data": fiber.Map{
			"user": user.GetPublicProfile(),
		},
	})
}

func ResendOTP(c *fiber.Ctx) error {
	input := new(EmailInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	user, otp, err := service.ResendOTP(database.GetDB(), input.Email)
	if err != nil {
		return err
	}

	if email.GlobalEmailService != nil {
		if err := email.GlobalEmailService.SendOTPEmail(user.Email, user.GetFullName(), otp); err != nil {
			log.Printf("Could not send OTP email to %s: %v", user.Email, err)
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "OTP sent",
	})
}

func ForgotPassword(c *fiber.Ctx) error {
	input := new(EmailInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	user, token, err := service.ForgotPassword(database.GetDB(), input.Email)
	if err != nil {
		return err
	}

	resetLink := c.BaseURL() + "/api/v1/auth/resetPassword/" + token
	if email.GlobalEmailService != nil {
		if err := email.GlobalEmailService.SendPasswordResetEmail(user.Email, user.GetFullName(), resetLink); err != nil {
			log.Printf("Could not send password reset email to %s: %v", user.Email, err)
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Token sent to email",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	input := new(ResetPasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	user, err := service.ResetPassword(database.GetDB(), c.Params("token"), input.Password)
	if err != nil {
		return err
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

func GetMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	user, err := service.GetUser(database.GetDB(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user": user.GetContactProfile(),
		},
	})
}
