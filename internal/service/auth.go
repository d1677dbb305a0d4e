package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

type SignupInput struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,e164"`
	Password    string     `json:"password" validate:"required,min=8"`
	Role        model.Role `json:"role" validate:"omitempty,oneof=tenant owner"`
}

// Signup creates an unverified account and stages an OTP for it. The admin
// role can never be self-assigned.
func Signup(db *gorm.DB, in SignupInput) (*model.User, string, error) {
	role := in.Role
	if role == "" {
		role = model.RoleTenant
	}
	if role == model.RoleAdmin {
		return nil, "", apperror.BadRequest("Invalid role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, "", err
	}

	user := model.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Role:        role,
		Password:    string(hashedPassword),
		Active:      true,
	}
	otp := user.GenerateOTP()

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperror.Conflict("An account with this email or phone number already exists")
		}
		return nil, "", err
	}

	return &user, otp, nil
}

// Login checks credentials against an active account.
func Login(db *gorm.DB, email, password string) (*model.User, error) {
	var user model.User
	err := db.Where("email = ? AND active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	return &user, nil
}

// VerifyOTP marks the account verified when the supplied code matches and
// is still fresh.
func VerifyOTP(db *gorm.DB, email, otp string) (*model.User, error) {
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperror.FromGorm(err, "User not found")
	}

	if !user.CorrectOTP(otp) {
		return nil, apperror.BadRequest("Invalid or expired OTP")
	}

	user.IsVerified = true
	user.OTP = ""
	user.OTPExpires = nil
	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// ResendOTP rotates the pending code for an unverified account and returns
// it for delivery.
func ResendOTP(db *gorm.DB, email string) (*model.User, string, error) {
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", apperror.FromGorm(err, "User not found")
	}

	if user.IsVerified {
		return nil, "", apperror.BadRequest("Account is already verified")
	}

	otp := user.GenerateOTP()
	if err := db.Save(&user).Error; err != nil {
		return nil, "", err
	}

	return &user, otp, nil
}

// ForgotPassword stages a reset token and returns the plain token for the
// reset email. A missing account is reported as NotFound, matching the
// original system's behavior.
func ForgotPassword(db *gorm.DB, email string) (*model.User, string, error) {
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", apperror.FromGorm(err, "There is no user with that email address")
	}

	token := user.CreatePasswordResetToken()
	if err := db.Save(&user).Error; err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// ResetPassword consumes a reset token and installs the new password.
func ResetPassword(db *gorm.DB, token, newPassword string) (*model.User, error) {
	if len(newPassword) < 8 {
		return nil, apperror.BadRequest("Password must be at least 8 characters")
	}

	var user model.User
	err := db.Where("password_reset_token = ? AND password_reset_expires > ?",
		model.HashResetToken(token), time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.BadRequest("Token is invalid or has expired")
	}
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return nil, err
	}

	user.Password = string(hashedPassword)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

type UpdateProfileInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
}

// UpdateProfile applies a partial profile update.
func UpdateProfile(db *gorm.DB, userID uint, in UpdateProfileInput, photoURL string) (*model.User, error) {
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, apperror.FromGorm(err, "User not found")
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if photoURL != "" {
		user.Photo = photoURL
	}

	if err := db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Phone number already in use")
		}
		return nil, err
	}

	return &user, nil
}

// DeactivateAccount soft-deletes: the row stays, queries exclude it.
func DeactivateAccount(db *gorm.DB, userID uint) error {
	result := db.Model(&model.User{}).Where("id = ?", userID).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

// GetUser fetches one account by id.
func GetUser(db *gorm.DB, userID uint) (*model.User, error) {
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, apperror.FromGorm(err, "User not found")
	}
	return &user, nil
}
