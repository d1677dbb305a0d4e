package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleTenant Role = "tenant"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

type User struct {
	gorm.Model
	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber string `json:"phone_number" gorm:"uniqueIndex"`
	Role        Role   `json:"role" gorm:"not null;default:'tenant'"`
	Photo       string `json:"photo" gorm:"default:'default-avatar.png'"`
	Password    string `json:"-" gorm:"not null"`

	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	// OTP verification state
	OTP        string     `json:"-"`
	OTPExpires *time.Time `json:"-"`
	IsVerified bool       `json:"is_verified" gorm:"default:false"`

	Active bool `json:"-" gorm:"default:true"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetPublicProfile returns the fields safe to show to any counterparty.
// Email and phone are deliberately absent; contact disclosure is gated on
// booking approval (see GetContactProfile).
func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"full_name":   u.GetFullName(),
		"role":        u.Role,
		"photo":       u.Photo,
		"is_verified": u.IsVerified,
	}
}

// GetContactProfile includes email and phone. Only used once a booking's
// contact_info_shared flag is true.
func (u *User) GetContactProfile() map[string]interface{} {
	profile := u.GetPublicProfile()
	profile["email"] = u.Email
	profile["phone_number"] = u.PhoneNumber
	return profile
}

// GenerateOTP sets a fresh 6 digit code valid for 10 minutes and returns it.
func (u *User) GenerateOTP() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	otp := fmt.Sprintf("%06d", n.Int64())

	expires := time.Now().Add(10 * time.Minute)
	u.OTP = otp
	u.OTPExpires = &expires
	return otp
}

func (u *User) CorrectOTP(candidate string) bool {
	if u.OTP == "" || u.OTPExpires == nil {
		return false
	}
	return u.OTP == candidate && time.Now().Before(*u.OTPExpires)
}

// CreatePasswordResetToken stores the sha256 of a random token and returns
// the plain token for the reset email. Valid for 10 minutes.
func (u *User) CreatePasswordResetToken() string {
	raw := make([]byte, 32)
	rand.Read(raw)
	token := hex.EncodeToString(raw)

	hash := sha256.Sum256([]byte(token))
	expires := time.Now().Add(10 * time.Minute)

	u.PasswordResetToken = hex.EncodeToString(hash[:])
	u.PasswordResetExpires = &expires
	return token
}

// HashResetToken maps a plain reset token to its stored form.
func HashResetToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
