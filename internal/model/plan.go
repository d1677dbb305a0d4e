package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Plan is a paid listing package. Owners purchase a plan (recorded as a
// Payment) before they can create listings; MaxListings is the quota of
// simultaneously active listings the plan permits.
type Plan struct {
	gorm.Model
	Name         string                      `json:"name" gorm:"uniqueIndex;not null"`
	Price        float64                     `json:"price" gorm:"not null"`
	DurationDays int                         `json:"duration_days" gorm:"not null"`
	MaxListings  int                         `json:"max_listings" gorm:"not null;default:1"`
	Features     datatypes.JSONSlice[string] `json:"features"`
	IsActive     bool                        `json:"is_active" gorm:"default:true"`
}
