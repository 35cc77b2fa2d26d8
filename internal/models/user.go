package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

// Profile holds per-user settings kept separate from the auth record
type Profile struct {
	gorm.Model         `json:"-"`
	ID                 uint   `json:"id" gorm:"primaryKey"`
	PhoneNumber        string `json:"phone_number,omitempty" gorm:"size:255;index"`
	Location           string `json:"location,omitempty" gorm:"size:255;index"`
	VerificationStatus bool   `json:"verification_status" gorm:"default:false;index"`
	NotificationStatus bool   `json:"notification_status" gorm:"default:false;index"`
	UserID             uint   `json:"user_id" gorm:"uniqueIndex"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=255"`
	Location    string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
