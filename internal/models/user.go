package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:100"`
	Role         UserRole `json:"role" gorm:"not null;size:20;default:student"`
	IsBlocked    bool     `json:"isBlocked" gorm:"not null;default:false"`

	// Profile info
	Phone          string          `json:"phone" gorm:"size:30"`
	DateOfBirth    *datatypes.Date `json:"dateOfBirth"`
	Address        string          `json:"address" gorm:"size:500"`
	ProfilePicture string          `json:"profilePicture" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the author projection embedded in expanded feedback responses.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
