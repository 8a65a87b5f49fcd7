package models

import (
	"strings"
	"time"
)

// Role identifies what a user account is allowed to do on the platform.
type Role string

const (
	RoleParent Role = "parent"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// NormalizeRole lower-cases and trims a role coming from a request body.
// An empty role becomes RoleParent.
func NormalizeRole(raw string) Role {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if role == "" {
		return RoleParent
	}
	return role
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func (s UserStatus) IsValid() bool {
	return s == UserActive || s == UserInactive
}

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string     `gorm:"index" json:"phone"`
	Address   string     `json:"address"`
	Password  string     `gorm:"not null" json:"-"`
	Role      Role       `gorm:"not null;default:'parent';index" json:"role"`
	Status    UserStatus `gorm:"not null;default:'active'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Driver *Driver `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"driver,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsActive treats an empty status as active, matching rows created before the
// status column existed.
func (u User) IsActive() bool {
	return u.Status == "" || u.Status == UserActive
}

// SplitName returns the first word of the name and the remainder.
func (u User) SplitName() (first, last string) {
	parts := strings.Split(u.Name, " ")
	return parts[0], strings.Join(parts[1:], " ")
}
