// internal/models/driver.go
package models

import (
	"time"
)

type DriverStatus string

const (
	DriverPending  DriverStatus = "pending"
	DriverApproved DriverStatus = "approved"
	DriverRejected DriverStatus = "rejected"
)

func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverPending, DriverApproved, DriverRejected:
		return true
	}
	return false
}

type Driver struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"uniqueIndex;not null" json:"user_id"` // Foreign key to User
	Vehicle `gorm:"embedded;embeddedPrefix:vehicle_"`

	// Paths of the uploaded documents, relative to the upload store.
	LicenseDocument *string `json:"license_document"`
	IDDocument      *string `json:"id_document"`
	VehiclePhoto    *string `json:"vehicle_photo"`

	Status    DriverStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Deleting a driver returns its trips to the unassigned pool.
	Trips []Trip `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (Driver) TableName() string {
	return "drivers"
}

// DriverSummary is a driver joined with its owning user, as returned by the
// listing and detail endpoints.
type DriverSummary struct {
	ID              uint         `json:"id"`
	UserID          uint         `json:"user_id"`
	Status          DriverStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Address         string       `json:"address"`
	VehicleBrand    string       `json:"vehicle_brand"`
	VehicleColor    string       `json:"vehicle_color"`
	VehiclePlate    string       `json:"vehicle_plate"`
	LicenseDocument *string      `json:"license_document"`
	IDDocument      *string      `json:"id_document"`
	VehiclePhoto    *string      `json:"vehicle_photo"`
	TripsCount      int          `json:"trips_count"`
}
