package models

import (
	"time"
)

type TripStatus string

const (
	TripPending    TripStatus = "pending"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCanceled   TripStatus = "canceled"
)

func (s TripStatus) IsValid() bool {
	switch s {
	case TripPending, TripInProgress, TripCompleted, TripCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether a trip in this status can no longer change status.
func (s TripStatus) IsTerminal() bool {
	return s == TripCompleted || s == TripCanceled
}

// Trip is a scheduled school run. DriverID stays nil until a driver is
// assigned, and is only ever set once through the assignment endpoint.
type Trip struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	DriverID      *uint      `gorm:"index" json:"driver_id"`
	SchoolID      *uint      `gorm:"index" json:"school_id"`
	StartPoint    string     `json:"start_point"`
	EndPoint      string     `json:"end_point"`
	DepartureTime *time.Time `json:"departure_time"`
	CapacityMax   int        `json:"capacity_max"`
	Status        TripStatus `gorm:"not null;default:'pending';index" json:"status"`
	IsRecurring   bool       `gorm:"not null;default:false" json:"is_recurring"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Children []TripChild `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Trip) TableName() string {
	return "trips"
}

// TripChild books one child on a trip.
type TripChild struct {
	TripID  uint `gorm:"primaryKey" json:"trip_id"`
	ChildID uint `gorm:"primaryKey" json:"child_id"`
}

func (TripChild) TableName() string {
	return "trip_children"
}

// TripListItem is the row shape of the plain trip listing.
type TripListItem struct {
	ID         uint    `json:"id"`
	StartPoint string  `json:"start_point"`
	EndPoint   string  `json:"end_point"`
	SchoolName *string `json:"school_name"`
}

// TripWithDriver is an assigned trip enriched with its driver, school and the
// number of children booked on it.
type TripWithDriver struct {
	ID                uint       `json:"id"`
	DriverID          *uint      `json:"driver_id"`
	StartPoint        string     `json:"start_point"`
	EndPoint          string     `json:"end_point"`
	DepartureTime     *time.Time `json:"departure_time"`
	CapacityMax       int        `json:"capacity_max"`
	Status            TripStatus `json:"status"`
	IsRecurring       bool       `json:"is_recurring"`
	CreatedAt         time.Time  `json:"created_at"`
	DriverUserID      uint       `json:"driver_user_id"`
	DriverName        string     `json:"driver_name"`
	DriverPhone       string     `json:"driver_phone"`
	SchoolName        *string    `json:"school_name"`
	CurrentPassengers int        `json:"current_passengers"`
}
