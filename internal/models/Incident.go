package models

import (
	"time"

	"gorm.io/datatypes"
)

// Incident is a problem report filed by a parent or driver. Reports are never
// edited once created.
type Incident struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Type        string         `gorm:"not null" json:"type"`
	Description string         `gorm:"type:text" json:"description"`
	Documents   datatypes.JSON `json:"documents"`
	UserID      *uint          `gorm:"index" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Incident) TableName() string {
	return "incidents"
}

// IncidentListItem carries the name of the user who filed the report.
type IncidentListItem struct {
	Incident
	Declarant *string `json:"declarant"`
}
