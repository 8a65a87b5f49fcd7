// internal/models/school.go
package models

import (
	"time"
)

// School is a partner school that trips drive children to.
// Only active schools are counted on the dashboard.
type School struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Status    string    `gorm:"not null;default:'Actif'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Trips []Trip `gorm:"foreignKey:SchoolID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"trips,omitempty"`
}

const SchoolActive = "Actif"

func (School) TableName() string {
	return "schools"
}
