package models

import "time"

const NotificationIncident = "incident"

type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Type          string    `gorm:"not null;index" json:"type"`
	EmeteurID     uint      `gorm:"not null;index" json:"emeteur_id"` // sender
	Message       string    `gorm:"type:text" json:"message"`
	DateEvenement time.Time `gorm:"index" json:"date_evenement"`
	Read          bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

type NotificationListItem struct {
	Notification
	EmeteurNom string `json:"emeteur_nom"`
}

// All lists every model owned by the service, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Driver{},
		&School{},
		&Trip{},
		&TripChild{},
		&PasswordReset{},
		&Incident{},
		&Notification{},
	}
}
