package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"school_transport/internal/models"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// List returns every notification with its sender's name, most recent event
// first.
func (s *NotificationService) List(ctx context.Context) ([]models.NotificationListItem, error) {
	out := []models.NotificationListItem{}
	err := s.db.WithContext(ctx).
		Table("notifications AS n").
		Select("n.*, u.name AS emeteur_nom").
		Joins("JOIN users u ON u.id = n.emeteur_id").
		Order("n.date_evenement DESC, n.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}
