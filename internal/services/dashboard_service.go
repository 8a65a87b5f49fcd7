package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"school_transport/internal/models"
)

const dashboardIncidentLimit = 10

type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

type RoleCount struct {
	Role  models.Role `json:"role"`
	Total int64       `json:"total"`
}

type StatusCount struct {
	Status models.TripStatus `json:"status"`
	Total  int64             `json:"total"`
}

type Dashboard struct {
	Users               []RoleCount           `json:"users"`
	Parents             int64                 `json:"parents"`
	Drivers             int64                 `json:"drivers"`
	Trips               []StatusCount         `json:"trips"`
	TripsToday          int64                 `json:"trips_today"`
	TripsCompletedToday int64                 `json:"trips_completed_today"`
	TripsCanceledToday  int64                 `json:"trips_canceled_today"`
	Schools             int64                 `json:"schools"`
	Incidents           []models.Notification `json:"incidents"`
}

// Get computes the admin dashboard. "Today" is the current UTC day.
func (s *DashboardService) Get(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	out := &Dashboard{Users: []RoleCount{}, Trips: []StatusCount{}, Incidents: []models.Notification{}}

	if err := db.Model(&models.User{}).Select("role, COUNT(*) AS total").Group("role").Order("role").Scan(&out.Users).Error; err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	for _, rc := range out.Users {
		switch rc.Role {
		case models.RoleParent:
			out.Parents = rc.Total
		case models.RoleDriver:
			out.Drivers = rc.Total
		}
	}

	if err := db.Model(&models.Trip{}).Select("status, COUNT(*) AS total").Group("status").Order("status").Scan(&out.Trips).Error; err != nil {
		return nil, fmt.Errorf("count trips by status: %w", err)
	}

	start := s.now().UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)
	today := func() *gorm.DB {
		return db.Model(&models.Trip{}).Where("created_at >= ? AND created_at < ?", start, end)
	}
	if err := today().Count(&out.TripsToday).Error; err != nil {
		return nil, fmt.Errorf("count trips today: %w", err)
	}
	if err := today().Where("status = ?", models.TripCompleted).Count(&out.TripsCompletedToday).Error; err != nil {
		return nil, fmt.Errorf("count completed trips today: %w", err)
	}
	if err := today().Where("status = ?", models.TripCanceled).Count(&out.TripsCanceledToday).Error; err != nil {
		return nil, fmt.Errorf("count canceled trips today: %w", err)
	}

	if err := db.Model(&models.School{}).Where("status = ?", models.SchoolActive).Count(&out.Schools).Error; err != nil {
		return nil, fmt.Errorf("count schools: %w", err)
	}

	err := db.Where("type = ?", models.NotificationIncident).
		Order("created_at DESC, id DESC").
		Limit(dashboardIncidentLimit).
		Find(&out.Incidents).Error
	if err != nil {
		return nil, fmt.Errorf("list incident alerts: %w", err)
	}
	return out, nil
}
