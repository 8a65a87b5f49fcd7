package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"school_transport/internal/metrics"
	"school_transport/internal/models"
)

type TripService struct {
	db *gorm.DB
}

func NewTripService(db *gorm.DB) *TripService {
	return &TripService{db: db}
}

type CreateTripInput struct {
	DriverID      *uint      `json:"driver_id"`
	SchoolID      *uint      `json:"school_id"`
	StartPoint    string     `json:"start_point" binding:"required"`
	EndPoint      string     `json:"end_point" binding:"required"`
	DepartureTime *time.Time `json:"departure_time"`
	CapacityMax   int        `json:"capacity_max" binding:"gte=0"`
	IsRecurring   *bool      `json:"is_recurring"`
}

// UpdateTripInput is a partial update. The driver is deliberately absent:
// it is only set through AssignDriver.
type UpdateTripInput struct {
	SchoolID      *uint      `json:"school_id"`
	StartPoint    *string    `json:"start_point"`
	EndPoint      *string    `json:"end_point"`
	DepartureTime *time.Time `json:"departure_time"`
	CapacityMax   *int       `json:"capacity_max" binding:"omitempty,gte=0"`
	Status        *string    `json:"status" binding:"omitempty,trip_status"`
	IsRecurring   *bool      `json:"is_recurring"`
}

func (s *TripService) Create(ctx context.Context, in CreateTripInput) (*models.Trip, error) {
	trip := models.Trip{
		DriverID:      in.DriverID,
		SchoolID:      in.SchoolID,
		StartPoint:    in.StartPoint,
		EndPoint:      in.EndPoint,
		DepartureTime: in.DepartureTime,
		CapacityMax:   in.CapacityMax,
		Status:        models.TripPending,
	}
	if in.IsRecurring != nil {
		trip.IsRecurring = *in.IsRecurring
	}
	if err := s.db.WithContext(ctx).Create(&trip).Error; err != nil {
		return nil, dbError(err, "create trip")
	}
	return &trip, nil
}

// List returns every trip with the name of its school, newest first.
func (s *TripService) List(ctx context.Context) ([]models.TripListItem, error) {
	out := []models.TripListItem{}
	err := s.db.WithContext(ctx).
		Table("trips AS t").
		Select("t.id, t.start_point, t.end_point, s.name AS school_name").
		Joins("LEFT JOIN schools s ON s.id = t.school_id").
		Order("t.created_at DESC, t.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return out, nil
}

// ListWithDriver returns the assigned trips with their driver, school and
// number of booked children.
func (s *TripService) ListWithDriver(ctx context.Context) ([]models.TripWithDriver, error) {
	out := []models.TripWithDriver{}
	err := s.db.WithContext(ctx).
		Table("trips AS t").
		Select(`t.id, t.driver_id, t.start_point, t.end_point, t.departure_time,
			t.capacity_max, t.status, t.is_recurring, t.created_at,
			d.user_id AS driver_user_id, u.name AS driver_name, u.phone AS driver_phone,
			s.name AS school_name, COUNT(tc.child_id) AS current_passengers`).
		Joins("JOIN drivers d ON d.id = t.driver_id").
		Joins("JOIN users u ON u.id = d.user_id").
		Joins("LEFT JOIN schools s ON s.id = t.school_id").
		Joins("LEFT JOIN trip_children tc ON tc.trip_id = t.id").
		Group("t.id, d.user_id, u.name, u.phone, s.name").
		Order("t.created_at DESC, t.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list trips with driver: %w", err)
	}
	return out, nil
}

func (s *TripService) Get(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := s.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		return nil, dbError(err, "get trip")
	}
	return &trip, nil
}

// Update merges the patch into the stored trip. A completed or canceled trip
// keeps its status.
func (s *TripService) Update(ctx context.Context, id uint, in UpdateTripInput) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trip, id).Error; err != nil {
			return dbError(err, "get trip")
		}

		if in.Status != nil {
			status := models.TripStatus(*in.Status)
			if !status.IsValid() {
				return invalid("unknown trip status %q", *in.Status)
			}
			if status != trip.Status && trip.Status.IsTerminal() {
				return fmt.Errorf("trip %d is %s: %w", trip.ID, trip.Status, ErrConflict)
			}
			trip.Status = status
		}
		if in.SchoolID != nil {
			trip.SchoolID = in.SchoolID
		}
		if in.StartPoint != nil {
			trip.StartPoint = *in.StartPoint
		}
		if in.EndPoint != nil {
			trip.EndPoint = *in.EndPoint
		}
		if in.DepartureTime != nil {
			trip.DepartureTime = in.DepartureTime
		}
		if in.CapacityMax != nil {
			trip.CapacityMax = *in.CapacityMax
		}
		if in.IsRecurring != nil {
			trip.IsRecurring = *in.IsRecurring
		}

		// driver_id is left out so a concurrent assignment is never overwritten.
		err := tx.Model(&trip).
			Select("school_id", "start_point", "end_point", "departure_time", "capacity_max", "status", "is_recurring").
			Updates(&trip).Error
		if err != nil {
			return dbError(err, "update trip")
		}
		return tx.First(&trip, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// AssignDriver binds a driver to a trip that has none. The check and the
// write are one conditional UPDATE, so of any number of concurrent callers
// for the same trip exactly one succeeds. A missing trip and an already
// assigned one both fail with ErrConflict.
func (s *TripService) AssignDriver(ctx context.Context, tripID, driverID uint) (*models.Trip, error) {
	if tripID == 0 || driverID == 0 {
		return nil, invalid("trip id and driver_id are required")
	}

	db := s.db.WithContext(ctx)
	res := db.Model(&models.Trip{}).
		Where("id = ? AND driver_id IS NULL", tripID).
		Update("driver_id", driverID)
	if res.Error != nil {
		err := dbError(res.Error, "assign driver")
		if errors.Is(err, ErrInvalidRequest) {
			metrics.TripAssignmentsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.TripAssignmentsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if res.RowsAffected == 0 {
		metrics.TripAssignmentsTotal.WithLabelValues("conflict").Inc()
		return nil, fmt.Errorf("trip %d not found or already assigned: %w", tripID, ErrConflict)
	}
	metrics.TripAssignmentsTotal.WithLabelValues("assigned").Inc()

	var trip models.Trip
	if err := db.First(&trip, tripID).Error; err != nil {
		return nil, dbError(err, "get trip")
	}
	return &trip, nil
}

func (s *TripService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Trip{}, id).Error; err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return nil
}
