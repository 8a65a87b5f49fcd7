package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"school_transport/internal/models"
)

type DriverService struct {
	db *gorm.DB
}

func NewDriverService(db *gorm.DB) *DriverService {
	return &DriverService{db: db}
}

type CreateDriverInput struct {
	UserID          uint    `json:"user_id" binding:"required"`
	VehicleBrand    string  `json:"vehicle_brand"`
	VehicleColor    string  `json:"vehicle_color"`
	VehiclePlate    string  `json:"vehicle_plate"`
	LicenseDocument *string `json:"license_document"`
	IDDocument      *string `json:"id_document"`
	VehiclePhoto    *string `json:"vehicle_photo"`
	Status          string  `json:"status" binding:"omitempty,driver_status"`
}

// UpdateDriverInput is a partial update; nil fields keep their stored value.
type UpdateDriverInput struct {
	VehicleBrand    *string `json:"vehicle_brand"`
	VehicleColor    *string `json:"vehicle_color"`
	VehiclePlate    *string `json:"vehicle_plate"`
	LicenseDocument *string `json:"license_document"`
	IDDocument      *string `json:"id_document"`
	VehiclePhoto    *string `json:"vehicle_photo"`
	Status          *string `json:"status" binding:"omitempty,driver_status"`
}

const driverSummaryColumns = `d.id, d.user_id, d.status, d.created_at,
	u.name, u.email, u.phone, u.address,
	d.vehicle_brand, d.vehicle_color, d.vehicle_plate,
	d.license_document, d.id_document, d.vehicle_photo,
	COUNT(t.id) AS trips_count`

func (s *DriverService) summaries(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("drivers AS d").
		Select(driverSummaryColumns).
		Joins("JOIN users u ON u.id = d.user_id").
		Joins("LEFT JOIN trips t ON t.driver_id = d.id").
		Group("d.id, u.id")
}

// List returns every driver with its user's contact fields and trip count,
// newest first.
func (s *DriverService) List(ctx context.Context) ([]models.DriverSummary, error) {
	out := []models.DriverSummary{}
	if err := s.summaries(ctx).Order("d.created_at DESC, d.id DESC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return out, nil
}

func (s *DriverService) Get(ctx context.Context, id uint) (*models.DriverSummary, error) {
	var out []models.DriverSummary
	if err := s.summaries(ctx).Where("d.id = ?", id).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("get driver: %w", ErrNotFound)
	}
	return &out[0], nil
}

// Create adds a driver profile to an existing user. A user has at most one.
func (s *DriverService) Create(ctx context.Context, in CreateDriverInput) (*models.Driver, error) {
	if in.UserID == 0 {
		return nil, invalid("user_id is required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Select("id").First(&user, in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("user %d does not exist", in.UserID)
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}

	status := models.DriverStatus(in.Status)
	if status == "" {
		status = models.DriverPending
	}
	driver := models.Driver{
		UserID: in.UserID,
		Vehicle: models.Vehicle{
			Brand: in.VehicleBrand,
			Color: in.VehicleColor,
			Plate: in.VehiclePlate,
		},
		LicenseDocument: in.LicenseDocument,
		IDDocument:      in.IDDocument,
		VehiclePhoto:    in.VehiclePhoto,
		Status:          status,
	}
	if err := s.db.WithContext(ctx).Create(&driver).Error; err != nil {
		return nil, dbError(err, "create driver")
	}
	return &driver, nil
}

// Update merges the patch into the stored driver profile.
func (s *DriverService) Update(ctx context.Context, id uint, in UpdateDriverInput) (*models.Driver, error) {
	var driver models.Driver
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&driver, id).Error; err != nil {
			return dbError(err, "get driver")
		}

		driver.Vehicle.Merge(in.VehicleBrand, in.VehicleColor, in.VehiclePlate)
		if in.LicenseDocument != nil {
			driver.LicenseDocument = in.LicenseDocument
		}
		if in.IDDocument != nil {
			driver.IDDocument = in.IDDocument
		}
		if in.VehiclePhoto != nil {
			driver.VehiclePhoto = in.VehiclePhoto
		}
		if in.Status != nil {
			driver.Status = models.DriverStatus(*in.Status)
		}

		if err := tx.Save(&driver).Error; err != nil {
			return dbError(err, "update driver")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// UpdateStatus records the review outcome of a driver's documents.
func (s *DriverService) UpdateStatus(ctx context.Context, id uint, status models.DriverStatus) (*models.Driver, error) {
	if !status.IsValid() {
		return nil, invalid("unknown driver status %q", status)
	}
	return s.Update(ctx, id, UpdateDriverInput{Status: (*string)(&status)})
}

// Delete removes the driver profile. Its trips become unassigned.
func (s *DriverService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Driver{}, id).Error; err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}
