package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"school_transport/internal/models"
)

type SchoolService struct {
	db *gorm.DB
}

func NewSchoolService(db *gorm.DB) *SchoolService {
	return &SchoolService{db: db}
}

type SchoolInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status"`
}

func (in SchoolInput) apply(s *models.School) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
}

func (s *SchoolService) List(ctx context.Context) ([]models.School, error) {
	schools := []models.School{}
	if err := s.db.WithContext(ctx).Order("name").Find(&schools).Error; err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

func (s *SchoolService) Get(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	if err := s.db.WithContext(ctx).First(&school, id).Error; err != nil {
		return nil, dbError(err, "get school")
	}
	return &school, nil
}

// Create adds a partner school, active unless a status is given.
func (s *SchoolService) Create(ctx context.Context, in SchoolInput) (*models.School, error) {
	school := models.School{Status: models.SchoolActive}
	in.apply(&school)
	if school.Name == "" {
		return nil, invalid("name is required")
	}
	if err := s.db.WithContext(ctx).Create(&school).Error; err != nil {
		return nil, dbError(err, "create school")
	}
	return &school, nil
}

func (s *SchoolService) Update(ctx context.Context, id uint, in SchoolInput) (*models.School, error) {
	school, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(school)
	if school.Name == "" {
		return nil, invalid("name is required")
	}
	if err := s.db.WithContext(ctx).Save(school).Error; err != nil {
		return nil, dbError(err, "update school")
	}
	return school, nil
}

// Delete removes the school; its trips keep running without one.
func (s *SchoolService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.School{}, id).Error; err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	return nil
}
