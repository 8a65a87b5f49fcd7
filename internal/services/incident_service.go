package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"school_transport/internal/models"
)

type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

// CreateIncidentInput accepts the problem type as either "type" or the
// legacy "type_de_problem" key.
type CreateIncidentInput struct {
	Type          string   `json:"type"`
	TypeDeProblem string   `json:"type_de_problem"`
	Description   string   `json:"description"`
	Documents     []string `json:"documents"`
	UserID        *uint    `json:"user_id"`
}

// List returns incident reports whose type or description contains search,
// ignoring case, newest first. An empty search matches everything.
func (s *IncidentService) List(ctx context.Context, search string) ([]models.IncidentListItem, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"

	out := []models.IncidentListItem{}
	err := s.db.WithContext(ctx).
		Table("incidents AS i").
		Select("i.*, u.name AS declarant").
		Joins("LEFT JOIN users u ON u.id = i.user_id").
		Where("LOWER(i.type) LIKE ? OR LOWER(i.description) LIKE ?", pattern, pattern).
		Order("i.created_at DESC, i.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return out, nil
}

func (s *IncidentService) Create(ctx context.Context, in CreateIncidentInput) (*models.Incident, error) {
	kind := strings.TrimSpace(in.Type)
	if kind == "" {
		kind = strings.TrimSpace(in.TypeDeProblem)
	}
	if kind == "" {
		return nil, invalid("type is required")
	}

	docs := in.Documents
	if docs == nil {
		docs = []string{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}

	incident := models.Incident{
		Type:        kind,
		Description: in.Description,
		Documents:   datatypes.JSON(raw),
		UserID:      in.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&incident).Error; err != nil {
		return nil, dbError(err, "create incident")
	}
	return &incident, nil
}
