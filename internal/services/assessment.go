package services

import (
	"context"
	"strings"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
	"assessment-backend/internal/versioning"

	"gorm.io/gorm"
)

type AssessmentService struct {
	db       *gorm.DB
	versions versioning.Scope[models.Assessment, *models.Assessment]
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{
		db:       db,
		versions: versioning.New[models.Assessment]("assessment", "type_id"),
	}
}

// Create adds the next version of an assessment for its type. The new version
// starts inactive.
func (s *AssessmentService) Create(ctx context.Context, in dto.AssessmentCreate) (*models.Assessment, error) {
	a := models.Assessment{
		Title:       in.Title,
		Description: in.Description,
		TypeID:      in.TypeID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.AssessmentType{}, in.TypeID, "assessment type"); err != nil {
			return err
		}
		return s.versions.CreateNext(tx, &a)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, a.ID)
}

func (s *AssessmentService) Get(ctx context.Context, id uint) (*models.Assessment, error) {
	var a models.Assessment
	if err := s.db.WithContext(ctx).Preload("Type").First(&a, id).Error; err != nil {
		return nil, apperr.Translate(err, "assessment")
	}
	return &a, nil
}

// List returns assessments, optionally only those of one type.
func (s *AssessmentService) List(ctx context.Context, typeID uint, page Page) ([]models.Assessment, error) {
	q := s.db.WithContext(ctx).Preload("Type")
	if typeID != 0 {
		q = q.Where("type_id = ?", typeID)
	}
	var assessments []models.Assessment
	err := q.Scopes(paginate(page)).Order("type_id ASC, version DESC").Find(&assessments).Error
	return assessments, err
}

func (s *AssessmentService) Update(ctx context.Context, id uint, in dto.AssessmentUpdate) (*models.Assessment, error) {
	if in.IsActive != nil {
		return nil, apperr.Validation("is_active cannot be set directly, activate the assessment instead")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Assessment
		if err := tx.First(&a, id).Error; err != nil {
			return apperr.Translate(err, "assessment")
		}
		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if len(updates) == 0 {
			return nil
		}
		return apperr.Translate(tx.Model(&a).Updates(updates).Error, "assessment")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete fails with apperr.ErrReferenced while question sets exist for the assessment.
func (s *AssessmentService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Assessment{}, id, "assessment")
}

// Activate makes the assessment the single active version of its type.
func (s *AssessmentService) Activate(ctx context.Context, id uint) (*models.Assessment, error) {
	if _, err := s.versions.Activate(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Active returns the active assessment of a type, or nil if none is active.
func (s *AssessmentService) Active(ctx context.Context, typeID uint) (*models.Assessment, error) {
	if err := mustExist(s.db.WithContext(ctx), &models.AssessmentType{}, typeID, "assessment type"); err != nil {
		return nil, err
	}
	return s.versions.Active(ctx, s.db, typeID, "Type")
}

func (s *AssessmentService) Versions(ctx context.Context, typeID uint) ([]models.Assessment, error) {
	if err := mustExist(s.db.WithContext(ctx), &models.AssessmentType{}, typeID, "assessment type"); err != nil {
		return nil, err
	}
	return s.versions.Versions(ctx, s.db, typeID, "Type")
}
