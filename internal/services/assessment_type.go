package services

import (
	"context"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"gorm.io/gorm"
)

type AssessmentTypeService struct {
	db *gorm.DB
}

func NewAssessmentTypeService(db *gorm.DB) *AssessmentTypeService {
	return &AssessmentTypeService{db: db}
}

func (s *AssessmentTypeService) Create(ctx context.Context, in dto.AssessmentTypeCreate) (*models.AssessmentType, error) {
	t := models.AssessmentType{Name: in.Name}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, apperr.Translate(err, "assessment type")
	}
	return &t, nil
}

func (s *AssessmentTypeService) Get(ctx context.Context, id uint) (*models.AssessmentType, error) {
	var t models.AssessmentType
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, apperr.Translate(err, "assessment type")
	}
	return &t, nil
}

func (s *AssessmentTypeService) List(ctx context.Context, page Page) ([]models.AssessmentType, error) {
	var types []models.AssessmentType
	err := s.db.WithContext(ctx).Scopes(paginate(page)).Order("id ASC").Find(&types).Error
	return types, err
}

func (s *AssessmentTypeService) Update(ctx context.Context, id uint, in dto.AssessmentTypeCreate) (*models.AssessmentType, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = in.Name
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return nil, apperr.Translate(err, "assessment type")
	}
	return t, nil
}

// Delete fails with apperr.ErrReferenced while groups or assessments use the type.
func (s *AssessmentTypeService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.AssessmentType{}, id, "assessment type")
}
