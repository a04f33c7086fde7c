package services

import (
	"context"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"gorm.io/gorm"
)

type UserGroupService struct {
	db *gorm.DB
}

func NewUserGroupService(db *gorm.DB) *UserGroupService {
	return &UserGroupService{db: db}
}

func (s *UserGroupService) Create(ctx context.Context, in dto.UserGroupCreate) (*models.UserGroup, error) {
	var groupID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.AssessmentType{}, in.AssessmentTypeID, "assessment type"); err != nil {
			return err
		}
		g := models.UserGroup{Name: in.Name, AssessmentTypeID: in.AssessmentTypeID}
		if err := tx.Create(&g).Error; err != nil {
			return apperr.Translate(err, "user group")
		}
		groupID = g.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, groupID)
}

func (s *UserGroupService) Get(ctx context.Context, id uint) (*models.UserGroup, error) {
	var g models.UserGroup
	if err := s.db.WithContext(ctx).Preload("AssessmentType").First(&g, id).Error; err != nil {
		return nil, apperr.Translate(err, "user group")
	}
	return &g, nil
}

func (s *UserGroupService) List(ctx context.Context, page Page) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	err := s.db.WithContext(ctx).
		Preload("AssessmentType").
		Scopes(paginate(page)).
		Order("id ASC").
		Find(&groups).Error
	return groups, err
}

func (s *UserGroupService) Update(ctx context.Context, id uint, in dto.UserGroupCreate) (*models.UserGroup, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.UserGroup
		if err := tx.First(&g, id).Error; err != nil {
			return apperr.Translate(err, "user group")
		}
		if err := mustExist(tx, &models.AssessmentType{}, in.AssessmentTypeID, "assessment type"); err != nil {
			return err
		}
		g.Name = in.Name
		g.AssessmentTypeID = in.AssessmentTypeID
		return apperr.Translate(tx.Omit("AssessmentType").Save(&g).Error, "user group")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete fails with apperr.ErrReferenced while users belong to the group.
func (s *UserGroupService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.UserGroup{}, id, "user group")
}
