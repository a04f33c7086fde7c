package services

import (
	"context"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
	"assessment-backend/internal/versioning"

	"gorm.io/gorm"
)

type OptionSetService struct {
	db       *gorm.DB
	versions versioning.Scope[models.OptionSet, *models.OptionSet]
}

func NewOptionSetService(db *gorm.DB) *OptionSetService {
	return &OptionSetService{
		db:       db,
		versions: versioning.New[models.OptionSet]("option set", "question_id"),
	}
}

// Create adds the next option set version for a question together with its
// options. Every option score must lie within the question's max_score.
func (s *OptionSetService) Create(ctx context.Context, in dto.OptionSetCreate) (*models.OptionSet, error) {
	set := models.OptionSet{QuestionID: in.QuestionID, ParentID: in.ParentID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, in.QuestionID).Error; err != nil {
			return apperr.Translate(err, "question")
		}
		for _, o := range in.Options {
			if err := checkScore(o.Score, question.MaxScore); err != nil {
				return err
			}
		}

		if err := s.versions.CreateNext(tx, &set); err != nil {
			return err
		}

		for _, o := range in.Options {
			opt := models.Option{OptionSetID: set.ID, Text: o.Text, Score: o.Score}
			if err := tx.Create(&opt).Error; err != nil {
				return apperr.Translate(err, "option")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, set.ID)
}

func (s *OptionSetService) Get(ctx context.Context, id uint) (*models.OptionSet, error) {
	var set models.OptionSet
	if err := s.db.WithContext(ctx).Preload("Options", orderByID).First(&set, id).Error; err != nil {
		return nil, apperr.Translate(err, "option set")
	}
	return &set, nil
}

// ListByQuestion returns every option set version of a question, newest first.
func (s *OptionSetService) ListByQuestion(ctx context.Context, questionID uint) ([]models.OptionSet, error) {
	if err := mustExist(s.db.WithContext(ctx), &models.Question{}, questionID, "question"); err != nil {
		return nil, err
	}
	return s.versions.Versions(ctx, s.db, questionID, "Options")
}

// Activate makes the option set the single active version of its question.
func (s *OptionSetService) Activate(ctx context.Context, id uint) (*models.OptionSet, error) {
	if _, err := s.versions.Activate(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Active returns the active option set of a question, or nil.
func (s *OptionSetService) Active(ctx context.Context, questionID uint) (*models.OptionSet, error) {
	if err := mustExist(s.db.WithContext(ctx), &models.Question{}, questionID, "question"); err != nil {
		return nil, err
	}
	return s.versions.Active(ctx, s.db, questionID, "Options")
}

// Delete fails with apperr.ErrReferenced while the set still has options.
func (s *OptionSetService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.OptionSet{}, id, "option set")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
