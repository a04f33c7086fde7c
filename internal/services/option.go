package services

import (
	"context"
	"strings"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"gorm.io/gorm"
)

type OptionService struct {
	db *gorm.DB
}

func NewOptionService(db *gorm.DB) *OptionService {
	return &OptionService{db: db}
}

func (s *OptionService) Create(ctx context.Context, in dto.OptionCreate) (*models.Option, error) {
	opt := models.Option{OptionSetID: in.OptionSetID, Text: in.Text, Score: in.Score}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOptionScore(tx, in.OptionSetID, in.Score); err != nil {
			return err
		}
		return apperr.Translate(tx.Create(&opt).Error, "option")
	})
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

func (s *OptionService) Get(ctx context.Context, id uint) (*models.Option, error) {
	var opt models.Option
	if err := s.db.WithContext(ctx).First(&opt, id).Error; err != nil {
		return nil, apperr.Translate(err, "option")
	}
	return &opt, nil
}

// List returns options, optionally only those of one option set.
func (s *OptionService) List(ctx context.Context, optionSetID uint, page Page) ([]models.Option, error) {
	q := s.db.WithContext(ctx)
	if optionSetID != 0 {
		q = q.Where("option_set_id = ?", optionSetID)
	}
	var options []models.Option
	err := q.Scopes(paginate(page)).Order("id ASC").Find(&options).Error
	return options, err
}

func (s *OptionService) Update(ctx context.Context, id uint, in dto.OptionUpdate) (*models.Option, error) {
	var opt models.Option
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&opt, id).Error; err != nil {
			return apperr.Translate(err, "option")
		}
		if in.Text != nil {
			if strings.TrimSpace(*in.Text) == "" {
				return apperr.Validation("text must not be empty")
			}
			opt.Text = *in.Text
		}
		if in.Score != nil {
			if err := checkOptionScore(tx, opt.OptionSetID, *in.Score); err != nil {
				return err
			}
			opt.Score = *in.Score
		}
		return apperr.Translate(tx.Save(&opt).Error, "option")
	})
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

// Delete fails with apperr.ErrReferenced once a response has chosen the option.
func (s *OptionService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Option{}, id, "option")
}

// checkOptionScore resolves option set -> question and checks score against
// the question's max_score.
func checkOptionScore(tx *gorm.DB, optionSetID uint, score int) error {
	var set models.OptionSet
	if err := tx.Preload("Question").First(&set, optionSetID).Error; err != nil {
		return apperr.Translate(err, "option set")
	}
	if set.Question == nil {
		return apperr.NotFound("question")
	}
	return checkScore(score, set.Question.MaxScore)
}

func checkScore(score, maxScore int) error {
	if score < 0 {
		return apperr.Validation("option score %d must not be negative", score)
	}
	if score > maxScore {
		return apperr.Validation("option score %d exceeds question max_score %d", score, maxScore)
	}
	return nil
}
