package services

import (
	"context"
	"strings"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

func (s *QuestionService) Create(ctx context.Context, in dto.QuestionCreate) (*models.Question, error) {
	if in.MaxScore < 0 {
		return nil, apperr.Validation("max_score must not be negative")
	}
	q := models.Question{Text: in.Text, MaxScore: in.MaxScore}
	if err := s.db.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, apperr.Translate(err, "question")
	}
	return &q, nil
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, apperr.Translate(err, "question")
	}
	return &q, nil
}

func (s *QuestionService) List(ctx context.Context, page Page) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).Scopes(paginate(page)).Order("id ASC").Find(&questions).Error
	return questions, err
}

// ListByQuestionSet returns the questions linked to a question set that have
// at least one option set, in link order.
func (s *QuestionService) ListByQuestionSet(ctx context.Context, questionSetID uint) ([]models.Question, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &models.QuestionSet{}, questionSetID, "question set"); err != nil {
		return nil, err
	}
	var questions []models.Question
	err := db.Select("questions.*").
		Joins("JOIN question_set_questions ON question_set_questions.question_id = questions.id").
		Where("question_set_questions.question_set_id = ?", questionSetID).
		Where("EXISTS (SELECT 1 FROM option_sets WHERE option_sets.question_id = questions.id)").
		Order("question_set_questions.position ASC").
		Find(&questions).Error
	return questions, err
}

// Update rejects a max_score lower than any option score already recorded for
// the question.
func (s *QuestionService) Update(ctx context.Context, id uint, in dto.QuestionUpdate) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, id).Error; err != nil {
			return apperr.Translate(err, "question")
		}
		if in.Text != nil {
			if strings.TrimSpace(*in.Text) == "" {
				return apperr.Validation("text must not be empty")
			}
			q.Text = *in.Text
		}
		if in.MaxScore != nil {
			if *in.MaxScore < 0 {
				return apperr.Validation("max_score must not be negative")
			}
			highest, err := highestOptionScore(tx, id)
			if err != nil {
				return err
			}
			if highest > *in.MaxScore {
				return apperr.Validation("max_score %d is below existing option score %d", *in.MaxScore, highest)
			}
			q.MaxScore = *in.MaxScore
		}
		return apperr.Translate(tx.Save(&q).Error, "question")
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Delete fails with apperr.ErrReferenced while the question is in a question
// set, has option sets or has been answered.
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Question{}, id, "question")
}

func highestOptionScore(tx *gorm.DB, questionID uint) (int, error) {
	var highest int
	err := tx.Model(&models.Option{}).
		Joins("JOIN option_sets ON option_sets.id = options.option_set_id").
		Where("option_sets.question_id = ?", questionID).
		Select("COALESCE(MAX(options.score), 0)").
		Scan(&highest).Error
	return highest, err
}
