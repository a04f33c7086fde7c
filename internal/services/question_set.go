package services

import (
	"context"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
	"assessment-backend/internal/versioning"

	"gorm.io/gorm"
)

type QuestionSetService struct {
	db       *gorm.DB
	versions versioning.Scope[models.QuestionSet, *models.QuestionSet]
}

func NewQuestionSetService(db *gorm.DB) *QuestionSetService {
	return &QuestionSetService{
		db:       db,
		versions: versioning.New[models.QuestionSet]("question set", "assessment_id"),
	}
}

// Create adds the next question set version for an assessment and links the
// given questions in order. Repeated ids are linked once.
func (s *QuestionSetService) Create(ctx context.Context, in dto.QuestionSetCreate) (*models.QuestionSet, error) {
	questionIDs := uniqueIDs(in.QuestionIDs)
	qs := models.QuestionSet{AssessmentID: in.AssessmentID, ParentID: in.ParentID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Assessment{}, in.AssessmentID, "assessment"); err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			var found int64
			if err := tx.Model(&models.Question{}).Where("id IN ?", questionIDs).Count(&found).Error; err != nil {
				return err
			}
			if int(found) != len(questionIDs) {
				return apperr.NotFound("question")
			}
		}

		if err := s.versions.CreateNext(tx, &qs); err != nil {
			return err
		}

		for i, qid := range questionIDs {
			link := models.QuestionSetQuestion{QuestionSetID: qs.ID, QuestionID: qid, Position: i}
			if err := tx.Create(&link).Error; err != nil {
				return apperr.Translate(err, "question set")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, qs.ID)
}

// Get returns the question set with its linked questions.
func (s *QuestionSetService) Get(ctx context.Context, id uint) (*models.QuestionSet, error) {
	db := s.db.WithContext(ctx)
	var qs models.QuestionSet
	if err := db.First(&qs, id).Error; err != nil {
		return nil, apperr.Translate(err, "question set")
	}
	if err := loadQuestions(db, &qs); err != nil {
		return nil, err
	}
	return &qs, nil
}

// ListByAssessment returns every version for the assessment, newest first.
func (s *QuestionSetService) ListByAssessment(ctx context.Context, assessmentID uint) ([]models.QuestionSet, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &models.Assessment{}, assessmentID, "assessment"); err != nil {
		return nil, err
	}
	sets, err := s.versions.Versions(ctx, s.db, assessmentID)
	if err != nil {
		return nil, err
	}
	for i := range sets {
		if err := loadQuestions(db, &sets[i]); err != nil {
			return nil, err
		}
	}
	return sets, nil
}

// Activate makes the question set the single active version of its assessment.
func (s *QuestionSetService) Activate(ctx context.Context, id uint) (*models.QuestionSet, error) {
	if _, err := s.versions.Activate(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Active returns the active question set of an assessment, or nil.
func (s *QuestionSetService) Active(ctx context.Context, assessmentID uint) (*models.QuestionSet, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &models.Assessment{}, assessmentID, "assessment"); err != nil {
		return nil, err
	}
	qs, err := s.versions.Active(ctx, s.db, assessmentID)
	if err != nil || qs == nil {
		return nil, err
	}
	if err := loadQuestions(db, qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Delete removes the question set, its question links, and every submission
// made against it.
func (s *QuestionSetService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.QuestionSet{}, id, "question set")
}

func loadQuestions(db *gorm.DB, qs *models.QuestionSet) error {
	return db.Select("questions.*").
		Joins("JOIN question_set_questions ON question_set_questions.question_id = questions.id").
		Where("question_set_questions.question_set_id = ?", qs.ID).
		Order("question_set_questions.position ASC").
		Find(&qs.Questions).Error
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
