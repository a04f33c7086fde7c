package services

import (
	"context"
	"time"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"gorm.io/gorm"
)

type SubmissionService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewSubmissionService(db *gorm.DB, scoring *ScoringService) *SubmissionService {
	return &SubmissionService{db: db, scoring: scoring}
}

// Create records a user's answers to a question set. A user submits a question
// set at most once. Each response must name a question of the set and an
// option from one of that question's option sets.
func (s *SubmissionService) Create(ctx context.Context, in dto.SubmissionCreate) (*models.Submission, error) {
	sub := models.Submission{
		UserID:        in.UserID,
		QuestionSetID: in.QuestionSetID,
		SubmittedAt:   time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.User{}, in.UserID, "user"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.QuestionSet{}, in.QuestionSetID, "question set"); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Submission{}).
			Where("user_id = ? AND question_set_id = ?", in.UserID, in.QuestionSetID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Conflict("user %d already submitted question set %d", in.UserID, in.QuestionSetID)
		}

		responses, scores, err := s.resolveResponses(tx, in)
		if err != nil {
			return err
		}
		sub.Responses = responses
		sub.TotalScore = s.scoring.Total(responses, scores)

		if err := tx.Create(&sub).Error; err != nil {
			return apperr.Translate(err, "submission")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, sub.ID)
}

type optionOwner struct {
	ID         uint
	Score      int
	QuestionID uint
}

func (s *SubmissionService) resolveResponses(tx *gorm.DB, in dto.SubmissionCreate) ([]models.Response, map[uint]int, error) {
	if len(in.Responses) == 0 {
		return nil, nil, nil
	}

	var questionIDs []uint
	if err := tx.Model(&models.QuestionSetQuestion{}).
		Where("question_set_id = ?", in.QuestionSetID).
		Pluck("question_id", &questionIDs).Error; err != nil {
		return nil, nil, err
	}
	inSet := make(map[uint]bool, len(questionIDs))
	for _, id := range questionIDs {
		inSet[id] = true
	}

	answered := make(map[uint]bool, len(in.Responses))
	optionIDs := make([]uint, 0, len(in.Responses))
	for _, r := range in.Responses {
		if !inSet[r.QuestionID] {
			return nil, nil, apperr.Validation("question %d is not part of question set %d", r.QuestionID, in.QuestionSetID)
		}
		if answered[r.QuestionID] {
			return nil, nil, apperr.Validation("question %d is answered more than once", r.QuestionID)
		}
		answered[r.QuestionID] = true
		optionIDs = append(optionIDs, r.OptionID)
	}

	var owners []optionOwner
	if err := tx.Model(&models.Option{}).
		Select("options.id, options.score, option_sets.question_id").
		Joins("JOIN option_sets ON option_sets.id = options.option_set_id").
		Where("options.id IN ?", optionIDs).
		Scan(&owners).Error; err != nil {
		return nil, nil, err
	}
	byID := make(map[uint]optionOwner, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}

	scores := make(map[uint]int, len(owners))
	responses := make([]models.Response, 0, len(in.Responses))
	for _, r := range in.Responses {
		owner, ok := byID[r.OptionID]
		if !ok {
			return nil, nil, apperr.NotFound("option")
		}
		if owner.QuestionID != r.QuestionID {
			return nil, nil, apperr.Validation("option %d does not belong to question %d", r.OptionID, r.QuestionID)
		}
		scores[owner.ID] = owner.Score
		responses = append(responses, models.Response{QuestionID: r.QuestionID, OptionID: r.OptionID})
	}
	return responses, scores, nil
}

func (s *SubmissionService) Get(ctx context.Context, id uint) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.WithContext(ctx).
		Preload("Responses", orderByID).
		Preload("Responses.Option").
		First(&sub, id).Error
	if err != nil {
		return nil, apperr.Translate(err, "submission")
	}
	return &sub, nil
}

// List returns submissions filtered by user and/or question set when the ids are non-zero.
func (s *SubmissionService) List(ctx context.Context, userID, questionSetID uint, page Page) ([]models.Submission, error) {
	q := s.db.WithContext(ctx).Preload("Responses", orderByID).Preload("Responses.Option")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if questionSetID != 0 {
		q = q.Where("question_set_id = ?", questionSetID)
	}
	var subs []models.Submission
	err := q.Scopes(paginate(page)).Order("submitted_at DESC, id DESC").Find(&subs).Error
	return subs, err
}

// Delete removes the submission and its responses.
func (s *SubmissionService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.Submission{}, id, "submission")
}

type SubmissionResult struct {
	Rank         int
	SubmissionID uint
	UserID       uint
	Username     string
	Email        string
	TotalScore   int
	MaxScore     int
	Percent      float64
	SubmittedAt  time.Time
}

// MaxScore is the best total a submission against the question set can reach.
func (s *SubmissionService) MaxScore(ctx context.Context, questionSetID uint) (int, error) {
	db := s.db.WithContext(ctx)
	var qs models.QuestionSet
	if err := db.First(&qs, questionSetID).Error; err != nil {
		return 0, apperr.Translate(err, "question set")
	}
	if err := loadQuestions(db, &qs); err != nil {
		return 0, err
	}
	return s.scoring.MaxPossible(qs.Questions), nil
}

// Results ranks every submission made against a question set.
func (s *SubmissionService) Results(ctx context.Context, questionSetID uint) ([]SubmissionResult, error) {
	maxScore, err := s.MaxScore(ctx, questionSetID)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var subs []models.Submission
	if err := db.Where("question_set_id = ?", questionSetID).Find(&subs).Error; err != nil {
		return nil, err
	}
	subs = s.scoring.Rank(subs)

	userIDs := make([]uint, 0, len(subs))
	for _, sub := range subs {
		userIDs = append(userIDs, sub.UserID)
	}
	users := make(map[uint]models.User, len(subs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := db.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	results := make([]SubmissionResult, 0, len(subs))
	for i, sub := range subs {
		u := users[sub.UserID]
		results = append(results, SubmissionResult{
			Rank:         i + 1,
			SubmissionID: sub.ID,
			UserID:       sub.UserID,
			Username:     u.Username,
			Email:        u.Email,
			TotalScore:   sub.TotalScore,
			MaxScore:     maxScore,
			Percent:      s.scoring.Percent(sub.TotalScore, maxScore),
			SubmittedAt:  sub.SubmittedAt,
		})
	}
	return results, nil
}
