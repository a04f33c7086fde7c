package services

import (
	"context"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/models"
)

// DeliveryService resolves what a user should be answering right now:
// user -> group -> assessment type -> active assessment -> active question set,
// with each question's active option set.
type DeliveryService struct {
	users        *UserService
	groups       *UserGroupService
	assessments  *AssessmentService
	questionSets *QuestionSetService
	optionSets   *OptionSetService
	scoring      *ScoringService
}

func NewDeliveryService(
	users *UserService,
	groups *UserGroupService,
	assessments *AssessmentService,
	questionSets *QuestionSetService,
	optionSets *OptionSetService,
	scoring *ScoringService,
) *DeliveryService {
	return &DeliveryService{
		users:        users,
		groups:       groups,
		assessments:  assessments,
		questionSets: questionSets,
		optionSets:   optionSets,
		scoring:      scoring,
	}
}

type CurrentAssessment struct {
	User        *models.User
	Assessment  *models.Assessment
	QuestionSet *models.QuestionSet
	// OptionSets maps question id to that question's active option set.
	// Questions without an active option set are absent.
	OptionSets map[uint]*models.OptionSet
	MaxScore   int
}

func (s *DeliveryService) CurrentForUser(ctx context.Context, userID uint) (*CurrentAssessment, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.Get(ctx, user.GroupID)
	if err != nil {
		return nil, err
	}
	user.Group = group

	assessment, err := s.assessments.Active(ctx, group.AssessmentTypeID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, apperr.NotFound("active assessment for the user's group")
	}

	qs, err := s.questionSets.Active(ctx, assessment.ID)
	if err != nil {
		return nil, err
	}
	if qs == nil {
		return nil, apperr.NotFound("active question set for the assessment")
	}

	optionSets := make(map[uint]*models.OptionSet, len(qs.Questions))
	for _, q := range qs.Questions {
		set, err := s.optionSets.Active(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		if set != nil {
			optionSets[q.ID] = set
		}
	}

	return &CurrentAssessment{
		User:        user,
		Assessment:  assessment,
		QuestionSet: qs,
		OptionSets:  optionSets,
		MaxScore:    s.scoring.MaxPossible(qs.Questions),
	}, nil
}
