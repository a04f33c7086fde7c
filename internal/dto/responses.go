package dto

import (
	"time"

	"assessment-backend/internal/models"
)

type AssessmentTypeRead struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Safety"`
}

type UserGroupRead struct {
	ID               uint                `json:"id"`
	Name             string              `json:"name"`
	AssessmentTypeID uint                `json:"assessment_type_id"`
	AssessmentType   *AssessmentTypeRead `json:"assessment_type,omitempty"`
}

type UserRead struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name,omitempty"`
	GroupID  uint           `json:"group_id"`
	Group    *UserGroupRead `json:"group,omitempty"`
}

type AssessmentRead struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	TypeID      uint                `json:"type_id"`
	Version     int                 `json:"version"`
	IsActive    bool                `json:"is_active"`
	Type        *AssessmentTypeRead `json:"type,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type QuestionRead struct {
	ID              uint           `json:"id"`
	Text            string         `json:"text"`
	MaxScore        int            `json:"max_score"`
	ActiveOptionSet *OptionSetRead `json:"active_option_set,omitempty"`
}

type QuestionSetRead struct {
	ID           uint           `json:"id"`
	AssessmentID uint           `json:"assessment_id"`
	Version      int            `json:"version"`
	IsActive     bool           `json:"is_active"`
	ParentID     *uint          `json:"parent_id,omitempty"`
	Questions    []QuestionRead `json:"questions"`
	CreatedAt    time.Time      `json:"created_at"`
}

type OptionRead struct {
	ID          uint   `json:"id"`
	OptionSetID uint   `json:"option_set_id"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
}

type OptionSetRead struct {
	ID         uint         `json:"id"`
	QuestionID uint         `json:"question_id"`
	Version    int          `json:"version"`
	IsActive   bool         `json:"is_active"`
	ParentID   *uint        `json:"parent_id,omitempty"`
	Options    []OptionRead `json:"options"`
	CreatedAt  time.Time    `json:"created_at"`
}

type ResponseRead struct {
	ID         uint `json:"id"`
	QuestionID uint `json:"question_id"`
	OptionID   uint `json:"option_id"`
	Score      int  `json:"score"`
}

type SubmissionRead struct {
	ID            uint           `json:"id"`
	UserID        uint           `json:"user_id"`
	QuestionSetID uint           `json:"question_set_id"`
	TotalScore    int            `json:"total_score"`
	MaxScore      int            `json:"max_score"`
	SubmittedAt   time.Time      `json:"submitted_at"`
	Responses     []ResponseRead `json:"responses"`
}

// CurrentAssessment is what a user is asked to complete right now.
type CurrentAssessment struct {
	User        UserRead        `json:"user"`
	Assessment  AssessmentRead  `json:"assessment"`
	QuestionSet QuestionSetRead `json:"question_set"`
	MaxScore    int             `json:"max_score"`
}

type AuthResponse struct {
	Token string   `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  UserRead `json:"user"`
}

func AssessmentTypeFromModel(m *models.AssessmentType) AssessmentTypeRead {
	return AssessmentTypeRead{ID: m.ID, Name: m.Name}
}

func UserGroupFromModel(m *models.UserGroup) UserGroupRead {
	r := UserGroupRead{ID: m.ID, Name: m.Name, AssessmentTypeID: m.AssessmentTypeID}
	if m.AssessmentType != nil {
		t := AssessmentTypeFromModel(m.AssessmentType)
		r.AssessmentType = &t
	}
	return r
}

func UserFromModel(m *models.User) UserRead {
	r := UserRead{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
		FullName: m.FullName,
		GroupID:  m.GroupID,
	}
	if m.Group != nil {
		g := UserGroupFromModel(m.Group)
		r.Group = &g
	}
	return r
}

func AssessmentFromModel(m *models.Assessment) AssessmentRead {
	r := AssessmentRead{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		TypeID:      m.TypeID,
		Version:     m.Version,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Type != nil {
		t := AssessmentTypeFromModel(m.Type)
		r.Type = &t
	}
	return r
}

func QuestionFromModel(m *models.Question) QuestionRead {
	return QuestionRead{ID: m.ID, Text: m.Text, MaxScore: m.MaxScore}
}

func QuestionSetFromModel(m *models.QuestionSet) QuestionSetRead {
	return QuestionSetRead{
		ID:           m.ID,
		AssessmentID: m.AssessmentID,
		Version:      m.Version,
		IsActive:     m.IsActive,
		ParentID:     m.ParentID,
		Questions:    FromModels(m.Questions, QuestionFromModel),
		CreatedAt:    m.CreatedAt,
	}
}

func OptionFromModel(m *models.Option) OptionRead {
	return OptionRead{ID: m.ID, OptionSetID: m.OptionSetID, Text: m.Text, Score: m.Score}
}

func OptionSetFromModel(m *models.OptionSet) OptionSetRead {
	return OptionSetRead{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Version:    m.Version,
		IsActive:   m.IsActive,
		ParentID:   m.ParentID,
		Options:    FromModels(m.Options, OptionFromModel),
		CreatedAt:  m.CreatedAt,
	}
}

func ResponseFromModel(m *models.Response) ResponseRead {
	r := ResponseRead{ID: m.ID, QuestionID: m.QuestionID, OptionID: m.OptionID}
	if m.Option != nil {
		r.Score = m.Option.Score
	}
	return r
}

func SubmissionFromModel(m *models.Submission) SubmissionRead {
	return SubmissionRead{
		ID:            m.ID,
		UserID:        m.UserID,
		QuestionSetID: m.QuestionSetID,
		TotalScore:    m.TotalScore,
		SubmittedAt:   m.SubmittedAt,
		Responses:     FromModels(m.Responses, ResponseFromModel),
	}
}

// FromModels converts a slice of models with conv. The result is never nil so
// empty lists encode as [].
func FromModels[M any, R any](items []M, conv func(*M) R) []R {
	result := make([]R, len(items))
	for i := range items {
		result[i] = conv(&items[i])
	}
	return result
}
