package models

import "time"

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	MaxScore  int       `gorm:"not null;default:0" json:"max_score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionSet is one version of the questions asked by an assessment.
// ParentID records the set it was derived from and is not enforced.
type QuestionSet struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	AssessmentID uint         `gorm:"not null;index;uniqueIndex:idx_question_set_assessment_version" json:"assessment_id"`
	Assessment   *Assessment  `gorm:"foreignKey:AssessmentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"assessment,omitempty"`
	Version      int          `gorm:"not null;index;uniqueIndex:idx_question_set_assessment_version" json:"version"`
	IsActive     bool         `gorm:"not null;default:false;index" json:"is_active"`
	ParentID     *uint        `gorm:"index" json:"parent_id,omitempty"`
	Questions    []Question   `gorm:"-" json:"questions,omitempty"`
	Submissions  []Submission `gorm:"foreignKey:QuestionSetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (qs *QuestionSet) ScopeKey() uint { return qs.AssessmentID }
func (qs *QuestionSet) SetVersion(v int) { qs.Version = v }
func (qs *QuestionSet) SetActive(flag bool) { qs.IsActive = flag }

// QuestionSetQuestion links a question into a question set. Links go away
// with their set; a linked question cannot be deleted.
type QuestionSetQuestion struct {
	QuestionSetID uint         `gorm:"primaryKey" json:"question_set_id"`
	QuestionSet   *QuestionSet `gorm:"foreignKey:QuestionSetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	QuestionID    uint         `gorm:"primaryKey;index" json:"question_id"`
	Question      *Question    `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Position      int          `gorm:"not null;default:0" json:"position"`
}
