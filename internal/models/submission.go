package models

import "time"

type Submission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index;uniqueIndex:idx_submission_user_question_set" json:"user_id"`
	QuestionSetID uint       `gorm:"not null;index;uniqueIndex:idx_submission_user_question_set" json:"question_set_id"`
	TotalScore    int        `gorm:"not null;default:0" json:"total_score"`
	Responses     []Response `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"responses,omitempty"`
	SubmittedAt   time.Time  `gorm:"not null;index" json:"submitted_at"`
}

type Response struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index;uniqueIndex:idx_response_submission_question" json:"submission_id"`
	QuestionID   uint      `gorm:"not null;index;uniqueIndex:idx_response_submission_question" json:"question_id"`
	Question     *Question `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OptionID     uint      `gorm:"not null;index" json:"option_id"`
	Option       *Option   `gorm:"foreignKey:OptionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"option,omitempty"`
}
