// Package dto holds the request and response shapes of the API. Create shapes
// never carry server-assigned fields (id, version, is_active, timestamps).
package dto

type AssessmentTypeCreate struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"Safety"`
}

type UserGroupCreate struct {
	Name             string `json:"name" binding:"required,min=1,max=100" example:"Warehouse staff"`
	AssessmentTypeID uint   `json:"assessment_type_id" binding:"required" example:"1"`
}

type UserCreate struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Email    string `json:"email" binding:"required,email,max=120" example:"jdoe@example.com"`
	FullName string `json:"full_name" binding:"max=150" example:"Jane Doe"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	GroupID  uint   `json:"group_id" binding:"required" example:"1"`
}

// UserUpdate changes only the fields that are present.
type UserUpdate struct {
	Email    *string `json:"email" binding:"omitempty,email,max=120"`
	FullName *string `json:"full_name" binding:"omitempty,max=150"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	GroupID  *uint   `json:"group_id" binding:"omitempty,min=1"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type AssessmentCreate struct {
	Title       string `json:"title" binding:"required,min=1,max=200" example:"Q1"`
	Description string `json:"description" binding:"max=500" example:"First quarter safety check"`
	TypeID      uint   `json:"type_id" binding:"required" example:"1"`
}

// AssessmentUpdate accepts is_active only to reject it: activation has its own endpoint.
type AssessmentUpdate struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type QuestionCreate struct {
	Text     string `json:"text" binding:"required" example:"Where is the nearest fire exit?"`
	MaxScore int    `json:"max_score" binding:"min=0" example:"5"`
}

type QuestionUpdate struct {
	Text     *string `json:"text" binding:"omitempty,min=1"`
	MaxScore *int    `json:"max_score" binding:"omitempty,min=0"`
}

type QuestionSetCreate struct {
	AssessmentID uint   `json:"assessment_id" binding:"required" example:"1"`
	ParentID     *uint  `json:"parent_id" example:"3"`
	QuestionIDs  []uint `json:"question_ids" example:"1,2,3"`
}

type OptionInput struct {
	Text  string `json:"text" binding:"required,max=500" example:"Left of the stairs"`
	Score int    `json:"score" binding:"min=0" example:"5"`
}

type OptionSetCreate struct {
	QuestionID uint          `json:"question_id" binding:"required" example:"1"`
	ParentID   *uint         `json:"parent_id"`
	Options    []OptionInput `json:"options" binding:"dive"`
}

type OptionCreate struct {
	OptionSetID uint   `json:"option_set_id" binding:"required" example:"1"`
	Text        string `json:"text" binding:"required,max=500" example:"Behind reception"`
	Score       int    `json:"score" binding:"min=0" example:"0"`
}

type OptionUpdate struct {
	Text  *string `json:"text" binding:"omitempty,min=1,max=500"`
	Score *int    `json:"score" binding:"omitempty,min=0"`
}

type ResponseInput struct {
	QuestionID uint `json:"question_id" binding:"required" example:"1"`
	OptionID   uint `json:"option_id" binding:"required" example:"2"`
}

type SubmissionCreate struct {
	UserID        uint            `json:"user_id" binding:"required" example:"1"`
	QuestionSetID uint            `json:"question_set_id" binding:"required" example:"1"`
	Responses     []ResponseInput `json:"responses" binding:"dive"`
}
