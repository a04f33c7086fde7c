package models

import "time"

type UserGroup struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	AssessmentTypeID uint            `gorm:"not null;index" json:"assessment_type_id"`
	AssessmentType   *AssessmentType `gorm:"foreignKey:AssessmentTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"assessment_type,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type User struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Username       string       `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string       `gorm:"size:120;uniqueIndex;not null" json:"email"`
	FullName       string       `gorm:"size:150" json:"full_name,omitempty"`
	HashedPassword string       `gorm:"size:255;not null" json:"-"`
	GroupID        uint         `gorm:"not null;index" json:"group_id"`
	Group          *UserGroup   `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"group,omitempty"`
	Submissions    []Submission `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
