package models

import "time"

type Assessment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"size:500" json:"description,omitempty"`
	TypeID      uint            `gorm:"not null;index;uniqueIndex:idx_assessment_type_version" json:"type_id"`
	Type        *AssessmentType `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"type,omitempty"`
	Version     int             `gorm:"not null;index;uniqueIndex:idx_assessment_type_version" json:"version"`
	IsActive    bool            `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (a *Assessment) ScopeKey() uint { return a.TypeID }
func (a *Assessment) SetVersion(v int) { a.Version = v }
func (a *Assessment) SetActive(flag bool) { a.IsActive = flag }
