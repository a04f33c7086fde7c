package models

import "time"

type OptionSet struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index;uniqueIndex:idx_option_set_question_version" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"question,omitempty"`
	Version    int       `gorm:"not null;index;uniqueIndex:idx_option_set_question_version" json:"version"`
	IsActive   bool      `gorm:"not null;default:false;index" json:"is_active"`
	ParentID   *uint     `gorm:"index" json:"parent_id,omitempty"`
	Options    []Option  `gorm:"foreignKey:OptionSetID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"options,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (set *OptionSet) ScopeKey() uint { return set.QuestionID }
func (set *OptionSet) SetVersion(v int) { set.Version = v }
func (set *OptionSet) SetActive(flag bool) { set.IsActive = flag }

type Option struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OptionSetID uint   `gorm:"not null;index" json:"option_set_id"`
	Text        string `gorm:"size:500;not null" json:"text"`
	Score       int    `gorm:"not null;default:0" json:"score"`
}
