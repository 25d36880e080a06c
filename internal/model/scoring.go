package model

import (
	"time"

	"gorm.io/gorm"
)

type ScoringModel struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Label       string         `json:"label" gorm:"not null"`
	ScoringType string         `json:"scoring_type" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerScore is one cell of the scores map, keyed by (answer, model). The
// value travels as a string on the wire regardless of scoring type.
type AnswerScore struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ModelID   uint           `json:"model_id" gorm:"not null;uniqueIndex:idx_answer_model"`
	AnswerID  uint           `json:"answer_id" gorm:"not null;uniqueIndex:idx_answer_model"`
	Value     string         `json:"value" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
