package model

import (
	"time"

	"gorm.io/gorm"
)

// RelationshipType tags a link between an answer and a cross-cutting target.
type RelationshipType string

const (
	RelTriggeredQuestion RelationshipType = "triggered_question"
	RelGuideline         RelationshipType = "guideline"
	RelProblem           RelationshipType = "problem"
	RelBarrier           RelationshipType = "barrier"
)

// RelationshipLink is a many-to-many edge from an answer to its target. The
// target table is implied by Type.
type RelationshipLink struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	AnswerID  uint             `json:"answer_id" gorm:"not null;index"`
	Type      RelationshipType `json:"type" gorm:"not null;index"`
	TargetID  uint             `json:"target_id" gorm:"not null"`
	CreatedAt time.Time        `json:"created_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

type Guideline struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Label     string         `json:"label" gorm:"not null"`
	URL       string         `json:"url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Barrier struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Label     string         `json:"label" gorm:"not null"`
	Tooltip   string         `json:"tooltip,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
