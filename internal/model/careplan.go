package model

import (
	"time"

	"gorm.io/gorm"
)

// Problem, Goal and Intervention form the two-level nested care-planning graph
// attached to an answer through a problem relationship link. Goals and
// interventions are fetched lazily, one level at a time.

type Problem struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	Label               string         `json:"label" gorm:"not null"`
	Tooltip             string         `json:"tooltip,omitempty"`
	AlternativeWording  string         `json:"alternative_wording,omitempty"`
	CustomAttributes    string         `json:"custom_attributes,omitempty" gorm:"type:jsonb;default:'{}'"`
	Goals               []Goal         `json:"goals,omitempty" gorm:"foreignKey:ProblemID"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

type Goal struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	ProblemID          uint           `json:"problem_id" gorm:"not null;index"`
	Label              string         `json:"label" gorm:"not null"`
	Tooltip            string         `json:"tooltip,omitempty"`
	AlternativeWording string         `json:"alternative_wording,omitempty"`
	Interventions      []Intervention `json:"interventions,omitempty" gorm:"foreignKey:GoalID"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

type Intervention struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	GoalID             uint           `json:"goal_id" gorm:"not null;index"`
	Label              string         `json:"label" gorm:"not null"`
	Tooltip            string         `json:"tooltip,omitempty"`
	AlternativeWording string         `json:"alternative_wording,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
