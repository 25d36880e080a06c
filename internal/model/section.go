package model

import (
	"time"

	"gorm.io/gorm"
)

// Section is either a top-level parent section (ParentID nil) or a subsection
// belonging to one parent. Questions hang off subsections only.
type Section struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AssessmentID uint           `json:"assessment_id" gorm:"not null;index"`
	ParentID     *uint          `json:"parent_id,omitempty" gorm:"index"`
	Label        string         `json:"label" gorm:"not null"`
	SortOrder    int            `json:"sort_order" gorm:"not null"`
	LibraryID    *uint          `json:"library_id,omitempty"`
	Subsections  []Section      `json:"subsections,omitempty" gorm:"foreignKey:ParentID"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
