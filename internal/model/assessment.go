package model

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentStatus gates which fields and children of an assessment are mutable.
type AssessmentStatus string

const (
	AssessmentDraft       AssessmentStatus = "draft"
	AssessmentPublished   AssessmentStatus = "published"
	AssessmentUnpublished AssessmentStatus = "unpublished"
)

// Editable reports whether content under the assessment may be mutated.
func (s AssessmentStatus) Editable() bool {
	return s != AssessmentPublished
}

type Assessment struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	Title     string           `json:"title" gorm:"not null"`
	Status    AssessmentStatus `json:"status" gorm:"not null;default:'draft'"`
	Sections  []Section        `json:"sections,omitempty" gorm:"foreignKey:AssessmentID"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}
