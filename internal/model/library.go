package model

import (
	"time"

	"gorm.io/gorm"
)

// LibraryContentType identifies the kind of reusable content a library item
// represents.
type LibraryContentType string

const (
	LibrarySection      LibraryContentType = "section"
	LibraryQuestion     LibraryContentType = "question"
	LibraryAnswer       LibraryContentType = "answer"
	LibraryProblem      LibraryContentType = "problem"
	LibraryGoal         LibraryContentType = "goal"
	LibraryIntervention LibraryContentType = "intervention"
	LibraryBarrier      LibraryContentType = "barrier"
	LibraryGuideline    LibraryContentType = "guideline"
)

// LibraryItem is a reusable piece of canonical content. A local entity binds
// to one by exact label match, carrying the item's id as its library id.
type LibraryItem struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	ContentType LibraryContentType `json:"content_type" gorm:"not null;index"`
	Label       string             `json:"label" gorm:"not null;index"`
	Tooltip     string             `json:"tooltip,omitempty"`
	// MasterID points at the owning bundle for items published together
	// (a select question with its answers).
	MasterID  *uint          `json:"master_id,omitempty" gorm:"index"`
	ScopeID   *uint          `json:"scope_id,omitempty" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
