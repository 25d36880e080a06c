package model

import (
	"time"

	"gorm.io/gorm"
)

type Answer struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	QuestionID         uint           `json:"question_id" gorm:"not null;index"`
	Label              string         `json:"label" gorm:"not null"`
	SortOrder          int            `json:"sort_order" gorm:"not null"`
	SecondaryInputType *string        `json:"secondary_input_type,omitempty"` // "text", "date" or "numeric"
	MutuallyExclusive  bool           `json:"mutually_exclusive"`
	Tooltip            string         `json:"tooltip,omitempty"`
	LibraryID          *uint          `json:"library_id,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
