package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionType enumerates the supported question kinds. Answers are present
// only for the two select types.
type QuestionType string

const (
	QuestionSingleSelect QuestionType = "single_select"
	QuestionMultiselect  QuestionType = "multiselect"
	QuestionText         QuestionType = "text"
	QuestionDate         QuestionType = "date"
	QuestionNumeric      QuestionType = "numeric"
)

// Selectable reports whether the type carries an answer list.
func (t QuestionType) Selectable() bool {
	return t == QuestionSingleSelect || t == QuestionMultiselect
}

type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SectionID uint           `json:"section_id" gorm:"not null;index"`
	Label     string         `json:"label" gorm:"not null"`
	Type      QuestionType   `json:"type" gorm:"not null"`
	Required  bool           `json:"required"`
	Tooltip   string         `json:"tooltip,omitempty"`
	Voice     string         `json:"voice,omitempty"`
	SortOrder int            `json:"sort_order" gorm:"not null"`
	LibraryID *uint          `json:"library_id,omitempty"`
	Answers   []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
