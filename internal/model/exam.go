package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents an exam definition authored by an admin.
type Exam struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalMarks      int       `json:"total_marks"`
	PassingMarks    int       `json:"passing_marks"`
	CreatedBy       int       `json:"created_by"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Title           string `json:"title" binding:"required,min=3,max=200"`
	Description     string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=480"`
	TotalMarks      int    `json:"total_marks" binding:"required,min=1"`
	PassingMarks    int    `json:"passing_marks" binding:"min=0,ltefield=TotalMarks"`
}

// UpdateExamRequest is the payload for updating an existing exam.
type UpdateExamRequest struct {
	Title           string `json:"title" binding:"omitempty,min=3,max=200"`
	Description     string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	TotalMarks      int    `json:"total_marks" binding:"omitempty,min=1"`
	PassingMarks    *int   `json:"passing_marks" binding:"omitempty,min=0"`
	IsActive        *bool  `json:"is_active" binding:"omitempty"`
}
