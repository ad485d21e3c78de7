package model

import "github.com/google/uuid"

// UserAnswer records one graded answer. Created in bulk at submission time
// and immutable thereafter; cascades with its result row.
type UserAnswer struct {
	ID             uuid.UUID `json:"id"`
	ResultID       uuid.UUID `json:"result_id"`
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedOption *string   `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
}

// AnswerDetail is an answer joined with its question for the result view.
type AnswerDetail struct {
	QuestionID     uuid.UUID `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	SelectedOption *string   `json:"selected_option"`
	SelectedText   string    `json:"selected_text,omitempty"`
	CorrectOption  string    `json:"correct_option"`
	CorrectText    string    `json:"correct_text"`
	IsCorrect      bool      `json:"is_correct"`
	Marks          int       `json:"marks"`
}
