package model

import "github.com/google/uuid"

// OptionLabels are the canonical labels for a question's four options.
// The stored correct option and submitted answers are always keyed by
// these labels; per-attempt shuffling only changes the displayed order.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// Question represents a single four-option question owned by an exam.
type Question struct {
	ID            uuid.UUID `json:"id"`
	ExamID        uuid.UUID `json:"exam_id"`
	QuestionText  string    `json:"question_text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectOption string    `json:"correct_option,omitempty"`
	Marks         int       `json:"marks"`
}

// OptionText returns the option text for a canonical label.
func (q *Question) OptionText(label string) string {
	switch label {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}

// AddQuestionRequest is the payload for adding a question to an exam.
type AddQuestionRequest struct {
	QuestionText  string `json:"question_text" binding:"required,min=1,max=2000"`
	OptionA       string `json:"option_a" binding:"required,max=200"`
	OptionB       string `json:"option_b" binding:"required,max=200"`
	OptionC       string `json:"option_c" binding:"required,max=200"`
	OptionD       string `json:"option_d" binding:"required,max=200"`
	CorrectOption string `json:"correct_option" binding:"required,oneof=A B C D"`
	Marks         int    `json:"marks" binding:"min=0"`
}
