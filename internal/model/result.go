package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamResult is the assignment ledger entry: one student's
// assignment-to-completion record for one exam.
//
// Lifecycle: assigned (start_time null) → started (start_time set) →
// completed (end_time set, score final). There is no transition out of
// completed; reassignment requires an admin to delete the row.
type ExamResult struct {
	ID         uuid.UUID  `json:"id"`
	ExamID     uuid.UUID  `json:"exam_id"`
	UserID     int        `json:"user_id"`
	Score      int        `json:"score"`
	TotalMarks int        `json:"total_marks"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	IsPassed   bool       `json:"is_passed"`
	Completed  bool       `json:"completed"`
	// QuestionOrder and OptionOrder are fixed at first open and never
	// regenerated, so repeated page loads of the same attempt are stable.
	QuestionOrder []uuid.UUID         `json:"question_order,omitempty"`
	OptionOrder   map[string][]string `json:"option_order,omitempty"`
	AssignedAt    time.Time           `json:"assigned_at"`
}

// HasOrder reports whether the attempt already has a stored presentation order.
func (r *ExamResult) HasOrder() bool {
	return len(r.QuestionOrder) > 0
}

// AssignRequest is the admin payload for assigning an exam to a student.
type AssignRequest struct {
	ExamID uuid.UUID `json:"exam_id" binding:"required"`
}

// SubmitRequest maps question ids to the selected canonical option label.
// Unanswered questions are simply absent from the map.
type SubmitRequest struct {
	Answers map[string]string `json:"answers"`
}

// PaperOption is one displayed answer choice. Label stays canonical so the
// client submits answers keyed by the stored labels regardless of display
// order.
type PaperOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// PaperQuestion is a question as rendered to the student taking the exam:
// shuffled option order, no correct answer.
type PaperQuestion struct {
	ID           uuid.UUID     `json:"id"`
	QuestionText string        `json:"question_text"`
	Options      []PaperOption `json:"options"`
	Marks        int           `json:"marks"`
}

// ExamPaper is the full exam-taking view for one attempt.
type ExamPaper struct {
	ResultID         uuid.UUID       `json:"result_id"`
	ExamID           uuid.UUID       `json:"exam_id"`
	Title            string          `json:"title"`
	DurationMinutes  int             `json:"duration_minutes"`
	RemainingSeconds float64         `json:"remaining_seconds"`
	Questions        []PaperQuestion `json:"questions"`
}
