package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/model"
)

// gradeSubmission scores a submission against the exam's full question
// set. Every question gets an answer record; unanswered ones carry a nil
// selection and score zero. Matching is exact on the canonical label.
func gradeSubmission(questions []model.Question, selected map[uuid.UUID]string) (score int, answers []model.UserAnswer) {
	answers = make([]model.UserAnswer, 0, len(questions))
	for _, q := range questions {
		var sel *string
		if label, ok := selected[q.ID]; ok {
			label := label
			sel = &label
		}

		correct := sel != nil && *sel == q.CorrectOption
		if correct {
			score += q.Marks
		}
		answers = append(answers, model.UserAnswer{
			QuestionID:     q.ID,
			SelectedOption: sel,
			IsCorrect:      correct,
		})
	}
	return score, answers
}

// validateAnswers resolves the raw answer map into question-id keys,
// rejecting ids outside the question set and labels outside A-D.
func validateAnswers(questions []model.Question, raw map[string]string) (map[uuid.UUID]string, error) {
	known := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	valid := make(map[string]bool, len(model.OptionLabels))
	for _, label := range model.OptionLabels {
		valid[label] = true
	}

	selected := make(map[uuid.UUID]string, len(raw))
	for key, label := range raw {
		id, err := uuid.Parse(key)
		if err != nil || !known[id] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, key)
		}
		if !valid[label] {
			return nil, fmt.Errorf("%w: %q for question %s", ErrInvalidOption, label, key)
		}
		selected[id] = label
	}
	return selected, nil
}
