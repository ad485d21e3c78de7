package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/model"
)

func makeQuestions(n int, marks int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			ID:            uuid.New(),
			QuestionText:  "q",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: "B",
			Marks:         marks,
		})
	}
	return questions
}

func TestGradeSubmission(t *testing.T) {
	questions := makeQuestions(3, 5)

	t.Run("AllCorrect", func(t *testing.T) {
		selected := map[uuid.UUID]string{
			questions[0].ID: "B",
			questions[1].ID: "B",
			questions[2].ID: "B",
		}
		score, answers := gradeSubmission(questions, selected)
		if score != 15 {
			t.Errorf("score = %d, want 15", score)
		}
		if len(answers) != 3 {
			t.Fatalf("answers = %d, want 3", len(answers))
		}
		for _, a := range answers {
			if !a.IsCorrect {
				t.Errorf("question %s marked incorrect", a.QuestionID)
			}
		}
	})

	t.Run("PartialAndWrong", func(t *testing.T) {
		selected := map[uuid.UUID]string{
			questions[0].ID: "B",
			questions[1].ID: "A",
		}
		score, answers := gradeSubmission(questions, selected)
		if score != 5 {
			t.Errorf("score = %d, want 5", score)
		}
		if len(answers) != 3 {
			t.Fatalf("answers = %d, want 3: every question gets a record", len(answers))
		}
	})

	t.Run("UnansweredRecordedAsNil", func(t *testing.T) {
		_, answers := gradeSubmission(questions, nil)
		for _, a := range answers {
			if a.SelectedOption != nil {
				t.Errorf("unanswered question has selection %q", *a.SelectedOption)
			}
			if a.IsCorrect {
				t.Error("unanswered question marked correct")
			}
		}
	})

	t.Run("EmptyQuestionSet", func(t *testing.T) {
		score, answers := gradeSubmission(nil, map[uuid.UUID]string{uuid.New(): "A"})
		if score != 0 || len(answers) != 0 {
			t.Errorf("score = %d answers = %d, want 0/0", score, len(answers))
		}
	})
}

func TestValidateAnswers(t *testing.T) {
	questions := makeQuestions(2, 5)

	t.Run("Valid", func(t *testing.T) {
		raw := map[string]string{
			questions[0].ID.String(): "A",
			questions[1].ID.String(): "D",
		}
		selected, err := validateAnswers(questions, raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(selected) != 2 {
			t.Errorf("selected = %d, want 2", len(selected))
		}
		if selected[questions[0].ID] != "A" {
			t.Errorf("answer mismatch: %q", selected[questions[0].ID])
		}
	})

	t.Run("UnknownQuestionID", func(t *testing.T) {
		raw := map[string]string{uuid.New().String(): "A"}
		if _, err := validateAnswers(questions, raw); !errors.Is(err, ErrUnknownQuestion) {
			t.Errorf("err = %v, want ErrUnknownQuestion", err)
		}
	})

	t.Run("MalformedQuestionID", func(t *testing.T) {
		raw := map[string]string{"not-a-uuid": "A"}
		if _, err := validateAnswers(questions, raw); !errors.Is(err, ErrUnknownQuestion) {
			t.Errorf("err = %v, want ErrUnknownQuestion", err)
		}
	})

	t.Run("InvalidLabel", func(t *testing.T) {
		raw := map[string]string{questions[0].ID.String(): "E"}
		if _, err := validateAnswers(questions, raw); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("err = %v, want ErrInvalidOption", err)
		}
	})

	t.Run("LowercaseLabelRejected", func(t *testing.T) {
		raw := map[string]string{questions[0].ID.String(): "a"}
		if _, err := validateAnswers(questions, raw); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("err = %v, want ErrInvalidOption: matching is exact", err)
		}
	})
}
