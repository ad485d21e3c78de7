package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/model"
)

func TestBuildAttemptOrder(t *testing.T) {
	questions := makeQuestions(10, 1)

	order, options := buildAttemptOrder(questions)

	if len(order) != len(questions) {
		t.Fatalf("order has %d ids, want %d", len(order), len(questions))
	}

	// The order must be a permutation of the question ids: no drops, no dupes.
	seen := make(map[uuid.UUID]bool, len(order))
	for _, id := range order {
		if seen[id] {
			t.Fatalf("duplicate id %s in order", id)
		}
		seen[id] = true
	}
	for _, q := range questions {
		if !seen[q.ID] {
			t.Errorf("question %s missing from order", q.ID)
		}
	}

	// Every question gets a permutation of all four canonical labels.
	for _, q := range questions {
		perm, ok := options[q.ID.String()]
		if !ok {
			t.Fatalf("no option order for question %s", q.ID)
		}
		if len(perm) != len(model.OptionLabels) {
			t.Fatalf("option order has %d labels, want %d", len(perm), len(model.OptionLabels))
		}
		labels := make(map[string]bool, len(perm))
		for _, label := range perm {
			labels[label] = true
		}
		for _, want := range model.OptionLabels {
			if !labels[want] {
				t.Errorf("label %s missing from permutation %v", want, perm)
			}
		}
	}
}

func TestOrderedQuestions(t *testing.T) {
	questions := makeQuestions(4, 1)
	order := []uuid.UUID{questions[2].ID, questions[0].ID, questions[3].ID, questions[1].ID}

	t.Run("FollowsStoredOrder", func(t *testing.T) {
		arranged := orderedQuestions(questions, order)
		if len(arranged) != 4 {
			t.Fatalf("arranged = %d, want 4", len(arranged))
		}
		for i, id := range order {
			if arranged[i].ID != id {
				t.Errorf("position %d: got %s, want %s", i, arranged[i].ID, id)
			}
		}
	})

	t.Run("SkipsDeletedQuestions", func(t *testing.T) {
		// Question at order[0] was deleted after the order was fixed.
		remaining := questions[:2]
		arranged := orderedQuestions(remaining, order)
		if len(arranged) != 2 {
			t.Fatalf("arranged = %d, want 2", len(arranged))
		}
		if arranged[0].ID != questions[0].ID || arranged[1].ID != questions[1].ID {
			t.Error("surviving questions not in stored relative order")
		}
	})

	t.Run("AppendsQuestionsAddedAfterOrderFixed", func(t *testing.T) {
		extra := makeQuestions(1, 1)[0]
		arranged := orderedQuestions(append(questions, extra), order)
		if len(arranged) != 5 {
			t.Fatalf("arranged = %d, want 5", len(arranged))
		}
		if arranged[4].ID != extra.ID {
			t.Errorf("new question not appended last: got %s", arranged[4].ID)
		}
	})
}

func TestPaperOptions(t *testing.T) {
	q := &model.Question{
		OptionA: "alpha", OptionB: "beta", OptionC: "gamma", OptionD: "delta",
	}

	t.Run("RendersStoredPermutation", func(t *testing.T) {
		options := paperOptions(q, []string{"C", "A", "D", "B"})
		want := []model.PaperOption{
			{Label: "C", Text: "gamma"},
			{Label: "A", Text: "alpha"},
			{Label: "D", Text: "delta"},
			{Label: "B", Text: "beta"},
		}
		for i := range want {
			if options[i] != want[i] {
				t.Errorf("position %d: got %+v, want %+v", i, options[i], want[i])
			}
		}
	})

	t.Run("FallsBackToCanonicalOrder", func(t *testing.T) {
		options := paperOptions(q, nil)
		if len(options) != 4 {
			t.Fatalf("options = %d, want 4", len(options))
		}
		if options[0].Label != "A" || options[3].Label != "D" {
			t.Errorf("fallback not canonical: %+v", options)
		}
	})
}
