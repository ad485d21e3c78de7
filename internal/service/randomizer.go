package service

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/model"
)

// buildAttemptOrder generates a fresh presentation order for an attempt:
// a shuffled question sequence plus an independent label permutation per
// question. Labels stay canonical; only the display order varies.
func buildAttemptOrder(questions []model.Question) ([]uuid.UUID, map[string][]string) {
	order := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		order[i] = q.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	options := make(map[string][]string, len(questions))
	for _, q := range questions {
		labels := append([]string(nil), model.OptionLabels[:]...)
		rand.Shuffle(len(labels), func(i, j int) {
			labels[i], labels[j] = labels[j], labels[i]
		})
		options[q.ID.String()] = labels
	}
	return order, options
}

// orderedQuestions arranges questions by a stored order. Ids in the order
// whose questions no longer exist are skipped; questions added to the
// exam after the order was fixed are appended at the end.
func orderedQuestions(questions []model.Question, order []uuid.UUID) []model.Question {
	byID := make(map[uuid.UUID]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	arranged := make([]model.Question, 0, len(questions))
	seen := make(map[uuid.UUID]bool, len(order))
	for _, id := range order {
		if q, ok := byID[id]; ok {
			arranged = append(arranged, q)
			seen[id] = true
		}
	}
	for _, q := range questions {
		if !seen[q.ID] {
			arranged = append(arranged, q)
		}
	}
	return arranged
}

// paperOptions renders a question's options in the stored permutation,
// falling back to canonical order when no permutation was recorded.
func paperOptions(q *model.Question, perm []string) []model.PaperOption {
	labels := perm
	if len(labels) != len(model.OptionLabels) {
		labels = model.OptionLabels[:]
	}
	options := make([]model.PaperOption, 0, len(labels))
	for _, label := range labels {
		options = append(options, model.PaperOption{
			Label: label,
			Text:  q.OptionText(label),
		})
	}
	return options
}
