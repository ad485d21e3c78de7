package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/config"
	"github.com/secureexam/portal-backend/internal/model"
	"github.com/secureexam/portal-backend/internal/repository"
)

// AttemptService handles the exam-taking lifecycle: opening the paper,
// grading the submission and serving the graded result.
type AttemptService struct {
	cfg          *config.Config
	resultRepo   *repository.ResultRepository
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	cfg *config.Config,
	resultRepo *repository.ResultRepository,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
) *AttemptService {
	return &AttemptService{
		cfg:          cfg,
		resultRepo:   resultRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
	}
}

// loadAttempt fetches the ledger entry plus its exam and enforces
// ownership and the not-yet-completed precondition.
func (s *AttemptService) loadAttempt(ctx context.Context, resultID uuid.UUID, userID int) (*model.ExamResult, *model.Exam, error) {
	res, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, nil, err
	}
	if res.UserID != userID {
		return nil, nil, ErrNotOwner
	}
	if res.Completed {
		return nil, nil, ErrAlreadyCompleted
	}
	exam, err := s.examRepo.GetByID(ctx, res.ExamID)
	if err != nil {
		return nil, nil, fmt.Errorf("load exam: %w", err)
	}
	return res, exam, nil
}

// ensureOrder returns the attempt's fixed presentation order, generating
// and storing one on first open. Losing the store race means another
// request already fixed an order, so the stored one is re-read and used.
func (s *AttemptService) ensureOrder(ctx context.Context, res *model.ExamResult, questions []model.Question) error {
	if res.HasOrder() {
		return nil
	}

	questionOrder, optionOrder := buildAttemptOrder(questions)
	won, err := s.resultRepo.StoreOrderOnce(ctx, res.ID, questionOrder, optionOrder)
	if err != nil {
		return fmt.Errorf("store attempt order: %w", err)
	}
	if won {
		res.QuestionOrder = questionOrder
		res.OptionOrder = optionOrder
		return nil
	}

	stored, err := s.resultRepo.GetByID(ctx, res.ID)
	if err != nil {
		return fmt.Errorf("reload attempt order: %w", err)
	}
	res.QuestionOrder = stored.QuestionOrder
	res.OptionOrder = stored.OptionOrder
	return nil
}

// OpenAttempt prepares the exam paper for taking. The first open starts
// the clock and fixes the randomized order; later opens replay the same
// paper with the remaining time recomputed server-side.
func (s *AttemptService) OpenAttempt(ctx context.Context, resultID uuid.UUID, userID int) (*model.ExamPaper, error) {
	res, exam, err := s.loadAttempt(ctx, resultID, userID)
	if err != nil {
		return nil, err
	}
	if !exam.IsActive {
		return nil, ErrExamInactive
	}

	questions, err := s.questionRepo.ListByExam(ctx, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if err := s.ensureOrder(ctx, res, questions); err != nil {
		return nil, err
	}

	started, err := s.resultRepo.EnsureStarted(ctx, res.ID)
	if err != nil {
		return nil, fmt.Errorf("start attempt: %w", err)
	}

	deadline := started.Add(time.Duration(exam.DurationMinutes) * time.Minute)
	remaining := time.Until(deadline).Seconds()
	if remaining < 0 {
		remaining = 0
	}

	paper := &model.ExamPaper{
		ResultID:         res.ID,
		ExamID:           exam.ID,
		Title:            exam.Title,
		DurationMinutes:  exam.DurationMinutes,
		RemainingSeconds: remaining,
		Questions:        make([]model.PaperQuestion, 0, len(questions)),
	}
	for _, q := range orderedQuestions(questions, res.QuestionOrder) {
		paper.Questions = append(paper.Questions, model.PaperQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      paperOptions(&q, res.OptionOrder[q.ID.String()]),
			Marks:        q.Marks,
		})
	}
	return paper, nil
}

// Submit grades a student's answers and completes the attempt. The full
// question set is graded, not just the submitted map, so unanswered
// questions get recorded too. Late submissions past the deadline plus the
// configured grace window are rejected.
func (s *AttemptService) Submit(ctx context.Context, resultID uuid.UUID, userID int, req *model.SubmitRequest) (*model.ExamResult, error) {
	res, exam, err := s.loadAttempt(ctx, resultID, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByExam(ctx, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	selected, err := validateAnswers(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	// Submitting without ever opening the paper still starts the clock,
	// so the deadline check below is always anchored.
	started, err := s.resultRepo.EnsureStarted(ctx, res.ID)
	if err != nil {
		return nil, fmt.Errorf("start attempt: %w", err)
	}
	deadline := started.Add(time.Duration(exam.DurationMinutes) * time.Minute).Add(s.cfg.SubmitGrace)
	if time.Now().After(deadline) {
		return nil, ErrDeadlineExceeded
	}

	score, answers := gradeSubmission(questions, selected)
	totalMarks := exam.TotalMarks
	isPassed := score >= exam.PassingMarks

	completed, err := s.resultRepo.FinalizeAttempt(ctx, res.ID, score, totalMarks, isPassed, answers)
	if err != nil {
		return nil, fmt.Errorf("finalize attempt: %w", err)
	}
	if !completed {
		return nil, ErrAlreadyCompleted
	}

	return s.resultRepo.GetByID(ctx, res.ID)
}

// ResultDetail is the graded result joined with exam context and the
// per-question answer breakdown.
type ResultDetail struct {
	Result       *model.ExamResult    `json:"result"`
	ExamTitle    string               `json:"exam_title"`
	PassingMarks int                  `json:"passing_marks"`
	Answers      []model.AnswerDetail `json:"answers"`
}

// GetResult serves a completed attempt's detail. Students can only see
// their own results; admins can see anyone's.
func (s *AttemptService) GetResult(ctx context.Context, resultID uuid.UUID, requesterID int, requesterIsAdmin bool) (*ResultDetail, error) {
	res, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if res.UserID != requesterID && !requesterIsAdmin {
		return nil, ErrNotOwner
	}

	exam, err := s.examRepo.GetByID(ctx, res.ExamID)
	if err != nil {
		return nil, fmt.Errorf("load exam: %w", err)
	}

	detail := &ResultDetail{
		Result:       res,
		ExamTitle:    exam.Title,
		PassingMarks: exam.PassingMarks,
	}
	if res.Completed {
		answers, err := s.resultRepo.ListAnswers(ctx, res.ID)
		if err != nil {
			return nil, fmt.Errorf("load answers: %w", err)
		}
		detail.Answers = answers
	}
	return detail, nil
}
