package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/model"
	"github.com/secureexam/portal-backend/internal/repository"
)

// ExamService handles the exam catalog.
type ExamService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository) *ExamService {
	return &ExamService{examRepo: examRepo, questionRepo: questionRepo}
}

// Create authors a new exam. New exams start active.
func (s *ExamService) Create(ctx context.Context, createdBy int, req *model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		PassingMarks:    req.PassingMarks,
		CreatedBy:       createdBy,
		IsActive:        true,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// GetByID retrieves an exam.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// List retrieves all exams.
func (s *ExamService) List(ctx context.Context) ([]model.Exam, error) {
	return s.examRepo.List(ctx)
}

// Update applies partial edits to an exam. The passing-vs-total invariant
// is re-checked against the merged values since either side may change.
func (s *ExamService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Description != "" {
		exam.Description = req.Description
	}
	if req.DurationMinutes > 0 {
		exam.DurationMinutes = req.DurationMinutes
	}
	if req.TotalMarks > 0 {
		exam.TotalMarks = req.TotalMarks
	}
	if req.PassingMarks != nil {
		exam.PassingMarks = *req.PassingMarks
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if exam.PassingMarks > exam.TotalMarks {
		return nil, ErrPassingExceedsTotal
	}

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Delete removes an exam. Questions, ledger entries and answers cascade.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.examRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.examRepo.Delete(ctx, id)
}

// AddQuestion appends a question to an exam.
func (s *ExamService) AddQuestion(ctx context.Context, examID uuid.UUID, req *model.AddQuestionRequest) (*model.Question, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	q := &model.Question{
		ExamID:        examID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
		Marks:         req.Marks,
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListQuestions retrieves an exam's questions in authoring order, with
// the correct answers included (admin view).
func (s *ExamService) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByExam(ctx, examID)
}

// DeleteQuestion removes a question. Answers referencing it cascade;
// attempts that fixed their order before the deletion simply skip it.
func (s *ExamService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.questionRepo.Delete(ctx, id)
}
