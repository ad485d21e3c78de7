package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/secureexam/portal-backend/internal/config"
	"github.com/secureexam/portal-backend/internal/model"
	"github.com/secureexam/portal-backend/internal/repository"
)

// AssignmentService handles the assignment ledger: admins granting
// students access to exams, and the student-facing view of it.
type AssignmentService struct {
	resultRepo *repository.ResultRepository
	examRepo   *repository.ExamRepository
	userRepo   *repository.UserRepository
	rdb        *redis.Client
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	resultRepo *repository.ResultRepository,
	examRepo *repository.ExamRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *AssignmentService {
	return &AssignmentService{
		resultRepo: resultRepo,
		examRepo:   examRepo,
		userRepo:   userRepo,
		rdb:        rdb,
	}
}

// assignmentNotice is the queued payload for the notification worker.
type assignmentNotice struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	ExamTitle       string `json:"exam_title"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalMarks      int    `json:"total_marks"`
}

// Assign creates a ledger entry for (exam, student). The insert itself is
// the uniqueness check: a conflict is classified afterwards into
// already-assigned vs already-completed. A completed entry permanently
// blocks reassignment until an admin deletes it.
func (s *AssignmentService) Assign(ctx context.Context, examID uuid.UUID, userID int) (*model.ExamResult, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &model.ExamResult{
		ExamID:     exam.ID,
		UserID:     user.ID,
		TotalMarks: exam.TotalMarks,
	}
	if err := s.resultRepo.Create(ctx, res); err != nil {
		if !repository.IsNotFound(err) {
			return nil, fmt.Errorf("assign exam: %w", err)
		}
		existing, err := s.resultRepo.GetByExamAndUser(ctx, exam.ID, user.ID)
		if err != nil {
			// The conflicting row was deleted between the insert and the
			// read; treat it as a transient race.
			if repository.IsNotFound(err) {
				return nil, ErrAlreadyAssigned
			}
			return nil, fmt.Errorf("classify assignment conflict: %w", err)
		}
		if existing.Completed {
			return nil, ErrAlreadyCompleted
		}
		return nil, ErrAlreadyAssigned
	}

	s.queueNotification(ctx, user, exam)
	return res, nil
}

// queueNotification enqueues the assignment email. Best effort: a queue
// failure never fails the assignment itself.
func (s *AssignmentService) queueNotification(ctx context.Context, user *model.User, exam *model.Exam) {
	payload, err := json.Marshal(assignmentNotice{
		Email:           user.Email,
		Username:        user.Username,
		ExamTitle:       exam.Title,
		DurationMinutes: exam.DurationMinutes,
		TotalMarks:      exam.TotalMarks,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal assignment notice")
		return
	}
	if err := s.rdb.RPush(ctx, config.Key.AssignmentNotifyQueue(), payload).Err(); err != nil {
		log.Warn().Err(err).
			Str("email", user.Email).
			Str("exam_id", exam.ID.String()).
			Msg("Failed to queue assignment notification")
	}
}

// DeleteResult removes a ledger entry, re-enabling assignment of the exam
// to the student. Recorded answers cascade away with it.
func (s *AssignmentService) DeleteResult(ctx context.Context, resultID uuid.UUID) error {
	if _, err := s.resultRepo.GetByID(ctx, resultID); err != nil {
		return err
	}
	return s.resultRepo.Delete(ctx, resultID)
}

// StudentDashboard partitions a student's ledger into exams still to take
// and past results.
type StudentDashboard struct {
	Available []repository.StudentAttempt `json:"available"`
	Completed []repository.StudentAttempt `json:"completed"`
}

// DashboardFor builds the student dashboard. Only active exams show up as
// available; deactivated ones stay hidden until reactivated.
func (s *AssignmentService) DashboardFor(ctx context.Context, userID int) (*StudentDashboard, error) {
	attempts, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &StudentDashboard{
		Available: []repository.StudentAttempt{},
		Completed: []repository.StudentAttempt{},
	}
	for _, a := range attempts {
		switch {
		case a.Completed:
			dashboard.Completed = append(dashboard.Completed, a)
		case a.ExamActive:
			dashboard.Available = append(dashboard.Available, a)
		}
	}
	return dashboard, nil
}
