package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/secureexam/portal-backend/internal/model"
)

// ResultRepository handles assignment ledger data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const resultColumns = `id, exam_id, user_id, score, total_marks, start_time,
	end_time, is_passed, completed, question_order, option_order, assigned_at`

func scanResult(row interface{ Scan(...any) error }) (*model.ExamResult, error) {
	res := &model.ExamResult{}
	var questionOrder, optionOrder []byte
	err := row.Scan(&res.ID, &res.ExamID, &res.UserID, &res.Score, &res.TotalMarks,
		&res.StartTime, &res.EndTime, &res.IsPassed, &res.Completed,
		&questionOrder, &optionOrder, &res.AssignedAt)
	if err != nil {
		return nil, err
	}
	if questionOrder != nil {
		if err := json.Unmarshal(questionOrder, &res.QuestionOrder); err != nil {
			return nil, fmt.Errorf("unmarshal question order: %w", err)
		}
	}
	if optionOrder != nil {
		if err := json.Unmarshal(optionOrder, &res.OptionOrder); err != nil {
			return nil, fmt.Errorf("unmarshal option order: %w", err)
		}
	}
	return res, nil
}

// Create inserts a new ledger entry (admin assigns an exam).
// Returns pgx.ErrNoRows when an entry for (exam, user) already exists —
// callers classify the conflict by fetching the existing row.
func (r *ResultRepository) Create(ctx context.Context, res *model.ExamResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_results (exam_id, user_id, score, total_marks)
		 VALUES ($1, $2, 0, $3)
		 ON CONFLICT (exam_id, user_id) DO NOTHING
		 RETURNING id, assigned_at`,
		res.ExamID, res.UserID, res.TotalMarks,
	).Scan(&res.ID, &res.AssignedAt)
}

// GetByID retrieves a ledger entry by its UUID.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamResult, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM exam_results WHERE id = $1`, id))
}

// GetByExamAndUser retrieves the ledger entry for an (exam, student) pair.
func (r *ResultRepository) GetByExamAndUser(ctx context.Context, examID uuid.UUID, userID int) (*model.ExamResult, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM exam_results
		 WHERE exam_id = $1 AND user_id = $2`, examID, userID))
}

// Delete removes a ledger entry and (via cascade) its answers,
// re-enabling assignment of the exam to the student.
func (r *ResultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exam_results WHERE id = $1`, id)
	return err
}

// StudentAttempt joins a ledger entry with its exam for student-facing lists.
type StudentAttempt struct {
	model.ExamResult
	ExamTitle       string `json:"exam_title"`
	ExamDescription string `json:"exam_description"`
	DurationMinutes int    `json:"duration_minutes"`
	PassingMarks    int    `json:"passing_marks"`
	ExamActive      bool   `json:"exam_active"`
}

// ListByUser retrieves all ledger entries for a student, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int) ([]StudentAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT res.id, res.exam_id, res.user_id, res.score, res.total_marks,
		        res.start_time, res.end_time, res.is_passed, res.completed, res.assigned_at,
		        e.title, e.description, e.duration_minutes, e.passing_marks, e.is_active
		 FROM exam_results res
		 JOIN exams e ON res.exam_id = e.id
		 WHERE res.user_id = $1
		 ORDER BY res.assigned_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []StudentAttempt
	for rows.Next() {
		var a StudentAttempt
		if err := rows.Scan(&a.ID, &a.ExamID, &a.UserID, &a.Score, &a.TotalMarks,
			&a.StartTime, &a.EndTime, &a.IsPassed, &a.Completed, &a.AssignedAt,
			&a.ExamTitle, &a.ExamDescription, &a.DurationMinutes, &a.PassingMarks,
			&a.ExamActive); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// EnsureStarted sets the attempt's start time exactly once and returns the
// effective value. COALESCE makes concurrent double-opens converge on the
// first writer's timestamp.
func (r *ResultRepository) EnsureStarted(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var started time.Time
	err := r.pool.QueryRow(ctx,
		`UPDATE exam_results
		 SET start_time = COALESCE(start_time, NOW())
		 WHERE id = $1
		 RETURNING start_time`, id,
	).Scan(&started)
	return started, err
}

// StoreOrderOnce persists the randomized question and option order if the
// attempt has none yet. Returns true when this call won the write; false
// means an order was already stored and the caller should re-read it.
func (r *ResultRepository) StoreOrderOnce(ctx context.Context, id uuid.UUID, questionOrder []uuid.UUID, optionOrder map[string][]string) (bool, error) {
	qo, err := json.Marshal(questionOrder)
	if err != nil {
		return false, fmt.Errorf("marshal question order: %w", err)
	}
	oo, err := json.Marshal(optionOrder)
	if err != nil {
		return false, fmt.Errorf("marshal option order: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE exam_results
		 SET question_order = $1, option_order = $2
		 WHERE id = $3 AND question_order IS NULL`,
		qo, oo, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FinalizeAttempt transitions an attempt to completed and replaces its
// answer set, as a single unit of work. Returns false without writing
// anything when the attempt was already completed (double-submit guard).
func (r *ResultRepository) FinalizeAttempt(ctx context.Context, id uuid.UUID, score, totalMarks int, isPassed bool, answers []model.UserAnswer) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE exam_results
		 SET score = $1, total_marks = $2, end_time = NOW(),
		     is_passed = $3, completed = TRUE
		 WHERE id = $4 AND completed = FALSE`,
		score, totalMarks, isPassed, id)
	if err != nil {
		return false, fmt.Errorf("complete attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM user_answers WHERE result_id = $1`, id); err != nil {
		return false, fmt.Errorf("clear answers: %w", err)
	}

	n := len(answers)
	questionIDs := make([]uuid.UUID, 0, n)
	selected := make([]*string, 0, n)
	correct := make([]bool, 0, n)
	for i := range answers {
		questionIDs = append(questionIDs, answers[i].QuestionID)
		selected = append(selected, answers[i].SelectedOption)
		correct = append(correct, answers[i].IsCorrect)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_answers (result_id, question_id, selected_option, is_correct)
		 SELECT $1, u.question_id, u.selected_option, u.is_correct
		 FROM UNNEST($2::uuid[], $3::text[], $4::bool[])
		      AS u (question_id, selected_option, is_correct)`,
		id, questionIDs, selected, correct); err != nil {
		return false, fmt.Errorf("insert answers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// ListAnswers retrieves the graded answers for a result joined with their
// questions, for the result detail view.
func (r *ResultRepository) ListAnswers(ctx context.Context, resultID uuid.UUID) ([]model.AnswerDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.question_id, q.question_text, a.selected_option, a.is_correct,
		        q.correct_option, q.option_a, q.option_b, q.option_c, q.option_d, q.marks
		 FROM user_answers a
		 JOIN questions q ON a.question_id = q.id
		 WHERE a.result_id = $1
		 ORDER BY q.created_at, q.id`, resultID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.AnswerDetail
	for rows.Next() {
		var d model.AnswerDetail
		var q model.Question
		if err := rows.Scan(&d.QuestionID, &d.QuestionText, &d.SelectedOption, &d.IsCorrect,
			&d.CorrectOption, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &d.Marks); err != nil {
			return nil, err
		}
		d.CorrectText = q.OptionText(d.CorrectOption)
		if d.SelectedOption != nil {
			d.SelectedText = q.OptionText(*d.SelectedOption)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
