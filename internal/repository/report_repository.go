package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles reporting and dashboard aggregation queries.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// ReportFilters narrow the completed-results query. Nil fields mean
// "filter not applied". DateTo is an exclusive upper bound: the service
// layer adds one day to the submitted date so a same-day range covers
// the whole day.
type ReportFilters struct {
	ExamID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Passed   *bool
}

// ReportRow is one completed ledger entry with student and exam context.
type ReportRow struct {
	ResultID   uuid.UUID  `json:"result_id"`
	ExamID     uuid.UUID  `json:"exam_id"`
	ExamTitle  string     `json:"exam_title"`
	UserID     int        `json:"user_id"`
	Username   string     `json:"username"`
	Score      int        `json:"score"`
	TotalMarks int        `json:"total_marks"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	IsPassed   bool       `json:"is_passed"`
}

// ListCompleted retrieves completed ledger entries matching the filters,
// newest first.
func (r *ReportRepository) ListCompleted(ctx context.Context, f ReportFilters) ([]ReportRow, error) {
	query := `
		SELECT res.id, res.exam_id, e.title, res.user_id, u.username,
		       res.score, res.total_marks, res.start_time, res.end_time, res.is_passed
		FROM exam_results res
		JOIN exams e ON res.exam_id = e.id
		JOIN users u ON res.user_id = u.id
		WHERE res.completed = TRUE
	`
	var args []any

	if f.ExamID != nil {
		args = append(args, *f.ExamID)
		query += fmt.Sprintf(" AND res.exam_id = $%d", len(args))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		query += fmt.Sprintf(" AND res.start_time >= $%d", len(args))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		query += fmt.Sprintf(" AND res.start_time < $%d", len(args))
	}
	if f.Passed != nil {
		args = append(args, *f.Passed)
		query += fmt.Sprintf(" AND res.is_passed = $%d", len(args))
	}

	query += " ORDER BY res.start_time DESC NULLS LAST"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.ResultID, &row.ExamID, &row.ExamTitle, &row.UserID,
			&row.Username, &row.Score, &row.TotalMarks, &row.StartTime, &row.EndTime,
			&row.IsPassed); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LiveStats is a point-in-time snapshot of exam activity.
type LiveStats struct {
	ActiveStudents int     `json:"active_students"`
	TotalAttempts  int     `json:"total_attempts"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"`
	AverageScore   float64 `json:"average_score"`
}

// GetLiveStats computes the live dashboard aggregates in a single query.
// Zero-total attempts are excluded from the score average so the division
// is always defined.
func (r *ReportRepository) GetLiveStats(ctx context.Context) (*LiveStats, error) {
	s := &LiveStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE start_time IS NOT NULL AND completed = FALSE),
			COUNT(*),
			COUNT(*) FILTER (WHERE completed),
			COALESCE(AVG(score::float8 / total_marks * 100)
			         FILTER (WHERE completed AND total_marks > 0), 0)
		 FROM exam_results`,
	).Scan(&s.ActiveStudents, &s.TotalAttempts, &s.CompletedCount, &s.AverageScore)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSummaryCounts retrieves the high-level metrics for the admin dashboard.
func (r *ReportRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalExams, totalQuestions, totalResults int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE is_admin = FALSE),
			(SELECT COUNT(*) FROM exams),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM exam_results)`,
	).Scan(&totalStudents, &totalExams, &totalQuestions, &totalResults)
	return
}
