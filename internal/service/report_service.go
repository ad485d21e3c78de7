package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/repository"
)

// ReportService handles admin reporting and dashboard aggregates.
type ReportService struct {
	reportRepo *repository.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo *repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ReportQuery carries the raw (string) filter inputs from the request.
type ReportQuery struct {
	ExamID   string
	DateFrom string
	DateTo   string
	Status   string
}

// ReportStats are the aggregate figures over the filtered result set.
type ReportStats struct {
	TotalResults   int     `json:"total_results"`
	PassRate       float64 `json:"pass_rate"`
	AverageScore   float64 `json:"average_score"`
	UniqueStudents int     `json:"unique_students"`
}

// Report is the filtered result listing plus its aggregates.
type Report struct {
	Stats   ReportStats            `json:"stats"`
	Results []repository.ReportRow `json:"results"`
}

const dateLayout = "2006-01-02"

// parseFilters converts the raw query into repository filters. Malformed
// date filters are ignored with a warning rather than failing the whole
// report; unrecognized status values are silently ignored.
func parseFilters(q ReportQuery) (repository.ReportFilters, []string) {
	var f repository.ReportFilters
	var warnings []string

	if q.ExamID != "" {
		if id, err := uuid.Parse(q.ExamID); err == nil {
			f.ExamID = &id
		} else {
			warnings = append(warnings, fmt.Sprintf("invalid exam filter %q ignored", q.ExamID))
		}
	}
	if q.DateFrom != "" {
		if t, err := time.Parse(dateLayout, q.DateFrom); err == nil {
			f.DateFrom = &t
		} else {
			warnings = append(warnings, fmt.Sprintf("invalid date_from %q ignored", q.DateFrom))
		}
	}
	if q.DateTo != "" {
		if t, err := time.Parse(dateLayout, q.DateTo); err == nil {
			// Inclusive day: bump to the next midnight and compare with <.
			end := t.AddDate(0, 0, 1)
			f.DateTo = &end
		} else {
			warnings = append(warnings, fmt.Sprintf("invalid date_to %q ignored", q.DateTo))
		}
	}
	switch q.Status {
	case "passed":
		passed := true
		f.Passed = &passed
	case "failed":
		passed := false
		f.Passed = &passed
	}

	return f, warnings
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// computeReportStats aggregates the filtered rows. Percentages are
// rounded to one decimal; zero-total results are excluded from the score
// average so the percentage is always defined.
func computeReportStats(rows []repository.ReportRow) ReportStats {
	stats := ReportStats{TotalResults: len(rows)}
	if len(rows) == 0 {
		return stats
	}

	passed := 0
	scoreSum := 0.0
	scored := 0
	students := make(map[int]bool, len(rows))
	for _, row := range rows {
		if row.IsPassed {
			passed++
		}
		if row.TotalMarks > 0 {
			scoreSum += float64(row.Score) / float64(row.TotalMarks) * 100
			scored++
		}
		students[row.UserID] = true
	}

	stats.PassRate = round1(float64(passed) / float64(len(rows)) * 100)
	if scored > 0 {
		stats.AverageScore = round1(scoreSum / float64(scored))
	}
	stats.UniqueStudents = len(students)
	return stats
}

// BuildReport runs the filtered report. Warnings name any filters that
// were ignored as malformed.
func (s *ReportService) BuildReport(ctx context.Context, q ReportQuery) (*Report, []string, error) {
	filters, warnings := parseFilters(q)

	rows, err := s.reportRepo.ListCompleted(ctx, filters)
	if err != nil {
		return nil, nil, fmt.Errorf("list completed results: %w", err)
	}
	if rows == nil {
		rows = []repository.ReportRow{}
	}

	return &Report{
		Stats:   computeReportStats(rows),
		Results: rows,
	}, warnings, nil
}

// LiveStats snapshots current exam activity for the monitoring stream.
func (s *ReportService) LiveStats(ctx context.Context) (*repository.LiveStats, error) {
	stats, err := s.reportRepo.GetLiveStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.TotalAttempts > 0 {
		stats.CompletionRate = round1(float64(stats.CompletedCount) / float64(stats.TotalAttempts) * 100)
	}
	stats.AverageScore = round1(stats.AverageScore)
	return stats, nil
}

// DashboardSummary are the headline counts on the admin dashboard.
type DashboardSummary struct {
	TotalStudents  int `json:"total_students"`
	TotalExams     int `json:"total_exams"`
	TotalQuestions int `json:"total_questions"`
	TotalResults   int `json:"total_results"`
}

// Summary retrieves the admin dashboard headline counts.
func (s *ReportService) Summary(ctx context.Context) (*DashboardSummary, error) {
	d := &DashboardSummary{}
	var err error
	d.TotalStudents, d.TotalExams, d.TotalQuestions, d.TotalResults, err =
		s.reportRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}
	return d, nil
}
