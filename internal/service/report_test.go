package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/secureexam/portal-backend/internal/repository"
)

func TestParseFilters(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		f, warnings := parseFilters(ReportQuery{})
		if f.ExamID != nil || f.DateFrom != nil || f.DateTo != nil || f.Passed != nil {
			t.Error("empty query produced filters")
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %v, want none", warnings)
		}
	})

	t.Run("DateToIsExclusiveNextDay", func(t *testing.T) {
		f, warnings := parseFilters(ReportQuery{DateFrom: "2026-08-01", DateTo: "2026-08-01"})
		if len(warnings) != 0 {
			t.Fatalf("warnings = %v", warnings)
		}
		if f.DateFrom == nil || f.DateTo == nil {
			t.Fatal("date filters not set")
		}
		// Same-day range must cover the whole day.
		if got := f.DateTo.Sub(*f.DateFrom); got != 24*time.Hour {
			t.Errorf("range = %v, want 24h", got)
		}
	})

	t.Run("MalformedDatesWarnAndIgnore", func(t *testing.T) {
		f, warnings := parseFilters(ReportQuery{DateFrom: "01/08/2026", DateTo: "yesterday"})
		if f.DateFrom != nil || f.DateTo != nil {
			t.Error("malformed dates were not ignored")
		}
		if len(warnings) != 2 {
			t.Errorf("warnings = %v, want 2", warnings)
		}
	})

	t.Run("Status", func(t *testing.T) {
		f, _ := parseFilters(ReportQuery{Status: "passed"})
		if f.Passed == nil || !*f.Passed {
			t.Error("status=passed not applied")
		}
		f, _ = parseFilters(ReportQuery{Status: "failed"})
		if f.Passed == nil || *f.Passed {
			t.Error("status=failed not applied")
		}
		f, _ = parseFilters(ReportQuery{Status: "whatever"})
		if f.Passed != nil {
			t.Error("unknown status should be ignored")
		}
	})

	t.Run("ExamID", func(t *testing.T) {
		id := uuid.New()
		f, warnings := parseFilters(ReportQuery{ExamID: id.String()})
		if f.ExamID == nil || *f.ExamID != id {
			t.Error("exam filter not applied")
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %v", warnings)
		}

		f, warnings = parseFilters(ReportQuery{ExamID: "nope"})
		if f.ExamID != nil {
			t.Error("invalid exam id should be ignored")
		}
		if len(warnings) != 1 {
			t.Errorf("warnings = %v, want 1", warnings)
		}
	})
}

func TestComputeReportStats(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		stats := computeReportStats(nil)
		if stats.TotalResults != 0 || stats.PassRate != 0 || stats.AverageScore != 0 || stats.UniqueStudents != 0 {
			t.Errorf("stats = %+v, want zeros", stats)
		}
	})

	t.Run("Aggregates", func(t *testing.T) {
		rows := []repository.ReportRow{
			{UserID: 1, Score: 8, TotalMarks: 10, IsPassed: true},
			{UserID: 2, Score: 3, TotalMarks: 10, IsPassed: false},
			{UserID: 1, Score: 5, TotalMarks: 10, IsPassed: true},
		}
		stats := computeReportStats(rows)

		if stats.TotalResults != 3 {
			t.Errorf("TotalResults = %d, want 3", stats.TotalResults)
		}
		// 2 of 3 passed: 66.666... rounds to 66.7.
		if stats.PassRate != 66.7 {
			t.Errorf("PassRate = %v, want 66.7", stats.PassRate)
		}
		// (80 + 30 + 50) / 3 = 53.333... rounds to 53.3.
		if stats.AverageScore != 53.3 {
			t.Errorf("AverageScore = %v, want 53.3", stats.AverageScore)
		}
		if stats.UniqueStudents != 2 {
			t.Errorf("UniqueStudents = %d, want 2", stats.UniqueStudents)
		}
	})

	t.Run("ZeroTotalExcludedFromAverage", func(t *testing.T) {
		rows := []repository.ReportRow{
			{UserID: 1, Score: 10, TotalMarks: 10, IsPassed: true},
			{UserID: 2, Score: 0, TotalMarks: 0, IsPassed: true},
		}
		stats := computeReportStats(rows)
		if stats.AverageScore != 100 {
			t.Errorf("AverageScore = %v, want 100: zero-total row must be excluded", stats.AverageScore)
		}
		if stats.TotalResults != 2 {
			t.Errorf("TotalResults = %d, want 2: zero-total row still counts", stats.TotalResults)
		}
	})

	t.Run("AllZeroTotals", func(t *testing.T) {
		rows := []repository.ReportRow{
			{UserID: 1, Score: 0, TotalMarks: 0, IsPassed: true},
		}
		stats := computeReportStats(rows)
		if stats.AverageScore != 0 {
			t.Errorf("AverageScore = %v, want 0", stats.AverageScore)
		}
	})
}
