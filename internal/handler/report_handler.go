package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secureexam/portal-backend/internal/response"
	"github.com/secureexam/portal-backend/internal/service"
)

// ReportHandler handles the admin reporting and dashboard endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Report godoc
// GET /api/v1/admin/reports?exam_id=&date_from=&date_to=&status=
// Filtered listing of completed results with aggregate stats. Malformed
// filters are ignored and reported back as warnings rather than failing
// the whole report.
func (h *ReportHandler) Report(c *gin.Context) {
	query := service.ReportQuery{
		ExamID:   c.Query("exam_id"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Status:   c.Query("status"),
	}

	report, warnings, err := h.reportService.BuildReport(c.Request.Context(), query)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if len(warnings) > 0 {
		response.SuccessWithWarnings(c, http.StatusOK, report, warnings)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// Summary godoc
// GET /api/v1/admin/dashboard
// Headline counts for the admin dashboard.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, summary)
}
