package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secureexam/portal-backend/internal/middleware"
	"github.com/secureexam/portal-backend/internal/model"
	"github.com/secureexam/portal-backend/internal/repository"
	"github.com/secureexam/portal-backend/internal/response"
	"github.com/secureexam/portal-backend/internal/service"
	"github.com/secureexam/portal-backend/internal/validator"
)

// StudentHandler handles the student-facing exam endpoints.
type StudentHandler struct {
	assignmentService *service.AssignmentService
	attemptService    *service.AttemptService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	assignmentService *service.AssignmentService,
	attemptService *service.AttemptService,
) *StudentHandler {
	return &StudentHandler{
		assignmentService: assignmentService,
		attemptService:    attemptService,
	}
}

// Dashboard godoc
// GET /api/v1/student/dashboard
// Lists the student's assigned exams split into available and completed.
func (h *StudentHandler) Dashboard(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	dashboard, err := h.assignmentService.DashboardFor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, dashboard)
}

// OpenAttempt godoc
// GET /api/v1/student/attempts/:id
// Serves the exam paper. The first open starts the clock and fixes the
// randomized question/option order; reloads replay the same paper.
func (h *StudentHandler) OpenAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	resultID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	paper, err := h.attemptService.OpenAttempt(c.Request.Context(), resultID, claims.UserID)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResultOwner)
		case errors.Is(err, service.ErrAlreadyCompleted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyCompleted)
		case errors.Is(err, service.ErrExamInactive):
			response.Fail(c, http.StatusForbidden, response.ErrExamInactive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, paper)
}

// Submit godoc
// POST /api/v1/student/attempts/:id/submit
// Grades the submitted answers and completes the attempt. Exactly one
// submission wins; repeats get ALREADY_COMPLETED.
func (h *StudentHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	resultID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), resultID, claims.UserID, &req)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResultOwner)
		case errors.Is(err, service.ErrAlreadyCompleted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyCompleted)
		case errors.Is(err, service.ErrDeadlineExceeded):
			response.Fail(c, http.StatusForbidden, response.ErrDeadlineExceeded)
		case errors.Is(err, service.ErrUnknownQuestion),
			errors.Is(err, service.ErrInvalidOption):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"answers": err.Error()})
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// GetResult godoc
// GET /api/v1/results/:id
// Serves the graded result detail. Owner or admin only.
func (h *StudentHandler) GetResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	resultID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.attemptService.GetResult(c.Request.Context(), resultID,
		claims.UserID, claims.TokenType == service.TokenTypeAdmin)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotResultOwner)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, detail)
}
