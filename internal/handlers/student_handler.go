package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/feedback-service/internal/services"
	"github.com/SAP-F-2025/feedback-service/internal/utils"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListStudents returns the paginated student roster
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} services.StudentListResponse
// @Router /admin/students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	page, pageSize := parsePagination(c)

	resp, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BlockStudent toggles a student's block flag
// @Summary Block or unblock a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /admin/students/{id}/block [put]
func (h *StudentHandler) BlockStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req validator.BlockStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsBlocked == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: "isBlocked is required",
		})
		return
	}

	h.LogRequest(c, "Setting student block flag", "student_id", id, "is_blocked", *req.IsBlocked)

	student, err := h.service.SetBlocked(c.Request.Context(), id, *req.IsBlocked)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student and their feedback
// @Summary Delete a student
// @Description The student's feedback is removed in the same transaction
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /admin/students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting student", "student_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}

// parsePagination reads page/limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	if raw := c.DefaultQuery("page", "1"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 10
	if raw := c.DefaultQuery("limit", "10"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
