package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/feedback-service/internal/services"
	"github.com/SAP-F-2025/feedback-service/internal/utils"
)

type FeedbackHandler struct {
	BaseHandler
	service services.FeedbackService
}

func NewFeedbackHandler(service services.FeedbackService, logger utils.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListFeedback returns feedback visible to the caller
// @Summary List feedback
// @Description Students see their own submissions, admins see everything
// @Tags feedback
// @Produce json
// @Param course query int false "Filter by course"
// @Param rating query int false "Filter by exact rating"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} services.FeedbackListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	h.LogRequest(c, "Listing feedback")

	caller, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	query := parseFeedbackQuery(c)

	resp, err := h.service.List(c.Request.Context(), caller, query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateFeedback submits feedback for a course
// @Summary Submit feedback
// @Description One submission per student per course
// @Tags feedback
// @Accept json
// @Produce json
// @Success 201 {object} services.FeedbackResponse
// @Failure 400 {object} ErrorResponse "Validation failed or feedback already submitted"
// @Failure 404 {object} ErrorResponse "Course not found"
// @Router /feedback [post]
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	h.LogRequest(c, "Creating feedback")

	caller, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateFeedback edits an existing submission
// @Summary Update feedback
// @Description Omitted fields keep their stored value
// @Tags feedback
// @Accept json
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} services.FeedbackResponse
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse "Feedback not found"
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating feedback", "feedback_id", id)

	caller, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteFeedback removes a submission
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse "Feedback not found"
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting feedback", "feedback_id", id)

	caller, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}

// parseFeedbackQuery reads the list filters from the query string. Bad
// values fall back to defaults rather than failing the request.
func parseFeedbackQuery(c *gin.Context) services.ListFeedbackQuery {
	query := services.ListFeedbackQuery{Page: 1, PageSize: 10}

	if raw := c.Query("course"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			courseID := uint(id)
			query.CourseID = &courseID
		}
	}
	if raw := c.Query("rating"); raw != "" {
		if rating, err := strconv.Atoi(raw); err == nil && rating >= 1 && rating <= 5 {
			query.Rating = &rating
		}
	}
	if raw := c.DefaultQuery("page", "1"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			query.Page = page
		}
	}
	if raw := c.DefaultQuery("limit", "10"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			if limit > 100 {
				limit = 100
			}
			query.PageSize = limit
		}
	}

	return query
}
