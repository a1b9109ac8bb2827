package api

import (
	"coachhub/training-app/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgressHandler exposes completion tracking and progress aggregation.
type ProgressHandler struct {
	facade *service.Facade
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(facade *service.Facade) *ProgressHandler {
	return &ProgressHandler{facade: facade}
}

type SetCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// CompletionMap returns the calling student's completion map for a week.
func (h *ProgressHandler) CompletionMap(c *gin.Context) {
	studentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	completion, err := h.facade.CompletionMap(c.Request.Context(), c.Param("weekId"), studentID)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, completion)
}

// SetDayCompleted toggles one day for the calling student.
func (h *ProgressHandler) SetDayCompleted(c *gin.Context) {
	studentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.facade.SetDayCompleted(c.Request.Context(), c.Param("weekId"), studentID, c.Param("dayId"), *req.Completed)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// WeekProgress returns (completed, total) for one week of a student.
func (h *ProgressHandler) WeekProgress(c *gin.Context) {
	progress, err := h.facade.WeekProgress(c.Request.Context(), c.Param("weekId"), c.Param("studentId"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// OverallProgress returns the summed progress over the student's published
// weeks.
func (h *ProgressHandler) OverallProgress(c *gin.Context) {
	progress, err := h.facade.OverallProgress(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
