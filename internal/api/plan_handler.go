package api

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes the training hierarchy operations.
type PlanHandler struct {
	facade *service.Facade
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(facade *service.Facade) *PlanHandler {
	return &PlanHandler{facade: facade}
}

// mapDomainError translates core errors into HTTP status codes.
func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingWeekID),
		errors.Is(err, domain.ErrMissingStudentID),
		errors.Is(err, domain.ErrMissingTeacherID),
		errors.Is(err, domain.ErrMissingUserID),
		errors.Is(err, domain.ErrInvalidData):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}

// --- Request/Response Structs ---

type CreateWeekRequest struct {
	StudentID string          `json:"studentId" binding:"required"`
	Title     string          `json:"title" binding:"required"`
	Category  domain.Category `json:"category"`
}

type BlockPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name" binding:"required"`
	Details string `json:"details"`
}

type UpsertDayRequest struct {
	DayID       string         `json:"dayId"`
	Index       int            `json:"index"`
	Name        string         `json:"name"`
	Date        time.Time      `json:"date" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Blocks      []BlockPayload `json:"blocks"`
}

type PublishWeekRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

type RenameWeekRequest struct {
	Title string `json:"title" binding:"required"`
}

// --- Handler Methods ---

// CreateWeek creates a new draft week for a student.
func (h *PlanHandler) CreateWeek(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	weekID, err := h.facade.CreateWeek(c.Request.Context(), service.CreateWeekInput{
		StudentID: req.StudentID,
		TeacherID: teacherID,
		Title:     req.Title,
		Category:  req.Category,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"weekId": weekID})
}

// ListWeeks returns a student's weeks. Teachers see drafts too; students only
// published ones.
func (h *PlanHandler) ListWeeks(c *gin.Context) {
	studentID := c.Param("studentId")

	role, _ := getUserRoleFromContext(c)
	onlyPublished := role != domain.RoleTeacher

	weeks, err := h.facade.ListWeeks(c.Request.Context(), studentID, onlyPublished)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// ListDays returns the week's days in ordinal order.
func (h *PlanHandler) ListDays(c *gin.Context) {
	days, err := h.facade.ListDays(c.Request.Context(), c.Param("weekId"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// UpsertDay creates or updates a day inside a week.
func (h *PlanHandler) UpsertDay(c *gin.Context) {
	var req UpsertDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	blocks := make([]domain.Block, len(req.Blocks))
	for i, b := range req.Blocks {
		blocks[i] = domain.Block{ID: b.ID, Name: b.Name, Details: b.Details}
	}

	dayID, err := h.facade.UpsertDay(c.Request.Context(), c.Param("weekId"), service.UpsertDayInput{
		DayID:       req.DayID,
		Index:       req.Index,
		Name:        req.Name,
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Blocks:      blocks,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dayId": dayID})
}

// PublishWeek flips the week's visibility to the student.
func (h *PlanHandler) PublishWeek(c *gin.Context) {
	var req PublishWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.facade.PublishWeek(c.Request.Context(), c.Param("weekId"), *req.IsPublished); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RenameWeek updates the week title.
func (h *PlanHandler) RenameWeek(c *gin.Context) {
	var req RenameWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.facade.RenameWeek(c.Request.Context(), c.Param("weekId"), req.Title); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWeek runs the best-effort cascade. On partial failure the report
// tells the caller how far the cascade got.
func (h *PlanHandler) DeleteWeek(c *gin.Context) {
	report, err := h.facade.DeleteWeekCascade(c.Request.Context(), c.Param("weekId"))
	if err != nil {
		var deleteErr *domain.DeleteError
		if errors.As(err, &deleteErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  deleteErr.Error(),
				"report": report,
			})
			return
		}
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteDay removes one day from a week.
func (h *PlanHandler) DeleteDay(c *gin.Context) {
	if err := h.facade.DeleteDay(c.Request.Context(), c.Param("weekId"), c.Param("dayId")); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HasAnyWeeks is the onboarding existence probe.
func (h *PlanHandler) HasAnyWeeks(c *gin.Context) {
	has, err := h.facade.HasAnyWeeks(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasWeeks": has})
}
