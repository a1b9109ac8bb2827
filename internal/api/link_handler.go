package api

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/service"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// LinkHandler exposes the teacher-student relationship lifecycle.
type LinkHandler struct {
	facade *service.Facade
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(facade *service.Facade) *LinkHandler {
	return &LinkHandler{facade: facade}
}

// --- Request Structs ---

type RequestLinkRequest struct {
	TeacherEmail string `json:"teacherEmail" binding:"required"`
}

type CreateInviteRequest struct {
	StudentEmail string `json:"studentEmail" binding:"required"`
}

type ApproveLinkRequestRequest struct {
	StudentID string          `json:"studentId" binding:"required"`
	Category  domain.Category `json:"category"`
}

// --- Student side ---

// LinkState resolves the calling student's relationship banner state.
func (h *LinkHandler) LinkState(c *gin.Context) {
	studentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	c.JSON(http.StatusOK, h.facade.ResolveStudentLinkState(c.Request.Context(), studentID))
}

// RequestLink files a link request toward a teacher by email. The outcome is
// always HTTP 200: ok plus a user-facing message.
func (h *LinkHandler) RequestLink(c *gin.Context) {
	studentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RequestLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ok, message := h.facade.RequestLinkByTeacherEmail(c.Request.Context(), studentID, req.TeacherEmail)
	c.JSON(http.StatusOK, gin.H{"ok": ok, "message": message})
}

// AcceptInvite accepts the invite captured during state resolution and
// returns the re-resolved state.
func (h *LinkHandler) AcceptInvite(c *gin.Context) {
	studentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	c.JSON(http.StatusOK, h.facade.AcceptPendingInvite(c.Request.Context(), studentID, c.Param("inviteId")))
}

// DeclineInvite declines the captured invite and returns the re-resolved
// state.
func (h *LinkHandler) DeclineInvite(c *gin.Context) {
	studentID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	c.JSON(http.StatusOK, h.facade.DeclinePendingInvite(c.Request.Context(), studentID, c.Param("inviteId")))
}

// --- Teacher side ---

// ListInvites returns the teacher's sent invites, optionally filtered by
// ?status= and capped by ?limit=.
func (h *LinkHandler) ListInvites(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	status := domain.InviteStatus(c.Query("status"))
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)

	invites, err := h.facade.ListInvitesSent(c.Request.Context(), teacherID, status, limit)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

// CreateInvite sends a new invite to a student email.
func (h *LinkHandler) CreateInvite(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	// Teacher email is backfilled from the profile by the service.
	inviteID, err := h.facade.CreateInviteByEmail(c.Request.Context(), teacherID, "", req.StudentEmail)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inviteId": inviteID})
}

// CancelInvite withdraws a sent invite.
func (h *LinkHandler) CancelInvite(c *gin.Context) {
	if err := h.facade.CancelInvite(c.Request.Context(), c.Param("inviteId")); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLinkRequests returns the student requests awaiting the teacher.
func (h *LinkHandler) ListLinkRequests(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	requests, err := h.facade.ListPendingLinkRequests(c.Request.Context(), teacherID)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveLinkRequest approves a request and links the pair under a category.
func (h *LinkHandler) ApproveLinkRequest(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ApproveLinkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.facade.ApproveLinkRequestAndLink(c.Request.Context(), teacherID, c.Param("requestId"), req.StudentID, req.Category)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStudents returns the teacher's linked students across ?categories=
// (comma-separated; all categories when omitted).
func (h *LinkHandler) ListStudents(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var categories []domain.Category
	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				categories = append(categories, domain.Category(part))
			}
		}
	}

	students, err := h.facade.ListLinkedStudents(c.Request.Context(), teacherID, categories)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	responses := make([]UserResponse, len(students))
	for i := range students {
		responses[i] = MapUserToResponse(&students[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UnlinkStudent removes the student from one category (?category=) or from
// all categories when none is given.
func (h *LinkHandler) UnlinkStudent(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	category := domain.Category(c.Query("category"))
	if err := h.facade.UnlinkStudent(c.Request.Context(), teacherID, c.Param("studentId"), category); err != nil {
		mapDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
