package api

import (
	"coachhub/training-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MediaHandler exposes block demo-media upload and viewing.
type MediaHandler struct {
	facade *service.Facade
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(facade *service.Facade) *MediaHandler {
	return &MediaHandler{facade: facade}
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	ContentType string `json:"contentType"`
}

// RequestUploadURL returns a presigned PUT URL for a block's demo media.
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.facade.RequestBlockMediaUploadURL(c.Request.Context(),
		teacherID, c.Param("weekId"), c.Param("dayId"), c.Param("blockId"), req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrMediaTypeNotAllowed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload records the metadata after the file reached object storage.
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	teacherID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.facade.ConfirmBlockMediaUpload(c.Request.Context(),
		teacherID, c.Param("weekId"), c.Param("dayId"), c.Param("blockId"),
		req.ObjectKey, req.FileName, req.FileSize, req.ContentType)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}

// DownloadURL returns a presigned GET URL for the block's newest media.
func (h *MediaHandler) DownloadURL(c *gin.Context) {
	url, err := h.facade.BlockMediaDownloadURL(c.Request.Context(), c.Param("blockId"))
	if err != nil {
		if errors.Is(err, service.ErrUploadMetadataAbsent) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
