package service

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/repository"
	"coachhub/training-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMediaTypeNotAllowed  = errors.New("media content type is not allowed")
	ErrUploadURLError       = errors.New("failed to generate upload URL")
	ErrDownloadURLError     = errors.New("failed to generate download URL")
	ErrUploadConfirmFailed  = errors.New("failed to confirm upload")
	ErrUploadMetadataAbsent = errors.New("no media attached to this block")
)

// UploadURLResponse carries the presigned URL plus the object key the caller
// must report back on confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// MediaService handles demo media a teacher attaches to training blocks.
// Files go straight to object storage through presigned URLs; only metadata
// passes through here.
type MediaService interface {
	RequestBlockMediaUploadURL(ctx context.Context, teacherID, weekID, dayID, blockID, contentType string) (*UploadURLResponse, error)
	ConfirmBlockMediaUpload(ctx context.Context, teacherID, weekID, dayID, blockID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Upload, error)
	BlockMediaDownloadURL(ctx context.Context, blockID string) (string, error)
}

type mediaService struct {
	uploadRepo  repository.UploadRepository
	fileStorage storage.FileStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(uploadRepo repository.UploadRepository, fileStorage storage.FileStorage) MediaService {
	return &mediaService{
		uploadRepo:  uploadRepo,
		fileStorage: fileStorage,
	}
}

// RequestBlockMediaUploadURL generates a presigned PUT URL for block demo
// media. Only video and image content is accepted.
func (s *mediaService) RequestBlockMediaUploadURL(ctx context.Context, teacherID, weekID, dayID, blockID, contentType string) (*UploadURLResponse, error) {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return nil, err
	}
	weekID, err = domain.RequireWeekID(weekID)
	if err != nil {
		return nil, err
	}
	dayID = domain.CleanID(dayID)
	blockID = domain.CleanID(blockID)
	if dayID == "" || blockID == "" {
		return nil, fmt.Errorf("%w: day id and block id are required", domain.ErrInvalidData)
	}

	lowered := strings.ToLower(contentType)
	if !strings.HasPrefix(lowered, "video/") && !strings.HasPrefix(lowered, "image/") {
		return nil, ErrMediaTypeNotAllowed
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("block-media", weekID, dayID, fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmBlockMediaUpload records the metadata after the client has PUT the
// file to object storage.
func (s *mediaService) ConfirmBlockMediaUpload(ctx context.Context, teacherID, weekID, dayID, blockID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Upload, error) {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return nil, err
	}
	weekID, err = domain.RequireWeekID(weekID)
	if err != nil {
		return nil, err
	}
	dayID = domain.CleanID(dayID)
	blockID = domain.CleanID(blockID)
	if dayID == "" || blockID == "" || strings.TrimSpace(objectKey) == "" {
		return nil, fmt.Errorf("%w: day id, block id, and object key are required", domain.ErrInvalidData)
	}

	upload := &domain.Upload{
		WeekID:      weekID,
		DayID:       dayID,
		BlockID:     blockID,
		TeacherID:   teacherID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        fileSize,
	}
	if _, err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, ErrUploadConfirmFailed
	}
	return upload, nil
}

// BlockMediaDownloadURL generates a temporary URL for viewing the newest
// media attached to a block.
func (s *mediaService) BlockMediaDownloadURL(ctx context.Context, blockID string) (string, error) {
	blockID = domain.CleanID(blockID)
	if blockID == "" {
		return "", fmt.Errorf("%w: block id is required", domain.ErrInvalidData)
	}

	upload, err := s.uploadRepo.GetByBlockID(ctx, blockID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUploadMetadataAbsent
		}
		return "", err
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, upload.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}
