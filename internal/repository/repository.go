package repository

import (
	"coachhub/training-app/internal/domain"
	"context"
	"time"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// WeekRepository defines the interface for interacting with training weeks.
type WeekRepository interface {
	Create(ctx context.Context, week *domain.Week) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Week, error)
	// ListByStudent fetches all weeks for a student, optionally only the
	// published ones. Implementations attempt a creation-time-ordered query
	// first and fall back to an unordered one if the store rejects it.
	ListByStudent(ctx context.Context, studentID string, onlyPublished bool) ([]domain.Week, error)
	SetPublished(ctx context.Context, weekID string, isPublished bool) error
	SetTitle(ctx context.Context, weekID, title string) error
	SetDateRange(ctx context.Context, weekID string, start, end time.Time) error
	Touch(ctx context.Context, weekID string) error
	Delete(ctx context.Context, weekID string) error
	// AnyForStudent is an existence probe capped to one result.
	AnyForStudent(ctx context.Context, studentID string) (bool, error)
}

// DayRepository defines the interface for interacting with the days stored
// under a week.
type DayRepository interface {
	Create(ctx context.Context, day *domain.Day) (string, error)
	Update(ctx context.Context, day *domain.Day) error
	// ListByWeek returns the week's days ordered by ordinal index.
	ListByWeek(ctx context.Context, weekID string) ([]domain.Day, error)
	Delete(ctx context.Context, weekID, dayID string) error
	DeleteByWeek(ctx context.Context, weekID string) error
}

// ProgressRepository defines the interface for per (week, student)
// completion records.
type ProgressRepository interface {
	// GetCompletionMap returns an empty map when no record exists yet.
	GetCompletionMap(ctx context.Context, weekID, studentID string) (map[string]bool, error)
	// SetDayCompleted merges a single completion entry, creating the record
	// on first toggle. Concurrent writes for distinct days must not
	// overwrite each other.
	SetDayCompleted(ctx context.Context, weekID, studentID, dayID string, completed bool) error
	DeleteByWeek(ctx context.Context, weekID string) error
}

// RelationRepository defines the interface for teacher-student relations.
type RelationRepository interface {
	GetByStudent(ctx context.Context, studentID string) (*domain.Relation, error)
	GetByPair(ctx context.Context, teacherID, studentID string) (*domain.Relation, error)
	ListStudentIDsByCategory(ctx context.Context, teacherID string, category domain.Category) ([]string, error)
	// Upsert adds the category to the pair's relation, creating the relation
	// document if none exists.
	Upsert(ctx context.Context, teacherID, studentID string, category domain.Category) error
	// RemoveCategory removes one category and deletes the relation outright
	// when it was the last one.
	RemoveCategory(ctx context.Context, teacherID, studentID string, category domain.Category) error
	CategoriesForPair(ctx context.Context, teacherID, studentID string) ([]domain.Category, error)
}

// InviteRepository defines the interface for teacher-issued invites.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Invite, error)
	// PendingByStudentEmail returns ErrNotFound when no pending invite
	// targets the email.
	PendingByStudentEmail(ctx context.Context, email string) (*domain.Invite, error)
	ListByTeacher(ctx context.Context, teacherID string, status domain.InviteStatus, limit int64) ([]domain.Invite, error)
	SetStatus(ctx context.Context, id string, status domain.InviteStatus) error
}

// LinkRequestRepository defines the interface for student-issued link requests.
type LinkRequestRepository interface {
	Create(ctx context.Context, req *domain.LinkRequest) (string, error)
	GetByID(ctx context.Context, id string) (*domain.LinkRequest, error)
	ListPendingByTeacher(ctx context.Context, teacherID string) ([]domain.LinkRequest, error)
	SetStatus(ctx context.Context, id string, status domain.LinkRequestStatus) error
}

// UploadRepository defines the interface for block media metadata.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
	GetByBlockID(ctx context.Context, blockID string) (*domain.Upload, error)
}
