package service

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// CreateWeekInput carries the caller-supplied fields for a new week.
type CreateWeekInput struct {
	StudentID string
	TeacherID string
	Title     string
	Category  domain.Category
}

// UpsertDayInput carries the caller-supplied fields for a day write. A blank
// DayID creates a new day; a non-blank one updates the existing document.
type UpsertDayInput struct {
	DayID       string
	Index       int
	Name        string
	Date        time.Time
	Title       string
	Description string
	Blocks      []domain.Block
}

// DeleteReport records how far a best-effort week cascade got. The cascade is
// not a transaction; callers can retry or schedule cleanup from this.
type DeleteReport struct {
	DaysDeleted     bool `json:"daysDeleted"`
	ProgressDeleted bool `json:"progressDeleted"`
	WeekDeleted     bool `json:"weekDeleted"`
}

// PlanService owns the training hierarchy: weeks, their days, and the blocks
// embedded in each day.
type PlanService interface {
	ListWeeks(ctx context.Context, studentID string, onlyPublished bool) ([]domain.Week, error)
	ListDays(ctx context.Context, weekID string) ([]domain.Day, error)
	CreateWeek(ctx context.Context, input CreateWeekInput) (string, error)
	UpsertDay(ctx context.Context, weekID string, input UpsertDayInput) (string, error)
	RecomputeWeekDateRange(ctx context.Context, weekID string) error
	PublishWeek(ctx context.Context, weekID string, isPublished bool) error
	RenameWeek(ctx context.Context, weekID, title string) error
	DeleteWeekCascade(ctx context.Context, weekID string) (*DeleteReport, error)
	DeleteDay(ctx context.Context, weekID, dayID string) error
	HasAnyWeeks(ctx context.Context, studentID string) (bool, error)
}

type planService struct {
	weekRepo     repository.WeekRepository
	dayRepo      repository.DayRepository
	progressRepo repository.ProgressRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	progressRepo repository.ProgressRepository,
) PlanService {
	return &planService{
		weekRepo:     weekRepo,
		dayRepo:      dayRepo,
		progressRepo: progressRepo,
	}
}

// ListWeeks returns the student's weeks sorted case-insensitively by title.
// The client-side sort makes ordering deterministic regardless of whether the
// store served the ordered query or its unordered fallback.
func (s *planService) ListWeeks(ctx context.Context, studentID string, onlyPublished bool) ([]domain.Week, error) {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return nil, err
	}

	weeks, err := s.weekRepo.ListByStudent(ctx, studentID, onlyPublished)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(weeks, func(i, j int) bool {
		return strings.ToLower(weeks[i].Title) < strings.ToLower(weeks[j].Title)
	})
	return weeks, nil
}

// ListDays returns the week's days ordered by their ordinal index.
func (s *planService) ListDays(ctx context.Context, weekID string) ([]domain.Day, error) {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return nil, err
	}
	return s.dayRepo.ListByWeek(ctx, weekID)
}

// CreateWeek writes a new draft week and returns its id.
func (s *planService) CreateWeek(ctx context.Context, input CreateWeekInput) (string, error) {
	studentID, err := domain.RequireStudentID(input.StudentID)
	if err != nil {
		return "", err
	}
	teacherID, err := domain.RequireTeacherID(input.TeacherID)
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", fmt.Errorf("%w: week title is required", domain.ErrInvalidData)
	}
	category := input.Category
	if category == "" {
		category = domain.CategoryGeneral
	}

	week := &domain.Week{
		Title:     title,
		StudentID: studentID,
		TeacherID: teacherID,
		Category:  category,
	}
	weekID, err := s.weekRepo.Create(ctx, week)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	return weekID, nil
}

// UpsertDay creates or updates one day, then recomputes the week's derived
// date range from the full day set.
func (s *planService) UpsertDay(ctx context.Context, weekID string, input UpsertDayInput) (string, error) {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", fmt.Errorf("%w: day title is required", domain.ErrInvalidData)
	}

	day := &domain.Day{
		ID:          domain.CleanID(input.DayID),
		WeekID:      weekID,
		Index:       input.Index, // stored as supplied, duplicates tolerated
		Name:        input.Name,
		Date:        input.Date,
		Title:       title,
		Description: input.Description,
		Blocks:      input.Blocks,
	}

	dayID := day.ID
	if dayID == "" {
		dayID, err = s.dayRepo.Create(ctx, day)
	} else {
		err = s.dayRepo.Update(ctx, day)
	}
	if err != nil {
		return "", err
	}

	if err := s.RecomputeWeekDateRange(ctx, weekID); err != nil {
		return "", err
	}
	return dayID, nil
}

// RecomputeWeekDateRange merges min/max of the week's day dates into the week
// document. A week with zero days is left untouched: an already-derived range
// never regresses to undefined.
func (s *planService) RecomputeWeekDateRange(ctx context.Context, weekID string) error {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return err
	}

	days, err := s.dayRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}

	start, end := days[0].Date, days[0].Date
	for _, day := range days[1:] {
		if day.Date.Before(start) {
			start = day.Date
		}
		if day.Date.After(end) {
			end = day.Date
		}
	}
	return s.weekRepo.SetDateRange(ctx, weekID, start, end)
}

// PublishWeek flips the week's visibility to the student. Idempotent.
func (s *planService) PublishWeek(ctx context.Context, weekID string, isPublished bool) error {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return err
	}
	return s.weekRepo.SetPublished(ctx, weekID, isPublished)
}

// RenameWeek updates the week title.
func (s *planService) RenameWeek(ctx context.Context, weekID, title string) error {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: week title is required", domain.ErrInvalidData)
	}
	return s.weekRepo.SetTitle(ctx, weekID, title)
}

// DeleteWeekCascade removes the week's days, its progress records, and then
// the week itself. Deletes run in order and each is awaited individually; a
// failure stops the cascade and the report says how far it got.
func (s *planService) DeleteWeekCascade(ctx context.Context, weekID string) (*DeleteReport, error) {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return nil, err
	}

	report := &DeleteReport{}

	if err := s.dayRepo.DeleteByWeek(ctx, weekID); err != nil {
		return report, &domain.DeleteError{Steps: []string{"days"}, Err: err}
	}
	report.DaysDeleted = true

	if err := s.progressRepo.DeleteByWeek(ctx, weekID); err != nil {
		return report, &domain.DeleteError{Steps: []string{"progress"}, Err: err}
	}
	report.ProgressDeleted = true

	if err := s.weekRepo.Delete(ctx, weekID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return report, domain.ErrNotFound
		}
		return report, &domain.DeleteError{Steps: []string{"week"}, Err: err}
	}
	report.WeekDeleted = true

	return report, nil
}

// DeleteDay removes one day and touches the week's update timestamp. Any
// stale completion entry for the day stays behind; aggregation filters it.
func (s *planService) DeleteDay(ctx context.Context, weekID, dayID string) error {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return err
	}
	dayID = domain.CleanID(dayID)
	if dayID == "" {
		return fmt.Errorf("%w: day id is required", domain.ErrInvalidData)
	}

	if err := s.dayRepo.Delete(ctx, weekID, dayID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.weekRepo.Touch(ctx, weekID)
}

// HasAnyWeeks is an existence probe used by onboarding flows.
func (s *planService) HasAnyWeeks(ctx context.Context, studentID string) (bool, error) {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return false, err
	}
	return s.weekRepo.AnyForStudent(ctx, studentID)
}
