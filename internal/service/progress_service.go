package service

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/repository"
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// ProgressService tracks per-day completion and aggregates it into per-week
// and overall figures.
type ProgressService interface {
	CompletionMap(ctx context.Context, weekID, studentID string) (map[string]bool, error)
	SetDayCompleted(ctx context.Context, weekID, studentID, dayID string, completed bool) error
	WeekProgress(ctx context.Context, weekID, studentID string) (domain.WeekProgress, error)
	OverallProgress(ctx context.Context, studentID string) (domain.OverallProgress, error)
}

type progressService struct {
	weekRepo     repository.WeekRepository
	dayRepo      repository.DayRepository
	progressRepo repository.ProgressRepository
	// fanoutLimit caps the concurrent per-week progress fetches during
	// overall aggregation; zero means unlimited.
	fanoutLimit int
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	progressRepo repository.ProgressRepository,
	fanoutLimit int,
) ProgressService {
	return &progressService{
		weekRepo:     weekRepo,
		dayRepo:      dayRepo,
		progressRepo: progressRepo,
		fanoutLimit:  fanoutLimit,
	}
}

// CompletionMap returns the student's completion map for a week. Empty map
// when nothing has been toggled yet.
func (s *progressService) CompletionMap(ctx context.Context, weekID, studentID string) (map[string]bool, error) {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return nil, err
	}
	studentID, err = domain.RequireStudentID(studentID)
	if err != nil {
		return nil, err
	}
	return s.progressRepo.GetCompletionMap(ctx, weekID, studentID)
}

// SetDayCompleted toggles one day's completion for the student. The write is
// a single-entry merge, so toggles of distinct days commute.
func (s *progressService) SetDayCompleted(ctx context.Context, weekID, studentID, dayID string, completed bool) error {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return err
	}
	studentID, err = domain.RequireStudentID(studentID)
	if err != nil {
		return err
	}
	dayID = domain.CleanID(dayID)
	if dayID == "" {
		return fmt.Errorf("%w: day id is required", domain.ErrInvalidData)
	}
	return s.progressRepo.SetDayCompleted(ctx, weekID, studentID, dayID, completed)
}

// WeekProgress computes (completed, total) for one week. Total is the count
// of days currently in the week, never the completion map's key count: days
// can be deleted independently of progress records, and the denominator must
// reflect what exists now. A completion entry counts only when it is true and
// its day is still present.
func (s *progressService) WeekProgress(ctx context.Context, weekID, studentID string) (domain.WeekProgress, error) {
	weekID, err := domain.RequireWeekID(weekID)
	if err != nil {
		return domain.WeekProgress{}, err
	}
	studentID, err = domain.RequireStudentID(studentID)
	if err != nil {
		return domain.WeekProgress{}, err
	}

	days, err := s.dayRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return domain.WeekProgress{}, err
	}
	if len(days) == 0 {
		// Nothing to complete; skip the completion-map fetch entirely.
		return domain.WeekProgress{}, nil
	}

	completion, err := s.progressRepo.GetCompletionMap(ctx, weekID, studentID)
	if err != nil {
		return domain.WeekProgress{}, err
	}

	completed := 0
	for _, day := range days {
		if completion[day.ID] {
			completed++
		}
	}
	return domain.WeekProgress{Completed: completed, Total: len(days)}, nil
}

// OverallProgress sums week progress across every published week of the
// student, fetching all weeks concurrently. Any single week's failure aborts
// the whole aggregation: a partial overall percentage would be misleading.
func (s *progressService) OverallProgress(ctx context.Context, studentID string) (domain.OverallProgress, error) {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return domain.OverallProgress{}, err
	}

	weeks, err := s.weekRepo.ListByStudent(ctx, studentID, true)
	if err != nil {
		return domain.OverallProgress{}, err
	}
	if len(weeks) == 0 {
		return domain.OverallProgress{}, nil
	}

	results := make([]domain.WeekProgress, len(weeks))
	g, gctx := errgroup.WithContext(ctx)
	if s.fanoutLimit > 0 {
		g.SetLimit(s.fanoutLimit)
	}
	for i, week := range weeks {
		g.Go(func() error {
			wp, err := s.WeekProgress(gctx, week.ID, studentID)
			if err != nil {
				return err
			}
			results[i] = wp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.OverallProgress{}, err
	}

	overall := domain.OverallProgress{}
	for _, wp := range results {
		overall.Completed += wp.Completed
		overall.Total += wp.Total
	}
	overall.Percent = roundedPercent(overall.Completed, overall.Total)
	return overall, nil
}

// roundedPercent is round-half-up of 100*completed/total, 0 when total is 0.
func roundedPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(100*float64(completed)/float64(total) + 0.5))
}
