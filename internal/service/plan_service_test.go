package service

import (
	"coachhub/training-app/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanFixture() (PlanService, *fakeWeekRepo, *fakeDayRepo, *fakeProgressRepo) {
	weekRepo := newFakeWeekRepo()
	dayRepo := newFakeDayRepo()
	progressRepo := newFakeProgressRepo()
	return NewPlanService(weekRepo, dayRepo, progressRepo), weekRepo, dayRepo, progressRepo
}

func TestCreateWeek_Validation(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	_, err := svc.CreateWeek(ctx, CreateWeekInput{TeacherID: "t1", Title: "Week 1"})
	assert.ErrorIs(t, err, domain.ErrMissingStudentID)

	_, err = svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", Title: "Week 1"})
	assert.ErrorIs(t, err, domain.ErrMissingTeacherID)

	_, err = svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestCreateWeek_TrimsAndDefaults(t *testing.T) {
	svc, weekRepo, _, _ := newPlanFixture()
	ctx := context.Background()

	id, err := svc.CreateWeek(ctx, CreateWeekInput{
		StudentID: "  s1  ",
		TeacherID: "t1",
		Title:     "  Base Week  ",
	})
	require.NoError(t, err)

	week, err := weekRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "s1", week.StudentID)
	assert.Equal(t, "Base Week", week.Title)
	assert.Equal(t, domain.CategoryGeneral, week.Category)
	assert.False(t, week.IsPublished)
}

func TestListWeeks_SortsByTitleCaseInsensitive(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	for _, title := range []string{"banana split", "Apple day", "CHERRY week"} {
		_, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: title})
		require.NoError(t, err)
	}

	weeks, err := svc.ListWeeks(ctx, "s1", false)
	require.NoError(t, err)
	require.Len(t, weeks, 3)
	assert.Equal(t, "Apple day", weeks[0].Title)
	assert.Equal(t, "banana split", weeks[1].Title)
	assert.Equal(t, "CHERRY week", weeks[2].Title)
}

func TestListWeeks_PublishedFilter(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	_, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Draft"})
	require.NoError(t, err)
	liveID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Live"})
	require.NoError(t, err)
	require.NoError(t, svc.PublishWeek(ctx, liveID, true))

	published, err := svc.ListWeeks(ctx, "s1", true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, liveID, published[0].ID)

	all, err := svc.ListWeeks(ctx, "s1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpsertDay_CreateRecomputesDateRange(t *testing.T) {
	svc, weekRepo, _, _ := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	mon := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fri := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	_, err = svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 0, Title: "Push", Date: fri})
	require.NoError(t, err)
	_, err = svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 1, Title: "Pull", Date: mon})
	require.NoError(t, err)

	week, err := weekRepo.GetByID(ctx, weekID)
	require.NoError(t, err)
	require.NotNil(t, week.StartDate)
	require.NotNil(t, week.EndDate)
	assert.True(t, week.StartDate.Equal(mon))
	assert.True(t, week.EndDate.Equal(fri))
}

func TestUpsertDay_UpdateExisting(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	dayID, err := svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 0, Title: "Push", Date: time.Now()})
	require.NoError(t, err)

	updatedID, err := svc.UpsertDay(ctx, weekID, UpsertDayInput{
		DayID: dayID,
		Index: 2,
		Title: "Push harder",
		Date:  time.Now(),
		Blocks: []domain.Block{
			{ID: "b1", Name: "Warm-up"},
			{ID: "b2", Name: "Main set", Details: "5x5 squat"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dayID, updatedID)

	days, err := svc.ListDays(ctx, weekID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Push harder", days[0].Title)
	assert.Len(t, days[0].Blocks, 2)
}

func TestUpsertDay_BlankTitleRejected(t *testing.T) {
	svc, _, _, _ := newPlanFixture()

	_, err := svc.UpsertDay(context.Background(), "w1", UpsertDayInput{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestUpsertDay_DuplicateOrdinalAllowed(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	_, err = svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 1, Title: "Push", Date: time.Now()})
	require.NoError(t, err)
	_, err = svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 1, Title: "Pull", Date: time.Now()})
	require.NoError(t, err)

	days, err := svc.ListDays(ctx, weekID)
	require.NoError(t, err)
	assert.Len(t, days, 2)
}

func TestRecomputeWeekDateRange_NoDaysLeavesRangeAlone(t *testing.T) {
	svc, weekRepo, _, _ := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, weekRepo.SetDateRange(ctx, weekID, start, end))

	require.NoError(t, svc.RecomputeWeekDateRange(ctx, weekID))

	week, err := weekRepo.GetByID(ctx, weekID)
	require.NoError(t, err)
	require.NotNil(t, week.StartDate)
	assert.True(t, week.StartDate.Equal(start))
	assert.True(t, week.EndDate.Equal(end))
}

func TestPublishWeek_Idempotent(t *testing.T) {
	svc, weekRepo, _, _ := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	require.NoError(t, svc.PublishWeek(ctx, weekID, true))
	require.NoError(t, svc.PublishWeek(ctx, weekID, true))

	week, err := weekRepo.GetByID(ctx, weekID)
	require.NoError(t, err)
	assert.True(t, week.IsPublished)

	require.NoError(t, svc.PublishWeek(ctx, weekID, false))
	week, err = weekRepo.GetByID(ctx, weekID)
	require.NoError(t, err)
	assert.False(t, week.IsPublished)
}

func TestDeleteWeekCascade_FullSuccess(t *testing.T) {
	svc, weekRepo, dayRepo, progressRepo := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)
	dayID, err := svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 0, Title: "Push", Date: time.Now()})
	require.NoError(t, err)
	require.NoError(t, progressRepo.SetDayCompleted(ctx, weekID, "s1", dayID, true))

	report, err := svc.DeleteWeekCascade(ctx, weekID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteReport{DaysDeleted: true, ProgressDeleted: true, WeekDeleted: true}, report)

	_, err = weekRepo.GetByID(ctx, weekID)
	assert.Error(t, err)
	days, err := dayRepo.ListByWeek(ctx, weekID)
	require.NoError(t, err)
	assert.Empty(t, days)
	completion, err := progressRepo.GetCompletionMap(ctx, weekID, "s1")
	require.NoError(t, err)
	assert.Empty(t, completion)
}

func TestDeleteWeekCascade_StopsAtFirstFailure(t *testing.T) {
	svc, weekRepo, _, progressRepo := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	progressRepo.deleteByWeekErr = errors.New("store unavailable")

	report, err := svc.DeleteWeekCascade(ctx, weekID)
	require.Error(t, err)

	var delErr *domain.DeleteError
	require.ErrorAs(t, err, &delErr)
	assert.Equal(t, []string{"progress"}, delErr.Steps)

	assert.True(t, report.DaysDeleted)
	assert.False(t, report.ProgressDeleted)
	assert.False(t, report.WeekDeleted)

	// The week survives a stopped cascade.
	_, err = weekRepo.GetByID(ctx, weekID)
	assert.NoError(t, err)
}

func TestDeleteDay_RemovesDayAndKeepsStaleProgress(t *testing.T) {
	svc, _, _, progressRepo := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)
	dayID, err := svc.UpsertDay(ctx, weekID, UpsertDayInput{Index: 0, Title: "Push", Date: time.Now()})
	require.NoError(t, err)
	require.NoError(t, progressRepo.SetDayCompleted(ctx, weekID, "s1", dayID, true))

	require.NoError(t, svc.DeleteDay(ctx, weekID, dayID))

	days, err := svc.ListDays(ctx, weekID)
	require.NoError(t, err)
	assert.Empty(t, days)

	// The stale entry stays behind; aggregation filters it later.
	completion, err := progressRepo.GetCompletionMap(ctx, weekID, "s1")
	require.NoError(t, err)
	assert.True(t, completion[dayID])
}

func TestDeleteDay_MissingDay(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	weekID, err := svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	err = svc.DeleteDay(ctx, weekID, "no-such-day")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHasAnyWeeks(t *testing.T) {
	svc, _, _, _ := newPlanFixture()
	ctx := context.Background()

	has, err := svc.HasAnyWeeks(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.CreateWeek(ctx, CreateWeekInput{StudentID: "s1", TeacherID: "t1", Title: "Week 1"})
	require.NoError(t, err)

	has, err = svc.HasAnyWeeks(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = svc.HasAnyWeeks(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrMissingStudentID)
}
