package service

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/repository"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// In-memory repository fakes. Each one keeps its data behind a mutex because
// the aggregation paths fetch concurrently, and exposes error fields so tests
// can inject failures per method.

// --- weeks ---

type fakeWeekRepo struct {
	mu        sync.Mutex
	weeks     map[string]*domain.Week
	seq       int
	listErr   error
	deleteErr error
}

func newFakeWeekRepo() *fakeWeekRepo {
	return &fakeWeekRepo{weeks: make(map[string]*domain.Week)}
}

func (r *fakeWeekRepo) Create(_ context.Context, week *domain.Week) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	w := *week
	w.ID = fmt.Sprintf("week-%d", r.seq)
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	r.weeks[w.ID] = &w
	return w.ID, nil
}

func (r *fakeWeekRepo) GetByID(_ context.Context, id string) (*domain.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weeks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWeekRepo) ListByStudent(_ context.Context, studentID string, onlyPublished bool) ([]domain.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Week
	for _, w := range r.weeks {
		if w.StudentID != studentID {
			continue
		}
		if onlyPublished && !w.IsPublished {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWeekRepo) SetPublished(_ context.Context, weekID string, isPublished bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weeks[weekID]
	if !ok {
		return repository.ErrNotFound
	}
	w.IsPublished = isPublished
	w.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWeekRepo) SetTitle(_ context.Context, weekID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weeks[weekID]
	if !ok {
		return repository.ErrNotFound
	}
	w.Title = title
	w.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWeekRepo) SetDateRange(_ context.Context, weekID string, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weeks[weekID]
	if !ok {
		return repository.ErrNotFound
	}
	w.StartDate = &start
	w.EndDate = &end
	w.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWeekRepo) Touch(_ context.Context, weekID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weeks[weekID]
	if !ok {
		return repository.ErrNotFound
	}
	w.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWeekRepo) Delete(_ context.Context, weekID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.weeks[weekID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.weeks, weekID)
	return nil
}

func (r *fakeWeekRepo) AnyForStudent(_ context.Context, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.weeks {
		if w.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// --- days ---

type fakeDayRepo struct {
	mu              sync.Mutex
	days            []*domain.Day
	seq             int
	listErrFor      map[string]error
	deleteByWeekErr error
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{listErrFor: make(map[string]error)}
}

func (r *fakeDayRepo) Create(_ context.Context, day *domain.Day) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d := *day
	d.ID = fmt.Sprintf("day-%d", r.seq)
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.days = append(r.days, &d)
	return d.ID, nil
}

func (r *fakeDayRepo) Update(_ context.Context, day *domain.Day) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.days {
		if d.ID == day.ID {
			cp := *day
			cp.CreatedAt = d.CreatedAt
			cp.UpdatedAt = time.Now()
			r.days[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeDayRepo) ListByWeek(_ context.Context, weekID string) ([]domain.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.listErrFor[weekID]; err != nil {
		return nil, err
	}
	var out []domain.Day
	for _, d := range r.days {
		if d.WeekID == weekID {
			out = append(out, *d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (r *fakeDayRepo) Delete(_ context.Context, weekID, dayID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.days {
		if d.WeekID == weekID && d.ID == dayID {
			r.days = append(r.days[:i], r.days[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeDayRepo) DeleteByWeek(_ context.Context, weekID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteByWeekErr != nil {
		return r.deleteByWeekErr
	}
	kept := r.days[:0]
	for _, d := range r.days {
		if d.WeekID != weekID {
			kept = append(kept, d)
		}
	}
	r.days = kept
	return nil
}

// --- progress ---

type fakeProgressRepo struct {
	mu              sync.Mutex
	completion      map[string]map[string]bool
	fetches         int
	getErr          error
	deleteByWeekErr error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{completion: make(map[string]map[string]bool)}
}

func progressKey(weekID, studentID string) string {
	return weekID + "|" + studentID
}

func (r *fakeProgressRepo) GetCompletionMap(_ context.Context, weekID, studentID string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make(map[string]bool)
	for dayID, done := range r.completion[progressKey(weekID, studentID)] {
		out[dayID] = done
	}
	return out, nil
}

func (r *fakeProgressRepo) SetDayCompleted(_ context.Context, weekID, studentID, dayID string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := progressKey(weekID, studentID)
	if r.completion[key] == nil {
		r.completion[key] = make(map[string]bool)
	}
	r.completion[key][dayID] = completed
	return nil
}

func (r *fakeProgressRepo) DeleteByWeek(_ context.Context, weekID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteByWeekErr != nil {
		return r.deleteByWeekErr
	}
	for key := range r.completion {
		if strings.HasPrefix(key, weekID+"|") {
			delete(r.completion, key)
		}
	}
	return nil
}

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u := *user
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[u.ID] = &u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// --- relations ---

type fakeRelationRepo struct {
	mu              sync.Mutex
	relations       map[string]*domain.Relation
	getByStudentErr error
	removeErrFor    map[domain.Category]error
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{
		relations:    make(map[string]*domain.Relation),
		removeErrFor: make(map[domain.Category]error),
	}
}

func pairKey(teacherID, studentID string) string {
	return teacherID + "|" + studentID
}

func (r *fakeRelationRepo) GetByStudent(_ context.Context, studentID string) (*domain.Relation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getByStudentErr != nil {
		return nil, r.getByStudentErr
	}
	for _, rel := range r.relations {
		if rel.StudentID == studentID {
			cp := *rel
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRelationRepo) GetByPair(_ context.Context, teacherID, studentID string) (*domain.Relation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.relations[pairKey(teacherID, studentID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rel
	return &cp, nil
}

func (r *fakeRelationRepo) ListStudentIDsByCategory(_ context.Context, teacherID string, category domain.Category) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, rel := range r.relations {
		if rel.TeacherID == teacherID && rel.HasCategory(category) {
			ids = append(ids, rel.StudentID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeRelationRepo) Upsert(_ context.Context, teacherID, studentID string, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(teacherID, studentID)
	rel, ok := r.relations[key]
	if !ok {
		rel = &domain.Relation{
			ID:        key,
			TeacherID: teacherID,
			StudentID: studentID,
			CreatedAt: time.Now(),
		}
		r.relations[key] = rel
	}
	if !rel.HasCategory(category) {
		rel.Categories = append(rel.Categories, category)
	}
	rel.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRelationRepo) RemoveCategory(_ context.Context, teacherID, studentID string, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.removeErrFor[category]; err != nil {
		return err
	}
	rel, ok := r.relations[pairKey(teacherID, studentID)]
	if !ok || !rel.HasCategory(category) {
		return repository.ErrNotFound
	}
	kept := rel.Categories[:0]
	for _, c := range rel.Categories {
		if c != category {
			kept = append(kept, c)
		}
	}
	rel.Categories = kept
	if len(rel.Categories) == 0 {
		delete(r.relations, pairKey(teacherID, studentID))
	}
	return nil
}

func (r *fakeRelationRepo) CategoriesForPair(_ context.Context, teacherID, studentID string) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.relations[pairKey(teacherID, studentID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]domain.Category(nil), rel.Categories...), nil
}

// --- invites ---

type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[string]*domain.Invite
	seq     int
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*domain.Invite)}
}

func (r *fakeInviteRepo) Create(_ context.Context, invite *domain.Invite) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	inv := *invite
	inv.ID = fmt.Sprintf("invite-%d", r.seq)
	if inv.Status == "" {
		inv.Status = domain.InvitePending
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	r.invites[inv.ID] = &inv
	return inv.ID, nil
}

func (r *fakeInviteRepo) GetByID(_ context.Context, id string) (*domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInviteRepo) PendingByStudentEmail(_ context.Context, email string) (*domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invites {
		if inv.Status == domain.InvitePending && inv.StudentEmail == email {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeInviteRepo) ListByTeacher(_ context.Context, teacherID string, status domain.InviteStatus, limit int64) ([]domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Invite
	for _, inv := range r.invites {
		if inv.TeacherID != teacherID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, *inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeInviteRepo) SetStatus(_ context.Context, id string, status domain.InviteStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invites[id]
	if !ok {
		return repository.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	return nil
}

// --- link requests ---

type fakeLinkRequestRepo struct {
	mu        sync.Mutex
	reqs      map[string]*domain.LinkRequest
	seq       int
	createErr error
}

func newFakeLinkRequestRepo() *fakeLinkRequestRepo {
	return &fakeLinkRequestRepo{reqs: make(map[string]*domain.LinkRequest)}
}

func (r *fakeLinkRequestRepo) Create(_ context.Context, req *domain.LinkRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	cp := *req
	cp.ID = fmt.Sprintf("req-%d", r.seq)
	if cp.Status == "" {
		cp.Status = domain.LinkRequestPending
	}
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.reqs[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeLinkRequestRepo) GetByID(_ context.Context, id string) (*domain.LinkRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeLinkRequestRepo) ListPendingByTeacher(_ context.Context, teacherID string) ([]domain.LinkRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.LinkRequest
	for _, req := range r.reqs {
		if req.TeacherID == teacherID && req.Status == domain.LinkRequestPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLinkRequestRepo) SetStatus(_ context.Context, id string, status domain.LinkRequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return repository.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}
