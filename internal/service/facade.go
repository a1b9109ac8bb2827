package service

import (
	"coachhub/training-app/internal/domain"
	"context"
)

// Facade is the single entry point UI-layer consumers hold. It bundles the
// core services behind one API; every identifier funnels through the
// domain.Require* helpers inside the service it reaches, so validation fails
// fast before any store call.
type Facade struct {
	plans    PlanService
	progress ProgressService
	links    LinkService
	media    MediaService
}

// NewFacade creates the orchestrator over the already-constructed services.
// One facade per process; the store client behind the repositories is shared
// by injection, never by a global.
func NewFacade(plans PlanService, progress ProgressService, links LinkService, media MediaService) *Facade {
	return &Facade{
		plans:    plans,
		progress: progress,
		links:    links,
		media:    media,
	}
}

// --- Training hierarchy ---

func (f *Facade) ListWeeks(ctx context.Context, studentID string, onlyPublished bool) ([]domain.Week, error) {
	return f.plans.ListWeeks(ctx, studentID, onlyPublished)
}

func (f *Facade) ListDays(ctx context.Context, weekID string) ([]domain.Day, error) {
	return f.plans.ListDays(ctx, weekID)
}

func (f *Facade) CreateWeek(ctx context.Context, input CreateWeekInput) (string, error) {
	return f.plans.CreateWeek(ctx, input)
}

func (f *Facade) UpsertDay(ctx context.Context, weekID string, input UpsertDayInput) (string, error) {
	return f.plans.UpsertDay(ctx, weekID, input)
}

func (f *Facade) PublishWeek(ctx context.Context, weekID string, isPublished bool) error {
	return f.plans.PublishWeek(ctx, weekID, isPublished)
}

func (f *Facade) RenameWeek(ctx context.Context, weekID, title string) error {
	return f.plans.RenameWeek(ctx, weekID, title)
}

func (f *Facade) DeleteWeekCascade(ctx context.Context, weekID string) (*DeleteReport, error) {
	return f.plans.DeleteWeekCascade(ctx, weekID)
}

func (f *Facade) DeleteDay(ctx context.Context, weekID, dayID string) error {
	return f.plans.DeleteDay(ctx, weekID, dayID)
}

func (f *Facade) HasAnyWeeks(ctx context.Context, studentID string) (bool, error) {
	return f.plans.HasAnyWeeks(ctx, studentID)
}

// --- Progress ---

func (f *Facade) CompletionMap(ctx context.Context, weekID, studentID string) (map[string]bool, error) {
	return f.progress.CompletionMap(ctx, weekID, studentID)
}

func (f *Facade) SetDayCompleted(ctx context.Context, weekID, studentID, dayID string, completed bool) error {
	return f.progress.SetDayCompleted(ctx, weekID, studentID, dayID, completed)
}

func (f *Facade) WeekProgress(ctx context.Context, weekID, studentID string) (domain.WeekProgress, error) {
	return f.progress.WeekProgress(ctx, weekID, studentID)
}

func (f *Facade) OverallProgress(ctx context.Context, studentID string) (domain.OverallProgress, error) {
	return f.progress.OverallProgress(ctx, studentID)
}

// --- Relationship lifecycle ---

func (f *Facade) ResolveStudentLinkState(ctx context.Context, studentID string) LinkState {
	return f.links.ResolveStudentLinkState(ctx, studentID)
}

func (f *Facade) RequestLinkByTeacherEmail(ctx context.Context, studentID, teacherEmail string) (bool, string) {
	return f.links.RequestLinkByTeacherEmail(ctx, studentID, teacherEmail)
}

func (f *Facade) AcceptPendingInvite(ctx context.Context, studentID, inviteID string) LinkState {
	return f.links.AcceptPendingInvite(ctx, studentID, inviteID)
}

func (f *Facade) DeclinePendingInvite(ctx context.Context, studentID, inviteID string) LinkState {
	return f.links.DeclinePendingInvite(ctx, studentID, inviteID)
}

func (f *Facade) ListInvitesSent(ctx context.Context, teacherID string, status domain.InviteStatus, limit int64) ([]domain.Invite, error) {
	return f.links.ListInvitesSent(ctx, teacherID, status, limit)
}

func (f *Facade) CreateInviteByEmail(ctx context.Context, teacherID, teacherEmail, studentEmail string) (string, error) {
	return f.links.CreateInviteByEmail(ctx, teacherID, teacherEmail, studentEmail)
}

func (f *Facade) CancelInvite(ctx context.Context, inviteID string) error {
	return f.links.CancelInvite(ctx, inviteID)
}

func (f *Facade) ListPendingLinkRequests(ctx context.Context, teacherID string) ([]domain.LinkRequest, error) {
	return f.links.ListPendingLinkRequests(ctx, teacherID)
}

func (f *Facade) ApproveLinkRequestAndLink(ctx context.Context, teacherID, requestID, studentID string, category domain.Category) error {
	return f.links.ApproveLinkRequestAndLink(ctx, teacherID, requestID, studentID, category)
}

func (f *Facade) ListLinkedStudents(ctx context.Context, teacherID string, categories []domain.Category) ([]domain.User, error) {
	return f.links.ListLinkedStudents(ctx, teacherID, categories)
}

func (f *Facade) UnlinkStudent(ctx context.Context, teacherID, studentID string, category domain.Category) error {
	return f.links.UnlinkStudent(ctx, teacherID, studentID, category)
}

// --- Block media ---

func (f *Facade) RequestBlockMediaUploadURL(ctx context.Context, teacherID, weekID, dayID, blockID, contentType string) (*UploadURLResponse, error) {
	return f.media.RequestBlockMediaUploadURL(ctx, teacherID, weekID, dayID, blockID, contentType)
}

func (f *Facade) ConfirmBlockMediaUpload(ctx context.Context, teacherID, weekID, dayID, blockID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Upload, error) {
	return f.media.ConfirmBlockMediaUpload(ctx, teacherID, weekID, dayID, blockID, objectKey, fileName, fileSize, contentType)
}

func (f *Facade) BlockMediaDownloadURL(ctx context.Context, blockID string) (string, error) {
	return f.media.BlockMediaDownloadURL(ctx, blockID)
}
