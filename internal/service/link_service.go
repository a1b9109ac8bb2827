package service

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LinkStatus is the student-side banner state for the teacher relationship.
type LinkStatus string

const (
	LinkStatusLinked        LinkStatus = "linked"
	LinkStatusInvitePending LinkStatus = "invite_pending"
	LinkStatusNotLinked     LinkStatus = "not_linked"
	LinkStatusError         LinkStatus = "error"
)

// LinkState is one resolved snapshot of the student's relationship state.
// TeacherEmail and InviteID are set when Status is invite_pending; Message is
// set when Status is error. Failures resolve into the error state instead of
// propagating, because link flows fail recoverably (bad email, network blip).
type LinkState struct {
	Status       LinkStatus `json:"status"`
	TeacherEmail string     `json:"teacherEmail,omitempty"`
	InviteID     string     `json:"inviteId,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// LinkService models the teacher-student relationship lifecycle: link
// requests, invites, acceptance, and category-scoped linking.
type LinkService interface {
	// Student side.
	ResolveStudentLinkState(ctx context.Context, studentID string) LinkState
	RequestLinkByTeacherEmail(ctx context.Context, studentID, teacherEmail string) (bool, string)
	AcceptPendingInvite(ctx context.Context, studentID, inviteID string) LinkState
	DeclinePendingInvite(ctx context.Context, studentID, inviteID string) LinkState

	// Teacher side.
	ListInvitesSent(ctx context.Context, teacherID string, status domain.InviteStatus, limit int64) ([]domain.Invite, error)
	CreateInviteByEmail(ctx context.Context, teacherID, teacherEmail, studentEmail string) (string, error)
	CancelInvite(ctx context.Context, inviteID string) error
	ListPendingLinkRequests(ctx context.Context, teacherID string) ([]domain.LinkRequest, error)
	ApproveLinkRequestAndLink(ctx context.Context, teacherID, requestID, studentID string, category domain.Category) error
	ListLinkedStudents(ctx context.Context, teacherID string, categories []domain.Category) ([]domain.User, error)
	UnlinkStudent(ctx context.Context, teacherID, studentID string, category domain.Category) error
}

type linkService struct {
	userRepo        repository.UserRepository
	relationRepo    repository.RelationRepository
	inviteRepo      repository.InviteRepository
	linkRequestRepo repository.LinkRequestRepository
}

// NewLinkService creates a new instance of linkService.
func NewLinkService(
	userRepo repository.UserRepository,
	relationRepo repository.RelationRepository,
	inviteRepo repository.InviteRepository,
	linkRequestRepo repository.LinkRequestRepository,
) LinkService {
	return &linkService{
		userRepo:        userRepo,
		relationRepo:    relationRepo,
		inviteRepo:      inviteRepo,
		linkRequestRepo: linkRequestRepo,
	}
}

// ResolveStudentLinkState evaluates, in strict order: active relation, then
// pending invite against the student's email, then not-linked. Any fetch
// failure short-circuits to the error state.
func (s *linkService) ResolveStudentLinkState(ctx context.Context, studentID string) LinkState {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return LinkState{Status: LinkStatusError, Message: err.Error()}
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return LinkState{Status: LinkStatusError, Message: "failed to load profile"}
	}

	_, err = s.relationRepo.GetByStudent(ctx, studentID)
	if err == nil {
		return LinkState{Status: LinkStatusLinked}
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return LinkState{Status: LinkStatusError, Message: "failed to check teacher link"}
	}

	if strings.TrimSpace(student.Email) != "" {
		invite, err := s.inviteRepo.PendingByStudentEmail(ctx, student.Email)
		if err == nil {
			return LinkState{
				Status:       LinkStatusInvitePending,
				TeacherEmail: invite.TeacherEmail,
				InviteID:     invite.ID,
			}
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return LinkState{Status: LinkStatusError, Message: "failed to check invites"}
		}
	}

	return LinkState{Status: LinkStatusNotLinked}
}

// RequestLinkByTeacherEmail files a link request toward the teacher with the
// given email. Returns ok plus a user-facing message rather than an error:
// this is a user-recoverable flow, not a system fault. The email shape check
// runs before any store call.
func (s *linkService) RequestLinkByTeacherEmail(ctx context.Context, studentID, teacherEmail string) (bool, string) {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return false, err.Error()
	}
	teacherEmail = strings.TrimSpace(teacherEmail)
	if !domain.LooksLikeEmail(teacherEmail) {
		return false, "please enter a valid email address"
	}

	teacher, err := s.userRepo.GetByEmail(ctx, teacherEmail)
	if err != nil || !teacher.IsTeacher() {
		return false, "no teacher found with that email"
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return false, "failed to load your profile"
	}

	req := &domain.LinkRequest{
		StudentID:    studentID,
		StudentEmail: student.Email,
		TeacherID:    teacher.ID,
		TeacherEmail: teacher.Email,
	}
	if _, err := s.linkRequestRepo.Create(ctx, req); err != nil {
		return false, "could not send the link request, try again"
	}
	return true, "link request sent"
}

// AcceptPendingInvite accepts the invite captured during state resolution,
// links the pair under the general category, and re-resolves the state.
func (s *linkService) AcceptPendingInvite(ctx context.Context, studentID, inviteID string) LinkState {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return LinkState{Status: LinkStatusError, Message: err.Error()}
	}
	inviteID = domain.CleanID(inviteID)
	if inviteID == "" {
		return LinkState{Status: LinkStatusError, Message: "no pending invite"}
	}

	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return LinkState{Status: LinkStatusError, Message: "invite no longer exists"}
	}
	if invite.Status != domain.InvitePending {
		return LinkState{Status: LinkStatusError, Message: "invite is no longer pending"}
	}

	if err := s.inviteRepo.SetStatus(ctx, inviteID, domain.InviteAccepted); err != nil {
		return LinkState{Status: LinkStatusError, Message: "failed to accept invite"}
	}
	if err := s.relationRepo.Upsert(ctx, invite.TeacherID, studentID, domain.CategoryGeneral); err != nil {
		return LinkState{Status: LinkStatusError, Message: "failed to link with teacher"}
	}

	return s.ResolveStudentLinkState(ctx, studentID)
}

// DeclinePendingInvite declines the captured invite and re-resolves the state.
func (s *linkService) DeclinePendingInvite(ctx context.Context, studentID, inviteID string) LinkState {
	studentID, err := domain.RequireStudentID(studentID)
	if err != nil {
		return LinkState{Status: LinkStatusError, Message: err.Error()}
	}
	inviteID = domain.CleanID(inviteID)
	if inviteID == "" {
		return LinkState{Status: LinkStatusError, Message: "no pending invite"}
	}

	if err := s.inviteRepo.SetStatus(ctx, inviteID, domain.InviteDeclined); err != nil {
		return LinkState{Status: LinkStatusError, Message: "failed to decline invite"}
	}
	return s.ResolveStudentLinkState(ctx, studentID)
}

// ListInvitesSent returns the teacher's sent invites, optionally filtered by
// status and capped to limit.
func (s *linkService) ListInvitesSent(ctx context.Context, teacherID string, status domain.InviteStatus, limit int64) ([]domain.Invite, error) {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return nil, err
	}
	return s.inviteRepo.ListByTeacher(ctx, teacherID, status, limit)
}

// CreateInviteByEmail issues a pending invite to the student email.
func (s *linkService) CreateInviteByEmail(ctx context.Context, teacherID, teacherEmail, studentEmail string) (string, error) {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return "", err
	}
	studentEmail = strings.TrimSpace(studentEmail)
	if !domain.LooksLikeEmail(studentEmail) {
		return "", fmt.Errorf("%w: student email is malformed", domain.ErrInvalidData)
	}

	// The invite carries the teacher's email so the student banner can show
	// who is asking; backfill it from the profile when the caller has none.
	teacherEmail = strings.TrimSpace(teacherEmail)
	if teacherEmail == "" {
		teacher, err := s.userRepo.GetByID(ctx, teacherID)
		if err != nil {
			return "", err
		}
		teacherEmail = teacher.Email
	}

	invite := &domain.Invite{
		TeacherID:    teacherID,
		TeacherEmail: teacherEmail,
		StudentEmail: studentEmail,
	}
	inviteID, err := s.inviteRepo.Create(ctx, invite)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	return inviteID, nil
}

// CancelInvite withdraws a sent invite.
func (s *linkService) CancelInvite(ctx context.Context, inviteID string) error {
	inviteID = domain.CleanID(inviteID)
	if inviteID == "" {
		return fmt.Errorf("%w: invite id is required", domain.ErrInvalidData)
	}
	err := s.inviteRepo.SetStatus(ctx, inviteID, domain.InviteCancelled)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// ListPendingLinkRequests returns the student requests awaiting the teacher.
func (s *linkService) ListPendingLinkRequests(ctx context.Context, teacherID string) ([]domain.LinkRequest, error) {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return nil, err
	}
	return s.linkRequestRepo.ListPendingByTeacher(ctx, teacherID)
}

// ApproveLinkRequestAndLink marks the request approved and creates or extends
// the relation under the given category. One logical operation, not a
// transaction: an approval that fails after the status write leaves the
// request approved but unlinked, which re-approval repairs.
func (s *linkService) ApproveLinkRequestAndLink(ctx context.Context, teacherID, requestID, studentID string, category domain.Category) error {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return err
	}
	studentID, err = domain.RequireStudentID(studentID)
	if err != nil {
		return err
	}
	requestID = domain.CleanID(requestID)
	if requestID == "" {
		return fmt.Errorf("%w: request id is required", domain.ErrInvalidData)
	}
	if category == "" {
		category = domain.CategoryGeneral
	}

	if err := s.linkRequestRepo.SetStatus(ctx, requestID, domain.LinkRequestApproved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.relationRepo.Upsert(ctx, teacherID, studentID, category)
}

// ListLinkedStudents loads the teacher's students across the given
// categories, fetching each category concurrently and de-duplicating students
// linked under more than one.
func (s *linkService) ListLinkedStudents(ctx context.Context, teacherID string, categories []domain.Category) ([]domain.User, error) {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		categories = []domain.Category{domain.CategoryGeneral, domain.CategoryGym, domain.CategoryHome}
	}

	var mu sync.Mutex
	seen := make(map[string]bool)
	var ids []string

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range categories {
		g.Go(func() error {
			categoryIDs, err := s.relationRepo.ListStudentIDsByCategory(gctx, teacherID, category)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range categoryIDs {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	students := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		student, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // relation outlived the profile
			}
			return nil, err
		}
		students = append(students, *student)
	}
	return students, nil
}

// UnlinkStudent removes the student from one category, or from every category
// the pair is linked under when category is blank. The bulk path continues
// past per-category failures so one bad category does not block the others;
// failures are reported together afterwards.
func (s *linkService) UnlinkStudent(ctx context.Context, teacherID, studentID string, category domain.Category) error {
	teacherID, err := domain.RequireTeacherID(teacherID)
	if err != nil {
		return err
	}
	studentID, err = domain.RequireStudentID(studentID)
	if err != nil {
		return err
	}

	if category != "" {
		err := s.relationRepo.RemoveCategory(ctx, teacherID, studentID, category)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	categories, err := s.relationRepo.CategoriesForPair(ctx, teacherID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	var failed []string
	var lastErr error
	for _, c := range categories {
		if err := s.relationRepo.RemoveCategory(ctx, teacherID, studentID, c); err != nil {
			failed = append(failed, string(c))
			lastErr = err
		}
	}
	if len(failed) > 0 {
		return &domain.DeleteError{Steps: failed, Err: lastErr}
	}
	return nil
}
