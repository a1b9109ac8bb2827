package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation and store-communication errors shared by every component.
// All of them are checked with errors.Is at call sites; none represent
// programmer logic errors.
var (
	ErrMissingWeekID    = errors.New("week id is required")
	ErrMissingStudentID = errors.New("student id is required")
	ErrMissingTeacherID = errors.New("teacher id is required")
	ErrMissingUserID    = errors.New("user id is required")
	ErrInvalidData      = errors.New("invalid data")
	ErrWriteFailed      = errors.New("write failed")
	ErrNotFound         = errors.New("not found")
)

// DeleteError reports a best-effort cascade that completed only partially.
// Steps lists the sub-deletes that failed, so a retry/cleanup job can be
// layered on top later.
type DeleteError struct {
	Steps []string
	Err   error
}

func (e *DeleteError) Error() string {
	if len(e.Steps) == 0 {
		return fmt.Sprintf("delete failed: %v", e.Err)
	}
	return fmt.Sprintf("delete failed at %s: %v", strings.Join(e.Steps, ", "), e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}
