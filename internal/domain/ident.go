package domain

import "strings"

// CleanID trims surrounding whitespace from a string identifier.
func CleanID(id string) string {
	return strings.TrimSpace(id)
}

// RequireWeekID returns the trimmed week id, or ErrMissingWeekID if blank.
func RequireWeekID(id string) (string, error) {
	id = CleanID(id)
	if id == "" {
		return "", ErrMissingWeekID
	}
	return id, nil
}

// RequireStudentID returns the trimmed student id, or ErrMissingStudentID if blank.
func RequireStudentID(id string) (string, error) {
	id = CleanID(id)
	if id == "" {
		return "", ErrMissingStudentID
	}
	return id, nil
}

// RequireTeacherID returns the trimmed teacher id, or ErrMissingTeacherID if blank.
func RequireTeacherID(id string) (string, error) {
	id = CleanID(id)
	if id == "" {
		return "", ErrMissingTeacherID
	}
	return id, nil
}

// RequireUserID returns the trimmed user id, or ErrMissingUserID if blank.
func RequireUserID(id string) (string, error) {
	id = CleanID(id)
	if id == "" {
		return "", ErrMissingUserID
	}
	return id, nil
}

// LooksLikeEmail performs the minimal shape check used by the link flows.
// Real deliverability is the mail provider's problem.
func LooksLikeEmail(email string) bool {
	email = strings.TrimSpace(email)
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
