package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireWeekID(t *testing.T) {
	id, err := RequireWeekID("  w1  ")
	assert.NoError(t, err)
	assert.Equal(t, "w1", id)

	_, err = RequireWeekID("   ")
	assert.ErrorIs(t, err, ErrMissingWeekID)
}

func TestRequireStudentID(t *testing.T) {
	_, err := RequireStudentID("")
	assert.ErrorIs(t, err, ErrMissingStudentID)
}

func TestLooksLikeEmail(t *testing.T) {
	assert.True(t, LooksLikeEmail("coach@example.com"))
	assert.True(t, LooksLikeEmail("  coach@example.com  "))
	assert.False(t, LooksLikeEmail("coach@example"))
	assert.False(t, LooksLikeEmail("example.com"))
	assert.False(t, LooksLikeEmail(""))
}
