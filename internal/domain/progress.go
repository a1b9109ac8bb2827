package domain

import "time"

// Progress is the per (week, student) completion record. Completion maps a
// day id to whether the student marked that day done. Entries may outlive
// their day (days can be deleted independently); aggregation filters those
// out against the current day set.
type Progress struct {
	ID         string          `bson:"_id,omitempty" json:"id"`
	WeekID     string          `bson:"weekId" json:"weekId"`
	StudentID  string          `bson:"studentId" json:"studentId"`
	Completion map[string]bool `bson:"completion,omitempty" json:"completion,omitempty"`
	UpdatedAt  time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// WeekProgress is the (completed, total) pair for one week. Total always
// comes from the week's authoritative day count, never from the completion
// map's key count.
type WeekProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// OverallProgress sums week progress across all of a student's published
// weeks. Percent is round-half-up of 100*Completed/Total, 0 when Total is 0.
type OverallProgress struct {
	Percent   int `json:"percent"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}
