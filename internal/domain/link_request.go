package domain

import "time"

// LinkRequestStatus tracks the lifecycle of a student-initiated request.
type LinkRequestStatus string

const (
	LinkRequestPending  LinkRequestStatus = "pending"
	LinkRequestApproved LinkRequestStatus = "approved"
)

// LinkRequest is the student-initiated direction of proposing a
// teacher-student relation.
type LinkRequest struct {
	ID           string            `bson:"_id,omitempty" json:"id"`
	StudentID    string            `bson:"studentId" json:"studentId"`
	StudentEmail string            `bson:"studentEmail,omitempty" json:"studentEmail,omitempty"`
	TeacherID    string            `bson:"teacherId" json:"teacherId"`
	TeacherEmail string            `bson:"teacherEmail,omitempty" json:"teacherEmail,omitempty"`
	Status       LinkRequestStatus `bson:"status" json:"status"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt"`
}
