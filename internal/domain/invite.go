package domain

import "time"

// InviteStatus tracks the lifecycle of a teacher-initiated invite.
type InviteStatus string

const (
	InvitePending   InviteStatus = "pending"
	InviteAccepted  InviteStatus = "accepted"
	InviteDeclined  InviteStatus = "declined"
	InviteCancelled InviteStatus = "cancelled"
)

// Invite is a teacher-initiated proposal to link with a student, addressed
// by email because the student may not have an account yet.
type Invite struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	TeacherID    string       `bson:"teacherId" json:"teacherId"`
	TeacherEmail string       `bson:"teacherEmail" json:"teacherEmail"`
	StudentEmail string       `bson:"studentEmail" json:"studentEmail"`
	Status       InviteStatus `bson:"status" json:"status"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}
