package domain

import "time"

// Category scopes a week (and a teacher-student relation) to one kind of
// training content.
type Category string

const (
	CategoryGeneral Category = "general_fitness"
	CategoryGym     Category = "gym"
	CategoryHome    Category = "home"
)

// Week is one training period a teacher assigns to a student. StartDate and
// EndDate are derived from the week's days and stay nil until the first day
// is written; once set they are never cleared, only widened or narrowed by
// recomputes while days exist.
type Week struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	StudentID   string     `bson:"studentId" json:"studentId"`
	TeacherID   string     `bson:"teacherId" json:"teacherId"`
	Category    Category   `bson:"category" json:"category"`
	StartDate   *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsPublished bool       `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
