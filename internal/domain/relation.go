package domain

import "time"

// Relation is an active, category-scoped link between one teacher and one
// student. Conceptually there is at most one relation per (teacher, student)
// pair, but the store tolerates and merges duplicates. A relation whose last
// category is removed is deleted outright; no empty-category relation
// persists.
type Relation struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	TeacherID  string     `bson:"teacherId" json:"teacherId"`
	StudentID  string     `bson:"studentId" json:"studentId"`
	Categories []Category `bson:"categories" json:"categories"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// HasCategory reports whether the relation covers the given category.
func (r *Relation) HasCategory(c Category) bool {
	for _, have := range r.Categories {
		if have == c {
			return true
		}
	}
	return false
}
