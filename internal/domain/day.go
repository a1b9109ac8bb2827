package domain

import "time"

// Block is a named unit of exercise content inside a day (warm-up, main set).
// Pure value object embedded in a Day; it has no independent lifecycle.
type Block struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Details string `bson:"details,omitempty" json:"details,omitempty"`
}

// Day is one calendar-scheduled workout inside a week. Index is the
// caller-supplied display ordinal; the store does not enforce uniqueness or
// contiguity within a week.
type Day struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	WeekID      string    `bson:"weekId" json:"weekId"`
	Index       int       `bson:"index" json:"index"`
	Name        string    `bson:"name" json:"name"`
	Date        time.Time `bson:"date" json:"date"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Blocks      []Block   `bson:"blocks,omitempty" json:"blocks,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
