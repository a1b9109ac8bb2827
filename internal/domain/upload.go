package domain

import "time"

// Upload stores metadata about demo media a teacher attached to a training
// block. The actual file resides in S3.
type Upload struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	WeekID      string    `bson:"weekId" json:"weekId"`
	DayID       string    `bson:"dayId" json:"dayId"`
	BlockID     string    `bson:"blockId" json:"blockId"`
	TeacherID   string    `bson:"teacherId" json:"teacherId"`
	S3ObjectKey string    `bson:"s3ObjectKey" json:"-"` // internal bucket key, never exposed
	FileName    string    `bson:"fileName" json:"fileName"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
