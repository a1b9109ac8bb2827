package mongo

import (
	"coachhub/training-app/internal/domain"
	"context"
	"errors"
	"time"

	"coachhub/training-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "student_progress"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new student progress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// GetCompletionMap returns the student's completion map for a week. A missing
// record means nothing has been toggled yet, so an empty map is returned
// rather than an error.
func (r *mongoProgressRepository) GetCompletionMap(ctx context.Context, weekID, studentID string) (map[string]bool, error) {
	var record domain.Progress
	filter := bson.M{"weekId": weekID, "studentId": studentID}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	if record.Completion == nil {
		return map[string]bool{}, nil
	}
	return record.Completion, nil
}

// SetDayCompleted merges a single completion entry, creating the record
// lazily on the first toggle. Only the one map key is written, so concurrent
// toggles of distinct days by the same student never overwrite each other.
func (r *mongoProgressRepository) SetDayCompleted(ctx context.Context, weekID, studentID, dayID string, completed bool) error {
	filter := bson.M{"weekId": weekID, "studentId": studentID}
	update := bson.M{
		"$set": bson.M{
			"completion." + dayID: completed,
			"updatedAt":           time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"weekId":    weekID,
			"studentId": studentID,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// DeleteByWeek removes every progress record under the week. Used by the
// week cascade.
func (r *mongoProgressRepository) DeleteByWeek(ctx context.Context, weekID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"weekId": weekID})
	return err
}

// EnsureProgressIndexes creates necessary indexes. Call during startup.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "weekId", Value: 1}, {Key: "studentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Upserts still converge without the unique index.
	}
}
