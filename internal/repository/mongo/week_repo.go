package mongo

import (
	"coachhub/training-app/internal/domain"
	"coachhub/training-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weekCollectionName = "training_weeks"

// mongoWeekRepository implements repository.WeekRepository
type mongoWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekRepository creates a new training week repository.
func NewMongoWeekRepository(db *mongo.Database) repository.WeekRepository {
	return &mongoWeekRepository{
		collection: db.Collection(weekCollectionName),
	}
}

// Create inserts a new training week.
func (r *mongoWeekRepository) Create(ctx context.Context, week *domain.Week) (string, error) {
	if week.StudentID == "" || week.TeacherID == "" || week.Title == "" {
		return "", errors.New("week requires studentId, teacherId, and title")
	}
	week.ID = uuid.NewString()
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, week); err != nil {
		return "", err
	}
	return week.ID, nil
}

// GetByID retrieves a single week by its ID.
func (r *mongoWeekRepository) GetByID(ctx context.Context, id string) (*domain.Week, error) {
	var week domain.Week
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// ListByStudent retrieves all weeks for a student, optionally only published
// ones. The creation-time-ordered query is tried first; if the store rejects
// it (typically a missing compound index) the query is retried unordered.
// Callers re-sort client-side, so the fallback changes nothing observable.
func (r *mongoWeekRepository) ListByStudent(ctx context.Context, studentID string, onlyPublished bool) ([]domain.Week, error) {
	filter := bson.M{"studentId": studentID}
	if onlyPublished {
		filter["isPublished"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		// Retry unordered rather than surfacing an index problem to the user.
		cursor, err = r.collection.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
	}
	defer cursor.Close(ctx)

	var weeks []domain.Week
	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice when the student has no weeks (not an error).
	return weeks, nil
}

// SetPublished flips the draft/published flag.
func (r *mongoWeekRepository) SetPublished(ctx context.Context, weekID string, isPublished bool) error {
	return r.merge(ctx, weekID, bson.M{"isPublished": isPublished})
}

// SetTitle renames the week.
func (r *mongoWeekRepository) SetTitle(ctx context.Context, weekID, title string) error {
	return r.merge(ctx, weekID, bson.M{"title": title})
}

// SetDateRange merges the derived start/end dates into the week document.
func (r *mongoWeekRepository) SetDateRange(ctx context.Context, weekID string, start, end time.Time) error {
	return r.merge(ctx, weekID, bson.M{"startDate": start, "endDate": end})
}

// Touch bumps the week's update timestamp without changing anything else.
func (r *mongoWeekRepository) Touch(ctx context.Context, weekID string) error {
	return r.merge(ctx, weekID, bson.M{})
}

// merge applies a partial $set update together with the update timestamp.
func (r *mongoWeekRepository) merge(ctx context.Context, weekID string, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": weekID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the week document itself. Days and progress records are the
// cascade's responsibility, not this method's.
func (r *mongoWeekRepository) Delete(ctx context.Context, weekID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": weekID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AnyForStudent reports whether the student has at least one week. The count
// is capped to one document so the probe stays cheap.
func (r *mongoWeekRepository) AnyForStudent(ctx context.Context, studentID string) (bool, error) {
	countOptions := options.Count().SetLimit(1)
	n, err := r.collection.CountDocuments(ctx, bson.M{"studentId": studentID}, countOptions)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureWeekIndexes creates necessary indexes. Call during startup.
func EnsureWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The ordered list query: weeks for a student by creation time.
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "isPublished", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "teacherId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Missing indexes degrade to the unordered fallback, not to failure.
	}
}
