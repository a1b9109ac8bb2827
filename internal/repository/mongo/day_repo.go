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

const dayCollectionName = "training_days"

// mongoDayRepository implements repository.DayRepository
type mongoDayRepository struct {
	collection *mongo.Collection
}

// NewMongoDayRepository creates a new training day repository.
func NewMongoDayRepository(db *mongo.Database) repository.DayRepository {
	return &mongoDayRepository{
		collection: db.Collection(dayCollectionName),
	}
}

// Create inserts a new day under its week.
func (r *mongoDayRepository) Create(ctx context.Context, day *domain.Day) (string, error) {
	if day.WeekID == "" || day.Title == "" {
		return "", errors.New("day requires weekId and title")
	}
	day.ID = uuid.NewString()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, day); err != nil {
		return "", err
	}
	return day.ID, nil
}

// Update overwrites the mutable fields of an existing day. The ordinal index
// is stored as supplied; uniqueness within the week is not enforced here.
func (r *mongoDayRepository) Update(ctx context.Context, day *domain.Day) error {
	if day.ID == "" || day.WeekID == "" {
		return errors.New("day ID and week ID are required for update")
	}

	filter := bson.M{"_id": day.ID, "weekId": day.WeekID}
	updateDoc := bson.M{
		"$set": bson.M{
			"index":       day.Index,
			"name":        day.Name,
			"date":        day.Date,
			"title":       day.Title,
			"description": day.Description,
			"blocks":      day.Blocks,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByWeek retrieves the week's days ordered by ordinal index.
func (r *mongoDayRepository) ListByWeek(ctx context.Context, weekID string) ([]domain.Day, error) {
	filter := bson.M{"weekId": weekID}
	findOptions := options.Find().SetSort(bson.D{{Key: "index", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []domain.Day
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// Delete removes one day document. The weekId in the filter guards against a
// day id from a different week.
func (r *mongoDayRepository) Delete(ctx context.Context, weekID, dayID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": dayID, "weekId": weekID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByWeek removes every day under the week. Used by the week cascade.
func (r *mongoDayRepository) DeleteByWeek(ctx context.Context, weekID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"weekId": weekID})
	return err
}

// EnsureDayIndexes creates necessary indexes. Call during startup.
func EnsureDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "weekId", Value: 1}, {Key: "index", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Sorted day listings work without the index, just slower.
	}
}
