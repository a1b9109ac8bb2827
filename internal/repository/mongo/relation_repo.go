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

const relationCollectionName = "teacher_students"

// mongoRelationRepository implements repository.RelationRepository
type mongoRelationRepository struct {
	collection *mongo.Collection
}

// NewMongoRelationRepository creates a new teacher-student relation repository.
func NewMongoRelationRepository(db *mongo.Database) repository.RelationRepository {
	return &mongoRelationRepository{
		collection: db.Collection(relationCollectionName),
	}
}

// GetByStudent returns the student's active relation. If duplicates exist for
// the pair (tolerated, see Upsert) the first match wins.
func (r *mongoRelationRepository) GetByStudent(ctx context.Context, studentID string) (*domain.Relation, error) {
	var relation domain.Relation
	err := r.collection.FindOne(ctx, bson.M{"studentId": studentID}).Decode(&relation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &relation, nil
}

// GetByPair returns the relation for one (teacher, student) pair.
func (r *mongoRelationRepository) GetByPair(ctx context.Context, teacherID, studentID string) (*domain.Relation, error) {
	var relation domain.Relation
	filter := bson.M{"teacherId": teacherID, "studentId": studentID}
	err := r.collection.FindOne(ctx, filter).Decode(&relation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &relation, nil
}

// ListStudentIDsByCategory returns the ids of all students the teacher is
// linked with under the given category.
func (r *mongoRelationRepository) ListStudentIDsByCategory(ctx context.Context, teacherID string, category domain.Category) ([]string, error) {
	filter := bson.M{"teacherId": teacherID, "categories": category}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var relations []domain.Relation
	if err = cursor.All(ctx, &relations); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(relations))
	for _, relation := range relations {
		ids = append(ids, relation.StudentID)
	}
	return ids, nil
}

// Upsert adds the category to the pair's relation, creating the relation
// document when none exists. $addToSet keeps the category set duplicate-free.
func (r *mongoRelationRepository) Upsert(ctx context.Context, teacherID, studentID string, category domain.Category) error {
	filter := bson.M{"teacherId": teacherID, "studentId": studentID}
	update := bson.M{
		"$addToSet": bson.M{"categories": category},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"teacherId": teacherID,
			"studentId": studentID,
			"createdAt": time.Now().UTC(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// RemoveCategory pulls one category from the pair's relation and deletes the
// relation outright when the category set becomes empty. No relation with an
// empty category set persists.
func (r *mongoRelationRepository) RemoveCategory(ctx context.Context, teacherID, studentID string, category domain.Category) error {
	filter := bson.M{"teacherId": teacherID, "studentId": studentID}
	update := bson.M{
		"$pull": bson.M{"categories": category},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	emptyFilter := bson.M{
		"teacherId":  teacherID,
		"studentId":  studentID,
		"categories": bson.M{"$size": 0},
	}
	_, err = r.collection.DeleteMany(ctx, emptyFilter)
	return err
}

// CategoriesForPair returns the categories the pair is currently linked under.
func (r *mongoRelationRepository) CategoriesForPair(ctx context.Context, teacherID, studentID string) ([]domain.Category, error) {
	relation, err := r.GetByPair(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return relation.Categories, nil
}

// EnsureRelationIndexes creates necessary indexes. Call during startup.
func EnsureRelationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "teacherId", Value: 1}, {Key: "studentId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "teacherId", Value: 1}, {Key: "categories", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Lookups fall back to collection scans without these.
	}
}
