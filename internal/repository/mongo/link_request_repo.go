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

const linkRequestCollectionName = "link_requests"

// mongoLinkRequestRepository implements repository.LinkRequestRepository
type mongoLinkRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoLinkRequestRepository creates a new link request repository.
func NewMongoLinkRequestRepository(db *mongo.Database) repository.LinkRequestRepository {
	return &mongoLinkRequestRepository{
		collection: db.Collection(linkRequestCollectionName),
	}
}

// Create inserts a new link request in pending status.
func (r *mongoLinkRequestRepository) Create(ctx context.Context, req *domain.LinkRequest) (string, error) {
	if req.StudentID == "" || req.TeacherID == "" {
		return "", errors.New("link request requires studentId and teacherId")
	}
	req.ID = uuid.NewString()
	if req.Status == "" {
		req.Status = domain.LinkRequestPending
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, req); err != nil {
		return "", err
	}
	return req.ID, nil
}

// GetByID retrieves a single link request.
func (r *mongoLinkRequestRepository) GetByID(ctx context.Context, id string) (*domain.LinkRequest, error) {
	var req domain.LinkRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListPendingByTeacher retrieves the requests awaiting the teacher's
// approval, oldest first so the queue reads in arrival order.
func (r *mongoLinkRequestRepository) ListPendingByTeacher(ctx context.Context, teacherID string) ([]domain.LinkRequest, error) {
	filter := bson.M{"teacherId": teacherID, "status": domain.LinkRequestPending}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []domain.LinkRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// SetStatus transitions the request's status.
func (r *mongoLinkRequestRepository) SetStatus(ctx context.Context, id string, status domain.LinkRequestStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
