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

const inviteCollectionName = "teacher_invites"

// mongoInviteRepository implements repository.InviteRepository
type mongoInviteRepository struct {
	collection *mongo.Collection
}

// NewMongoInviteRepository creates a new invite repository.
func NewMongoInviteRepository(db *mongo.Database) repository.InviteRepository {
	return &mongoInviteRepository{
		collection: db.Collection(inviteCollectionName),
	}
}

// Create inserts a new invite in pending status.
func (r *mongoInviteRepository) Create(ctx context.Context, invite *domain.Invite) (string, error) {
	if invite.TeacherID == "" || invite.StudentEmail == "" {
		return "", errors.New("invite requires teacherId and studentEmail")
	}
	invite.ID = uuid.NewString()
	if invite.Status == "" {
		invite.Status = domain.InvitePending
	}
	now := time.Now().UTC()
	invite.CreatedAt = now
	invite.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, invite); err != nil {
		return "", err
	}
	return invite.ID, nil
}

// GetByID retrieves a single invite.
func (r *mongoInviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	var invite domain.Invite
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&invite)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// PendingByStudentEmail finds the pending invite targeting an email, newest
// first when several teachers invited the same address.
func (r *mongoInviteRepository) PendingByStudentEmail(ctx context.Context, email string) (*domain.Invite, error) {
	var invite domain.Invite
	filter := bson.M{"studentEmail": email, "status": domain.InvitePending}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&invite)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// ListByTeacher retrieves the teacher's sent invites, newest first, optionally
// filtered by status and capped to limit.
func (r *mongoInviteRepository) ListByTeacher(ctx context.Context, teacherID string, status domain.InviteStatus, limit int64) ([]domain.Invite, error) {
	filter := bson.M{"teacherId": teacherID}
	if status != "" {
		filter["status"] = status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invites []domain.Invite
	if err = cursor.All(ctx, &invites); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return invites, nil
}

// SetStatus transitions the invite's status.
func (r *mongoInviteRepository) SetStatus(ctx context.Context, id string, status domain.InviteStatus) error {
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

// EnsureInviteIndexes creates necessary indexes. Call during startup.
func EnsureInviteIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentEmail", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "teacherId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Invite lookups degrade to scans without these.
	}
}
