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

const uploadCollectionName = "uploads"

// mongoUploadRepository implements repository.UploadRepository
type mongoUploadRepository struct {
	collection *mongo.Collection
}

// NewMongoUploadRepository creates a new block media metadata repository.
func NewMongoUploadRepository(db *mongo.Database) repository.UploadRepository {
	return &mongoUploadRepository{
		collection: db.Collection(uploadCollectionName),
	}
}

// Create inserts metadata for a confirmed media upload.
func (r *mongoUploadRepository) Create(ctx context.Context, upload *domain.Upload) (string, error) {
	if upload.BlockID == "" || upload.S3ObjectKey == "" {
		return "", errors.New("upload requires blockId and s3ObjectKey")
	}
	upload.ID = uuid.NewString()
	upload.UploadedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, upload); err != nil {
		return "", err
	}
	return upload.ID, nil
}

// GetByID retrieves upload metadata by id.
func (r *mongoUploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	var upload domain.Upload
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// GetByBlockID retrieves the newest upload attached to a block.
func (r *mongoUploadRepository) GetByBlockID(ctx context.Context, blockID string) (*domain.Upload, error) {
	var upload domain.Upload
	filter := bson.M{"blockId": blockID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}
