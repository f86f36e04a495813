package mongo

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const videoUploadCollectionName = "video_uploads"

// mongoVideoUploadRepository implements repository.VideoUploadRepository
type mongoVideoUploadRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoUploadRepository creates a new VideoUpload repository backed by MongoDB.
func NewMongoVideoUploadRepository(db *mongo.Database) repository.VideoUploadRepository {
	return &mongoVideoUploadRepository{
		collection: db.Collection(videoUploadCollectionName),
	}
}

// Create inserts new upload metadata into the database.
func (r *mongoVideoUploadRepository) Create(ctx context.Context, upload *domain.VideoUpload) (primitive.ObjectID, error) {
	if upload.AthleteID == "" || upload.SessionID == "" || upload.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("upload requires athleteId, sessionId, and objectKey")
	}

	upload.ID = primitive.NewObjectID()
	upload.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, upload)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByObjectKey retrieves upload metadata by its S3 object key.
func (r *mongoVideoUploadRepository) GetByObjectKey(ctx context.Context, objectKey string) (*domain.VideoUpload, error) {
	var upload domain.VideoUpload
	err := r.collection.FindOne(ctx, bson.M{"objectKey": objectKey}).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// ListBySession returns the uploads confirmed during one session, oldest first.
func (r *mongoVideoUploadRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.VideoUpload, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	uploads := []domain.VideoUpload{}
	if err = cursor.All(ctx, &uploads); err != nil {
		return nil, err
	}
	return uploads, nil
}

// EnsureVideoUploadIndexes creates necessary indexes for the uploads collection.
func EnsureVideoUploadIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "uploadedAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
