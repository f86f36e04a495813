package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoUpload stores metadata about a set video uploaded by an athlete.
// The actual file resides in S3; ObjectKey is what sets reference.
type VideoUpload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID   string             `bson:"athleteId" json:"athleteId"`
	SessionID   string             `bson:"sessionId" json:"sessionId"`
	ObjectKey   string             `bson:"objectKey" json:"objectKey"`     // The unique key (path/filename) in the S3 bucket
	FileName    string             `bson:"fileName" json:"fileName"`       // Original filename provided by client
	ContentType string             `bson:"contentType" json:"contentType"` // MIME type (e.g., "video/mp4")
	Size        int64              `bson:"size" json:"size"`               // File size in bytes
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// Ref returns the reference a Set stores for this upload.
func (u *VideoUpload) Ref() VideoRef {
	return VideoRef(u.ObjectKey)
}
